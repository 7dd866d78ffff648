// Package logging configures the structured logger used across phonexml.
//
// It wraps log/slog with a small Config (level, format, output) that the
// CLI fills from flags, environment and config file:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//	logger.Info("server started", "addr", ":3000")
//
// Components take a *slog.Logger and fall back to Nop when given nil.
package logging
