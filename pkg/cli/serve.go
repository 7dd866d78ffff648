package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getmockd/phonexml/pkg/config"
	"github.com/getmockd/phonexml/pkg/metrics"
	"github.com/getmockd/phonexml/pkg/provision"
	"github.com/getmockd/phonexml/pkg/server"
	"github.com/spf13/cobra"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 15 * time.Second

var serveFlagVals configFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the phone provisioning server (foreground)",
	Long: `Start the HTTP server. GET / returns the login form, GET /login the login
result, and any other single path segment an "Unknown Operation" screen.
/healthz reports liveness and /metrics exposes Prometheus metrics.`,
	Example: `  # Start with defaults on port 3000
  phonexml serve

  # Behind a TLS-terminating proxy, keep https in self URLs
  phonexml serve --self-url-scheme forwarded --domain-name phones.example.com

  # JSON logs, no metrics
  phonexml serve --log-format json --metrics=false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serveFlagVals.load(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cfg, newLogger(cfg, cmd.ErrOrStderr()), func(addr string) {
			fmt.Fprintf(cmd.OutOrStdout(), "phonexml listening on %s\n", addr)
		})
	},
}

// runServe serves until ctx is done, then shuts down gracefully. ready is
// called with the bound address once the server accepts connections.
func runServe(ctx context.Context, cfg *config.Config, log *slog.Logger, ready func(addr string)) error {
	var (
		handlerOpts []provision.Option
		serverOpts  = []server.Option{server.WithLogger(log)}
	)
	if cfg.Metrics {
		reg := metrics.NewRegistry()
		handlerOpts = append(handlerOpts, provision.WithObserver(metrics.NewObserver(reg)))
		serverOpts = append(serverOpts, server.WithMetrics(reg))
	}

	h, err := newHandler(cfg, log, handlerOpts...)
	if err != nil {
		return err
	}

	srv := server.New(h, server.Config{
		Addr:         cfg.Addr(),
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		DomainName:   cfg.DomainName,
	}, serverOpts...)

	if err := srv.Start(); err != nil {
		return err
	}
	if cfg.ConfigFile != "" {
		log.Info("loaded config file", "path", cfg.ConfigFile)
	}
	if ready != nil {
		ready(srv.Addr())
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func init() {
	serveFlagVals.register(serveCmd.Flags(), true)
	rootCmd.AddCommand(serveCmd)
}
