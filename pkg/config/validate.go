package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidScheme is returned by Validate for an unknown selfURLScheme.
var ErrInvalidScheme = errors.New("invalid selfURLScheme")

// maxTimeout bounds the read and write timeouts in seconds.
const maxTimeout = 3600

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true}
)

// Validate checks that every value is in range. Port 0 asks the operating
// system for a free port.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range (0-65535)", c.Port)
	}
	if c.ReadTimeout < 0 || c.ReadTimeout > maxTimeout {
		return fmt.Errorf("readTimeout %d is out of range (0-%d)", c.ReadTimeout, maxTimeout)
	}
	if c.WriteTimeout < 0 || c.WriteTimeout > maxTimeout {
		return fmt.Errorf("writeTimeout %d is out of range (0-%d)", c.WriteTimeout, maxTimeout)
	}
	if _, err := c.SchemePolicy(); err != nil {
		return fmt.Errorf("%w %q: expected plain or forwarded", ErrInvalidScheme, c.SelfURLScheme)
	}
	if !validLogLevels[strings.ToLower(strings.TrimSpace(c.LogLevel))] {
		return fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if !validLogFormats[strings.ToLower(strings.TrimSpace(c.LogFormat))] {
		return fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat)
	}
	return nil
}
