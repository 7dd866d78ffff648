package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvPort          = "PHONEXML_PORT"
	EnvReadTimeout   = "PHONEXML_READ_TIMEOUT"
	EnvWriteTimeout  = "PHONEXML_WRITE_TIMEOUT"
	EnvDomainName    = "PHONEXML_DOMAIN_NAME"
	EnvSelfURLScheme = "PHONEXML_SELF_URL_SCHEME"
	EnvLogLevel      = "PHONEXML_LOG_LEVEL"
	EnvLogFormat     = "PHONEXML_LOG_FORMAT"
	EnvMetrics       = "PHONEXML_METRICS"
)

// LoadEnvConfig applies environment variables to cfg. Only variables that
// are set and non-empty are used. A value that does not parse is an error.
func LoadEnvConfig(cfg *Config) error {
	ints := []struct {
		env, key string
		dst      *int
	}{
		{EnvPort, "port", &cfg.Port},
		{EnvReadTimeout, "readTimeout", &cfg.ReadTimeout},
		{EnvWriteTimeout, "writeTimeout", &cfg.WriteTimeout},
	}
	for _, f := range ints {
		v := os.Getenv(f.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: expected an integer", f.env, v)
		}
		*f.dst = n
		cfg.mark(f.key, SourceEnv)
	}

	strs := []struct {
		env, key string
		dst      *string
	}{
		{EnvDomainName, "domainName", &cfg.DomainName},
		{EnvSelfURLScheme, "selfURLScheme", &cfg.SelfURLScheme},
		{EnvLogLevel, "logLevel", &cfg.LogLevel},
		{EnvLogFormat, "logFormat", &cfg.LogFormat},
	}
	for _, f := range strs {
		if v := os.Getenv(f.env); v != "" {
			*f.dst = v
			cfg.mark(f.key, SourceEnv)
		}
	}

	if v := os.Getenv(EnvMetrics); v != "" {
		on, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMetrics, v, err)
		}
		cfg.Metrics = on
		cfg.mark("metrics", SourceEnv)
	}
	return nil
}

// parseBool accepts the strconv forms plus yes/no and on/off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, errors.New("expected a boolean")
	}
	return b, nil
}
