package config

import "github.com/getmockd/phonexml/pkg/provision"

// DefaultPort is the default HTTP port.
const DefaultPort = 3000

// DefaultReadTimeout is the default read timeout in seconds.
const DefaultReadTimeout = 10

// DefaultWriteTimeout is the default write timeout in seconds.
const DefaultWriteTimeout = 10

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// DefaultMetrics is whether /metrics is served.
const DefaultMetrics = true

// Keys lists every config key in file order.
var Keys = []string{
	"port",
	"readTimeout",
	"writeTimeout",
	"domainName",
	"selfURLScheme",
	"logLevel",
	"logFormat",
	"metrics",
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		Port:          DefaultPort,
		ReadTimeout:   DefaultReadTimeout,
		WriteTimeout:  DefaultWriteTimeout,
		SelfURLScheme: string(provision.SchemePlain),
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		Metrics:       DefaultMetrics,
		Sources:       make(map[string]string, len(Keys)),
	}
	for _, k := range Keys {
		cfg.Sources[k] = SourceDefault
	}
	return cfg
}
