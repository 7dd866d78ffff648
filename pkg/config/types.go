// Package config provides configuration types and loading for the phonexml
// server.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/getmockd/phonexml/pkg/logging"
	"github.com/getmockd/phonexml/pkg/provision"
)

// Config is the complete server configuration.
// Values are layered with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Config file (--config, or .phonexml.yaml in the current directory)
// 4. Default values (lowest priority)
type Config struct {
	// Server settings
	Port         int `yaml:"port" json:"port"`
	ReadTimeout  int `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout int `yaml:"writeTimeout" json:"writeTimeout"`

	// DomainName is reported as the request context domain name. Empty means
	// the Host of each request.
	DomainName string `yaml:"domainName,omitempty" json:"domainName,omitempty"`

	// SelfURLScheme is "plain" or "forwarded".
	SelfURLScheme string `yaml:"selfURLScheme" json:"selfURLScheme"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Metrics enables the /metrics endpoint.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// ConfigFile is the file the config was loaded from, if any.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were explicitly present in a layer. It is
	// nil for configs built in code.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// Config sources.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// ReadTimeoutDuration returns ReadTimeout in seconds as a duration.
func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns WriteTimeout in seconds as a duration.
func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// SchemePolicy parses SelfURLScheme.
func (c *Config) SchemePolicy() (provision.SchemePolicy, error) {
	return provision.ParseSchemePolicy(c.SelfURLScheme)
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:  logging.ParseLevel(c.LogLevel),
		Format: logging.ParseFormat(c.LogFormat),
	}
}

func (c *Config) mark(key, source string) {
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[key] = source
}
