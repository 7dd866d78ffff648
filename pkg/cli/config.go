package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/getmockd/phonexml/pkg/config"
	"github.com/getmockd/phonexml/pkg/logging"
	"github.com/getmockd/phonexml/pkg/provision"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configFlags are the config overrides shared by serve and invoke.
type configFlags struct {
	configFile    string
	port          int
	readTimeout   int
	writeTimeout  int
	domainName    string
	selfURLScheme string
	logLevel      string
	logFormat     string
	metrics       bool
}

func (f *configFlags) register(fs *pflag.FlagSet, server bool) {
	fs.StringVarP(&f.configFile, "config", "c", "", "Path to config file (default: .phonexml.yaml in the working directory)")
	fs.StringVar(&f.domainName, "domain-name", "", "Domain name reported to the handler (default: request Host)")
	fs.StringVar(&f.selfURLScheme, "self-url-scheme", config.NewDefault().SelfURLScheme, "Self URL scheme policy (plain, forwarded)")
	fs.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", config.DefaultLogFormat, "Log format (text, json)")
	if !server {
		return
	}
	fs.IntVarP(&f.port, "port", "p", config.DefaultPort, "HTTP server port")
	fs.IntVar(&f.readTimeout, "read-timeout", config.DefaultReadTimeout, "Read timeout in seconds")
	fs.IntVar(&f.writeTimeout, "write-timeout", config.DefaultWriteTimeout, "Write timeout in seconds")
	fs.BoolVar(&f.metrics, "metrics", config.DefaultMetrics, "Serve Prometheus metrics on /metrics")
}

// overrides returns the explicitly changed flags as a config layer. Flag
// defaults are not copied so they do not shadow the file and environment.
func (f *configFlags) overrides(fs *pflag.FlagSet) *config.Config {
	o := &config.Config{SetFields: make(map[string]bool)}
	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "port":
			o.Port = f.port
			o.SetFields["port"] = true
		case "read-timeout":
			o.ReadTimeout = f.readTimeout
			o.SetFields["readTimeout"] = true
		case "write-timeout":
			o.WriteTimeout = f.writeTimeout
			o.SetFields["writeTimeout"] = true
		case "domain-name":
			o.DomainName = f.domainName
			o.SetFields["domainName"] = true
		case "self-url-scheme":
			o.SelfURLScheme = f.selfURLScheme
		case "log-level":
			o.LogLevel = f.logLevel
		case "log-format":
			o.LogFormat = f.logFormat
		case "metrics":
			o.Metrics = f.metrics
			o.SetFields["metrics"] = true
		}
	})
	return o
}

// load resolves the effective configuration for cmd.
func (f *configFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadAll(f.configFile)
	if err != nil {
		return nil, err
	}
	config.MergeConfig(cfg, f.overrides(cmd.Flags()), config.SourceFlag)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger creates the process logger. Commands pass stderr so stdout stays
// clean for command output.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	lc := cfg.Logging()
	lc.Output = w
	return logging.New(lc)
}

// newHandler creates the provisioning handler for cfg.
func newHandler(cfg *config.Config, log *slog.Logger, opts ...provision.Option) (*provision.Handler, error) {
	policy, err := cfg.SchemePolicy()
	if err != nil {
		return nil, err
	}
	return provision.NewHandler(append([]provision.Option{
		provision.WithSchemePolicy(policy),
		provision.WithLogger(log),
	}, opts...)...), nil
}
