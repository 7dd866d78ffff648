package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/getmockd/phonexml/pkg/logging"
	"github.com/getmockd/phonexml/pkg/provision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewDefault(t *testing.T) {
	t.Parallel()

	cfg := NewDefault()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeoutDuration())
	assert.Equal(t, 10*time.Second, cfg.WriteTimeoutDuration())
	assert.Empty(t, cfg.DomainName)
	assert.Equal(t, "plain", cfg.SelfURLScheme)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, ":3000", cfg.Addr())
	for _, k := range Keys {
		assert.Equal(t, SourceDefault, cfg.Sources[k], k)
	}
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }},
		{name: "forwarded scheme", mutate: func(c *Config) { c.SelfURLScheme = "Forwarded" }},
		{name: "json debug", mutate: func(c *Config) { c.LogFormat = "JSON"; c.LogLevel = "debug" }},
		{name: "port too high", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "port 70000 is out of range"},
		{name: "port negative", mutate: func(c *Config) { c.Port = -1 }, wantErr: "port -1 is out of range"},
		{name: "read timeout too high", mutate: func(c *Config) { c.ReadTimeout = 9999 }, wantErr: "readTimeout 9999 is out of range"},
		{name: "write timeout negative", mutate: func(c *Config) { c.WriteTimeout = -1 }, wantErr: "writeTimeout -1 is out of range"},
		{name: "bad scheme", mutate: func(c *Config) { c.SelfURLScheme = "https" }, wantErr: "invalid selfURLScheme"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: `logLevel "trace"`},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: `logFormat "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefault()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateSchemeSentinel(t *testing.T) {
	t.Parallel()

	cfg := NewDefault()
	cfg.SelfURLScheme = "tls"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidScheme)
}

func TestConfig_Conversions(t *testing.T) {
	t.Parallel()

	cfg := NewDefault()
	cfg.SelfURLScheme = "forwarded"
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"

	policy, err := cfg.SchemePolicy()
	require.NoError(t, err)
	assert.Equal(t, provision.SchemeForwarded, policy)
	assert.Equal(t, logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON}, cfg.Logging())
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("records present keys", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "cfg.yaml", "port: 8080\nmetrics: false\ndomainName: phones.example.com\n")

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.False(t, cfg.Metrics)
		assert.Equal(t, "phones.example.com", cfg.DomainName)
		assert.Equal(t, map[string]bool{"port": true, "metrics": true, "domainName": true}, cfg.SetFields)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "cfg.yaml", "")

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.SetFields)
	})

	t.Run("unknown key has a position", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "cfg.yaml", "port: 8080\nadminPort: 9\n")

		_, err := LoadConfigFile(path)
		var ce *ConfigError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, path, ce.Path)
		assert.Equal(t, 2, ce.Line)
		assert.Equal(t, 1, ce.Column)
		assert.Contains(t, err.Error(), `unknown key "adminPort"`)
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "cfg.yaml", "port: eighty\n")

		_, err := LoadConfigFile(path)
		var ce *ConfigError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, 1, ce.Line)
	})

	t.Run("not a mapping", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "cfg.yaml", "- port\n")

		_, err := LoadConfigFile(path)
		var ce *ConfigError
		require.ErrorAs(t, err, &ce)
		assert.Contains(t, ce.Message, "expected a mapping")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestConfigError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "c.yaml: bad", (&ConfigError{Path: "c.yaml", Message: "bad"}).Error())
	assert.Equal(t, "c.yaml (line 3): bad", (&ConfigError{Path: "c.yaml", Line: 3, Message: "bad"}).Error())
	assert.Equal(t, "c.yaml (line 3, column 5): bad", (&ConfigError{Path: "c.yaml", Line: 3, Column: 5, Message: "bad"}).Error())
}

func TestMergeConfig(t *testing.T) {
	t.Parallel()

	t.Run("zero values are skipped", func(t *testing.T) {
		t.Parallel()
		cfg := NewDefault()
		MergeConfig(cfg, &Config{LogLevel: "debug"}, SourceFlag)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, SourceFlag, cfg.Sources["logLevel"])
		assert.Equal(t, SourceDefault, cfg.Sources["port"])
		assert.True(t, cfg.Metrics)
	})

	t.Run("explicit false and zero are applied", func(t *testing.T) {
		t.Parallel()
		cfg := NewDefault()
		MergeConfig(cfg, &Config{SetFields: map[string]bool{"metrics": true, "port": true}}, SourceFile)

		assert.False(t, cfg.Metrics)
		assert.Equal(t, 0, cfg.Port)
		assert.Equal(t, SourceFile, cfg.Sources["metrics"])
		assert.Equal(t, SourceFile, cfg.Sources["port"])
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()
		cfg := NewDefault()
		MergeConfig(cfg, nil, SourceFlag)
		assert.Equal(t, NewDefault(), cfg)
	})
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv(EnvPort, "8088")
	t.Setenv(EnvReadTimeout, "5")
	t.Setenv(EnvDomainName, "phones.example.com")
	t.Setenv(EnvSelfURLScheme, "forwarded")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvMetrics, "off")

	cfg := NewDefault()
	require.NoError(t, LoadEnvConfig(cfg))

	assert.Equal(t, 8088, cfg.Port)
	assert.Equal(t, 5, cfg.ReadTimeout)
	assert.Equal(t, 10, cfg.WriteTimeout)
	assert.Equal(t, "phones.example.com", cfg.DomainName)
	assert.Equal(t, "forwarded", cfg.SelfURLScheme)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, SourceEnv, cfg.Sources["port"])
	assert.Equal(t, SourceEnv, cfg.Sources["metrics"])
	assert.Equal(t, SourceDefault, cfg.Sources["writeTimeout"])
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv(EnvPort, "http")
		err := LoadEnvConfig(NewDefault())
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvPort)
	})

	t.Run("metrics", func(t *testing.T) {
		t.Setenv(EnvMetrics, "maybe")
		err := LoadEnvConfig(NewDefault())
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvMetrics)
	})
}

func TestLoadAll(t *testing.T) {
	t.Run("explicit file then env", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "phonexml.yaml", "port: 8080\nlogLevel: warn\nmetrics: false\n")
		t.Setenv(EnvPort, "9090")

		cfg, err := LoadAll(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, SourceEnv, cfg.Sources["port"])
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, SourceFile, cfg.Sources["logLevel"])
		assert.False(t, cfg.Metrics)
		assert.Equal(t, path, cfg.ConfigFile)
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := LoadAll(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("local file is found in the working directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".phonexml.yml", "selfURLScheme: forwarded\n")
		t.Chdir(dir)

		cfg, err := LoadAll("")
		require.NoError(t, err)
		assert.Equal(t, "forwarded", cfg.SelfURLScheme)
		assert.Equal(t, filepath.Join(dir, ".phonexml.yml"), cfg.ConfigFile)
	})

	t.Run("no file uses defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := LoadAll("")
		require.NoError(t, err)
		assert.Equal(t, NewDefault(), cfg)
	})

	t.Run("broken local file is reported", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".phonexml.yaml", "port: [\n")
		t.Chdir(dir)

		_, err := LoadAll("")
		var ce *ConfigError
		require.ErrorAs(t, err, &ce)
	})
}
