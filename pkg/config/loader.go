package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocalConfigFileNames are the names searched for in the working directory
// (in order).
var LocalConfigFileNames = []string{".phonexml.yaml", ".phonexml.yml"}

// FindLocalConfig searches dir for a local config file. It returns an empty
// path when none exists.
func FindLocalConfig(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadConfigFile loads a Config from a YAML file. Only keys present in the
// file are recorded in SetFields.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(path, data)
}

func parseConfig(path string, data []byte) (*Config, error) {
	cfg := &Config{
		ConfigFile: path,
		Sources:    make(map[string]string),
		SetFields:  make(map[string]bool),
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, yamlError(path, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return cfg, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ConfigError{
			Path:    path,
			Line:    root.Line,
			Column:  root.Column,
			Message: "expected a mapping of config keys",
		}
	}

	known := make(map[string]bool, len(Keys))
	for _, k := range Keys {
		known[k] = true
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if !known[key.Value] {
			return nil, &ConfigError{
				Path:    path,
				Line:    key.Line,
				Column:  key.Column,
				Message: fmt.Sprintf("unknown key %q", key.Value),
			}
		}
		cfg.SetFields[key.Value] = true
	}

	if err := root.Decode(cfg); err != nil {
		return nil, yamlError(path, err)
	}
	return cfg, nil
}

// yamlError converts a yaml.v3 error into a ConfigError, keeping the line
// number when the message carries one.
func yamlError(path string, err error) *ConfigError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}

	ce := &ConfigError{Path: path, Message: msg}
	if rest, ok := strings.CutPrefix(msg, "line "); ok {
		if n, tail, ok := strings.Cut(rest, ":"); ok {
			if line, err := strconv.Atoi(n); err == nil {
				ce.Line = line
				ce.Message = strings.TrimSpace(tail)
			}
		}
	}
	return ce
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s (line %d, column %d): %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s (line %d): %s", e.Path, e.Line, e.Message)
	}
	return e.Path + ": " + e.Message
}

// LoadAll loads configuration from defaults, the config file and the
// environment, in increasing precedence. An explicit path must exist;
// otherwise the working directory is searched and a missing file is not an
// error. Flags are merged by the caller with MergeConfig and SourceFlag.
func LoadAll(path string) (*Config, error) {
	cfg := NewDefault()

	explicit := path != ""
	if !explicit {
		found, err := FindLocalConfig("")
		if err != nil {
			return nil, fmt.Errorf("failed to locate config file: %w", err)
		}
		path = found
	}

	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, fileCfg, SourceFile)
		cfg.ConfigFile = path
	}

	if err := LoadEnvConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
