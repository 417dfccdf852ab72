// Package config loads the optional YAML settings file of jsonrecords.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the jsonrecords settings.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	Merge    MergeConfig    `yaml:"merge"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DocumentConfig controls how documents are searched and written.
type DocumentConfig struct {
	Field       string `yaml:"field"`        // default search field (default: name)
	Indent      int    `yaml:"indent"`       // spaces per level (default: 4)
	AtomicWrite bool   `yaml:"atomic_write"` // temp file + rename instead of overwrite
	FileMode    string `yaml:"file_mode"`    // octal, e.g. "0644"
}

// MergeConfig controls directory merges.
type MergeConfig struct {
	Pattern string `yaml:"pattern"` // file name glob (default: *.json)
	Output  string `yaml:"output"`  // write merged JSON here
	Sqlite  string `yaml:"sqlite"`  // export merged records to this database
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error (default: info)
	Format     string `yaml:"format"` // console or json (default: console)
	File       string `yaml:"file"`   // optional rotating log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Document.Field == "" {
		c.Document.Field = "name"
	}
	if c.Document.Indent <= 0 {
		c.Document.Indent = 4
	}
	if c.Document.FileMode == "" {
		c.Document.FileMode = "0644"
	}
	if c.Merge.Pattern == "" {
		c.Merge.Pattern = "*.json"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 10
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if _, err := c.Document.Perm(); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}

// Perm parses FileMode.
func (d DocumentConfig) Perm() (os.FileMode, error) {
	m, err := strconv.ParseUint(d.FileMode, 8, 32)
	if err != nil || m == 0 || m > 0o777 {
		return 0, fmt.Errorf("document.file_mode must be an octal permission like \"0644\", got %q", d.FileMode)
	}
	return os.FileMode(m), nil
}

// IndentString returns the indentation unit for written documents.
func (d DocumentConfig) IndentString() string {
	return strings.Repeat(" ", d.Indent)
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
