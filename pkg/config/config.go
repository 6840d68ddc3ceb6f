package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the server binary's settings.
type Config struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string `yaml:"listen_addr"`
	// SnapshotPath is where the graph snapshot is loaded from at start
	// and saved to on shutdown. Empty disables persistence.
	SnapshotPath string `yaml:"snapshot_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// RetryAttempts bounds automatic retries of transient store failures.
	RetryAttempts int `yaml:"retry_attempts"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenAddr:    ":8080",
		SnapshotPath:  "data/taxigraph.snap",
		LogLevel:      "info",
		RetryAttempts: 3,
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate collects every configuration problem rather than failing on
// the first one.
func (c *Config) Validate() error {
	var errs []error

	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr must not be empty"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug/info/warn/error", c.LogLevel))
	}
	if c.RetryAttempts < 1 || c.RetryAttempts > 10 {
		errs = append(errs, fmt.Errorf("retry_attempts %d must be between 1 and 10", c.RetryAttempts))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
