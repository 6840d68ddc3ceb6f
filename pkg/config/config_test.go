package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoad_OverridesDefaults tests that file values land over the defaults
func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "listen_addr: \":9090\"\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("Expected listen_addr :9090, got %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log_level debug, got %q", cfg.LogLevel)
	}
	// Unset keys keep their defaults.
	if cfg.SnapshotPath != Default().SnapshotPath {
		t.Errorf("Expected default snapshot path, got %q", cfg.SnapshotPath)
	}
	if cfg.RetryAttempts != Default().RetryAttempts {
		t.Errorf("Expected default retry attempts, got %d", cfg.RetryAttempts)
	}
}

// TestLoad_MissingFile tests the missing-file error path
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

// TestLoad_BadYAML tests the parse error path
func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [not: valid"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error for bad YAML")
	}
}

// TestValidate_CollectsAllErrors tests non-fail-fast validation
func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Config{ListenAddr: "", LogLevel: "loud", RetryAttempts: 0}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"listen_addr", "log_level", "retry_attempts"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in combined error, got %q", want, msg)
		}
	}
}

// TestDefault_IsValid tests that the defaults pass their own validation
func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}
