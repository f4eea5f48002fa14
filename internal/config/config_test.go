package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Toolchain.Command != "cc" {
		t.Errorf("Toolchain.Command = %q, want %q", cfg.Toolchain.Command, "cc")
	}
	if cfg.Toolchain.OutputFlag != "-o" {
		t.Errorf("Toolchain.OutputFlag = %q, want %q", cfg.Toolchain.OutputFlag, "-o")
	}
	if cfg.Project.SourceExt != ".c" {
		t.Errorf("Project.SourceExt = %q, want %q", cfg.Project.SourceExt, ".c")
	}
	if cfg.Project.LibRoot != "src" {
		t.Errorf("Project.LibRoot = %q, want %q", cfg.Project.LibRoot, "src")
	}
	if cfg.Project.OutputDir != "build" {
		t.Errorf("Project.OutputDir = %q, want %q", cfg.Project.OutputDir, "build")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `toolchain:
  command: clang
  launcher: [env-mgr, run]
  env_flags: [CFLAGS, BUILDGATE_FLAGS]
project:
  source_ext: .cc
  output_dir: out
log_level: debug
history:
  enabled: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Toolchain.Command != "clang" {
		t.Errorf("Toolchain.Command = %q, want %q", cfg.Toolchain.Command, "clang")
	}
	if len(cfg.Toolchain.Launcher) != 2 || cfg.Toolchain.Launcher[0] != "env-mgr" {
		t.Errorf("Toolchain.Launcher = %v, want [env-mgr run]", cfg.Toolchain.Launcher)
	}
	if cfg.Project.SourceExt != ".cc" {
		t.Errorf("Project.SourceExt = %q, want %q", cfg.Project.SourceExt, ".cc")
	}
	if cfg.Project.OutputDir != "out" {
		t.Errorf("Project.OutputDir = %q, want %q", cfg.Project.OutputDir, "out")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
}

// TestLoadConfigPartialValues verifies unset fields keep their defaults
func TestLoadConfigPartialValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.Toolchain.Command != "cc" {
		t.Errorf("Toolchain.Command = %q, want default %q", cfg.Toolchain.Command, "cc")
	}
	if cfg.Project.BinRoot != "bin" {
		t.Errorf("Project.BinRoot = %q, want default %q", cfg.Project.BinRoot, "bin")
	}
}

// TestLoadConfigExplicitFileNotExists verifies an explicit missing path errors
func TestLoadConfigExplicitFileNotExists(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config file, got nil")
	}
}

// TestLoadConfigDefaultPathMissing verifies defaults when the default path is absent
func TestLoadConfigDefaultPathMissing(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("failed to restore working directory: %v", err)
		}
	}()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Toolchain.Command != "cc" {
		t.Errorf("Toolchain.Command = %q, want default %q", cfg.Toolchain.Command, "cc")
	}
}

// TestLoadConfigInvalidYAML verifies malformed YAML is rejected
func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("toolchain: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

// TestValidate exercises the validation rules
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty command", func(c *Config) { c.Toolchain.Command = "" }, true},
		{"empty output flag", func(c *Config) { c.Toolchain.OutputFlag = "" }, true},
		{"empty compile-only flag", func(c *Config) { c.Toolchain.CompileOnlyFlag = "" }, true},
		{"extension without dot", func(c *Config) { c.Project.SourceExt = "c" }, true},
		{"empty lib root", func(c *Config) { c.Project.LibRoot = "" }, true},
		{"empty output dir", func(c *Config) { c.Project.OutputDir = "" }, true},
		{"absolute output dir", func(c *Config) { c.Project.OutputDir = "/tmp/build" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"uppercase log level ok", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"history enabled without path", func(c *Config) {
			c.History.Enabled = true
			c.History.DBPath = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
