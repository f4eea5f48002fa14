package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks when no explicit path is given.
const DefaultConfigPath = ".buildgate/config.yaml"

// ToolchainConfig describes how to invoke the wrapped compiler. The toolchain
// is opaque to buildgate: these values are assembled into an argv and the
// resulting text and exit code are all that ever comes back.
type ToolchainConfig struct {
	// Command is the compiler executable name or path
	Command string `yaml:"command"`

	// Launcher is an optional argv prefix, e.g. an environment manager that
	// locates and launches the toolchain
	Launcher []string `yaml:"launcher"`

	// OutputFlag names the artifact-output flag
	OutputFlag string `yaml:"output_flag"`

	// CompileOnlyFlag requests object-only validation without linking
	CompileOnlyFlag string `yaml:"compile_only_flag"`

	// IncludeFlag adds a module search root
	IncludeFlag string `yaml:"include_flag"`

	// TestArgs is the toolchain's own test-runner entry point; the test file
	// is appended after these arguments
	TestArgs []string `yaml:"test_args"`

	// EnvFlags names environment variables whose whitespace-split contents
	// are forwarded verbatim to every invocation, never parsed
	EnvFlags []string `yaml:"env_flags"`
}

// ProjectConfig describes the workspace layout conventions used to classify
// source paths into roles.
type ProjectConfig struct {
	// SourceExt is the source file extension, including the dot
	SourceExt string `yaml:"source_ext"`

	// BinRoot holds executable entry points
	BinRoot string `yaml:"bin_root"`

	// LibRoot holds library modules; files under it never receive an extra
	// include path
	LibRoot string `yaml:"lib_root"`

	// ExamplesRoot and BenchmarksRoot hold additional executables
	ExamplesRoot   string `yaml:"examples_root"`
	BenchmarksRoot string `yaml:"benchmarks_root"`

	// TestsRoot holds test modules
	TestsRoot string `yaml:"tests_root"`

	// PackageInitNames are basenames (without extension) skipped during
	// whole-project library builds
	PackageInitNames []string `yaml:"package_init_names"`

	// TestPrefix selects test files inside TestsRoot
	TestPrefix string `yaml:"test_prefix"`

	// OutputDir receives build artifacts
	OutputDir string `yaml:"output_dir"`

	// CacheDirs are removed by `clean --cache`
	CacheDirs []string `yaml:"cache_dirs"`
}

// HistoryConfig controls the optional verdict journal. Recording happens
// after a verdict is rendered and never influences any gate decision.
type HistoryConfig struct {
	// Enabled turns verdict recording on
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`
}

// Config represents buildgate configuration options. A Config is built once
// at startup and treated as immutable by everything downstream.
type Config struct {
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Project   ProjectConfig   `yaml:"project"`
	History   HistoryConfig   `yaml:"history"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Toolchain: ToolchainConfig{
			Command:         "cc",
			OutputFlag:      "-o",
			CompileOnlyFlag: "-c",
			IncludeFlag:     "-I",
			TestArgs:        []string{"test"},
			EnvFlags:        []string{"BUILDGATE_FLAGS"},
		},
		Project: ProjectConfig{
			SourceExt:        ".c",
			BinRoot:          "bin",
			LibRoot:          "src",
			ExamplesRoot:     "examples",
			BenchmarksRoot:   "benchmarks",
			TestsRoot:        "tests",
			PackageInitNames: []string{"__init__"},
			TestPrefix:       "test_",
			OutputDir:        "build",
			CacheDirs:        []string{".cache"},
		},
		History: HistoryConfig{
			Enabled: false,
			DBPath:  ".buildgate/history.db",
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from a YAML file. If path is empty, the
// default location is tried and its absence is not an error: the defaults
// are returned unchanged. An explicitly given path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the dispatcher cannot work
// without. Returns a descriptive error for the first problem found.
func (c *Config) Validate() error {
	if c.Toolchain.Command == "" {
		return fmt.Errorf("toolchain.command must not be empty")
	}
	if c.Toolchain.OutputFlag == "" {
		return fmt.Errorf("toolchain.output_flag must not be empty")
	}
	if c.Toolchain.CompileOnlyFlag == "" {
		return fmt.Errorf("toolchain.compile_only_flag must not be empty")
	}
	if !strings.HasPrefix(c.Project.SourceExt, ".") {
		return fmt.Errorf("project.source_ext must start with a dot, got %q", c.Project.SourceExt)
	}
	if c.Project.LibRoot == "" {
		return fmt.Errorf("project.lib_root must not be empty")
	}
	if c.Project.OutputDir == "" {
		return fmt.Errorf("project.output_dir must not be empty")
	}
	if filepath.IsAbs(c.Project.OutputDir) {
		return fmt.Errorf("project.output_dir must be relative to the workspace root, got %q", c.Project.OutputDir)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of trace, debug, info, warn, error; got %q", c.LogLevel)
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path must not be empty when history is enabled")
	}
	return nil
}
