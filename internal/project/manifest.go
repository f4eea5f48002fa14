package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/calvin/buildgate/internal/config"
)

// ManifestName is the per-project manifest file, looked up at the workspace
// root. The manifest is optional; when present its non-empty fields override
// the corresponding configuration values.
const ManifestName = "buildgate.toml"

// Manifest is the optional per-project build manifest.
type Manifest struct {
	Name      string            `toml:"name"`
	OutputDir string            `toml:"output_dir"`
	Toolchain ManifestToolchain `toml:"toolchain"`
	Roots     ManifestRoots     `toml:"roots"`
}

// ManifestToolchain overrides toolchain invocation settings.
type ManifestToolchain struct {
	Command  string   `toml:"command"`
	Launcher []string `toml:"launcher"`
}

// ManifestRoots overrides workspace layout roots.
type ManifestRoots struct {
	Bin        string `toml:"bin"`
	Lib        string `toml:"lib"`
	Examples   string `toml:"examples"`
	Benchmarks string `toml:"benchmarks"`
	Tests      string `toml:"tests"`
}

// LoadManifest reads the manifest at root, returning (nil, nil) when the
// project has none.
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Apply overlays the manifest's non-empty fields onto cfg.
func (m *Manifest) Apply(cfg *config.Config) {
	if m.OutputDir != "" {
		cfg.Project.OutputDir = m.OutputDir
	}
	if m.Toolchain.Command != "" {
		cfg.Toolchain.Command = m.Toolchain.Command
	}
	if len(m.Toolchain.Launcher) > 0 {
		cfg.Toolchain.Launcher = m.Toolchain.Launcher
	}
	if m.Roots.Bin != "" {
		cfg.Project.BinRoot = m.Roots.Bin
	}
	if m.Roots.Lib != "" {
		cfg.Project.LibRoot = m.Roots.Lib
	}
	if m.Roots.Examples != "" {
		cfg.Project.ExamplesRoot = m.Roots.Examples
	}
	if m.Roots.Benchmarks != "" {
		cfg.Project.BenchmarksRoot = m.Roots.Benchmarks
	}
	if m.Roots.Tests != "" {
		cfg.Project.TestsRoot = m.Roots.Tests
	}
}
