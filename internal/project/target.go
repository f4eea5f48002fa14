// Package project resolves source paths against the workspace layout
// conventions: which directory a file lives under decides whether it builds
// as an executable, validates as a library module, or runs as a test.
package project

import (
	"path/filepath"
	"strings"

	"github.com/calvin/buildgate/internal/config"
)

// Role classifies a source path.
type Role int

const (
	// RoleUnresolved means the path matched no known root.
	RoleUnresolved Role = iota
	// RoleExecutable builds to its own artifact.
	RoleExecutable
	// RoleLibraryModule validates object-only, without linking.
	RoleLibraryModule
	// RoleTestModule runs through the toolchain's test-runner entry point.
	RoleTestModule
)

// String returns the string representation of Role.
func (r Role) String() string {
	switch r {
	case RoleExecutable:
		return "executable"
	case RoleLibraryModule:
		return "library"
	case RoleTestModule:
		return "test"
	case RoleUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// BuildTarget is the resolved description of one toolchain invocation:
// what to compile, in which role, where the artifact goes, and which extra
// module search roots the file needs. Computed once and never mutated.
type BuildTarget struct {
	SourcePath   string
	Role         Role
	OutputPath   string // empty for object-only validation
	IncludePaths []string
}

// Layout answers path questions for one workspace root. All returned paths
// are relative to the root, which is also the working directory of every
// toolchain invocation.
type Layout struct {
	root string
	cfg  config.ProjectConfig
}

// NewLayout creates a Layout for the workspace rooted at root.
func NewLayout(root string, cfg config.ProjectConfig) *Layout {
	return &Layout{root: root, cfg: cfg}
}

// Root returns the workspace root directory.
func (l *Layout) Root() string {
	return l.root
}

// OutputDir returns the artifact directory relative to the root.
func (l *Layout) OutputDir() string {
	return l.cfg.OutputDir
}

// Classify determines the role of a source path from directory membership.
func (l *Layout) Classify(path string) Role {
	rel, ok := l.rel(path)
	if !ok {
		return RoleUnresolved
	}

	switch {
	case underDir(rel, l.cfg.BinRoot),
		underDir(rel, l.cfg.ExamplesRoot),
		underDir(rel, l.cfg.BenchmarksRoot):
		return RoleExecutable
	case underDir(rel, l.cfg.TestsRoot):
		return RoleTestModule
	case underDir(rel, l.cfg.LibRoot):
		return RoleLibraryModule
	default:
		return RoleUnresolved
	}
}

// IncludePaths returns the extra module search roots a file needs. Files
// inside the library root resolve their imports natively and get none;
// everything else gets the library root.
func (l *Layout) IncludePaths(path string) []string {
	if rel, ok := l.rel(path); ok && underDir(rel, l.cfg.LibRoot) {
		return nil
	}
	return []string{l.cfg.LibRoot}
}

// ExecutableTarget resolves path as an executable. output overrides the
// derived artifact path when non-empty.
func (l *Layout) ExecutableTarget(path, output string) BuildTarget {
	if output == "" {
		output = filepath.Join(l.cfg.OutputDir, l.baseName(path))
	}
	return BuildTarget{
		SourcePath:   l.normalize(path),
		Role:         RoleExecutable,
		OutputPath:   output,
		IncludePaths: l.IncludePaths(path),
	}
}

// LibraryTarget resolves path for object-only validation. No artifact path
// is derived; the toolchain is asked not to link.
func (l *Layout) LibraryTarget(path string) BuildTarget {
	return BuildTarget{
		SourcePath:   l.normalize(path),
		Role:         RoleLibraryModule,
		IncludePaths: l.IncludePaths(path),
	}
}

// TestTarget resolves path as a test module.
func (l *Layout) TestTarget(path string) BuildTarget {
	return BuildTarget{
		SourcePath:   l.normalize(path),
		Role:         RoleTestModule,
		IncludePaths: l.IncludePaths(path),
	}
}

// IsPackageInit reports whether path is a package-init file, skipped during
// whole-project library builds.
func (l *Layout) IsPackageInit(path string) bool {
	base := l.baseName(path)
	for _, name := range l.cfg.PackageInitNames {
		if base == name {
			return true
		}
	}
	return false
}

// IsTestFile reports whether path names a test file by prefix convention.
func (l *Layout) IsTestFile(path string) bool {
	if filepath.Ext(path) != l.cfg.SourceExt {
		return false
	}
	return strings.HasPrefix(filepath.Base(path), l.cfg.TestPrefix)
}

// baseName returns the file name of path without its extension.
func (l *Layout) baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// normalize rewrites path relative to the root when possible, leaving
// unresolvable paths untouched.
func (l *Layout) normalize(path string) string {
	if rel, ok := l.rel(path); ok {
		return filepath.FromSlash(rel)
	}
	return path
}

// rel converts path to a slash-separated path relative to the root.
// Returns false for paths escaping the root.
func (l *Layout) rel(path string) (string, bool) {
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(l.root, path)
		if err != nil {
			return "", false
		}
		path = r
	}
	path = filepath.ToSlash(filepath.Clean(path))
	if path == ".." || strings.HasPrefix(path, "../") {
		return "", false
	}
	return path, true
}

// underDir reports whether rel (slash-separated) lives under dir.
func underDir(rel, dir string) bool {
	if dir == "" {
		return false
	}
	dir = filepath.ToSlash(dir)
	return rel == dir || strings.HasPrefix(rel, dir+"/")
}
