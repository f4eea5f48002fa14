package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultArtifactNames are toolchain default output names removed by clean
// even though buildgate itself never produces them.
var defaultArtifactNames = []string{"a.out"}

// CleanResult reports what a clean pass removed.
type CleanResult struct {
	Removed []string
}

// Clean removes generated artifacts from the workspace: the output directory,
// debug-symbol directories, known default-named binaries, plus the dependency
// cache directories when includeCache is set. Repeated invocation on an
// already-clean tree removes nothing and succeeds.
func (l *Layout) Clean(includeCache bool) (*CleanResult, error) {
	result := &CleanResult{}

	candidates := []string{l.cfg.OutputDir}
	candidates = append(candidates, defaultArtifactNames...)

	symbolDirs, err := filepath.Glob(filepath.Join(l.root, "*.dSYM"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for debug-symbol directories: %w", err)
	}
	for _, d := range symbolDirs {
		rel, relErr := filepath.Rel(l.root, d)
		if relErr != nil {
			return nil, relErr
		}
		candidates = append(candidates, rel)
	}

	if includeCache {
		candidates = append(candidates, l.cfg.CacheDirs...)
	}

	for _, rel := range candidates {
		if rel == "" {
			continue
		}
		path := filepath.Join(l.root, rel)
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			continue
		}
		if rmErr := os.RemoveAll(path); rmErr != nil {
			return result, fmt.Errorf("failed to remove %s: %w", rel, rmErr)
		}
		result.Removed = append(result.Removed, rel)
	}

	return result, nil
}
