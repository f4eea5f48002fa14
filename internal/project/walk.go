package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// SourceFiles walks dir (relative to the root) and returns every source file
// under it, sorted, as paths relative to the root. A missing directory yields
// an empty result, not an error, so optional roots can simply be absent.
func (l *Layout) SourceFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}

	start := filepath.Join(l.root, dir)
	if _, err := os.Stat(start); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != l.cfg.SourceExt {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// TestFiles returns every test file under the tests root, sorted.
func (l *Layout) TestFiles() ([]string, error) {
	files, err := l.SourceFiles(l.cfg.TestsRoot)
	if err != nil {
		return nil, err
	}

	var tests []string
	for _, f := range files {
		if l.IsTestFile(f) {
			tests = append(tests, f)
		}
	}
	return tests, nil
}
