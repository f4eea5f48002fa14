package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvin/buildgate/internal/config"
)

// writeFiles creates empty files under root from relative paths.
func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
}

func TestSourceFiles_SortedAndFiltered(t *testing.T) {
	root := t.TempDir()
	l := NewLayout(root, config.DefaultConfig().Project)

	writeFiles(t, root,
		"src/zeta.c",
		"src/alpha.c",
		"src/nested/mid.c",
		"src/readme.txt",
		"src/notes.md",
	)

	files, err := l.SourceFiles("src")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("src", "alpha.c"),
		filepath.Join("src", "nested", "mid.c"),
		filepath.Join("src", "zeta.c"),
	}, files)
}

func TestSourceFiles_MissingDirIsEmpty(t *testing.T) {
	l := NewLayout(t.TempDir(), config.DefaultConfig().Project)

	files, err := l.SourceFiles("benchmarks")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSourceFiles_EmptyDirName(t *testing.T) {
	l := NewLayout(t.TempDir(), config.DefaultConfig().Project)

	files, err := l.SourceFiles("")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestTestFiles_PrefixFilter(t *testing.T) {
	root := t.TempDir()
	l := NewLayout(root, config.DefaultConfig().Project)

	writeFiles(t, root,
		"tests/test_util.c",
		"tests/test_alpha.c",
		"tests/helper.c",
	)

	files, err := l.TestFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("tests", "test_alpha.c"),
		filepath.Join("tests", "test_util.c"),
	}, files)
}
