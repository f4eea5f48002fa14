package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvin/buildgate/internal/config"
)

func testLayout(t *testing.T) *Layout {
	t.Helper()
	return NewLayout(t.TempDir(), config.DefaultConfig().Project)
}

func TestClassify(t *testing.T) {
	l := testLayout(t)

	tests := []struct {
		path string
		want Role
	}{
		{"bin/main.c", RoleExecutable},
		{"examples/demo.c", RoleExecutable},
		{"benchmarks/bench_sort.c", RoleExecutable},
		{"src/util.c", RoleLibraryModule},
		{"src/nested/pkg/mod.c", RoleLibraryModule},
		{"tests/test_util.c", RoleTestModule},
		{"scratch/foo.c", RoleUnresolved},
		{"main.c", RoleUnresolved},
		{"../outside/evil.c", RoleUnresolved},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Classify(tt.path))
		})
	}
}

func TestClassify_AbsolutePathInsideRoot(t *testing.T) {
	l := testLayout(t)
	abs := filepath.Join(l.Root(), "src", "util.c")
	assert.Equal(t, RoleLibraryModule, l.Classify(abs))
}

// A path named like a root but not under it must not match.
func TestClassify_PrefixIsNotContainment(t *testing.T) {
	l := testLayout(t)
	assert.Equal(t, RoleUnresolved, l.Classify("srcfoo/util.c"))
	assert.Equal(t, RoleUnresolved, l.Classify("binary/main.c"))
}

func TestIncludePaths(t *testing.T) {
	l := testLayout(t)

	// Library-root files never receive the extra search root.
	assert.Nil(t, l.IncludePaths("src/util.c"))

	// Everything else points back at the library root.
	assert.Equal(t, []string{"src"}, l.IncludePaths("bin/main.c"))
	assert.Equal(t, []string{"src"}, l.IncludePaths("tests/test_util.c"))
	assert.Equal(t, []string{"src"}, l.IncludePaths("scratch/foo.c"))
}

func TestExecutableTarget(t *testing.T) {
	l := testLayout(t)

	tgt := l.ExecutableTarget("bin/main.c", "")
	assert.Equal(t, "bin/main.c", filepath.ToSlash(tgt.SourcePath))
	assert.Equal(t, RoleExecutable, tgt.Role)
	assert.Equal(t, "build/main", filepath.ToSlash(tgt.OutputPath))
	assert.Equal(t, []string{"src"}, tgt.IncludePaths)
}

func TestExecutableTarget_OutputOverride(t *testing.T) {
	l := testLayout(t)
	tgt := l.ExecutableTarget("bin/main.c", "dist/app")
	assert.Equal(t, "dist/app", tgt.OutputPath)
}

func TestLibraryTarget_NoOutputPath(t *testing.T) {
	l := testLayout(t)
	tgt := l.LibraryTarget("src/util.c")

	assert.Equal(t, RoleLibraryModule, tgt.Role)
	assert.Empty(t, tgt.OutputPath)
	assert.Nil(t, tgt.IncludePaths)
}

func TestTestTarget(t *testing.T) {
	l := testLayout(t)
	tgt := l.TestTarget("tests/test_util.c")

	assert.Equal(t, RoleTestModule, tgt.Role)
	assert.Empty(t, tgt.OutputPath)
	assert.Equal(t, []string{"src"}, tgt.IncludePaths)
}

func TestIsPackageInit(t *testing.T) {
	l := testLayout(t)

	assert.True(t, l.IsPackageInit("src/pkg/__init__.c"))
	assert.False(t, l.IsPackageInit("src/pkg/util.c"))
}

func TestIsTestFile(t *testing.T) {
	l := testLayout(t)

	assert.True(t, l.IsTestFile("tests/test_util.c"))
	assert.False(t, l.IsTestFile("tests/helper.c"))
	assert.False(t, l.IsTestFile("tests/test_util.txt"))
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "executable", RoleExecutable.String())
	assert.Equal(t, "library", RoleLibraryModule.String())
	assert.Equal(t, "test", RoleTestModule.String())
	assert.Equal(t, "unresolved", RoleUnresolved.String())
}
