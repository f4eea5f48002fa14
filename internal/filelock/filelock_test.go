package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutputLock_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build")

	fl, err := NewOutputLock(dir)
	require.NoError(t, err)
	require.NotNil(t, fl)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewOutputLock_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()

	fl, err := NewOutputLock(dir)
	require.NoError(t, err)
	require.NotNil(t, fl)
}

func TestLockUnlock(t *testing.T) {
	fl, err := NewOutputLock(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fl.Lock())
	require.NoError(t, fl.Unlock())
}

func TestTryLock_HeldLock(t *testing.T) {
	dir := t.TempDir()

	first, err := NewOutputLock(dir)
	require.NoError(t, err)
	require.NoError(t, first.Lock())
	defer func() {
		require.NoError(t, first.Unlock())
	}()

	second, err := NewOutputLock(dir)
	require.NoError(t, err)

	acquired, err := second.TryLock()
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestTryLock_FreeLock(t *testing.T) {
	fl, err := NewOutputLock(t.TempDir())
	require.NoError(t, err)

	acquired, err := fl.TryLock()
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, fl.Unlock())
}
