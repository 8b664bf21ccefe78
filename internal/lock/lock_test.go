package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "dusky-setup.lock")

	h, err := Acquire(path)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, path, h.Path())

	require.NoError(t, h.Release())

	// Releasing twice is harmless.
	require.NoError(t, h.Release())
}

func TestAcquireContention(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "dusky-setup.lock")

	// flock is per open file description, so a second open in the same
	// process contends the same way a second process would.
	h, err := Acquire(path)
	require.NoError(t, err)
	defer h.Release()

	_, err = Acquire(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyHeld)
}

func TestAcquireAfterRelease(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "dusky-setup.lock")

	h, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, h.Release())

	h2, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, h2.Release())
}

func TestAcquireWritesPid(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "dusky-setup.lock")

	h, err := Acquire(path)
	require.NoError(t, err)
	defer h.Release()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))
}

func TestAcquireCreatesParentDir(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "run", "dusky-setup.lock")

	h, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, h.Release())
}

func TestDefaultPath(t *testing.T) {
	runtimeDir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	assert.Equal(t, filepath.Join(runtimeDir, "dusky-setup.lock"), DefaultPath())

	t.Setenv("XDG_RUNTIME_DIR", "")
	path := DefaultPath()
	assert.True(t, strings.HasPrefix(filepath.Base(path), "dusky-setup-"))
	assert.Contains(t, path, fmt.Sprintf("%d", os.Getuid()))
}
