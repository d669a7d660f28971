package atomicfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesDirectoryAndEnforcesPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "layouts.toml")
	require.NoError(t, Write(path, ".layouts-*.tmp", []byte("version = 1\n")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FileMode), info.Mode().Perm())

	data, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "version = 1\n", string(data))
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "layouts.toml")
	require.NoError(t, Write(path, ".layouts-*.tmp", []byte("a")))
	require.NoError(t, Write(path, ".layouts-*.tmp", []byte("b")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "layouts.toml", entries[0].Name())
}

func TestReadMissingFileReturnsNil(t *testing.T) {
	t.Parallel()

	data, err := Read(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestLockForPathIsSharedPerPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, err := NormalizePath(filepath.Join(dir, "x", "..", "layouts.toml"))
	require.NoError(t, err)
	b, err := NormalizePath(filepath.Join(dir, "layouts.toml"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Same(t, LockForPath(a), LockForPath(b))
	assert.NotSame(t, LockForPath(a), LockForPath(filepath.Join(dir, "other.toml")))
}
