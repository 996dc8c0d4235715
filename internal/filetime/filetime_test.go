package filetime

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestGet(t *testing.T) {
	mtime := time.Date(2001, 9, 1, 20, 15, 0, 0, time.UTC)
	path := touch(t, "source.wmv", mtime)

	ts, err := Get(path)
	require.NoError(t, err)
	assert.True(t, ts.Modified.Equal(mtime), "got %s", ts.Modified)
}

func TestCopyModifiedTime(t *testing.T) {
	mtime := time.Date(2001, 9, 1, 20, 15, 0, 0, time.UTC)
	src := touch(t, "source.wmv", mtime)
	dst := touch(t, "dest.wmv", time.Now())

	_, applied, err := Copy(src, dst)
	require.NoError(t, err)
	assert.True(t, applied.Modified)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "got %s", info.ModTime())
}

func TestSetLeavesAccessTime(t *testing.T) {
	old := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	path := touch(t, "dest.wmv", old)

	mtime := time.Date(2001, 9, 1, 20, 15, 0, 0, time.UTC)
	_, err := Set(path, Times{Modified: mtime})
	require.NoError(t, err)

	ts, err := Get(path)
	require.NoError(t, err)
	assert.True(t, ts.Modified.Equal(mtime))
}

func TestSetZeroIsNoop(t *testing.T) {
	mtime := time.Date(2001, 9, 1, 20, 15, 0, 0, time.UTC)
	path := touch(t, "dest.wmv", mtime)

	applied, err := Set(path, Times{})
	require.NoError(t, err)
	assert.Equal(t, Applied{}, applied)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.wmv")
	dst := touch(t, "dest.wmv", time.Now())
	before, err := os.Stat(dst)
	require.NoError(t, err)

	_, _, err = Copy(missing, dst)
	require.Error(t, err)

	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, OpOpen, ferr.Op)
	assert.Equal(t, missing, ferr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	after, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, before.ModTime().Equal(after.ModTime()), "destination untouched")
}

func TestMissingDestination(t *testing.T) {
	src := touch(t, "source.wmv", time.Now())
	missing := filepath.Join(t.TempDir(), "missing.wmv")

	_, _, err := Copy(src, missing)
	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, OpOpen, ferr.Op)
	assert.Contains(t, err.Error(), missing)
}
