package writer

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileCommit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	f, err := Create(path)
	require.NoError(t, err)
	_, err = f.Write([]byte("regf @0+8192\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "old", string(data), "destination changes only on commit")

	require.NoError(t, f.Commit())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "regf @0+8192\n", string(data))

	_, err = f.Write([]byte("late"))
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, f.Commit(), ErrClosed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestFileAbort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")

	f, err := Create(path)
	require.NoError(t, err)
	require.Equal(t, path, f.Path())
	_, err = f.Write([]byte("[partial"))
	require.NoError(t, err)
	f.Abort()
	f.Abort()

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCreateMissingDir(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "out.txt"))
	require.Error(t, err)
}

func TestFileCommitMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not tracked on windows")
	}
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.txt")
	f, err := Create(fresh)
	require.NoError(t, err)
	require.NoError(t, f.Commit())
	st, err := os.Stat(fresh)
	require.NoError(t, err)
	require.Equal(t, DefaultMode, st.Mode().Perm())

	existing := filepath.Join(dir, "existing.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o600))
	require.NoError(t, os.Chmod(existing, 0o640))
	f, err = Create(existing)
	require.NoError(t, err)
	require.NoError(t, f.Commit())
	st, err = os.Stat(existing)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o640), st.Mode().Perm())
}
