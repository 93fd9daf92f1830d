// Package writer exposes output sinks for rendered region trees.
package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMode is applied to new output files. An existing destination keeps
// its permissions.
const DefaultMode os.FileMode = 0o644

// ErrClosed is returned when writing to a File after Commit or Abort.
var ErrClosed = errors.New("writer: file already committed or aborted")

// File streams output into a temporary file next to its destination and
// renames it into place on Commit, so readers never observe a partial file.
type File struct {
	path string
	tmp  *os.File
}

// Create opens a temporary file in the directory of path.
func Create(path string) (*File, error) {
	// Create temp file in same directory to ensure atomic rename
	tmp, err := os.CreateTemp(filepath.Dir(path), ".regionctl-tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &File{path: path, tmp: tmp}, nil
}

// Path returns the destination path.
func (f *File) Path() string { return f.path }

func (f *File) Write(p []byte) (int, error) {
	if f.tmp == nil {
		return 0, ErrClosed
	}
	return f.tmp.Write(p)
}

// Commit syncs the temporary file and renames it to the destination.
func (f *File) Commit() error {
	if f.tmp == nil {
		return ErrClosed
	}
	tmp := f.tmp
	f.tmp = nil

	mode := DefaultMode
	if st, err := os.Stat(f.path); err == nil && st.Mode().IsRegular() {
		mode = st.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		discard(tmp)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		discard(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Abort discards everything written. It is a no-op after Commit.
func (f *File) Abort() {
	if f.tmp != nil {
		discard(f.tmp)
		f.tmp = nil
	}
}

func discard(tmp *os.File) {
	_ = tmp.Close()
	_ = os.Remove(tmp.Name())
}
