// Package mmfile maps input files read-only so large inputs are dissected
// without being copied onto the heap.
package mmfile

import "sync"

// File is a read-only view of a file's contents.
type File struct {
	data    []byte
	release func([]byte) error
	once    sync.Once
	err     error
}

// Bytes returns the file contents. The slice is invalid after Close.
func (f *File) Bytes() []byte { return f.data }

// Len returns the file size in bytes.
func (f *File) Len() int { return len(f.data) }

// Close releases the mapping. It is safe to call more than once.
func (f *File) Close() error {
	f.once.Do(func() {
		if f.release != nil && f.data != nil {
			f.err = f.release(f.data)
		}
		f.data = nil
	})
	return f.err
}
