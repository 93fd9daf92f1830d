package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/regionkit/internal/buf"
)

// HBIN describes a hive bin. Each HBIN begins with a 0x20-byte header with the
// following structure (little-endian):
//
//	Offset  Size  Field
//	0x00    4     'h' 'b' 'i' 'n'
//	0x04    4     Offset of this HBIN relative to the first HBIN
//	0x08    4     Size of HBIN, multiple of 0x1000
//	0x0C    8     Reserved
//	0x14    8     Timestamp (FILETIME)
//	0x1C    4     Spare
//
// b is always the hive data slice (the file minus the REGF header), so HBIN
// and cell offsets share the coordinates stored on disk.
type HBIN struct {
	FileOffset uint32
	Size       uint32
}

// NextHBIN validates the HBIN header located at off within b and returns the
// header along with the offset of the subsequent HBIN.
func NextHBIN(b []byte, off int) (HBIN, int, error) {
	head, ok := buf.Slice(b, off, HBINHeaderSize)
	if !ok {
		return HBIN{}, 0, fmt.Errorf("hbin: %w", ErrTruncated)
	}
	if !bytes.Equal(head[:4], HBINSignature) {
		return HBIN{}, 0, fmt.Errorf("hbin: %w", ErrSignatureMismatch)
	}
	fileOff := buf.U32LE(head[HBINFileOffsetField:])
	if int(fileOff) != off {
		return HBIN{}, 0, fmt.Errorf("hbin: offset field 0x%x does not match position 0x%x: %w", fileOff, off, ErrCorrupt)
	}
	size := buf.U32LE(head[HBINSizeOffset:])
	if size == 0 || size%HBINAlignment != 0 {
		return HBIN{}, 0, fmt.Errorf("hbin: invalid size %d: %w", size, ErrCorrupt)
	}
	next, ok := buf.AddOverflowSafe(off, int(size))
	if !ok || next > len(b) {
		return HBIN{}, 0, fmt.Errorf("hbin: %w", ErrTruncated)
	}
	return HBIN{FileOffset: fileOff, Size: size}, next, nil
}
