package format

import (
	"encoding/binary"
	"errors"
	"testing"
)

// putHBIN writes an HBIN header of size bytes at off within data.
func putHBIN(data []byte, off, size int) {
	copy(data[off:], HBINSignature)
	binary.LittleEndian.PutUint32(data[off+HBINFileOffsetField:], uint32(off))
	binary.LittleEndian.PutUint32(data[off+HBINSizeOffset:], uint32(size))
}

func TestNextHBIN(t *testing.T) {
	data := make([]byte, HBINAlignment*2)
	putHBIN(data, 0, HBINAlignment)
	putHBIN(data, HBINAlignment, HBINAlignment)

	h, next, err := NextHBIN(data, 0)
	if err != nil {
		t.Fatalf("NextHBIN: %v", err)
	}
	if h.FileOffset != 0 || h.Size != HBINAlignment {
		t.Fatalf("unexpected HBIN: %+v", h)
	}
	if next != HBINAlignment {
		t.Fatalf("next offset mismatch: %d", next)
	}

	h, next, err = NextHBIN(data, next)
	if err != nil {
		t.Fatalf("NextHBIN second: %v", err)
	}
	if h.FileOffset != HBINAlignment || next != len(data) {
		t.Fatalf("unexpected second HBIN: %+v next=%d", h, next)
	}
}

func TestNextHBINErrors(t *testing.T) {
	data := make([]byte, HBINAlignment)
	if _, _, err := NextHBIN(data, 0); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected signature error, got %v", err)
	}

	putHBIN(data, 0, 123) // not aligned
	if _, _, err := NextHBIN(data, 0); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected size error, got %v", err)
	}

	putHBIN(data, 0, HBINAlignment*2) // runs past the buffer
	if _, _, err := NextHBIN(data, 0); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncation error, got %v", err)
	}

	putHBIN(data, 0, HBINAlignment)
	binary.LittleEndian.PutUint32(data[HBINFileOffsetField:], 0x2000)
	if _, _, err := NextHBIN(data, 0); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected offset echo error, got %v", err)
	}

	if _, _, err := NextHBIN(data[:HBINHeaderSize-1], 0); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected short header error, got %v", err)
	}
}
