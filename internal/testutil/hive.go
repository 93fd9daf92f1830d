// Package testutil builds synthetic inputs for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/joshuapare/regionkit/internal/format"
)

// HiveLastWrite is the base block timestamp of every hive built by Hive.
var HiveLastWrite = time.Date(2023, 11, 2, 8, 0, 0, 0, time.UTC)

// Hive version written to the base block.
const (
	HiveMajorVersion = 1
	HiveMinorVersion = 5
)

// Key is one NK cell to place in a synthetic hive.
type Key struct {
	Name       []byte
	Compressed bool
}

// ASCIIKey returns a key whose name is stored compressed (Windows-1252).
func ASCIIKey(name string) Key {
	return Key{Name: []byte(name), Compressed: true}
}

// UTF16Key returns a key whose name is stored as UTF-16LE.
func UTF16Key(name string) Key {
	units := utf16.Encode([]rune(name))
	b := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(b[2*i:], u)
	}
	return Key{Name: b}
}

// NKCellSize returns the 8-byte aligned size of the NK cell Hive writes for k.
func NKCellSize(k Key) int {
	return (format.CellHeaderSize + format.NKMinSize + len(k.Name) + 7) &^ 7
}

// Hive returns a minimal hive image: a valid base block and a single 4 KiB
// bin holding one NK cell per key, in order, followed by a free cell that
// fills the rest of the bin.
func Hive(tb testing.TB, keys ...Key) []byte {
	tb.Helper()
	data := make([]byte, format.HeaderSize+format.HBINAlignment)

	copy(data, format.REGFSignature)
	binary.LittleEndian.PutUint32(data[format.REGFPrimarySeqOffset:], 1)
	binary.LittleEndian.PutUint32(data[format.REGFSecondarySeqOffset:], 1)
	binary.LittleEndian.PutUint64(data[format.REGFTimeStampOffset:], format.TimeToFiletime(HiveLastWrite))
	binary.LittleEndian.PutUint32(data[format.REGFMajorVersionOffset:], HiveMajorVersion)
	binary.LittleEndian.PutUint32(data[format.REGFMinorVersionOffset:], HiveMinorVersion)
	binary.LittleEndian.PutUint32(data[format.REGFRootCellOffset:], format.HBINHeaderSize)
	binary.LittleEndian.PutUint32(data[format.REGFDataSizeOffset:], format.HBINAlignment)
	binary.LittleEndian.PutUint32(data[format.REGFCheckSumOffset:], format.HeaderChecksum(data))

	bin := data[format.HeaderSize:]
	copy(bin, format.HBINSignature)
	binary.LittleEndian.PutUint32(bin[format.HBINSizeOffset:], format.HBINAlignment)

	off := format.HBINHeaderSize
	for _, k := range keys {
		size := NKCellSize(k)
		if off+size > len(bin)-format.CellHeaderSize*2 {
			tb.Fatalf("testutil: %d keys do not fit in one bin", len(keys))
		}
		binary.LittleEndian.PutUint32(bin[off:], uint32(int32(-size)))
		payload := bin[off+format.CellHeaderSize : off+size]
		copy(payload, format.NKSignature)
		if k.Compressed {
			binary.LittleEndian.PutUint16(payload[format.NKFlagsOffset:], format.NKFlagCompressedName)
		}
		binary.LittleEndian.PutUint16(payload[format.NKNameLenOffset:], uint16(len(k.Name)))
		copy(payload[format.NKNameOffset:], k.Name)
		off += size
	}
	binary.LittleEndian.PutUint32(bin[off:], uint32(len(bin)-off))
	return data
}

// WriteTemp writes data to name inside a fresh temporary directory and
// returns the path.
func WriteTemp(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("testutil: write %s: %v", path, err)
	}
	return path
}
