package format

import (
	"encoding/binary"
	"errors"
	"testing"
)

func newBin(t *testing.T) ([]byte, HBIN) {
	t.Helper()
	data := make([]byte, HBINAlignment)
	putHBIN(data, 0, HBINAlignment)
	return data, HBIN{FileOffset: 0, Size: HBINAlignment}
}

func TestNextCellAllocated(t *testing.T) {
	data, h := newBin(t)

	cellOff := HBINHeaderSize
	size := 0x30
	binary.LittleEndian.PutUint32(data[cellOff:], uint32(-size))
	data[cellOff+4] = 'n'
	data[cellOff+5] = 'k'

	cell, next, err := NextCell(data, h, cellOff)
	if err != nil {
		t.Fatalf("NextCell: %v", err)
	}
	if cell.Free {
		t.Fatalf("expected allocated cell")
	}
	if cell.Size != size || cell.Tag != [2]byte{'n', 'k'} || cell.Kind() != "nk" {
		t.Fatalf("unexpected cell: %+v", cell)
	}
	if len(cell.Data) != size-CellHeaderSize {
		t.Fatalf("payload length %d, want %d", len(cell.Data), size-CellHeaderSize)
	}
	if next != cellOff+size {
		t.Fatalf("next offset mismatch: %d", next)
	}
}

func TestNextCellFreeAndData(t *testing.T) {
	data, h := newBin(t)

	cellOff := HBINHeaderSize
	binary.LittleEndian.PutUint32(data[cellOff:], uint32(0x20))
	cell, next, err := NextCell(data, h, cellOff)
	if err != nil {
		t.Fatalf("NextCell: %v", err)
	}
	if !cell.Free || cell.Kind() != "free" {
		t.Fatalf("expected free cell, got %+v", cell)
	}

	size := 0x10
	binary.LittleEndian.PutUint32(data[next:], uint32(-size))
	copy(data[next+4:], "zz")
	cell, _, err = NextCell(data, h, next)
	if err != nil {
		t.Fatalf("NextCell data: %v", err)
	}
	if cell.Kind() != "data" {
		t.Fatalf("expected data cell, got %q", cell.Kind())
	}
}

func TestNextCellErrors(t *testing.T) {
	data, h := newBin(t)

	if _, _, err := NextCell(data, h, 0); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected error for cell inside the hbin header, got %v", err)
	}
	if _, _, err := NextCell(data, h, HBINHeaderSize); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected zero length error, got %v", err)
	}
	binary.LittleEndian.PutUint32(data[HBINHeaderSize:], uint32(0x2000))
	if _, _, err := NextCell(data, h, HBINHeaderSize); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncation error, got %v", err)
	}
	binary.LittleEndian.PutUint32(data[HBINHeaderSize:], uint32(2))
	if _, _, err := NextCell(data, h, HBINHeaderSize); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected small size error, got %v", err)
	}
}
