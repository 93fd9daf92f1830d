package format

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestParseHeaderSuccess(t *testing.T) {
	b := make([]byte, HeaderSize)
	copy(b, REGFSignature)
	binary.LittleEndian.PutUint32(b[REGFPrimarySeqOffset:], 1)
	binary.LittleEndian.PutUint32(b[REGFSecondarySeqOffset:], 2)
	binary.LittleEndian.PutUint64(b[REGFTimeStampOffset:], 123456789)
	binary.LittleEndian.PutUint32(b[REGFMajorVersionOffset:], 1)
	binary.LittleEndian.PutUint32(b[REGFMinorVersionOffset:], 5)
	binary.LittleEndian.PutUint32(b[REGFRootCellOffset:], 0x20)
	binary.LittleEndian.PutUint32(b[REGFDataSizeOffset:], 0x3000)
	binary.LittleEndian.PutUint32(b[REGFClusterOffset:], 1)
	binary.LittleEndian.PutUint32(b[REGFCheckSumOffset:], HeaderChecksum(b))

	hdr, err := ParseHeader(b)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.PrimarySequence != 1 || hdr.SecondarySequence != 2 {
		t.Fatalf("sequence mismatch: %+v", hdr)
	}
	if hdr.MajorVersion != 1 || hdr.MinorVersion != 5 {
		t.Fatalf("version mismatch: %+v", hdr)
	}
	if hdr.RootCellOffset != 0x20 || hdr.HiveBinsDataSize != 0x3000 {
		t.Fatalf("layout mismatch: %+v", hdr)
	}
	if hdr.CheckSum != HeaderChecksum(b) {
		t.Fatalf("checksum mismatch: stored 0x%x computed 0x%x", hdr.CheckSum, HeaderChecksum(b))
	}
}

func TestParseHeaderErrors(t *testing.T) {
	b := make([]byte, HeaderSize)
	if _, err := ParseHeader(b[:10]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncation error, got %v", err)
	}
	copy(b, []byte{'B', 'A', 'D', '!'})
	if _, err := ParseHeader(b); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected signature error, got %v", err)
	}
}

func TestHeaderChecksum(t *testing.T) {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[0:], 0x0000ffff)
	binary.LittleEndian.PutUint32(b[4:], 0xffff0000)
	// Bytes past the 127th dword are not part of the checksum.
	binary.LittleEndian.PutUint32(b[REGFCheckSumOffset:], 0x12345678)
	if got := HeaderChecksum(b); got != 0xffffffff {
		t.Fatalf("HeaderChecksum = 0x%x, want 0xffffffff", got)
	}
}
