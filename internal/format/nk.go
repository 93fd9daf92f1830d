package format

import (
	"fmt"

	"github.com/joshuapare/regionkit/internal/buf"
)

// KeyName locates the inline name of an NK record payload. NK cells describe
// registry keys; the fields around the name are:
//
//	Offset  Size  Field
//	0x00    2     'n' 'k'
//	0x02    2     Flags (bit 0x20 => name stored as Windows-1252)
//	...
//	0x48    2     Name length in bytes
//	0x4A    2     Class length
//	0x4C    n     Name bytes (Windows-1252 or UTF-16LE)
//
// It returns the raw name bytes, their offset within the payload, and whether
// the name is compressed.
func KeyName(payload []byte) (raw []byte, off int, compressed bool, err error) {
	if len(payload) < NKMinSize {
		return nil, 0, false, fmt.Errorf("nk: %w (have %d, need %d)", ErrTruncated, len(payload), NKMinSize)
	}
	if payload[0] != NKSignature[0] || payload[1] != NKSignature[1] {
		return nil, 0, false, fmt.Errorf("nk: %w", ErrSignatureMismatch)
	}
	flags := buf.U16LE(payload[NKFlagsOffset:])
	nameLen := int(buf.U16LE(payload[NKNameLenOffset:]))
	name, ok := buf.Slice(payload, NKNameOffset, nameLen)
	if !ok {
		return nil, 0, false, fmt.Errorf("nk name: %w (need %d bytes from %d, have %d)",
			ErrTruncated, nameLen, NKNameOffset, len(payload))
	}
	return name, NKNameOffset, flags&NKFlagCompressedName != 0, nil
}
