// Package regf dissects Windows Registry hive files into regions.
//
// The produced tree mirrors the on-disk layout:
//
//	regf
//	├── header            (REGF base block, 4096 bytes)
//	│   ├── signature
//	│   ├── primary_sequence
//	│   └── ...
//	└── hbin              (one per hive bin)
//	    ├── hbin_header
//	    └── <cell kind>   (nk[Name], vk, lf, free, data, ...)
//	        ├── cell_size
//	        └── payload
//	            └── key_name (nk only)
//
// Only structural anchors carry explicit offsets. Header and HBIN fields are
// listed back to back with their bytes, so each field's offset follows from
// the end of the field before it.
package regf

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/regionkit/internal/format"
	"github.com/joshuapare/regionkit/pkg/source"
	"github.com/joshuapare/regionkit/pkg/types"
)

// field is one fixed-width slot of a header structure.
type field struct {
	name string
	size int
}

// headerLayout covers the full 4096-byte base block.
var headerLayout = []field{
	{"signature", format.REGFSignatureSize},
	{"primary_sequence", 4},
	{"secondary_sequence", 4},
	{"last_write", 8},
	{"major_version", 4},
	{"minor_version", 4},
	{"type", 4},
	{"format", 4},
	{"root_cell_offset", 4},
	{"hive_bins_data_size", 4},
	{"clustering_factor", 4},
	{"file_name", format.REGFFileNameSize},
	{"reserved", format.REGFCheckSumOffset - format.REGFFileNameOffset - format.REGFFileNameSize},
	{"checksum", 4},
	{"padding", format.REGFBootTypeOffset - format.REGFCheckSumOffset - 4},
	{"boot_type", 4},
	{"boot_recover", 4},
}

// hbinLayout covers the 0x20-byte HBIN header.
var hbinLayout = []field{
	{"signature", 4},
	{"file_offset", 4},
	{"size", 4},
	{"reserved", 8},
	{"timestamp", 8},
	{"spare", 4},
}

// Summary is the subset of header fields worth reporting about a hive.
type Summary struct {
	LastWrite    time.Time `json:"last_write"`
	MajorVersion uint32    `json:"major_version"`
	MinorVersion uint32    `json:"minor_version"`
	RootCell     uint32    `json:"root_cell"`
	DataSize     uint32    `json:"data_size"`
	ChecksumOK   bool      `json:"checksum_ok"`
}

// Describe parses the base block of data.
func Describe(data []byte) (Summary, error) {
	hdr, err := format.ParseHeader(data)
	if err != nil {
		return Summary{}, wrap("regf: base block", err)
	}
	return Summary{
		LastWrite:    format.FiletimeToTime(hdr.LastWriteRaw),
		MajorVersion: hdr.MajorVersion,
		MinorVersion: hdr.MinorVersion,
		RootCell:     hdr.RootCellOffset,
		DataSize:     hdr.HiveBinsDataSize,
		ChecksumOK:   hdr.CheckSum == format.HeaderChecksum(data),
	}, nil
}

// Dissect builds the region tree for a complete hive image. The returned
// root covers all of data. Bytes past the declared hive bins data size are
// reported as a single trailer region.
func Dissect(data []byte) (*source.Region, error) {
	hdr, err := format.ParseHeader(data)
	if err != nil {
		return nil, wrap("regf: base block", err)
	}

	root := source.NewRegion("regf").At(0).Sized(int64(len(data)))
	root.Add(fields("header", data[:format.HeaderSize], 0, headerLayout).Sized(format.HeaderSize))

	bins := data[format.HeaderSize:]
	if size := int(hdr.HiveBinsDataSize); size > 0 && size <= len(bins) {
		bins = bins[:size]
	}

	for off := 0; off < len(bins); {
		h, next, err := format.NextHBIN(bins, off)
		if err != nil {
			return nil, wrap(fmt.Sprintf("regf: hbin at 0x%x", off), err)
		}
		bin, err := dissectBin(bins, h, off, next)
		if err != nil {
			return nil, err
		}
		root.Add(bin)
		off = next
	}

	if end := format.HeaderSize + len(bins); end < len(data) {
		root.Add(source.NewRegion("trailer").At(int64(end)).WithBytes(data[end:]))
	}
	return root, nil
}

// dissectBin describes the hive bin spanning bins[off:next].
func dissectBin(bins []byte, h format.HBIN, off, next int) (*source.Region, error) {
	abs := int64(format.HeaderSize + off)
	bin := source.NewRegion("hbin").At(abs).Sized(int64(h.Size))
	bin.Add(fields("hbin_header", bins[off:off+format.HBINHeaderSize], abs, hbinLayout))

	for cellOff := off + format.HBINHeaderSize; cellOff < next; {
		cell, after, err := format.NextCell(bins, h, cellOff)
		if err != nil {
			return nil, wrap(fmt.Sprintf("regf: cell at 0x%x", cellOff), err)
		}
		bin.Add(cellRegion(bins, cell))
		cellOff = after
	}
	return bin, nil
}

func cellRegion(bins []byte, cell format.Cell) *source.Region {
	abs := int64(format.HeaderSize + cell.Offset)
	r := source.NewRegion(cell.Kind()).At(abs).Sized(int64(cell.Size))
	r.Add(source.NewRegion("cell_size").At(abs).WithBytes(bins[cell.Offset : cell.Offset+format.CellHeaderSize]))

	payload := source.NewRegion("payload").At(abs + format.CellHeaderSize).WithBytes(cell.Data)
	r.Add(payload)

	if cell.Free || cell.Kind() != "nk" {
		return r
	}
	// A malformed NK record is still a cell; it just stays unnamed.
	raw, nameOff, compressed, err := format.KeyName(cell.Data)
	if err != nil {
		return r
	}
	r.Rename("nk[" + decodeName(raw, compressed) + "]")
	payload.Add(source.NewRegion("key_name").At(abs + format.CellHeaderSize + int64(nameOff)).WithBytes(raw))
	return r
}

// fields lays out a fixed structure. Only the first field is anchored; the
// rest follow their older sibling.
func fields(name string, b []byte, abs int64, layout []field) *source.Region {
	r := source.NewRegion(name).At(abs)
	pos := 0
	for i, f := range layout {
		fr := source.NewRegion(f.name).WithBytes(b[pos : pos+f.size])
		if i == 0 {
			fr.At(abs)
		}
		r.Add(fr)
		pos += f.size
	}
	return r
}

// decodeName renders an NK name. Compressed names are Windows-1252, the
// others UTF-16LE.
func decodeName(raw []byte, compressed bool) string {
	var (
		out []byte
		err error
	)
	if compressed {
		out, err = charmap.Windows1252.NewDecoder().Bytes(raw)
	} else {
		out, err = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	}
	if err != nil {
		return fmt.Sprintf("%x", raw)
	}
	return string(out)
}

// wrap classifies a format error. Signature mismatches mean the input is not
// a hive; anything else means a damaged one.
func wrap(msg string, err error) error {
	kind := types.ErrKindCorrupt
	if errors.Is(err, format.ErrSignatureMismatch) {
		kind = types.ErrKindFormat
	}
	return &types.Error{Kind: kind, Msg: msg, Err: err}
}
