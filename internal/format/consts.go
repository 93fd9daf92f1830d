// Package format houses low-level decoders for the Windows Registry hive file
// format. The decoders only locate and bound structures; turning them into
// regions is left to the regf producer so the layouts stay independent from
// the region tree.
package format

var (
	// REGFSignature is the four-byte signature at the start of every hive file.
	// Layout (little-endian):
	//   0x00  'r' 'e' 'g' 'f'
	REGFSignature = []byte{'r', 'e', 'g', 'f'}

	// HBINSignature is the four-byte signature at the beginning of each hive bin.
	// Layout:
	//   0x00  'h' 'b' 'i' 'n'
	HBINSignature = []byte{'h', 'b', 'i', 'n'}

	// NKSignature identifies an NK (Node Key) cell payload.
	NKSignature = []byte{'n', 'k'}
)

const (
	// HeaderSize is the size of the REGF header in bytes. In all observed hive
	// variants this is 4096 bytes (the size of a single memory page).
	HeaderSize = 4096

	// HBINHeaderSize is the size of the HBIN header in bytes.
	HBINHeaderSize = 0x20

	// CellHeaderSize is the number of bytes used by the cell header preceding
	// every allocation (free or in-use) within an HBIN.
	CellHeaderSize = 4

	// HBINAlignment is the required alignment of hive bins. On-disk structures
	// are aligned to 4 KiB.
	HBINAlignment = 0x1000

	// SignatureSize is the standard size for cell record signatures (NK, VK, SK, etc.).
	SignatureSize = 2

	// HBIN field offsets within the header structure.
	HBINFileOffsetField = 0x04 // Offset to file offset field (4 bytes)
	HBINSizeOffset      = 0x08 // Offset to HBIN size field (4 bytes)
	HBINReservedOffset  = 0x0C // Two reserved dwords
	HBINTimeStampOffset = 0x14 // FILETIME, only meaningful in the first bin
	HBINSpareOffset     = 0x1C // Spare / MemAlloc
)

// ============================================================================
// REGF Header Constants
// ============================================================================
const (
	REGFSignatureOffset    = 0x000 // 4
	REGFSignatureSize      = 4
	REGFPrimarySeqOffset   = 0x004 // Sequence1 (uint32)
	REGFSecondarySeqOffset = 0x008 // Sequence2 (uint32)
	REGFTimeStampOffset    = 0x00C // _LARGE_INTEGER (uint64 LE, Windows FILETIME)
	REGFMajorVersionOffset = 0x014 // uint32
	REGFMinorVersionOffset = 0x018 // uint32
	REGFTypeOffset         = 0x01C // uint32
	REGFFormatOffset       = 0x020 // uint32
	REGFRootCellOffset     = 0x024 // uint32 (HCELL index rel to 0x1000)
	REGFDataSizeOffset     = 0x028 // uint32 (sum of HBIN sizes)
	REGFClusterOffset      = 0x02C // uint32
	REGFFileNameOffset     = 0x030 // [64] byte, UTF-16LE
	REGFFileNameSize       = 64
	REGFCheckSumOffset     = 0x1FC // uint32 (XOR of first 508 bytes)
	REGFBootTypeOffset     = 0xFF8 // uint32
	REGFBootRecovOffset    = 0xFFC // uint32

	// REGFChecksumDwords is the number of dwords folded into the checksum.
	REGFChecksumDwords = 127
)

// ============================================================================
// NK Record (Node Key) Constants
// ============================================================================
const (
	NKFlagsOffset   = 0x02 // USHORT
	NKNameLenOffset = 0x48 // USHORT name length (bytes!)
	NKNameOffset    = 0x4C // start of inline name

	// NKFlagCompressedName marks names stored as Windows-1252 instead of UTF-16LE.
	NKFlagCompressedName = 0x20

	// NKMinSize is the fixed part of an NK record preceding the name.
	NKMinSize = NKNameOffset
)
