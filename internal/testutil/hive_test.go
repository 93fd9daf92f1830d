package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regionkit/internal/format"
)

func TestHiveWalks(t *testing.T) {
	keys := []Key{ASCIIKey("Software"), UTF16Key("Ключ")}
	data := Hive(t, keys...)

	hdr, err := format.ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, format.HeaderChecksum(data), hdr.CheckSum)

	bins := data[format.HeaderSize:]
	h, next, err := format.NextHBIN(bins, 0)
	require.NoError(t, err)
	require.Equal(t, len(bins), next)

	var kinds []string
	for off := format.HBINHeaderSize; off < next; {
		cell, after, err := format.NextCell(bins, h, off)
		require.NoError(t, err)
		kinds = append(kinds, cell.Kind())
		off = after
	}
	require.Equal(t, []string{"nk", "nk", "free"}, kinds)
}

func TestUTF16Key(t *testing.T) {
	require.Equal(t, []byte{'A', 0, 0x1a, 0x04}, UTF16Key("AК").Name)
	require.False(t, UTF16Key("A").Compressed)
	require.Equal(t, 88, NKCellSize(ASCIIKey("Software")))
}
