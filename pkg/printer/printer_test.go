package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regionkit/pkg/ast"
	"github.com/joshuapare/regionkit/pkg/match"
)

// sampleTree is a small archive-like layout:
//
//	zip @0+12
//	  local_header @0+8
//	    signature @0+4
//	    version @4+2
//	    flags @6+2
//	  payload @8+4
func sampleTree() *ast.Node {
	return ast.New("zip", ast.WithOffset(0), ast.WithChildren(
		ast.New("local_header", ast.WithChildren(
			ast.New("signature", ast.WithOffset(0), ast.WithText("PK\x03\x04")),
			ast.New("version", ast.WithValue([]byte{0x14, 0x00})),
			ast.New("flags", ast.WithText("ok")),
		)),
		ast.New("payload", ast.WithText("data")),
	))
}

func render(t *testing.T, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintNode(sampleTree()))
	return buf.String()
}

func TestPrinter_Text(t *testing.T) {
	out := render(t, DefaultOptions())
	want := strings.Join([]string{
		"zip @0+12",
		"  local_header @0+8",
		"    signature @0+4",
		"    version @4+2",
		"    flags @6+2",
		"  payload @8+4",
		"",
	}, "\n")
	require.Equal(t, want, out)
}

func TestPrinter_TextValues(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowValues = true
	opts.MaxValueBytes = 3
	opts.HexOffsets = true
	out := render(t, opts)

	require.Contains(t, out, `    signature @0x0+0x4 = 504B03 (truncated, 4 total bytes)`)
	require.Contains(t, out, `    version @0x4+0x2 = 1400`)
	require.Contains(t, out, `    flags @0x6+0x2 = "ok"`)
	require.Contains(t, out, `  payload @0x8+0x4 = "dat" (truncated, 4 total bytes)`)
	require.Contains(t, out, "zip @0x0+0xC\n")
}

func TestPrinter_MaxDepth(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 2
	out := render(t, opts)
	require.Equal(t, "zip @0+12\n  local_header @0+8\n  payload @8+4\n", out)
}

func TestPrinter_JSON(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.ShowValues = true
	opts.MaxValueBytes = 0
	out := render(t, opts)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 6)

	version := records[3]
	require.Equal(t, "version", version["name"])
	require.Equal(t, float64(4), version["offset"])
	require.Equal(t, float64(4), version["relative_offset"])
	require.Equal(t, float64(2), version["length"])
	require.Equal(t, float64(2), version["depth"])
	require.Equal(t, "\x14\x00", version["value"])

	payload := records[5]
	require.Equal(t, "data", payload["value"])
	require.Equal(t, float64(4), payload["value_size"])
	require.NotContains(t, records[0], "value")
}

func TestPrinter_JSONHexAndEmpty(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.ShowValues = true

	var buf bytes.Buffer
	node := ast.New("blob", ast.WithOffset(0), ast.WithValue([]byte{0xff, 0xfe}))
	require.NoError(t, New(&buf, opts).PrintNode(node))
	var records []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Equal(t, "fffe", records[0]["value_hex"])

	buf.Reset()
	empty := iter.Seq2[*match.Match, error](func(func(*match.Match, error) bool) {})
	require.NoError(t, New(&buf, opts).Print(empty))
	require.Equal(t, "[]\n", buf.String())
}

func TestPrinter_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	seq := func(yield func(*match.Match, error) bool) {
		if !yield(match.New("first", nil, 0, 1, nil), nil) {
			return
		}
		yield(nil, boom)
	}

	var buf bytes.Buffer
	err := New(&buf, DefaultOptions()).Print(seq)
	require.ErrorIs(t, err, boom)
	require.Equal(t, "first @0+1\n", buf.String())
}

func TestPrinter_DepthWithExternalParent(t *testing.T) {
	outer := match.New("container", nil, 100, 50, nil)
	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).Print(sampleTree().Matches(outer)))
	require.True(t, strings.HasPrefix(buf.String(), "  zip @0+12\n    local_header @0+8\n"))
}

func TestPrinter_UnknownFormat(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = "reg"
	require.Error(t, New(&bytes.Buffer{}, opts).PrintNode(sampleTree()))
}

func TestPrinter_DeepChain(t *testing.T) {
	const depth = 50_000
	cur := ast.New("n", ast.WithOffset(depth), ast.WithLength(1))
	for i := depth - 1; i >= 0; i-- {
		cur = ast.New("n", ast.WithOffset(int64(i)), ast.WithChildren(cur))
	}

	opts := DefaultOptions()
	opts.Format = FormatJSON
	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintNode(cur))

	var records []jsonMatch
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, depth+1)
	for i, rec := range records {
		if rec.Offset != int64(i) || rec.Depth != i || rec.RelativeOffset != min(int64(i), 1) {
			t.Fatalf("record %d: offset=%d depth=%d relative=%d", i, rec.Offset, rec.Depth, rec.RelativeOffset)
		}
	}
}

func TestPrinter_OffsetsUnderExternalParent(t *testing.T) {
	outer := match.New("container", nil, 100, 50, nil)
	child := ast.New("entry", ast.WithOffset(120), ast.WithChildren(
		ast.New("head", ast.WithOffset(124), ast.WithText("ab")),
		ast.New("tail", ast.WithText("cd")),
	))
	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).Print(child.Matches(outer)))
	require.Equal(t, "  entry @120+8\n    head @124+2\n    tail @126+2\n", buf.String())
}
