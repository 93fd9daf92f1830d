package printer

import (
	"fmt"
	"io"
	"iter"

	"github.com/joshuapare/regionkit/pkg/ast"
	"github.com/joshuapare/regionkit/pkg/match"
)

const (
	DefaultIndentSize    = 2
	DefaultMaxDepth      = 0
	DefaultMaxValueBytes = 16
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs an indented, human-readable region tree.
	FormatText Format = "text"

	// FormatJSON outputs a JSON array with one object per match.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per depth level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth hides matches nested this deep or deeper (0 = unlimited).
	// The outermost match has depth 0.
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowValues includes value previews in output.
	// Default: false
	ShowValues bool

	// MaxValueBytes limits how many value bytes to display.
	// Longer values are truncated. Set to 0 for no limit.
	// Default: 16
	MaxValueBytes int

	// HexOffsets prints offsets and lengths in hexadecimal (text format only).
	// Default: false
	HexOffsets bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		MaxDepth:      DefaultMaxDepth,
		MaxValueBytes: DefaultMaxValueBytes,
	}
}

// Printer handles formatted output of match sequences.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	node, _ := dissect.New(dissect.DefaultOptions()).File("NTUSER.DAT")
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintNode(node)
func New(w io.Writer, opts Options) *Printer {
	return &Printer{writer: w, opts: opts}
}

// Print drains seq and writes every record within MaxDepth. A sequence
// error stops printing and is returned; output written so far stays.
func (p *Printer) Print(seq iter.Seq2[*match.Match, error]) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(seq)
	case FormatText, "":
		return p.printText(seq)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// PrintNode prints the flattened subtree rooted at n.
func (p *Printer) PrintNode(n *ast.Node) error {
	return p.Print(n.Matches(nil))
}

// depthTracker computes match depths and absolute offsets in O(1)
// amortized for a preorder stream by keeping the current ancestor chain.
type depthTracker struct {
	chain []tracked
	base  int
}

type tracked struct {
	m      *match.Match
	offset int64
}

// depth returns the depth and absolute offset of m. Only a record whose
// parent is outside the chain walks its parent links.
func (d *depthTracker) depth(m *match.Match) (int, int64) {
	for len(d.chain) > 0 && d.chain[len(d.chain)-1].m != m.Parent {
		d.chain = d.chain[:len(d.chain)-1]
	}
	var offset int64
	if len(d.chain) == 0 {
		d.base = m.Depth()
		offset = m.Offset()
	} else {
		offset = d.chain[len(d.chain)-1].offset + m.RelativeOffset
	}
	d.chain = append(d.chain, tracked{m: m, offset: offset})
	return d.base + len(d.chain) - 1, offset
}

func (p *Printer) hidden(depth int) bool {
	return p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth
}

// truncate returns the displayed prefix of v and whether it was cut.
func (p *Printer) truncate(v []byte) ([]byte, bool) {
	if p.opts.MaxValueBytes > 0 && len(v) > p.opts.MaxValueBytes {
		return v[:p.opts.MaxValueBytes], true
	}
	return v, false
}
