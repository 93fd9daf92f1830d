package printer

import (
	"bufio"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joshuapare/regionkit/pkg/match"
)

// printText writes one line per match:
//
//	name @offset+length = "preview"
func (p *Printer) printText(seq iter.Seq2[*match.Match, error]) error {
	w := bufio.NewWriter(p.writer)
	var depths depthTracker
	for m, err := range seq {
		if err != nil {
			w.Flush()
			return err
		}
		depth, offset := depths.depth(m)
		if p.hidden(depth) {
			continue
		}
		indent := strings.Repeat(" ", depth*p.opts.IndentSize)
		fmt.Fprintf(w, "%s%s @%s+%s", indent, m.Name, p.number(offset), p.number(m.Length))
		if p.opts.ShowValues && m.Value != nil {
			fmt.Fprintf(w, " = %s", p.preview(m.Value))
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

func (p *Printer) number(v int64) string {
	if p.opts.HexOffsets {
		return fmt.Sprintf("0x%X", v)
	}
	return strconv.FormatInt(v, 10)
}

// preview renders printable text quoted and anything else as hex.
func (p *Printer) preview(v []byte) string {
	if len(v) == 0 {
		return "<empty>"
	}
	shown, cut := p.truncate(v)
	var s string
	if printable(shown) {
		s = strconv.Quote(string(shown))
	} else {
		s = fmt.Sprintf("%X", shown)
	}
	if cut {
		s += fmt.Sprintf(" (truncated, %d total bytes)", len(v))
	}
	return s
}

// printable reports whether b is UTF-8 made of printable runes and ordinary
// whitespace. A rune split by truncation at the end is tolerated.
func printable(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			return !utf8.FullRune(b) && len(b) < utf8.UTFMax
		}
		if !unicode.IsPrint(r) && r != '\n' && r != '\r' && r != '\t' {
			return false
		}
		b = b[size:]
	}
	return true
}
