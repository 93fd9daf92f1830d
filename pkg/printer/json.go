package printer

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"iter"
	"unicode/utf8"

	"github.com/joshuapare/regionkit/pkg/match"
)

// jsonMatch represents a match record in JSON format.
type jsonMatch struct {
	Name           string  `json:"name"`
	Offset         int64   `json:"offset"`
	RelativeOffset int64   `json:"relative_offset"`
	Length         int64   `json:"length"`
	Depth          int     `json:"depth"`
	Value          *string `json:"value,omitempty"`
	ValueHex       *string `json:"value_hex,omitempty"`
	ValueSize      *int    `json:"value_size,omitempty"`
	Truncated      bool    `json:"truncated,omitempty"`
}

// printJSON writes a JSON array, one object per line, streaming as the
// sequence yields.
func (p *Printer) printJSON(seq iter.Seq2[*match.Match, error]) error {
	w := bufio.NewWriter(p.writer)
	var depths depthTracker
	first := true
	w.WriteString("[")
	for m, err := range seq {
		if err != nil {
			w.Flush()
			return err
		}
		depth, offset := depths.depth(m)
		if p.hidden(depth) {
			continue
		}
		data, err := json.Marshal(p.record(m, depth, offset))
		if err != nil {
			return err
		}
		if first {
			w.WriteString("\n  ")
			first = false
		} else {
			w.WriteString(",\n  ")
		}
		w.Write(data)
	}
	if !first {
		w.WriteString("\n")
	}
	w.WriteString("]\n")
	return w.Flush()
}

func (p *Printer) record(m *match.Match, depth int, offset int64) jsonMatch {
	rec := jsonMatch{
		Name:           m.Name,
		Offset:         offset,
		RelativeOffset: m.RelativeOffset,
		Length:         m.Length,
		Depth:          depth,
	}
	if !p.opts.ShowValues || m.Value == nil {
		return rec
	}
	size := len(m.Value)
	rec.ValueSize = &size
	shown, cut := p.truncate(m.Value)
	rec.Truncated = cut
	if utf8.Valid(shown) {
		s := string(shown)
		rec.Value = &s
	} else {
		s := hex.EncodeToString(shown)
		rec.ValueHex = &s
	}
	return rec
}
