package dissect

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joshuapare/regionkit/internal/format"
	"github.com/joshuapare/regionkit/pkg/types"
)

// Format identifies the producer that turns input bytes into regions.
type Format int

const (
	FormatAuto Format = iota // detect from content and file name
	FormatRegf
	FormatMarkdown
	FormatHTML
	FormatJSON
	FormatYAML
)

type formatInfo struct {
	name        string
	extensions  []string
	description string
}

var formats = map[Format]formatInfo{
	FormatRegf:     {"regf", []string{".hiv", ".dat"}, "Windows Registry hive: base block, hive bins, cells, key names"},
	FormatMarkdown: {"markdown", []string{".md", ".markdown"}, "Markdown (GFM): blocks, inlines, text segments"},
	FormatHTML:     {"html", []string{".html", ".htm"}, "HTML: elements, tags, text, comments from raw tokens"},
	FormatJSON:     {"json", []string{".json"}, "Serialized region tree in JSON"},
	FormatYAML:     {"yaml", []string{".yaml", ".yml"}, "Serialized region tree in YAML"},
}

// Formats lists every concrete format in a stable order.
func Formats() []Format {
	return []Format{FormatRegf, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML}
}

func (f Format) String() string {
	if f == FormatAuto {
		return "auto"
	}
	if info, ok := formats[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extensions returns the file extensions associated with f.
func (f Format) Extensions() []string { return formats[f].extensions }

// Description returns a one-line summary of what f dissects.
func (f Format) Description() string { return formats[f].description }

// ParseFormat maps a format name, including "auto", to a Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	switch s {
	case "", "auto":
		return FormatAuto, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	}
	for _, f := range Formats() {
		if formats[f].name == s {
			return f, nil
		}
	}
	return FormatAuto, &types.Error{Kind: types.ErrKindUnsupported, Msg: fmt.Sprintf("unknown format %q", s)}
}

// Detect picks a format from the leading bytes of the input, then from the
// file name extension, then from a light sniff of the content. It returns
// FormatAuto when nothing matches.
func Detect(name string, head []byte) Format {
	if bytes.HasPrefix(head, format.REGFSignature) {
		return FormatRegf
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, f := range Formats() {
		if f == FormatRegf {
			continue
		}
		for _, e := range formats[f].extensions {
			if ext == e {
				return f
			}
		}
	}

	trimmed := bytes.TrimLeft(head, " \t\r\n\ufeff")
	switch {
	case len(trimmed) == 0:
		return FormatAuto
	case trimmed[0] == '{':
		return FormatJSON
	case hasFoldPrefix(trimmed, "<!doctype html"), hasFoldPrefix(trimmed, "<html"):
		return FormatHTML
	}
	return FormatAuto
}

func hasFoldPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && bytes.EqualFold(b[:len(prefix)], []byte(prefix))
}
