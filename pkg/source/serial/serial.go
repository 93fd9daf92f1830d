// Package serial decodes serialized region trees. A document is a nested
// object with the keys name, value, offset, length, and children; every key
// but name is optional. The decoded values feed ast.Load directly.
package serial

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/joshuapare/regionkit/pkg/types"
)

// Format selects a document syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a name (json, yaml, yml) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, &types.Error{Kind: types.ErrKindUnsupported, Msg: fmt.Sprintf("serial: unknown format %q", s)}
	}
}

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, bool) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	return f, err == nil
}

// DecodeJSON reads exactly one JSON document. Numbers stay json.Number so
// large offsets survive without float rounding.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError(FormatJSON, err)
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, decodeError(FormatJSON, errors.New("trailing data after document"))
	}
	return doc, nil
}

// DecodeYAML reads the first YAML document.
func DecodeYAML(r io.Reader) (any, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, decodeError(FormatYAML, err)
	}
	return doc, nil
}

// Decode dispatches on f.
func Decode(r io.Reader, f Format) (any, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	default:
		return nil, &types.Error{Kind: types.ErrKindUnsupported, Msg: "serial: unknown format " + f.String()}
	}
}

func decodeError(f Format, err error) error {
	return &types.Error{Kind: types.ErrKindFormat, Msg: "serial: decode " + f.String(), Err: err}
}
