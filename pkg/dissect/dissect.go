// Package dissect ties format detection, the bundled producers, and the
// region tree together: bytes in, a resolved *ast.Node out.
package dissect

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joshuapare/regionkit/internal/mmfile"
	"github.com/joshuapare/regionkit/pkg/ast"
	"github.com/joshuapare/regionkit/pkg/source/html"
	"github.com/joshuapare/regionkit/pkg/source/markdown"
	"github.com/joshuapare/regionkit/pkg/source/regf"
	"github.com/joshuapare/regionkit/pkg/source/serial"
	"github.com/joshuapare/regionkit/pkg/types"
)

// Options configures a Dissector.
type Options struct {
	// Logger receives debug records about each dissection. Nil discards.
	Logger *slog.Logger

	// Limits bounds the loaded tree. The zero value is unlimited.
	Limits ast.Limits

	// Format forces a producer. FormatAuto detects one per input.
	Format Format
}

// DefaultOptions returns options with DefaultLimits and auto detection.
func DefaultOptions() Options {
	return Options{Limits: ast.DefaultLimits()}
}

// ParseLimits maps a preset name (default, relaxed, strict, none) to Limits.
func ParseLimits(name string) (ast.Limits, error) {
	switch name {
	case "", "default":
		return ast.DefaultLimits(), nil
	case "relaxed":
		return ast.RelaxedLimits(), nil
	case "strict":
		return ast.StrictLimits(), nil
	case "none":
		return ast.Limits{}, nil
	default:
		return ast.Limits{}, fmt.Errorf("unknown limits preset %q", name)
	}
}

// Dissector turns inputs into resolved region trees. It holds no per-input
// state and may be shared between goroutines.
type Dissector struct {
	opts Options
	log  *slog.Logger
}

// New returns a Dissector configured by opts.
func New(opts Options) *Dissector {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dissector{opts: opts, log: log}
}

// File maps the file at path and dissects it. The tree owns copies of every
// value, so the mapping is released before File returns.
func (d *Dissector) File(path string) (*ast.Node, error) {
	f, err := mmfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return d.Bytes(filepath.Base(path), f.Bytes())
}

// Bytes dissects data. name is only used for format detection and logging.
// The returned tree is fully resolved.
func (d *Dissector) Bytes(name string, data []byte) (*ast.Node, error) {
	start := time.Now()
	f := d.opts.Format
	if f == FormatAuto {
		f = Detect(name, data)
	}
	if f == FormatAuto {
		return nil, &types.Error{Kind: types.ErrKindUnsupported, Msg: fmt.Sprintf("cannot detect format of %q", name)}
	}
	log := d.log.With("input", name, "format", f.String())
	log.Debug("dissecting", "bytes", len(data))

	src, err := d.produce(log, f, data)
	if err != nil {
		return nil, err
	}
	node, err := ast.LoadWithLimits(src, d.opts.Limits)
	if err != nil {
		return nil, err
	}
	if err := node.Resolve(); err != nil {
		return nil, err
	}
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("dissected", "nodes", node.Count(), "elapsed", time.Since(start))
	}
	return node, nil
}

func (d *Dissector) produce(log *slog.Logger, f Format, data []byte) (any, error) {
	switch f {
	case FormatRegf:
		if s, err := regf.Describe(data); err == nil {
			log.Debug("hive base block",
				"last_write", s.LastWrite,
				"version", fmt.Sprintf("%d.%d", s.MajorVersion, s.MinorVersion),
				"data_size", s.DataSize)
			if !s.ChecksumOK {
				log.Warn("hive base block checksum mismatch")
			}
		}
		return regf.Dissect(data)
	case FormatMarkdown:
		return markdown.Dissect(data)
	case FormatHTML:
		return html.Dissect(bytes.NewReader(data))
	case FormatJSON:
		return serial.DecodeJSON(bytes.NewReader(data))
	case FormatYAML:
		return serial.DecodeYAML(bytes.NewReader(data))
	default:
		return nil, &types.Error{Kind: types.ErrKindUnsupported, Msg: "no producer for format " + f.String()}
	}
}
