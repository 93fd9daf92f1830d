// Package markdown dissects Markdown documents into regions with goldmark.
package markdown

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/joshuapare/regionkit/pkg/source"
)

// Dissect parses src as GitHub flavored Markdown and returns one region per
// syntax node, named by the node kind.
//
// Text, raw HTML and autolinks carry their source segment, blocks with lines are
// anchored at their first line, and leaf blocks span their lines. Everything
// else (documents, lists, emphasis, links) is inferred from its children.
// Nodes that end up with no position at all and no older sibling, such as an
// empty list item, are omitted.
func Dissect(src []byte) (*source.Region, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	root := source.NewRegion(doc.Kind().String()).At(0).Sized(int64(len(src)))
	stack := []*source.Region{root}

	err := gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if n == doc {
			return gast.WalkContinue, nil
		}
		if entering {
			r := region(n, src)
			stack[len(stack)-1].Add(r)
			stack = append(stack, r)
			return gast.WalkContinue, nil
		}

		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		parent := stack[len(stack)-1]
		if _, ok := r.Offset(); !ok && len(r.Regions()) == 0 && len(parent.Regions()) == 1 {
			parent.Pop()
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

func region(n gast.Node, src []byte) *source.Region {
	r := source.NewRegion(n.Kind().String())
	switch node := n.(type) {
	case *gast.Text:
		return r.At(int64(node.Segment.Start)).WithBytes(node.Segment.Value(src))
	case *gast.RawHTML:
		if node.Segments != nil && node.Segments.Len() > 0 {
			spanned(r, node.Segments)
		}
		return r
	case *gast.AutoLink:
		label := node.Label(src)
		if start, ok := within(src, label); ok {
			r.At(int64(start)).WithBytes(label)
		}
		return r
	}
	if n.Type() == gast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			if n.HasChildren() {
				r.At(int64(lines.At(0).Start))
			} else {
				spanned(r, lines)
			}
		}
	}
	return r
}

// within returns the offset of b inside src when b is a subslice of it.
// goldmark hands out segment values as slices of the source, but AutoLink
// keeps its segment unexported.
func within(src, b []byte) (int, bool) {
	start := cap(src) - cap(b)
	if len(b) == 0 || start < 0 || start+len(b) > len(src) {
		return 0, false
	}
	return start, &src[start] == &b[0]
}

// spanned anchors r at the first segment and extends it to the last.
func spanned(r *source.Region, segs *text.Segments) {
	first, last := segs.At(0), segs.At(segs.Len()-1)
	r.At(int64(first.Start)).Sized(int64(last.Stop - first.Start))
}
