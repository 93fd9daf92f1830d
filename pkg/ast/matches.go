package ast

import (
	"iter"

	"github.com/joshuapare/regionkit/internal/buf"
	"github.com/joshuapare/regionkit/pkg/match"
)

// Matches flattens the subtree rooted at n into match records, lazily and in
// preorder: a node is yielded before its descendants, and each child subtree
// is exhausted before the next sibling.
//
// parent is the record of the structural parent the tree hangs from, or nil.
// Each record's RelativeOffset is the node offset minus the absolute offset
// of its parent record; without a parent it is the node offset itself.
//
// When a position cannot be resolved the sequence yields (nil, err) once and
// stops.
func (n *Node) Matches(parent *match.Match) iter.Seq2[*match.Match, error] {
	return func(yield func(*match.Match, error) bool) {
		type frame struct {
			node         *Node
			parent       *match.Match
			parentOffset int64 // absolute offset of parent, 0 when nil
		}

		var base int64
		if parent != nil {
			base = parent.Offset()
		}
		stack := []frame{{node: n, parent: parent, parentOffset: base}}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			m, offset, err := f.node.toMatch(f.parent, f.parentOffset)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(m, nil) {
				return
			}
			for i := len(f.node.children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: f.node.children[i], parent: m, parentOffset: offset})
			}
		}
	}
}

// ToMatches is the function form of Matches.
func ToMatches(n *Node, parent *match.Match) iter.Seq2[*match.Match, error] {
	return n.Matches(parent)
}

// CollectMatches drains Matches into a slice.
func CollectMatches(n *Node, parent *match.Match) ([]*match.Match, error) {
	var out []*match.Match
	for m, err := range n.Matches(parent) {
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// toMatch builds the record for n and returns n's absolute offset.
func (n *Node) toMatch(parent *match.Match, parentOffset int64) (*match.Match, int64, error) {
	offset, err := n.Offset()
	if err != nil {
		return nil, 0, err
	}
	length, err := n.Length()
	if err != nil {
		return nil, 0, err
	}
	relative, ok := buf.SubInt64(offset, parentOffset)
	if !ok {
		return nil, 0, &ShapeError{Path: n.Path(), Reason: "relative offset overflows int64"}
	}
	var value []byte
	if n.hasValue {
		value = n.value
		if value == nil {
			value = []byte{}
		}
	}
	return match.New(n.name, value, relative, length, parent), offset, nil
}
