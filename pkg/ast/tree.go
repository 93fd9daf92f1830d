package ast

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/joshuapare/regionkit/internal/buf"
)

// Node is one region in the tree.
//
// A node owns its children. The older sibling relation is not stored as a
// pointer: it is parent.children[index-1], resolved through the owning
// parent, so a node never keeps anything alive that its root does not.
type Node struct {
	name string

	value    []byte
	hasValue bool

	offset    int64
	hasOffset bool
	length    int64
	hasLength bool

	// Tree structure
	parent   *Node
	index    int
	children []*Node

	// Memoized positions, written at most once with a deterministic value.
	resolvedOffset memo
	resolvedLength memo
}

type memo struct {
	set atomic.Bool
	v   atomic.Int64
}

func (m *memo) get() (int64, bool) {
	if !m.set.Load() {
		return 0, false
	}
	return m.v.Load(), true
}

func (m *memo) store(v int64) {
	m.v.Store(v)
	m.set.Store(true)
}

// Option configures a node built with New.
type Option func(*Node)

// WithValue sets the bytes covered by the region. The slice is copied.
func WithValue(value []byte) Option {
	return func(n *Node) {
		n.value = append(make([]byte, 0, len(value)), value...)
		n.hasValue = true
	}
}

// WithText sets the value to the UTF-8 encoding of s.
func WithText(s string) Option {
	return func(n *Node) {
		n.value = []byte(s)
		n.hasValue = true
	}
}

// WithOffset sets an explicit absolute offset.
func WithOffset(offset int64) Option {
	return func(n *Node) {
		n.offset = offset
		n.hasOffset = true
	}
}

// WithLength sets an explicit length. A length shorter than the value is
// ignored when the length is queried.
func WithLength(length int64) Option {
	return func(n *Node) {
		n.length = length
		n.hasLength = true
	}
}

// WithChildren appends children in document order.
func WithChildren(children ...*Node) Option {
	return func(n *Node) {
		n.children = append(n.children, children...)
	}
}

// New builds a node. Children passed through WithChildren are adopted by the
// new node; adopting a node that already has a parent panics.
func New(name string, opts ...Option) *Node {
	n := &Node{name: name}
	for _, opt := range opts {
		opt(n)
	}
	n.adopt()
	return n
}

// adopt wires parent and index on every child.
func (n *Node) adopt() {
	for i, child := range n.children {
		if child == nil {
			panic(fmt.Sprintf("ast: nil child %d of %q", i, n.name))
		}
		if child.parent != nil {
			panic(fmt.Sprintf("ast: node %q already belongs to %q", child.name, child.parent.name))
		}
		child.parent = n
		child.index = i
	}
}

// Name returns the region name.
func (n *Node) Name() string { return n.name }

// Value returns the bytes covered by the region and whether it carries any.
// The returned slice must not be modified.
func (n *Node) Value() ([]byte, bool) { return n.value, n.hasValue }

// ExplicitOffset returns the offset given at construction, if any.
func (n *Node) ExplicitOffset() (int64, bool) { return n.offset, n.hasOffset }

// ExplicitLength returns the length given at construction, if any. It may be
// ignored by Length when it is shorter than the value.
func (n *Node) ExplicitLength() (int64, bool) { return n.length, n.hasLength }

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Index returns the position of the node among its parent's children.
func (n *Node) Index() int { return n.index }

// OlderSibling returns the previous child of the same parent, or nil.
func (n *Node) OlderSibling() *Node {
	if n.parent == nil || n.index == 0 {
		return nil
	}
	return n.parent.children[n.index-1]
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Children returns a copy of the child list in document order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Path returns the names from the root down to n, joined by PathSeparator.
func (n *Node) Path() string {
	var names []string
	for cur := n; cur != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	slices.Reverse(names)
	return strings.Join(names, PathSeparator)
}

// End returns Offset + Length.
func (n *Node) End() (int64, error) {
	off, err := n.Offset()
	if err != nil {
		return 0, err
	}
	length, err := n.Length()
	if err != nil {
		return 0, err
	}
	end, ok := buf.AddInt64(off, length)
	if !ok {
		return 0, &ShapeError{Path: n.Path(), Reason: "end offset overflows int64"}
	}
	return end, nil
}

// Walk visits n and its descendants in preorder. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.node, f.depth) {
			continue
		}
		for i := len(f.node.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.children[i], depth: f.depth + 1})
		}
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Resolve computes the offset and length of every node in the subtree and
// returns the first error encountered. After a successful Resolve every
// position query is a lock-free read.
func (n *Node) Resolve() error {
	var err error
	n.Walk(func(node *Node, _ int) bool {
		if err != nil {
			return false
		}
		if _, err = node.Offset(); err != nil {
			return false
		}
		_, err = node.Length()
		return err == nil
	})
	return err
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%q, children=%d)", n.name, len(n.children))
}
