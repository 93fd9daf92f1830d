// Package match defines the flat record produced when a region tree is
// flattened for reporting.
//
// A Match stores its offset relative to its structural parent. The absolute
// position is recovered by walking the parent chain, which keeps records
// cheap to build in preorder: a record only needs its parent, never its
// descendants.
package match

import "strings"

// PathSeparator joins region names in Path.
const PathSeparator = "/"

// Match is one flattened region.
type Match struct {
	Name           string
	Value          []byte // nil when the region carries no bytes
	RelativeOffset int64  // offset from Parent's absolute offset, or absolute when Parent is nil
	Length         int64
	Parent         *Match
}

// New builds a record. It is the constructor handed to the flattener.
func New(name string, value []byte, relativeOffset, length int64, parent *Match) *Match {
	return &Match{
		Name:           name,
		Value:          value,
		RelativeOffset: relativeOffset,
		Length:         length,
		Parent:         parent,
	}
}

// Offset returns the absolute offset of the match.
func (m *Match) Offset() int64 {
	var off int64
	for cur := m; cur != nil; cur = cur.Parent {
		off += cur.RelativeOffset
	}
	return off
}

// End returns the absolute offset one past the last byte of the match.
func (m *Match) End() int64 {
	return m.Offset() + m.Length
}

// Depth returns the number of ancestors of the match.
func (m *Match) Depth() int {
	depth := 0
	for cur := m.Parent; cur != nil; cur = cur.Parent {
		depth++
	}
	return depth
}

// Path returns the names from the outermost ancestor down to m.
func (m *Match) Path() string {
	names := make([]string, 0, m.Depth()+1)
	for cur := m; cur != nil; cur = cur.Parent {
		names = append(names, cur.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}
