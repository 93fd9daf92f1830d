// Package ast provides the region tree used to describe the byte-range
// structure discovered while dissecting a binary blob.
//
// Every Node names a detected region, optionally carries the raw bytes it
// covers, and derives its offset and length from context when they are not
// given directly. Nodes are built once and never mutated afterwards.
//
// # Position Inference
//
// A node's offset is, in order of preference: its explicit offset, the offset
// of its first child, or the end of its older sibling (offset + length). A
// node with none of these has no position and queries fail with
// MissingPositionError instead of defaulting to zero.
//
// A node's length is its explicit length when that length is at least as long
// as the node's value, otherwise the length of the value, otherwise zero for
// leaves, otherwise the span from the node's offset to the end of its last
// child.
//
// Both values are computed lazily on first query and memoized. Resolution
// uses an explicit work stack, so long chains of siblings whose positions
// depend on one another never deepen the goroutine stack.
//
// # Adapting External Trees
//
// Load converts any tree-shaped object graph into Nodes. Each external node
// needs a name; value, offset, length, and children are optional and are
// discovered through the Named, Valued, Positioned, Sized, and Container
// interfaces, or through the keys of a decoded map[string]any document.
//
// # Flattening
//
// Matches walks a tree in preorder and yields one match.Match per node, with
// offsets relative to the structural parent:
//
//	root, err := ast.Load(parsed)
//	if err != nil {
//		return err
//	}
//	for m, err := range root.Matches(nil) {
//		if err != nil {
//			return err
//		}
//		fmt.Printf("%s @%d+%d\n", m.Name, m.Offset(), m.Length)
//	}
//
// # Concurrency
//
// Memoized positions are stored in atomics and always resolve to the same
// value, so a fully built tree may be queried from several goroutines. Call
// Resolve once before publishing a tree to compute every position up front.
package ast
