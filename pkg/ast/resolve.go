package ast

import (
	"github.com/joshuapare/regionkit/internal/buf"
)

// field selects which memoized position a resolution task computes.
type field uint8

const (
	fieldOffset field = iota
	fieldLength
)

// task is one pending position computation on the resolution stack.
type task struct {
	node  *Node
	field field
}

func (t task) memo() *memo {
	if t.field == fieldOffset {
		return &t.node.resolvedOffset
	}
	return &t.node.resolvedLength
}

// Offset returns the absolute offset of the region: the explicit offset if
// one was given, else the offset of the first child, else the end of the
// older sibling. It fails with *MissingPositionError when none apply.
func (n *Node) Offset() (int64, error) {
	if v, ok := n.resolvedOffset.get(); ok {
		return v, nil
	}
	return resolve(task{node: n, field: fieldOffset})
}

// Length returns the length of the region: the explicit length when it is
// not shorter than the value, else the value length, else zero for leaves,
// else the span up to the end of the last child.
func (n *Node) Length() (int64, error) {
	if v, ok := n.resolvedLength.get(); ok {
		return v, nil
	}
	return resolve(task{node: n, field: fieldLength})
}

// resolve computes goal with an explicit stack. Each step either stores a
// result or pushes the positions it still depends on. Dependencies only ever
// point at a node's own offset, its descendants, or its older siblings, so
// the stack always drains.
func resolve(goal task) (int64, error) {
	stack := []task{goal}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if _, ok := top.memo().get(); ok {
			stack = stack[:len(stack)-1]
			continue
		}
		var (
			pending []task
			err     error
		)
		if top.field == fieldOffset {
			pending, err = top.node.stepOffset()
		} else {
			pending, err = top.node.stepLength()
		}
		if err != nil {
			return 0, err
		}
		if len(pending) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		stack = append(stack, pending...)
	}
	v, _ := goal.memo().get()
	return v, nil
}

// stepOffset stores the offset if every input is known, otherwise it returns
// the unresolved inputs.
func (n *Node) stepOffset() ([]task, error) {
	if n.hasOffset {
		if n.offset < 0 {
			return nil, &ShapeError{Path: n.Path(), Reason: "negative explicit offset"}
		}
		n.resolvedOffset.store(n.offset)
		return nil, nil
	}

	if len(n.children) > 0 {
		first := n.children[0]
		off, ok := first.resolvedOffset.get()
		if !ok {
			return []task{{node: first, field: fieldOffset}}, nil
		}
		n.resolvedOffset.store(off)
		return nil, nil
	}

	sibling := n.OlderSibling()
	if sibling == nil {
		return nil, &MissingPositionError{Name: n.name, Path: n.Path()}
	}
	off, offOK := sibling.resolvedOffset.get()
	length, lenOK := sibling.resolvedLength.get()
	if !offOK || !lenOK {
		var pending []task
		if !lenOK {
			pending = append(pending, task{node: sibling, field: fieldLength})
		}
		if !offOK {
			pending = append(pending, task{node: sibling, field: fieldOffset})
		}
		return pending, nil
	}
	end, ok := buf.AddInt64(off, length)
	if !ok {
		return nil, &ShapeError{Path: n.Path(), Reason: "offset overflows int64"}
	}
	n.resolvedOffset.store(end)
	return nil, nil
}

// stepLength stores the length if every input is known, otherwise it returns
// the unresolved inputs.
func (n *Node) stepLength() ([]task, error) {
	if n.hasLength && n.length >= 0 && (!n.hasValue || n.length >= int64(len(n.value))) {
		n.resolvedLength.store(n.length)
		return nil, nil
	}
	if n.hasValue {
		n.resolvedLength.store(int64(len(n.value)))
		return nil, nil
	}
	if len(n.children) == 0 {
		n.resolvedLength.store(0)
		return nil, nil
	}

	last := n.children[len(n.children)-1]
	own, ownOK := n.resolvedOffset.get()
	lastOff, lastOffOK := last.resolvedOffset.get()
	lastLen, lastLenOK := last.resolvedLength.get()
	if !ownOK || !lastOffOK || !lastLenOK {
		var pending []task
		if !lastLenOK {
			pending = append(pending, task{node: last, field: fieldLength})
		}
		if !lastOffOK {
			pending = append(pending, task{node: last, field: fieldOffset})
		}
		if !ownOK {
			pending = append(pending, task{node: n, field: fieldOffset})
		}
		return pending, nil
	}

	end, ok := buf.AddInt64(lastOff, lastLen)
	if !ok {
		return nil, &ShapeError{Path: n.Path(), Reason: "child span overflows int64"}
	}
	span, ok := buf.SubInt64(end, own)
	if !ok {
		return nil, &ShapeError{Path: n.Path(), Reason: "child span overflows int64"}
	}
	if span < 0 {
		return nil, &ShapeError{Path: n.Path(), Reason: "children end before the region starts"}
	}
	n.resolvedLength.store(span)
	return nil, nil
}
