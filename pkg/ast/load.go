package ast

import (
	"fmt"
	"reflect"
	"strconv"
)

// Load converts an external tree into a Node graph without limits.
// See LoadWithLimits.
func Load(src any) (*Node, error) {
	return LoadWithLimits(src, Limits{})
}

// loadItem is one external node on the work list.
type loadItem struct {
	src      any
	parent   int // index of the parent item on the work list, -1 for the root
	position int // index among the parent's children
	depth    int

	expanded bool    // children have been pushed
	built    []*Node // converted children, in document order
	id       uintptr // identity while on the ancestor chain, 0 if untracked
}

// LoadWithLimits converts an external tree-shaped object graph into an owned
// Node graph. Every external node must expose a name (see Named and the
// map keys); value, offset, length, and children are optional.
//
// The conversion is bottom-up over an explicit work list, so arbitrarily
// deep inputs never deepen the goroutine stack. Text values are encoded as
// UTF-8. An explicit length shorter than the value, or negative, is dropped
// so that it is inferred instead. A map or pointer that is its own ancestor
// is a ShapeError; shared subtrees are loaded once per occurrence. Any
// failure discards the partial graph.
func LoadWithLimits(src any, limits Limits) (*Node, error) {
	work := []loadItem{{src: src, parent: -1}}
	count := 0
	ancestors := make(map[uintptr]struct{})

	for {
		top := len(work) - 1
		item := &work[top]

		if !item.expanded {
			item.expanded = true
			if id := identity(item.src); id != 0 {
				if _, cyclic := ancestors[id]; cyclic {
					return nil, &ShapeError{Path: itemPath(work, top), Reason: "node is its own ancestor"}
				}
				ancestors[id] = struct{}{}
				item.id = id
			}
			children := externalChildren(item.src)
			if exceeds(len(children), limits.MaxChildren) {
				return nil, &ValidationError{
					Limit:    "MaxChildren",
					Current:  int64(len(children)),
					Maximum:  int64(limits.MaxChildren),
					NodePath: itemPath(work, top),
				}
			}
			if len(children) > 0 && exceeds(item.depth+1, limits.MaxTreeDepth) {
				return nil, &ValidationError{
					Limit:    "MaxTreeDepth",
					Current:  int64(item.depth + 1),
					Maximum:  int64(limits.MaxTreeDepth),
					NodePath: itemPath(work, top),
				}
			}
			item.built = make([]*Node, 0, len(children))
			depth := item.depth + 1
			// Reverse push so children pop, and complete, in document order.
			for i := len(children) - 1; i >= 0; i-- {
				work = append(work, loadItem{src: children[i], parent: top, position: i, depth: depth})
			}
			continue
		}

		if item.id != 0 {
			delete(ancestors, item.id)
		}
		node, err := buildNode(work, top, limits)
		if err != nil {
			return nil, err
		}
		count++
		if exceeds(count, limits.MaxNodes) {
			return nil, &ValidationError{Limit: "MaxNodes", Current: int64(count), Maximum: int64(limits.MaxNodes)}
		}

		parent := item.parent
		work = work[:top]
		if parent < 0 {
			return node, nil
		}
		work[parent].built = append(work[parent].built, node)
	}
}

// buildNode converts the completed item at index i.
func buildNode(work []loadItem, i int, limits Limits) (*Node, error) {
	item := &work[i]
	f, named, err := readFields(item.src)
	if err != nil {
		return nil, &ShapeError{Path: itemPath(work, i), Reason: err.Error()}
	}
	if !named {
		return nil, &MissingNameError{Path: itemPath(work, i), Got: fmt.Sprintf("%T", item.src)}
	}
	if f.hasOffset && f.offset < 0 {
		return nil, &ShapeError{Path: itemPath(work, i), Reason: "negative explicit offset " + strconv.FormatInt(f.offset, 10)}
	}
	if err := limits.checkNode(f.name, len(f.value), len(item.built), item.depth, func() string {
		return itemPath(work, i)
	}); err != nil {
		return nil, err
	}

	n := &Node{
		name:      f.name,
		value:     f.value,
		hasValue:  f.hasValue,
		offset:    f.offset,
		hasOffset: f.hasOffset,
		children:  item.built,
	}
	if f.hasLength && f.length >= 0 && (!f.hasValue || f.length >= int64(len(f.value))) {
		n.length = f.length
		n.hasLength = true
	}
	n.adopt()
	return n, nil
}

// externalChildren returns the children of an external node, if any.
// Malformed or unnamed nodes report no children here; buildNode reports the
// problem once the node itself is converted.
func externalChildren(src any) []any {
	switch v := src.(type) {
	case *Node:
		if v == nil {
			return nil
		}
		return nodeChildren(v)
	case map[string]any:
		children, _ := listChildren(v[KeyChildren])
		return children
	case map[any]any:
		children, _ := listChildren(v[KeyChildren])
		return children
	case Container:
		return v.Children()
	}
	return nil
}

// identity returns the address behind a map or pointer node, or 0 for
// values that cannot form a cycle by reference.
func identity(src any) uintptr {
	v := reflect.ValueOf(src)
	switch v.Kind() {
	case reflect.Map:
		return v.Pointer()
	case reflect.Pointer:
		// Zero-size values may share one address.
		if v.Type().Elem().Size() == 0 {
			return 0
		}
		return v.Pointer()
	default:
		return 0
	}
}

// itemPath renders the location of work[i] as "$.children[a].children[b]".
func itemPath(work []loadItem, i int) string {
	var positions []int
	for cur := i; work[cur].parent >= 0; cur = work[cur].parent {
		positions = append(positions, work[cur].position)
	}
	path := "$"
	for j := len(positions) - 1; j >= 0; j-- {
		path += ".children[" + strconv.Itoa(positions[j]) + "]"
	}
	return path
}
