package ast

import (
	"encoding/json"
	"fmt"
	"math"
)

// The interfaces below describe what Load can read from an external tree
// node. Only Named is required; every other capability is optional and its
// absence means "unknown", never zero.

// Named is implemented by external nodes that carry a region name.
type Named interface {
	Name() string
}

// Valued is implemented by external nodes that may carry bytes. Value returns
// []byte, string (encoded as UTF-8), or nil when the node has no value.
type Valued interface {
	Value() any
}

// Positioned is implemented by external nodes that may know their offset.
type Positioned interface {
	Offset() (int64, bool)
}

// Sized is implemented by external nodes that may know their length.
type Sized interface {
	Length() (int64, bool)
}

// Container is implemented by external nodes with children. Each child is
// itself an external node.
type Container interface {
	Children() []any
}

// Keys read from generic decoded documents (JSON, YAML).
const (
	KeyName     = "name"
	KeyValue    = "value"
	KeyOffset   = "offset"
	KeyLength   = "length"
	KeyChildren = "children"
)

// fields is the normalized view of one external node.
type fields struct {
	name      string
	value     []byte
	hasValue  bool
	offset    int64
	hasOffset bool
	length    int64
	hasLength bool
	children  []any
}

// readFields extracts the capability set from src. ok is false when src has
// no name.
func readFields(src any) (f fields, ok bool, err error) {
	switch v := src.(type) {
	case *Node:
		if v == nil {
			return fields{}, false, nil
		}
		return readNode(v), true, nil
	case map[string]any:
		return readMap(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			if ks, isString := k.(string); isString {
				m[ks] = val
			}
		}
		return readMap(m)
	}

	named, isNamed := src.(Named)
	if !isNamed {
		return fields{}, false, nil
	}
	f.name = named.Name()
	if valued, isValued := src.(Valued); isValued {
		if f.value, f.hasValue, err = toBytes(valued.Value()); err != nil {
			return fields{}, true, err
		}
	}
	if positioned, isPositioned := src.(Positioned); isPositioned {
		f.offset, f.hasOffset = positioned.Offset()
	}
	if sized, isSized := src.(Sized); isSized {
		f.length, f.hasLength = sized.Length()
	}
	if container, isContainer := src.(Container); isContainer {
		f.children = container.Children()
	}
	return f, true, nil
}

// readNode copies the explicit fields of an existing Node. Inferred
// positions are not carried over; they are derived again in the new graph.
func readNode(n *Node) fields {
	f := fields{
		name:      n.name,
		hasValue:  n.hasValue,
		offset:    n.offset,
		hasOffset: n.hasOffset,
		length:    n.length,
		hasLength: n.hasLength,
		children:  nodeChildren(n),
	}
	if n.hasValue {
		f.value = append(make([]byte, 0, len(n.value)), n.value...)
	}
	return f
}

func nodeChildren(n *Node) []any {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]any, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func readMap(m map[string]any) (f fields, ok bool, err error) {
	name, isString := m[KeyName].(string)
	if !isString {
		return fields{}, false, nil
	}
	f.name = name
	if f.value, f.hasValue, err = toBytes(m[KeyValue]); err != nil {
		return fields{}, true, err
	}
	if raw, present := m[KeyOffset]; present && raw != nil {
		if f.offset, err = toInt64(KeyOffset, raw); err != nil {
			return fields{}, true, err
		}
		f.hasOffset = true
	}
	if raw, present := m[KeyLength]; present && raw != nil {
		if f.length, err = toInt64(KeyLength, raw); err != nil {
			return fields{}, true, err
		}
		f.hasLength = true
	}
	var isList bool
	if f.children, isList = listChildren(m[KeyChildren]); !isList {
		return fields{}, true, fmt.Errorf("children must be a list, got %T", m[KeyChildren])
	}
	return f, true, nil
}

// listChildren interprets the children entry of a decoded document. A
// missing entry is an empty list.
func listChildren(raw any) ([]any, bool) {
	switch children := raw.(type) {
	case nil:
		return nil, true
	case []any:
		return children, true
	case []map[string]any:
		out := make([]any, len(children))
		for i, c := range children {
			out[i] = c
		}
		return out, true
	default:
		return nil, false
	}
}

// toBytes normalizes a value: text is encoded as UTF-8, bytes are copied.
func toBytes(raw any) ([]byte, bool, error) {
	switch v := raw.(type) {
	case nil:
		return nil, false, nil
	case []byte:
		return append(make([]byte, 0, len(v)), v...), true, nil
	case string:
		return []byte(v), true, nil
	default:
		return nil, false, fmt.Errorf("value must be bytes or text, got %T", raw)
	}
}

// toInt64 accepts every Go integer type, integral floats as produced by
// encoding/json, and json.Number.
func toInt64(key string, raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return uintToInt64(key, uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToInt64(key, v)
	case float32:
		return floatToInt64(key, float64(v))
	case float64:
		return floatToInt64(key, v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s %q is not an integer", key, v.String())
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, raw)
	}
}

func uintToInt64(key string, v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%s %d overflows int64", key, v)
	}
	return int64(v), nil
}

func floatToInt64(key string, v float64) (int64, error) {
	if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("%s %v is not an integer", key, v)
	}
	return int64(v), nil
}
