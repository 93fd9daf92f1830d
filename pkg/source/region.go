// Package source holds the region node that the bundled producers emit.
//
// A Region is an external tree node in the sense of ast.Load: it carries a
// name and, optionally, a value, an offset, a length, and children. Producers
// set only the fields their format actually knows and leave the rest for the
// tree to infer.
package source

// Region is a mutable producer-side node. Build it with NewRegion and the
// chaining setters, then hand the root to ast.Load.
type Region struct {
	name string

	value    []byte
	hasValue bool

	offset    int64
	hasOffset bool
	length    int64
	hasLength bool

	children []*Region
}

// NewRegion returns a region with only a name.
func NewRegion(name string) *Region {
	return &Region{name: name}
}

// At sets the absolute offset.
func (r *Region) At(offset int64) *Region {
	r.offset = offset
	r.hasOffset = true
	return r
}

// Sized sets the length.
func (r *Region) Sized(length int64) *Region {
	r.length = length
	r.hasLength = true
	return r
}

// WithBytes sets the covered bytes. The slice is retained, not copied;
// ast.Load copies it.
func (r *Region) WithBytes(b []byte) *Region {
	r.value = b
	r.hasValue = true
	return r
}

// WithText sets the value to the UTF-8 encoding of s.
func (r *Region) WithText(s string) *Region {
	return r.WithBytes([]byte(s))
}

// Add appends children in document order.
func (r *Region) Add(children ...*Region) *Region {
	r.children = append(r.children, children...)
	return r
}

// Rename replaces the region name.
func (r *Region) Rename(name string) *Region {
	r.name = name
	return r
}

// Name implements ast.Named.
func (r *Region) Name() string { return r.name }

// Value implements ast.Valued. It returns nil when no value was set.
func (r *Region) Value() any {
	if !r.hasValue {
		return nil
	}
	return r.value
}

// Bytes returns the raw value and whether one was set.
func (r *Region) Bytes() ([]byte, bool) { return r.value, r.hasValue }

// Offset implements ast.Positioned.
func (r *Region) Offset() (int64, bool) { return r.offset, r.hasOffset }

// Length implements ast.Sized.
func (r *Region) Length() (int64, bool) { return r.length, r.hasLength }

// Children implements ast.Container.
func (r *Region) Children() []any {
	if len(r.children) == 0 {
		return nil
	}
	out := make([]any, len(r.children))
	for i, c := range r.children {
		out[i] = c
	}
	return out
}

// Regions returns the children as regions.
func (r *Region) Regions() []*Region { return r.children }

// Last returns the most recently added child, or nil.
func (r *Region) Last() *Region {
	if len(r.children) == 0 {
		return nil
	}
	return r.children[len(r.children)-1]
}

// Pop removes and returns the most recently added child, or nil.
func (r *Region) Pop() *Region {
	last := r.Last()
	if last != nil {
		r.children[len(r.children)-1] = nil
		r.children = r.children[:len(r.children)-1]
	}
	return last
}
