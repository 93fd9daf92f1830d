package ast

import (
	"fmt"

	"github.com/joshuapare/regionkit/pkg/types"
)

// MissingPositionError reports a region whose offset cannot be derived: it
// has no explicit offset, no children, and no older sibling.
type MissingPositionError struct {
	Name string // name of the region that could not be placed
	Path string // slash separated names from the root to the region
}

func (e *MissingPositionError) Error() string {
	return fmt.Sprintf("region %q at %s must have an explicit offset, an older sibling, or a child",
		e.Name, e.Path)
}

func (e *MissingPositionError) Unwrap() error { return types.ErrMissingPosition }

// MissingNameError reports an external node that exposes no name. Path
// locates the node by child indices from the root, e.g. "$.children[2]".
type MissingNameError struct {
	Path string
	Got  string // Go type of the offending node
}

func (e *MissingNameError) Error() string {
	return fmt.Sprintf("external node %s (%s) does not have a name", e.Path, e.Got)
}

func (e *MissingNameError) Unwrap() error { return types.ErrMissingName }

// ShapeError reports impossible geometry: a negative explicit offset, a
// negative inferred length, or arithmetic that overflows int64.
type ShapeError struct {
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("region %s: %s", e.Path, e.Reason)
}

func (e *ShapeError) Unwrap() error { return types.ErrShape }
