package ast

import (
	"fmt"

	"github.com/joshuapare/regionkit/pkg/types"
)

// Limits bounds the trees accepted from external parsers, preventing
// resource exhaustion on hostile or malformed input. A zero field disables
// that check; the zero Limits accepts everything.
type Limits struct {
	// MaxTreeDepth is the maximum nesting depth. The root is at depth 0.
	MaxTreeDepth int

	// MaxChildren is the maximum number of children of a single node.
	MaxChildren int

	// MaxNodes is the maximum number of nodes in the whole tree.
	MaxNodes int

	// MaxValueSize is the maximum size of a single region value in bytes.
	MaxValueSize int

	// MaxNameLen is the maximum length of a region name in bytes.
	MaxNameLen int
}

// DefaultLimits returns limits suited to dissecting ordinary files.
func DefaultLimits() Limits {
	return Limits{
		MaxTreeDepth: DefaultMaxTreeDepth,
		MaxChildren:  DefaultMaxChildren,
		MaxNodes:     DefaultMaxNodes,
		MaxValueSize: DefaultMaxValueSize,
		MaxNameLen:   DefaultMaxNameLen,
	}
}

// RelaxedLimits returns permissive limits for very large or very deep inputs.
// Use with caution - these allow trees that take a lot of memory to hold.
func RelaxedLimits() Limits {
	return Limits{
		MaxTreeDepth: RelaxedMaxTreeDepth,
		MaxNodes:     RelaxedMaxNodes,
		MaxValueSize: RelaxedMaxValueSize,
		MaxNameLen:   DefaultMaxNameLen,
	}
}

// StrictLimits returns conservative limits for untrusted input in
// constrained environments.
func StrictLimits() Limits {
	return Limits{
		MaxTreeDepth: StrictMaxTreeDepth,
		MaxChildren:  StrictMaxChildren,
		MaxNodes:     StrictMaxNodes,
		MaxValueSize: StrictMaxValueSize,
		MaxNameLen:   StrictMaxNameLen,
	}
}

// ValidationError represents a limit validation failure.
type ValidationError struct {
	Limit    string // Name of the limit that was exceeded
	Current  int64  // Current value
	Maximum  int64  // Maximum allowed value
	NodePath string // Path to the node (if applicable)
}

func (e *ValidationError) Error() string {
	if e.NodePath != "" {
		return fmt.Sprintf("region limit exceeded at '%s': %s is %d (max %d)",
			e.NodePath, e.Limit, e.Current, e.Maximum)
	}
	return fmt.Sprintf("region limit exceeded: %s is %d (max %d)",
		e.Limit, e.Current, e.Maximum)
}

func (e *ValidationError) Unwrap() error { return types.ErrLimit }

// exceeds reports whether current is over a non-zero maximum.
func exceeds(current, maximum int) bool {
	return maximum > 0 && current > maximum
}

// checkNode validates the per-node limits. path is computed lazily because
// it is only needed on failure.
func (l Limits) checkNode(name string, valueLen, children, depth int, path func() string) error {
	switch {
	case exceeds(len(name), l.MaxNameLen):
		return &ValidationError{Limit: "MaxNameLen", Current: int64(len(name)), Maximum: int64(l.MaxNameLen), NodePath: path()}
	case exceeds(valueLen, l.MaxValueSize):
		return &ValidationError{Limit: "MaxValueSize", Current: int64(valueLen), Maximum: int64(l.MaxValueSize), NodePath: path()}
	case exceeds(children, l.MaxChildren):
		return &ValidationError{Limit: "MaxChildren", Current: int64(children), Maximum: int64(l.MaxChildren), NodePath: path()}
	case exceeds(depth, l.MaxTreeDepth):
		return &ValidationError{Limit: "MaxTreeDepth", Current: int64(depth), Maximum: int64(l.MaxTreeDepth), NodePath: path()}
	}
	return nil
}

// Validate checks the subtree rooted at n against limits and returns the
// first violation.
func (n *Node) Validate(limits Limits) error {
	var (
		err   error
		count int
	)
	n.Walk(func(node *Node, depth int) bool {
		if err != nil {
			return false
		}
		count++
		if exceeds(count, limits.MaxNodes) {
			err = &ValidationError{Limit: "MaxNodes", Current: int64(count), Maximum: int64(limits.MaxNodes)}
			return false
		}
		err = limits.checkNode(node.name, len(node.value), len(node.children), depth, node.Path)
		return err == nil
	})
	return err
}
