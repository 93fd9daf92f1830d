package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // malformed headers/signatures (e.g., bad "regf")
	ErrKindCorrupt                    // structural corruption (bad sizes/offsets/tags)
	ErrKindUnsupported                // input format we cannot dissect
	ErrKindPosition                   // region offset cannot be derived
	ErrKindName                       // external node without a name
	ErrKindShape                      // region tree with impossible geometry
	ErrKindLimit                      // configured limit exceeded
)

// String returns the lowercase name of the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindPosition:
		return "position"
	case ErrKindName:
		return "name"
	case ErrKindShape:
		return "shape"
	case ErrKindLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrCorrupt)
// holds for every corruption error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && t.Kind == e.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrFormat indicates input that does not match the format it claims to be.
	ErrFormat = &Error{Kind: ErrKindFormat, Msg: "malformed input"}
	// ErrCorrupt indicates non-recoverable structural inconsistency in the input.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt input structure"}
	// ErrUnsupported indicates an input format no producer can dissect.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported input format"}
	// ErrMissingPosition indicates a region whose offset cannot be derived from
	// an explicit offset, its children, or an older sibling.
	ErrMissingPosition = &Error{Kind: ErrKindPosition, Msg: "region has no derivable offset"}
	// ErrMissingName indicates an external tree node that exposes no name.
	ErrMissingName = &Error{Kind: ErrKindName, Msg: "external node has no name"}
	// ErrShape indicates a region tree with impossible geometry
	// (negative offsets or spans).
	ErrShape = &Error{Kind: ErrKindShape, Msg: "invalid region geometry"}
	// ErrLimit indicates a configured structural limit was exceeded.
	ErrLimit = &Error{Kind: ErrKindLimit, Msg: "region tree limit exceeded"}
)

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
