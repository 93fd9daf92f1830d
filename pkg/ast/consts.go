package ast

const (
	// ============================================================================
	// Limits presets
	// ============================================================================
	// Dissectors run on untrusted input, so trees loaded from external parsers
	// are bounded. A zero field in Limits disables that check.

	// DefaultMaxTreeDepth is the maximum nesting depth accepted by DefaultLimits.
	DefaultMaxTreeDepth = 1 << 16

	// RelaxedMaxTreeDepth allows degenerate, list-like trees produced by
	// recursive descent parsers.
	RelaxedMaxTreeDepth = 1 << 20

	// StrictMaxTreeDepth is a conservative depth for constrained environments.
	StrictMaxTreeDepth = 1 << 10

	// DefaultMaxChildren is the maximum arity of one node under DefaultLimits.
	DefaultMaxChildren = 1 << 20

	// StrictMaxChildren is the maximum arity under StrictLimits.
	StrictMaxChildren = 1 << 14

	// DefaultMaxNodes bounds the total node count under DefaultLimits.
	DefaultMaxNodes = 1 << 24

	// RelaxedMaxNodes bounds the total node count under RelaxedLimits.
	RelaxedMaxNodes = 1 << 28

	// StrictMaxNodes bounds the total node count under StrictLimits.
	StrictMaxNodes = 1 << 18

	// DefaultMaxValueSize is the largest value a single region may carry (64 MB).
	DefaultMaxValueSize = 64 << 20

	// RelaxedMaxValueSize is the largest value under RelaxedLimits (1 GB).
	RelaxedMaxValueSize = 1 << 30

	// StrictMaxValueSize is the largest value under StrictLimits (1 MB).
	StrictMaxValueSize = 1 << 20

	// DefaultMaxNameLen is the longest region name accepted, in bytes.
	DefaultMaxNameLen = 4096

	// StrictMaxNameLen is the longest region name under StrictLimits.
	StrictMaxNameLen = 255

	// PathSeparator joins region names in node paths and error messages.
	PathSeparator = "/"
)
