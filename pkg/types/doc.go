// Package types holds the stable error categories shared by the regionkit
// packages.
//
// Every failure surfaced by the region tree, its adapter, and the producers
// unwraps to one of the sentinels declared here, so callers can branch with
// errors.Is on intent rather than matching message text:
//
//	if errors.Is(err, types.ErrMissingPosition) {
//		// the input tree needs an explicit offset somewhere
//	}
//
// This package has no dependencies beyond the standard library.
package types
