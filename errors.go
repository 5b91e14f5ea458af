package nbs

import "errors"

var (
	// ErrInvalidArgument reports a malformed call: an unknown tail, mismatched
	// node counts between the two groups, a non-positive permutation count, or
	// similar parameter problems.
	ErrInvalidArgument = errors.New("nbs: invalid argument")

	// ErrInsufficientSample reports a group with fewer than two subjects, for
	// which the unbiased variance is undefined.
	ErrInsufficientSample = errors.New("nbs: insufficient sample")
)
