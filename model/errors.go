package model

import "errors"

var (
	// ErrInvalidBBox is returned for a bounding box whose edges are inverted
	// or not finite
	ErrInvalidBBox = errors.New("strata: invalid bounding box")

	// ErrNilFragment is returned when a page contains a nil fragment
	ErrNilFragment = errors.New("strata: nil fragment")

	// ErrPageMismatch is returned when a fragment's bounding box names a page
	// other than the one it was delivered on
	ErrPageMismatch = errors.New("strata: fragment page mismatch")

	// ErrConservation is returned when a tree does not contain every input
	// fragment exactly once and in input order
	ErrConservation = errors.New("strata: fragment conservation violated")
)
