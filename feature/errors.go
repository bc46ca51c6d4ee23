package feature

import "errors"

var (
	// ErrConfig reports non-positive or mismatched lengths and parameters.
	ErrConfig = errors.New("configuration error")

	// ErrNumeric reports a numeric edge case: a degenerate window or
	// non-finite values produced by log compression.
	ErrNumeric = errors.New("numeric edge case")
)
