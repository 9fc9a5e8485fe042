// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import "github.com/cockroachdb/errors"

// Sentinel errors for the three failure classes of the checked entry
// points. Callers are expected to test with errors.Is; the error returned
// by a constructor or slice carries a formatted detail message on top of
// one of these marks.
var (
	// ErrInvariantViolation is returned by checked constructors when the
	// structural invariants of an array do not hold (x/y length mismatch,
	// validity length mismatch).
	ErrInvariantViolation = errors.New("geoarrow: invariant violation")

	// ErrBoundsViolation is returned by checked slicing when
	// offset+length exceeds the array length.
	ErrBoundsViolation = errors.New("geoarrow: bounds violation")

	// ErrIncompatibleLayout is returned when a foreign Arrow array does
	// not have the nested layout expected for the target geometry kind.
	ErrIncompatibleLayout = errors.New("geoarrow: incompatible arrow layout")
)

func invariantViolationf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvariantViolation)
}

func boundsViolationf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrBoundsViolation)
}

func incompatibleLayoutf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrIncompatibleLayout)
}
