// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

// Offsets is one level of the nested offset hierarchy: a window over a
// shared buffer of monotonically non-decreasing int64 counts. Entry i and
// i+1 bound the half-open range of the next finer level (or of the
// coordinate buffers at the innermost level) occupied by element i.
//
// Offsets are cumulative counts, never deltas, so random access to any
// element is two buffer reads. The backing buffer is shared, not copied,
// by every window derived from it; offset values always stay absolute
// into the unsliced child level.
type Offsets struct {
	buf []int64
}

// NewOffsets wraps buf as an offset level after shallow validation: the
// buffer must be non-empty (an empty array still carries the single
// terminal zero) and its endpoints must be ordered. Deep monotonicity is
// the caller's contract; validating it would make construction O(n).
func NewOffsets(buf []int64) (Offsets, error) {
	if len(buf) == 0 {
		return Offsets{}, invariantViolationf("offsets buffer must have at least one entry")
	}
	if buf[0] > buf[len(buf)-1] {
		return Offsets{}, invariantViolationf(
			"offsets endpoints out of order: %d > %d", buf[0], buf[len(buf)-1])
	}
	return Offsets{buf: buf}, nil
}

// NewOffsetsUnchecked is the trusted-caller twin of NewOffsets.
func NewOffsetsUnchecked(buf []int64) Offsets {
	return Offsets{buf: buf}
}

// Len returns the number of elements described by this level.
func (o Offsets) Len() int {
	if len(o.buf) == 0 {
		return 0
	}
	return len(o.buf) - 1
}

// StartEnd returns the half-open range of element i in the next level.
func (o Offsets) StartEnd(i int) (int64, int64) {
	return o.buf[i], o.buf[i+1]
}

// First returns the lowest index into the next level reachable through
// this window.
func (o Offsets) First() int64 {
	return o.buf[0]
}

// Last returns one past the highest index into the next level reachable
// through this window.
func (o Offsets) Last() int64 {
	return o.buf[len(o.buf)-1]
}

// Values returns the underlying buffer window, length Len()+1. The
// buffer is shared; callers must not mutate it.
func (o Offsets) Values() []int64 {
	return o.buf
}

// Slice re-windows this level to length elements starting at offset.
// The backing buffer is shared, not copied. The caller must ensure
// offset+length <= Len().
func (o Offsets) Slice(offset, length int) Offsets {
	return Offsets{buf: o.buf[offset : offset+length+1]}
}
