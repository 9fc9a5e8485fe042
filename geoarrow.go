// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

// Package geoarrow implements columnar arrays of vector geometries using
// the GeoArrow nested-list memory layout.
//
// An array of one geometry kind is a set of flat coordinate buffers plus
// zero to three levels of offsets, one per nesting depth:
//   - PointArray: no offsets, one coordinate per slot
//   - LineStringArray, MultiPointArray: geometry -> coordinates
//   - PolygonArray, MultiLineStringArray: geometry -> rings -> coordinates
//   - MultiPolygonArray: geometry -> polygons -> rings -> coordinates
//
// plus WKBArray, which stores each geometry as opaque WKB bytes.
//
// Arrays are immutable and share their buffers by reference: slicing
// re-windows the outermost offset level and the validity mask in O(1) and
// never copies coordinates, so arrays are safe to share read-only across
// goroutines. Builders are the exclusive-owner mutable counterpart and
// freeze into an array with Finish.
//
// Every array converts losslessly to and from the equivalent Arrow
// list-of-list-of-struct{x,y} value (ToArrow, NewXxxArrayFromArrow,
// FromArrow), streams through the Processor visitor protocol for
// serialization, and bulk-loads the geoindex spatial index.
package geoarrow

import (
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/twpayne/go-geom"
)

// GeometryType tags the members of the closed geometry-kind set. Adding a
// kind is a whole-system change: every consumer dispatches on exactly
// this set.
type GeometryType int

const (
	TypePoint GeometryType = iota
	TypeLineString
	TypePolygon
	TypeMultiPoint
	TypeMultiLineString
	TypeMultiPolygon
	TypeWKB
)

// String implements fmt.Stringer.
func (t GeometryType) String() string {
	switch t {
	case TypePoint:
		return "Point"
	case TypeLineString:
		return "LineString"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypeMultiLineString:
		return "MultiLineString"
	case TypeMultiPolygon:
		return "MultiPolygon"
	case TypeWKB:
		return "WKB"
	default:
		return "Unknown"
	}
}

// GeometryArray is the capability surface common to the seven concrete
// array kinds. The set is closed: only this package's array types
// implement it, and consumers dispatch on GeometryType or by type switch.
type GeometryArray interface {
	// Len returns the number of geometries, nulls included.
	Len() int
	// GeometryType returns the kind tag of the array.
	GeometryType() GeometryType
	// Validity returns the optional validity mask; nil means all-valid.
	Validity() *Bitmap
	// IsNull reports whether slot i holds a null geometry.
	IsNull(i int) bool
	// Geometry returns the non-owning view of slot i, ignoring validity.
	// The view is valid only while the array is alive.
	Geometry(i int) Geometry
	// Slice returns a zero-copy window of length geometries starting at
	// offset, or ErrBoundsViolation when offset+length exceeds Len.
	Slice(offset, length int) (GeometryArray, error)
	// SliceUnchecked is the trusted-caller twin of Slice.
	SliceUnchecked(offset, length int) GeometryArray
	// ToArrow converts the array to its canonical Arrow representation,
	// sharing the coordinate buffers.
	ToArrow() arrow.Array
	// Process streams the array through a Processor, slot by slot.
	Process(p Processor) error

	sealed()
}

// Geometry is a non-owning scalar view onto one slot of a GeometryArray.
// It holds references into the parent's buffers and must not outlive the
// parent; Geom copies out into an owned go-geom value.
type Geometry interface {
	// GeometryType returns the kind tag of the view.
	GeometryType() GeometryType
	// BoundingBox returns the envelope of the geometry.
	BoundingBox() BoundingBox
	// Geom copies the view out into an owned go-geom value. It fails
	// only for WKB views whose bytes do not decode.
	Geom() (geom.T, error)
}

// checkArray performs the shallow construction-time validation shared by
// every nested kind: coordinate buffers of equal length and, when a mask
// is present, one bit per geometry. Offset monotonicity beyond endpoints
// is deliberately not verified here; re-validating it would make O(1)
// construction and slicing O(n), so deep checks stay the caller's
// contract.
func checkArray(x, y []float64, validity *Bitmap, geometryCount int) error {
	if len(x) != len(y) {
		return invariantViolationf(
			"x and y buffers must have the same length: %d != %d", len(x), len(y))
	}
	if validity != nil && validity.Len() != geometryCount {
		return invariantViolationf(
			"validity mask length %d must match geometry count %d",
			validity.Len(), geometryCount)
	}
	return nil
}

// appendFlatCoords interleaves the coordinate range [start, end) of the
// shared buffers onto flat.
func appendFlatCoords(flat, x, y []float64, start, end int64) []float64 {
	for i := start; i < end; i++ {
		flat = append(flat, x[i], y[i])
	}
	return flat
}

// appendXYFlat de-interleaves a go-geom flat coordinate sequence onto the
// builder's x/y buffers, dropping any z/m dimensions.
func appendXYFlat(x, y, flat []float64, stride int) ([]float64, []float64) {
	for i := 0; i+1 < len(flat); i += stride {
		x = append(x, flat[i])
		y = append(y, flat[i+1])
	}
	return x, y
}

// checkSlice validates the bounds of a checked Slice call.
func checkSlice(offset, length, n int) error {
	if offset < 0 || length < 0 || offset+length > n {
		return boundsViolationf(
			"slice [%d, %d+%d) out of bounds for array of length %d",
			offset, offset, length, n)
	}
	return nil
}
