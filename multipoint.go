// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"slices"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/twpayne/go-geom"
)

// MultiPointArray is an immutable array of multipoints, semantically a
// []*geom.MultiPoint with nulls. It shares its physical layout (depth 1)
// with LineStringArray; only the semantic tag differs.
type MultiPointArray struct {
	x, y        []float64
	geomOffsets Offsets
	validity    *Bitmap
}

var _ GeometryArray = (*MultiPointArray)(nil)

// NewMultiPointArray validates the shared-buffer invariants and
// constructs an array in O(1).
func NewMultiPointArray(
	x, y []float64, geomOffsets Offsets, validity *Bitmap,
) (*MultiPointArray, error) {
	if err := checkArray(x, y, validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return NewMultiPointArrayUnchecked(x, y, geomOffsets, validity), nil
}

// NewMultiPointArrayUnchecked is the trusted-caller twin of
// NewMultiPointArray.
func NewMultiPointArrayUnchecked(
	x, y []float64, geomOffsets Offsets, validity *Bitmap,
) *MultiPointArray {
	return &MultiPointArray{x: x, y: y, geomOffsets: geomOffsets, validity: validity}
}

func (a *MultiPointArray) sealed() {}

// Len returns the number of multipoints, nulls included.
func (a *MultiPointArray) Len() int { return a.geomOffsets.Len() }

// GeometryType implements GeometryArray.
func (a *MultiPointArray) GeometryType() GeometryType { return TypeMultiPoint }

// Validity returns the optional validity mask.
func (a *MultiPointArray) Validity() *Bitmap { return a.validity }

// IsNull reports whether slot i is null.
func (a *MultiPointArray) IsNull(i int) bool {
	return a.validity != nil && !a.validity.IsSet(i)
}

// Value returns the view of slot i, ignoring validity.
func (a *MultiPointArray) Value(i int) MultiPoint {
	return MultiPoint{x: a.x, y: a.y, geomOffsets: a.geomOffsets, index: i}
}

// Geometry implements GeometryArray.
func (a *MultiPointArray) Geometry(i int) Geometry { return a.Value(i) }

// Get returns the owned go-geom value of slot i, or nil when the slot is
// null.
func (a *MultiPointArray) Get(i int) *geom.MultiPoint {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i).GeomMultiPoint()
}

// Slice re-windows the outer offset level and the validity mask in O(1).
func (a *MultiPointArray) Slice(offset, length int) (GeometryArray, error) {
	if err := checkSlice(offset, length, a.Len()); err != nil {
		return nil, err
	}
	return a.SliceUnchecked(offset, length), nil
}

// SliceUnchecked is the trusted-caller twin of Slice.
func (a *MultiPointArray) SliceUnchecked(offset, length int) GeometryArray {
	return &MultiPointArray{
		x:           a.x,
		y:           a.y,
		geomOffsets: a.geomOffsets.Slice(offset, length),
		validity:    a.validity.Slice(offset, length),
	}
}

// AsLineStringArray reinterprets the array as linestrings; the inverse of
// LineStringArray.AsMultiPointArray.
func (a *MultiPointArray) AsLineStringArray() *LineStringArray {
	return NewLineStringArrayUnchecked(a.x, a.y, a.geomOffsets, a.validity)
}

// ToArrow converts the array to a large list of struct{x, y} over the
// shared buffers.
func (a *MultiPointArray) ToArrow() arrow.Array {
	return array.MakeFromData(largeListData(
		multiPointArrowType, a.geomOffsets, coordData(a.x, a.y, nil), a.validity))
}

// NewMultiPointArrayFromArrow imports a foreign list-of-struct{x, y}
// array, sharing its buffers. ErrIncompatibleLayout when the nesting does
// not match.
func NewMultiPointArrayFromArrow(arr arrow.Array) (*MultiPointArray, error) {
	l, err := asLargeList(arr, "geometry")
	if err != nil {
		return nil, err
	}
	x, y, _, err := coordBuffers(l.ListValues(), false)
	if err != nil {
		return nil, err
	}
	return NewMultiPointArray(x, y, listOffsets(l), listValidity(l))
}

// Process implements GeometryArray.
func (a *MultiPointArray) Process(p Processor) error {
	if err := p.CollectionBegin(a.Len()); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		cs, ce := a.geomOffsets.StartEnd(i)
		if err := p.MultiPointBegin(int(ce-cs), i); err != nil {
			return err
		}
		if err := processCoordRange(p, a.x, a.y, cs, ce); err != nil {
			return err
		}
		if err := p.MultiPointEnd(i); err != nil {
			return err
		}
	}
	return p.CollectionEnd()
}

// MultiPoint is the non-owning view of one slot of a MultiPointArray.
type MultiPoint struct {
	x, y        []float64
	geomOffsets Offsets
	index       int
}

var _ Geometry = MultiPoint{}

// NumPoints returns the number of points in the multipoint.
func (g MultiPoint) NumPoints() int {
	start, end := g.geomOffsets.StartEnd(g.index)
	return int(end - start)
}

// Point returns the view of point i of the multipoint.
func (g MultiPoint) Point(i int) Point {
	start, _ := g.geomOffsets.StartEnd(g.index)
	return Point{x: g.x, y: g.y, index: int(start) + i}
}

// GeometryType implements Geometry.
func (g MultiPoint) GeometryType() GeometryType { return TypeMultiPoint }

// BoundingBox implements Geometry.
func (g MultiPoint) BoundingBox() BoundingBox {
	start, end := g.geomOffsets.StartEnd(g.index)
	return boundingBoxCoords(g.x, g.y, start, end)
}

// GeomMultiPoint copies the view out into an owned go-geom multipoint.
func (g MultiPoint) GeomMultiPoint() *geom.MultiPoint {
	start, end := g.geomOffsets.StartEnd(g.index)
	flat := appendFlatCoords(make([]float64, 0, 2*(end-start)), g.x, g.y, start, end)
	return geom.NewMultiPointFlat(geom.XY, flat)
}

// Geom implements Geometry.
func (g MultiPoint) Geom() (geom.T, error) { return g.GeomMultiPoint(), nil }

// MultiPointBuilder is the append-only mutable counterpart of a
// MultiPointArray.
type MultiPointBuilder struct {
	x, y        []float64
	geomOffsets []int64
	validity    bitmapBuilder
}

// NewMultiPointBuilder returns an empty builder.
func NewMultiPointBuilder() *MultiPointBuilder {
	return &MultiPointBuilder{geomOffsets: []int64{0}}
}

// Reserve grows capacity ahead of geoms pushes totalling coords
// coordinates. Performance hint only.
func (b *MultiPointBuilder) Reserve(geoms, coords int) {
	b.x = slices.Grow(b.x, coords)
	b.y = slices.Grow(b.y, coords)
	b.geomOffsets = slices.Grow(b.geomOffsets, geoms)
	b.validity.reserve(geoms)
}

// Len returns the number of geometries pushed so far.
func (b *MultiPointBuilder) Len() int { return len(b.geomOffsets) - 1 }

// Push appends one go-geom multipoint, or a null when mp is nil. Only
// the x/y dimensions are kept.
func (b *MultiPointBuilder) Push(mp *geom.MultiPoint) {
	if mp == nil {
		b.PushNull()
		return
	}
	b.x, b.y = appendXYFlat(b.x, b.y, mp.FlatCoords(), mp.Stride())
	b.geomOffsets = append(b.geomOffsets, int64(len(b.x)))
	b.validity.append(true)
}

// PushNull appends a null slot: the previous offset repeats and nothing
// lands in the finer levels.
func (b *MultiPointBuilder) PushNull() {
	b.geomOffsets = append(b.geomOffsets, int64(len(b.x)))
	b.validity.append(false)
}

// Finish freezes the builder into an immutable array. The builder must
// not be used afterwards.
func (b *MultiPointBuilder) Finish() *MultiPointArray {
	return NewMultiPointArrayUnchecked(
		b.x, b.y, NewOffsetsUnchecked(b.geomOffsets), b.validity.finish())
}
