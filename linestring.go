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

// LineStringArray is an immutable array of linestrings, semantically a
// []*geom.LineString with nulls. Depth 1: one offset level maps each
// geometry to its coordinate range.
type LineStringArray struct {
	x, y        []float64
	geomOffsets Offsets
	validity    *Bitmap
}

var _ GeometryArray = (*LineStringArray)(nil)

// NewLineStringArray validates the shared-buffer invariants and
// constructs an array in O(1).
func NewLineStringArray(
	x, y []float64, geomOffsets Offsets, validity *Bitmap,
) (*LineStringArray, error) {
	if err := checkArray(x, y, validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return NewLineStringArrayUnchecked(x, y, geomOffsets, validity), nil
}

// NewLineStringArrayUnchecked is the trusted-caller twin of
// NewLineStringArray.
func NewLineStringArrayUnchecked(
	x, y []float64, geomOffsets Offsets, validity *Bitmap,
) *LineStringArray {
	return &LineStringArray{x: x, y: y, geomOffsets: geomOffsets, validity: validity}
}

func (a *LineStringArray) sealed() {}

// Len returns the number of linestrings, nulls included.
func (a *LineStringArray) Len() int { return a.geomOffsets.Len() }

// GeometryType implements GeometryArray.
func (a *LineStringArray) GeometryType() GeometryType { return TypeLineString }

// Validity returns the optional validity mask.
func (a *LineStringArray) Validity() *Bitmap { return a.validity }

// IsNull reports whether slot i is null.
func (a *LineStringArray) IsNull(i int) bool {
	return a.validity != nil && !a.validity.IsSet(i)
}

// Value returns the view of slot i, ignoring validity.
func (a *LineStringArray) Value(i int) LineString {
	return LineString{x: a.x, y: a.y, geomOffsets: a.geomOffsets, index: i}
}

// Geometry implements GeometryArray.
func (a *LineStringArray) Geometry(i int) Geometry { return a.Value(i) }

// Get returns the owned go-geom value of slot i, or nil when the slot is
// null.
func (a *LineStringArray) Get(i int) *geom.LineString {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i).GeomLineString()
}

// Slice re-windows the outer offset level and the validity mask in O(1).
// The coordinate buffers are untouched: offsets stay absolute into the
// full buffers.
func (a *LineStringArray) Slice(offset, length int) (GeometryArray, error) {
	if err := checkSlice(offset, length, a.Len()); err != nil {
		return nil, err
	}
	return a.SliceUnchecked(offset, length), nil
}

// SliceUnchecked is the trusted-caller twin of Slice.
func (a *LineStringArray) SliceUnchecked(offset, length int) GeometryArray {
	return &LineStringArray{
		x:           a.x,
		y:           a.y,
		geomOffsets: a.geomOffsets.Slice(offset, length),
		validity:    a.validity.Slice(offset, length),
	}
}

// AsMultiPointArray reinterprets the array as multipoints. The two kinds
// share one physical layout, so this is a semantic retag with no copy.
func (a *LineStringArray) AsMultiPointArray() *MultiPointArray {
	return NewMultiPointArrayUnchecked(a.x, a.y, a.geomOffsets, a.validity)
}

// ToArrow converts the array to a large list of struct{x, y} over the
// shared buffers.
func (a *LineStringArray) ToArrow() arrow.Array {
	return array.MakeFromData(largeListData(
		lineStringArrowType, a.geomOffsets, coordData(a.x, a.y, nil), a.validity))
}

// NewLineStringArrayFromArrow imports a foreign list-of-struct{x, y}
// array, sharing its buffers. ErrIncompatibleLayout when the nesting does
// not match.
func NewLineStringArrayFromArrow(arr arrow.Array) (*LineStringArray, error) {
	l, err := asLargeList(arr, "geometry")
	if err != nil {
		return nil, err
	}
	x, y, _, err := coordBuffers(l.ListValues(), false)
	if err != nil {
		return nil, err
	}
	return NewLineStringArray(x, y, listOffsets(l), listValidity(l))
}

// Process implements GeometryArray.
func (a *LineStringArray) Process(p Processor) error {
	if err := p.CollectionBegin(a.Len()); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		cs, ce := a.geomOffsets.StartEnd(i)
		if err := p.LineStringBegin(true, int(ce-cs), i); err != nil {
			return err
		}
		if err := processCoordRange(p, a.x, a.y, cs, ce); err != nil {
			return err
		}
		if err := p.LineStringEnd(true, i); err != nil {
			return err
		}
	}
	return p.CollectionEnd()
}

// LineString is the non-owning view of one slot of a LineStringArray.
// Polygon kinds reuse it as the view of a single ring.
type LineString struct {
	x, y        []float64
	geomOffsets Offsets
	index       int
}

var _ Geometry = LineString{}

// NumPoints returns the number of points in the linestring.
func (g LineString) NumPoints() int {
	start, end := g.geomOffsets.StartEnd(g.index)
	return int(end - start)
}

// Point returns the view of point i of the linestring.
func (g LineString) Point(i int) Point {
	start, _ := g.geomOffsets.StartEnd(g.index)
	return Point{x: g.x, y: g.y, index: int(start) + i}
}

// GeometryType implements Geometry.
func (g LineString) GeometryType() GeometryType { return TypeLineString }

// BoundingBox implements Geometry.
func (g LineString) BoundingBox() BoundingBox {
	start, end := g.geomOffsets.StartEnd(g.index)
	return boundingBoxCoords(g.x, g.y, start, end)
}

func (g LineString) flatCoords() []float64 {
	start, end := g.geomOffsets.StartEnd(g.index)
	return appendFlatCoords(make([]float64, 0, 2*(end-start)), g.x, g.y, start, end)
}

// GeomLineString copies the view out into an owned go-geom linestring.
func (g LineString) GeomLineString() *geom.LineString {
	return geom.NewLineStringFlat(geom.XY, g.flatCoords())
}

// GeomLinearRing copies the view out as an owned linear ring, for use
// when the view denotes a polygon ring.
func (g LineString) GeomLinearRing() *geom.LinearRing {
	return geom.NewLinearRingFlat(geom.XY, g.flatCoords())
}

// Geom implements Geometry.
func (g LineString) Geom() (geom.T, error) { return g.GeomLineString(), nil }

// LineStringBuilder is the append-only mutable counterpart of a
// LineStringArray.
type LineStringBuilder struct {
	x, y        []float64
	geomOffsets []int64
	validity    bitmapBuilder
}

// NewLineStringBuilder returns an empty builder.
func NewLineStringBuilder() *LineStringBuilder {
	return &LineStringBuilder{geomOffsets: []int64{0}}
}

// Reserve grows capacity ahead of geoms pushes totalling coords
// coordinates. Performance hint only.
func (b *LineStringBuilder) Reserve(geoms, coords int) {
	b.x = slices.Grow(b.x, coords)
	b.y = slices.Grow(b.y, coords)
	b.geomOffsets = slices.Grow(b.geomOffsets, geoms)
	b.validity.reserve(geoms)
}

// Len returns the number of geometries pushed so far.
func (b *LineStringBuilder) Len() int { return len(b.geomOffsets) - 1 }

// Push appends one go-geom linestring, or a null when ls is nil. Only
// the x/y dimensions are kept.
func (b *LineStringBuilder) Push(ls *geom.LineString) {
	if ls == nil {
		b.PushNull()
		return
	}
	b.x, b.y = appendXYFlat(b.x, b.y, ls.FlatCoords(), ls.Stride())
	b.geomOffsets = append(b.geomOffsets, int64(len(b.x)))
	b.validity.append(true)
}

// PushNull appends a null slot: the previous offset repeats and nothing
// lands in the finer levels.
func (b *LineStringBuilder) PushNull() {
	b.geomOffsets = append(b.geomOffsets, int64(len(b.x)))
	b.validity.append(false)
}

// Finish freezes the builder into an immutable array. The builder must
// not be used afterwards.
func (b *LineStringBuilder) Finish() *LineStringArray {
	return NewLineStringArrayUnchecked(
		b.x, b.y, NewOffsetsUnchecked(b.geomOffsets), b.validity.finish())
}
