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

// MultiLineStringArray is an immutable array of multilinestrings,
// semantically a []*geom.MultiLineString with nulls. It shares its
// physical layout (depth 2) with PolygonArray; only the semantic tag
// differs.
type MultiLineStringArray struct {
	x, y        []float64
	geomOffsets Offsets
	lineOffsets Offsets
	validity    *Bitmap
}

var _ GeometryArray = (*MultiLineStringArray)(nil)

// NewMultiLineStringArray validates the shared-buffer invariants and
// constructs an array in O(1).
func NewMultiLineStringArray(
	x, y []float64, geomOffsets, lineOffsets Offsets, validity *Bitmap,
) (*MultiLineStringArray, error) {
	if err := checkArray(x, y, validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return NewMultiLineStringArrayUnchecked(x, y, geomOffsets, lineOffsets, validity), nil
}

// NewMultiLineStringArrayUnchecked is the trusted-caller twin of
// NewMultiLineStringArray.
func NewMultiLineStringArrayUnchecked(
	x, y []float64, geomOffsets, lineOffsets Offsets, validity *Bitmap,
) *MultiLineStringArray {
	return &MultiLineStringArray{
		x: x, y: y, geomOffsets: geomOffsets, lineOffsets: lineOffsets, validity: validity,
	}
}

func (a *MultiLineStringArray) sealed() {}

// Len returns the number of multilinestrings, nulls included.
func (a *MultiLineStringArray) Len() int { return a.geomOffsets.Len() }

// GeometryType implements GeometryArray.
func (a *MultiLineStringArray) GeometryType() GeometryType { return TypeMultiLineString }

// Validity returns the optional validity mask.
func (a *MultiLineStringArray) Validity() *Bitmap { return a.validity }

// IsNull reports whether slot i is null.
func (a *MultiLineStringArray) IsNull(i int) bool {
	return a.validity != nil && !a.validity.IsSet(i)
}

// Value returns the view of slot i, ignoring validity.
func (a *MultiLineStringArray) Value(i int) MultiLineString {
	return MultiLineString{
		x: a.x, y: a.y, geomOffsets: a.geomOffsets, lineOffsets: a.lineOffsets, index: i,
	}
}

// Geometry implements GeometryArray.
func (a *MultiLineStringArray) Geometry(i int) Geometry { return a.Value(i) }

// Get returns the owned go-geom value of slot i, or nil when the slot is
// null.
func (a *MultiLineStringArray) Get(i int) *geom.MultiLineString {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i).GeomMultiLineString()
}

// Slice re-windows the outer offset level and the validity mask in O(1).
func (a *MultiLineStringArray) Slice(offset, length int) (GeometryArray, error) {
	if err := checkSlice(offset, length, a.Len()); err != nil {
		return nil, err
	}
	return a.SliceUnchecked(offset, length), nil
}

// SliceUnchecked is the trusted-caller twin of Slice.
func (a *MultiLineStringArray) SliceUnchecked(offset, length int) GeometryArray {
	return &MultiLineStringArray{
		x:           a.x,
		y:           a.y,
		geomOffsets: a.geomOffsets.Slice(offset, length),
		lineOffsets: a.lineOffsets,
		validity:    a.validity.Slice(offset, length),
	}
}

// AsPolygonArray reinterprets the array as polygons, reading each line
// as a ring; the inverse of PolygonArray.AsMultiLineStringArray. The
// lines are not checked for closure.
func (a *MultiLineStringArray) AsPolygonArray() *PolygonArray {
	return NewPolygonArrayUnchecked(a.x, a.y, a.geomOffsets, a.lineOffsets, a.validity)
}

// ToArrow converts the array to a large list of large lists of
// struct{x, y} over the shared buffers.
func (a *MultiLineStringArray) ToArrow() arrow.Array {
	lines := largeListData(
		innerVertexListType, a.lineOffsets, coordData(a.x, a.y, nil), nil)
	return array.MakeFromData(largeListData(
		multiLineStringArrowType, a.geomOffsets, lines, a.validity))
}

// NewMultiLineStringArrayFromArrow imports a foreign
// list-of-list-of-struct{x, y} array, sharing its buffers.
// ErrIncompatibleLayout when the nesting does not match or interior
// levels carry nulls.
func NewMultiLineStringArrayFromArrow(arr arrow.Array) (*MultiLineStringArray, error) {
	outer, err := asLargeList(arr, "geometry")
	if err != nil {
		return nil, err
	}
	lines, err := asLargeList(outer.ListValues(), "line")
	if err != nil {
		return nil, err
	}
	if err := requireInteriorNonNull(lines, "line"); err != nil {
		return nil, err
	}
	x, y, _, err := coordBuffers(lines.ListValues(), false)
	if err != nil {
		return nil, err
	}
	return NewMultiLineStringArray(
		x, y, listOffsets(outer), listOffsets(lines), listValidity(outer))
}

// Process implements GeometryArray.
func (a *MultiLineStringArray) Process(p Processor) error {
	if err := p.CollectionBegin(a.Len()); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		ls, le := a.geomOffsets.StartEnd(i)
		if err := p.MultiLineStringBegin(int(le-ls), i); err != nil {
			return err
		}
		if err := processRings(p, a.x, a.y, a.lineOffsets, ls, le); err != nil {
			return err
		}
		if err := p.MultiLineStringEnd(i); err != nil {
			return err
		}
	}
	return p.CollectionEnd()
}

// MultiLineString is the non-owning view of one slot of a
// MultiLineStringArray.
type MultiLineString struct {
	x, y        []float64
	geomOffsets Offsets
	lineOffsets Offsets
	index       int
}

var _ Geometry = MultiLineString{}

// NumLineStrings returns the number of lines in the multilinestring.
func (g MultiLineString) NumLineStrings() int {
	start, end := g.geomOffsets.StartEnd(g.index)
	return int(end - start)
}

// LineString returns the view of line i of the multilinestring.
func (g MultiLineString) LineString(i int) LineString {
	start, _ := g.geomOffsets.StartEnd(g.index)
	return LineString{x: g.x, y: g.y, geomOffsets: g.lineOffsets, index: int(start) + i}
}

// GeometryType implements Geometry.
func (g MultiLineString) GeometryType() GeometryType { return TypeMultiLineString }

// BoundingBox implements Geometry.
func (g MultiLineString) BoundingBox() BoundingBox {
	ls, le := g.geomOffsets.StartEnd(g.index)
	if ls == le {
		return NewBoundingBox()
	}
	cs, _ := g.lineOffsets.StartEnd(int(ls))
	_, ce := g.lineOffsets.StartEnd(int(le) - 1)
	return boundingBoxCoords(g.x, g.y, cs, ce)
}

// GeomMultiLineString copies the view out into an owned go-geom
// multilinestring.
func (g MultiLineString) GeomMultiLineString() *geom.MultiLineString {
	ls, le := g.geomOffsets.StartEnd(g.index)
	if ls == le {
		return geom.NewMultiLineString(geom.XY)
	}
	cs, _ := g.lineOffsets.StartEnd(int(ls))
	_, ce := g.lineOffsets.StartEnd(int(le) - 1)
	flat := appendFlatCoords(make([]float64, 0, 2*(ce-cs)), g.x, g.y, cs, ce)
	ends := make([]int, 0, le-ls)
	for l := ls; l < le; l++ {
		_, e := g.lineOffsets.StartEnd(int(l))
		ends = append(ends, 2*int(e-cs))
	}
	return geom.NewMultiLineStringFlat(geom.XY, flat, ends)
}

// Geom implements Geometry.
func (g MultiLineString) Geom() (geom.T, error) { return g.GeomMultiLineString(), nil }

// MultiLineStringBuilder is the append-only mutable counterpart of a
// MultiLineStringArray.
type MultiLineStringBuilder struct {
	x, y        []float64
	geomOffsets []int64
	lineOffsets []int64
	validity    bitmapBuilder
}

// NewMultiLineStringBuilder returns an empty builder.
func NewMultiLineStringBuilder() *MultiLineStringBuilder {
	return &MultiLineStringBuilder{geomOffsets: []int64{0}, lineOffsets: []int64{0}}
}

// Reserve grows capacity ahead of geoms pushes totalling lines lines and
// coords coordinates. Performance hint only.
func (b *MultiLineStringBuilder) Reserve(geoms, lines, coords int) {
	b.x = slices.Grow(b.x, coords)
	b.y = slices.Grow(b.y, coords)
	b.geomOffsets = slices.Grow(b.geomOffsets, geoms)
	b.lineOffsets = slices.Grow(b.lineOffsets, lines)
	b.validity.reserve(geoms)
}

// Len returns the number of geometries pushed so far.
func (b *MultiLineStringBuilder) Len() int { return len(b.geomOffsets) - 1 }

// Push appends one go-geom multilinestring, or a null when mls is nil.
// Only the x/y dimensions are kept.
func (b *MultiLineStringBuilder) Push(mls *geom.MultiLineString) {
	if mls == nil {
		b.PushNull()
		return
	}
	for l := 0; l < mls.NumLineStrings(); l++ {
		line := mls.LineString(l)
		b.x, b.y = appendXYFlat(b.x, b.y, line.FlatCoords(), line.Stride())
		b.lineOffsets = append(b.lineOffsets, int64(len(b.x)))
	}
	b.geomOffsets = append(b.geomOffsets, int64(len(b.lineOffsets)-1))
	b.validity.append(true)
}

// PushNull appends a null slot: the previous offset repeats and nothing
// lands in the finer levels.
func (b *MultiLineStringBuilder) PushNull() {
	b.geomOffsets = append(b.geomOffsets, int64(len(b.lineOffsets)-1))
	b.validity.append(false)
}

// Finish freezes the builder into an immutable array. The builder must
// not be used afterwards.
func (b *MultiLineStringBuilder) Finish() *MultiLineStringArray {
	return NewMultiLineStringArrayUnchecked(
		b.x, b.y,
		NewOffsetsUnchecked(b.geomOffsets),
		NewOffsetsUnchecked(b.lineOffsets),
		b.validity.finish())
}
