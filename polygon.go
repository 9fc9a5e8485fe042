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

// PolygonArray is an immutable array of polygons, semantically a
// []*geom.Polygon with nulls. Two offset levels nest over the shared
// coordinate buffers: geomOffsets groups rings into polygons and
// ringOffsets groups coordinates into rings. Ring 0 of each polygon is
// the exterior, the rest are holes.
type PolygonArray struct {
	x, y        []float64
	geomOffsets Offsets
	ringOffsets Offsets
	validity    *Bitmap
}

var _ GeometryArray = (*PolygonArray)(nil)

// NewPolygonArray validates the shared-buffer invariants and constructs
// an array in O(1).
func NewPolygonArray(
	x, y []float64, geomOffsets, ringOffsets Offsets, validity *Bitmap,
) (*PolygonArray, error) {
	if err := checkArray(x, y, validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return NewPolygonArrayUnchecked(x, y, geomOffsets, ringOffsets, validity), nil
}

// NewPolygonArrayUnchecked is the trusted-caller twin of NewPolygonArray.
func NewPolygonArrayUnchecked(
	x, y []float64, geomOffsets, ringOffsets Offsets, validity *Bitmap,
) *PolygonArray {
	return &PolygonArray{
		x: x, y: y, geomOffsets: geomOffsets, ringOffsets: ringOffsets, validity: validity,
	}
}

func (a *PolygonArray) sealed() {}

// Len returns the number of polygons, nulls included.
func (a *PolygonArray) Len() int { return a.geomOffsets.Len() }

// GeometryType implements GeometryArray.
func (a *PolygonArray) GeometryType() GeometryType { return TypePolygon }

// Validity returns the optional validity mask.
func (a *PolygonArray) Validity() *Bitmap { return a.validity }

// IsNull reports whether slot i is null.
func (a *PolygonArray) IsNull(i int) bool {
	return a.validity != nil && !a.validity.IsSet(i)
}

// Value returns the view of slot i, ignoring validity.
func (a *PolygonArray) Value(i int) Polygon {
	return Polygon{
		x: a.x, y: a.y, geomOffsets: a.geomOffsets, ringOffsets: a.ringOffsets, index: i,
	}
}

// Geometry implements GeometryArray.
func (a *PolygonArray) Geometry(i int) Geometry { return a.Value(i) }

// Get returns the owned go-geom value of slot i, or nil when the slot is
// null.
func (a *PolygonArray) Get(i int) *geom.Polygon {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i).GeomPolygon()
}

// Slice re-windows the outer offset level and the validity mask in O(1).
// Interior offsets and coordinates are untouched, offset values stay
// absolute.
func (a *PolygonArray) Slice(offset, length int) (GeometryArray, error) {
	if err := checkSlice(offset, length, a.Len()); err != nil {
		return nil, err
	}
	return a.SliceUnchecked(offset, length), nil
}

// SliceUnchecked is the trusted-caller twin of Slice.
func (a *PolygonArray) SliceUnchecked(offset, length int) GeometryArray {
	return &PolygonArray{
		x:           a.x,
		y:           a.y,
		geomOffsets: a.geomOffsets.Slice(offset, length),
		ringOffsets: a.ringOffsets,
		validity:    a.validity.Slice(offset, length),
	}
}

// AsMultiLineStringArray reinterprets the array as multilinestrings,
// reading each ring as a closed line.
func (a *PolygonArray) AsMultiLineStringArray() *MultiLineStringArray {
	return NewMultiLineStringArrayUnchecked(a.x, a.y, a.geomOffsets, a.ringOffsets, a.validity)
}

// ToArrow converts the array to a large list of large lists of
// struct{x, y} over the shared buffers.
func (a *PolygonArray) ToArrow() arrow.Array {
	rings := largeListData(
		innerVertexListType, a.ringOffsets, coordData(a.x, a.y, nil), nil)
	return array.MakeFromData(largeListData(
		polygonArrowType, a.geomOffsets, rings, a.validity))
}

// NewPolygonArrayFromArrow imports a foreign list-of-list-of-struct{x, y}
// array, sharing its buffers. ErrIncompatibleLayout when the nesting does
// not match or interior levels carry nulls.
func NewPolygonArrayFromArrow(arr arrow.Array) (*PolygonArray, error) {
	outer, err := asLargeList(arr, "geometry")
	if err != nil {
		return nil, err
	}
	rings, err := asLargeList(outer.ListValues(), "ring")
	if err != nil {
		return nil, err
	}
	if err := requireInteriorNonNull(rings, "ring"); err != nil {
		return nil, err
	}
	x, y, _, err := coordBuffers(rings.ListValues(), false)
	if err != nil {
		return nil, err
	}
	return NewPolygonArray(
		x, y, listOffsets(outer), listOffsets(rings), listValidity(outer))
}

// Process implements GeometryArray.
func (a *PolygonArray) Process(p Processor) error {
	if err := p.CollectionBegin(a.Len()); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		rs, re := a.geomOffsets.StartEnd(i)
		if err := p.PolygonBegin(true, int(re-rs), i); err != nil {
			return err
		}
		if err := processRings(p, a.x, a.y, a.ringOffsets, rs, re); err != nil {
			return err
		}
		if err := p.PolygonEnd(true, i); err != nil {
			return err
		}
	}
	return p.CollectionEnd()
}

// Polygon is the non-owning view of one slot of a PolygonArray.
type Polygon struct {
	x, y        []float64
	geomOffsets Offsets
	ringOffsets Offsets
	index       int
}

var _ Geometry = Polygon{}

// NumRings returns the number of rings, exterior included.
func (g Polygon) NumRings() int {
	start, end := g.geomOffsets.StartEnd(g.index)
	return int(end - start)
}

// Ring returns the view of ring i as a closed line. Ring 0 is the
// exterior.
func (g Polygon) Ring(i int) LineString {
	start, _ := g.geomOffsets.StartEnd(g.index)
	return LineString{x: g.x, y: g.y, geomOffsets: g.ringOffsets, index: int(start) + i}
}

// Exterior returns the view of the exterior ring.
func (g Polygon) Exterior() LineString { return g.Ring(0) }

// GeometryType implements Geometry.
func (g Polygon) GeometryType() GeometryType { return TypePolygon }

// BoundingBox implements Geometry. Holes lie inside the exterior, so
// only the coordinate range matters.
func (g Polygon) BoundingBox() BoundingBox {
	rs, re := g.geomOffsets.StartEnd(g.index)
	if rs == re {
		return NewBoundingBox()
	}
	cs, _ := g.ringOffsets.StartEnd(int(rs))
	_, ce := g.ringOffsets.StartEnd(int(re) - 1)
	return boundingBoxCoords(g.x, g.y, cs, ce)
}

// GeomPolygon copies the view out into an owned go-geom polygon.
func (g Polygon) GeomPolygon() *geom.Polygon {
	rs, re := g.geomOffsets.StartEnd(g.index)
	if rs == re {
		return geom.NewPolygon(geom.XY)
	}
	cs, _ := g.ringOffsets.StartEnd(int(rs))
	_, ce := g.ringOffsets.StartEnd(int(re) - 1)
	flat := appendFlatCoords(make([]float64, 0, 2*(ce-cs)), g.x, g.y, cs, ce)
	ends := make([]int, 0, re-rs)
	for r := rs; r < re; r++ {
		_, e := g.ringOffsets.StartEnd(int(r))
		ends = append(ends, 2*int(e-cs))
	}
	return geom.NewPolygonFlat(geom.XY, flat, ends)
}

// Geom implements Geometry.
func (g Polygon) Geom() (geom.T, error) { return g.GeomPolygon(), nil }

// PolygonBuilder is the append-only mutable counterpart of a
// PolygonArray.
type PolygonBuilder struct {
	x, y        []float64
	geomOffsets []int64
	ringOffsets []int64
	validity    bitmapBuilder
}

// NewPolygonBuilder returns an empty builder.
func NewPolygonBuilder() *PolygonBuilder {
	return &PolygonBuilder{geomOffsets: []int64{0}, ringOffsets: []int64{0}}
}

// Reserve grows capacity ahead of geoms pushes totalling rings rings and
// coords coordinates. Performance hint only.
func (b *PolygonBuilder) Reserve(geoms, rings, coords int) {
	b.x = slices.Grow(b.x, coords)
	b.y = slices.Grow(b.y, coords)
	b.geomOffsets = slices.Grow(b.geomOffsets, geoms)
	b.ringOffsets = slices.Grow(b.ringOffsets, rings)
	b.validity.reserve(geoms)
}

// Len returns the number of geometries pushed so far.
func (b *PolygonBuilder) Len() int { return len(b.geomOffsets) - 1 }

// Push appends one go-geom polygon, or a null when poly is nil. Rings
// are stored as given, closing points included. Only the x/y dimensions
// are kept.
func (b *PolygonBuilder) Push(poly *geom.Polygon) {
	if poly == nil {
		b.PushNull()
		return
	}
	for r := 0; r < poly.NumLinearRings(); r++ {
		ring := poly.LinearRing(r)
		b.x, b.y = appendXYFlat(b.x, b.y, ring.FlatCoords(), ring.Stride())
		b.ringOffsets = append(b.ringOffsets, int64(len(b.x)))
	}
	b.geomOffsets = append(b.geomOffsets, int64(len(b.ringOffsets)-1))
	b.validity.append(true)
}

// PushNull appends a null slot: the previous offset repeats and nothing
// lands in the finer levels.
func (b *PolygonBuilder) PushNull() {
	b.geomOffsets = append(b.geomOffsets, int64(len(b.ringOffsets)-1))
	b.validity.append(false)
}

// Finish freezes the builder into an immutable array. The builder must
// not be used afterwards.
func (b *PolygonBuilder) Finish() *PolygonArray {
	return NewPolygonArrayUnchecked(
		b.x, b.y,
		NewOffsetsUnchecked(b.geomOffsets),
		NewOffsetsUnchecked(b.ringOffsets),
		b.validity.finish())
}
