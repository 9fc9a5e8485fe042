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

// MultiPolygonArray is an immutable array of multipolygons, semantically
// a []*geom.MultiPolygon with nulls. Three offset levels nest over the
// shared coordinate buffers: geomOffsets groups polygons into
// multipolygons, polygonOffsets groups rings into polygons and
// ringOffsets groups coordinates into rings.
type MultiPolygonArray struct {
	x, y           []float64
	geomOffsets    Offsets
	polygonOffsets Offsets
	ringOffsets    Offsets
	validity       *Bitmap
}

var _ GeometryArray = (*MultiPolygonArray)(nil)

// NewMultiPolygonArray validates the shared-buffer invariants and
// constructs an array in O(1).
func NewMultiPolygonArray(
	x, y []float64, geomOffsets, polygonOffsets, ringOffsets Offsets, validity *Bitmap,
) (*MultiPolygonArray, error) {
	if err := checkArray(x, y, validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return NewMultiPolygonArrayUnchecked(
		x, y, geomOffsets, polygonOffsets, ringOffsets, validity), nil
}

// NewMultiPolygonArrayUnchecked is the trusted-caller twin of
// NewMultiPolygonArray.
func NewMultiPolygonArrayUnchecked(
	x, y []float64, geomOffsets, polygonOffsets, ringOffsets Offsets, validity *Bitmap,
) *MultiPolygonArray {
	return &MultiPolygonArray{
		x: x, y: y,
		geomOffsets:    geomOffsets,
		polygonOffsets: polygonOffsets,
		ringOffsets:    ringOffsets,
		validity:       validity,
	}
}

func (a *MultiPolygonArray) sealed() {}

// Len returns the number of multipolygons, nulls included.
func (a *MultiPolygonArray) Len() int { return a.geomOffsets.Len() }

// GeometryType implements GeometryArray.
func (a *MultiPolygonArray) GeometryType() GeometryType { return TypeMultiPolygon }

// Validity returns the optional validity mask.
func (a *MultiPolygonArray) Validity() *Bitmap { return a.validity }

// IsNull reports whether slot i is null.
func (a *MultiPolygonArray) IsNull(i int) bool {
	return a.validity != nil && !a.validity.IsSet(i)
}

// Value returns the view of slot i, ignoring validity.
func (a *MultiPolygonArray) Value(i int) MultiPolygon {
	return MultiPolygon{
		x: a.x, y: a.y,
		geomOffsets:    a.geomOffsets,
		polygonOffsets: a.polygonOffsets,
		ringOffsets:    a.ringOffsets,
		index:          i,
	}
}

// Geometry implements GeometryArray.
func (a *MultiPolygonArray) Geometry(i int) Geometry { return a.Value(i) }

// Get returns the owned go-geom value of slot i, or nil when the slot is
// null.
func (a *MultiPolygonArray) Get(i int) *geom.MultiPolygon {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i).GeomMultiPolygon()
}

// Slice re-windows the outer offset level and the validity mask in O(1).
// Interior offsets and coordinates are untouched, offset values stay
// absolute.
func (a *MultiPolygonArray) Slice(offset, length int) (GeometryArray, error) {
	if err := checkSlice(offset, length, a.Len()); err != nil {
		return nil, err
	}
	return a.SliceUnchecked(offset, length), nil
}

// SliceUnchecked is the trusted-caller twin of Slice.
func (a *MultiPolygonArray) SliceUnchecked(offset, length int) GeometryArray {
	return &MultiPolygonArray{
		x:              a.x,
		y:              a.y,
		geomOffsets:    a.geomOffsets.Slice(offset, length),
		polygonOffsets: a.polygonOffsets,
		ringOffsets:    a.ringOffsets,
		validity:       a.validity.Slice(offset, length),
	}
}

// ToArrow converts the array to three nested large lists over the shared
// buffers.
func (a *MultiPolygonArray) ToArrow() arrow.Array {
	rings := largeListData(
		innerVertexListType, a.ringOffsets, coordData(a.x, a.y, nil), nil)
	polygons := largeListData(innerRingListType, a.polygonOffsets, rings, nil)
	return array.MakeFromData(largeListData(
		multiPolygonArrowType, a.geomOffsets, polygons, a.validity))
}

// NewMultiPolygonArrayFromArrow imports a foreign triple-nested
// list-of-struct{x, y} array, sharing its buffers. ErrIncompatibleLayout
// when the nesting does not match or interior levels carry nulls.
func NewMultiPolygonArrayFromArrow(arr arrow.Array) (*MultiPolygonArray, error) {
	outer, err := asLargeList(arr, "geometry")
	if err != nil {
		return nil, err
	}
	polygons, err := asLargeList(outer.ListValues(), "polygon")
	if err != nil {
		return nil, err
	}
	if err := requireInteriorNonNull(polygons, "polygon"); err != nil {
		return nil, err
	}
	rings, err := asLargeList(polygons.ListValues(), "ring")
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
	return NewMultiPolygonArray(
		x, y,
		listOffsets(outer), listOffsets(polygons), listOffsets(rings),
		listValidity(outer))
}

// Process implements GeometryArray.
func (a *MultiPolygonArray) Process(p Processor) error {
	if err := p.CollectionBegin(a.Len()); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		ps, pe := a.geomOffsets.StartEnd(i)
		if err := p.MultiPolygonBegin(int(pe-ps), i); err != nil {
			return err
		}
		for j := ps; j < pe; j++ {
			rs, re := a.polygonOffsets.StartEnd(int(j))
			if err := p.PolygonBegin(false, int(re-rs), int(j-ps)); err != nil {
				return err
			}
			if err := processRings(p, a.x, a.y, a.ringOffsets, rs, re); err != nil {
				return err
			}
			if err := p.PolygonEnd(false, int(j-ps)); err != nil {
				return err
			}
		}
		if err := p.MultiPolygonEnd(i); err != nil {
			return err
		}
	}
	return p.CollectionEnd()
}

// MultiPolygon is the non-owning view of one slot of a
// MultiPolygonArray.
type MultiPolygon struct {
	x, y           []float64
	geomOffsets    Offsets
	polygonOffsets Offsets
	ringOffsets    Offsets
	index          int
}

var _ Geometry = MultiPolygon{}

// NumPolygons returns the number of polygons in the multipolygon.
func (g MultiPolygon) NumPolygons() int {
	start, end := g.geomOffsets.StartEnd(g.index)
	return int(end - start)
}

// Polygon returns the view of polygon i of the multipolygon.
func (g MultiPolygon) Polygon(i int) Polygon {
	start, _ := g.geomOffsets.StartEnd(g.index)
	return Polygon{
		x: g.x, y: g.y,
		geomOffsets: g.polygonOffsets,
		ringOffsets: g.ringOffsets,
		index:       int(start) + i,
	}
}

// GeometryType implements Geometry.
func (g MultiPolygon) GeometryType() GeometryType { return TypeMultiPolygon }

// BoundingBox implements Geometry.
func (g MultiPolygon) BoundingBox() BoundingBox {
	ps, pe := g.geomOffsets.StartEnd(g.index)
	if ps == pe {
		return NewBoundingBox()
	}
	rs, _ := g.polygonOffsets.StartEnd(int(ps))
	_, re := g.polygonOffsets.StartEnd(int(pe) - 1)
	if rs == re {
		return NewBoundingBox()
	}
	cs, _ := g.ringOffsets.StartEnd(int(rs))
	_, ce := g.ringOffsets.StartEnd(int(re) - 1)
	return boundingBoxCoords(g.x, g.y, cs, ce)
}

// GeomMultiPolygon copies the view out into an owned go-geom
// multipolygon.
func (g MultiPolygon) GeomMultiPolygon() *geom.MultiPolygon {
	ps, pe := g.geomOffsets.StartEnd(g.index)
	if ps == pe {
		return geom.NewMultiPolygon(geom.XY)
	}
	rs, _ := g.polygonOffsets.StartEnd(int(ps))
	_, re := g.polygonOffsets.StartEnd(int(pe) - 1)
	if rs == re {
		return geom.NewMultiPolygon(geom.XY)
	}
	cs, _ := g.ringOffsets.StartEnd(int(rs))
	_, ce := g.ringOffsets.StartEnd(int(re) - 1)
	flat := appendFlatCoords(make([]float64, 0, 2*(ce-cs)), g.x, g.y, cs, ce)
	endss := make([][]int, 0, pe-ps)
	for p := ps; p < pe; p++ {
		prs, pre := g.polygonOffsets.StartEnd(int(p))
		ends := make([]int, 0, pre-prs)
		for r := prs; r < pre; r++ {
			_, e := g.ringOffsets.StartEnd(int(r))
			ends = append(ends, 2*int(e-cs))
		}
		endss = append(endss, ends)
	}
	return geom.NewMultiPolygonFlat(geom.XY, flat, endss)
}

// Geom implements Geometry.
func (g MultiPolygon) Geom() (geom.T, error) { return g.GeomMultiPolygon(), nil }

// MultiPolygonBuilder is the append-only mutable counterpart of a
// MultiPolygonArray.
type MultiPolygonBuilder struct {
	x, y           []float64
	geomOffsets    []int64
	polygonOffsets []int64
	ringOffsets    []int64
	validity       bitmapBuilder
}

// NewMultiPolygonBuilder returns an empty builder.
func NewMultiPolygonBuilder() *MultiPolygonBuilder {
	return &MultiPolygonBuilder{
		geomOffsets:    []int64{0},
		polygonOffsets: []int64{0},
		ringOffsets:    []int64{0},
	}
}

// Reserve grows capacity ahead of geoms pushes totalling polygons
// polygons, rings rings and coords coordinates. Performance hint only.
func (b *MultiPolygonBuilder) Reserve(geoms, polygons, rings, coords int) {
	b.x = slices.Grow(b.x, coords)
	b.y = slices.Grow(b.y, coords)
	b.geomOffsets = slices.Grow(b.geomOffsets, geoms)
	b.polygonOffsets = slices.Grow(b.polygonOffsets, polygons)
	b.ringOffsets = slices.Grow(b.ringOffsets, rings)
	b.validity.reserve(geoms)
}

// Len returns the number of geometries pushed so far.
func (b *MultiPolygonBuilder) Len() int { return len(b.geomOffsets) - 1 }

// Push appends one go-geom multipolygon, or a null when mp is nil. Rings
// are stored as given, closing points included. Only the x/y dimensions
// are kept.
func (b *MultiPolygonBuilder) Push(mp *geom.MultiPolygon) {
	if mp == nil {
		b.PushNull()
		return
	}
	for p := 0; p < mp.NumPolygons(); p++ {
		poly := mp.Polygon(p)
		for r := 0; r < poly.NumLinearRings(); r++ {
			ring := poly.LinearRing(r)
			b.x, b.y = appendXYFlat(b.x, b.y, ring.FlatCoords(), ring.Stride())
			b.ringOffsets = append(b.ringOffsets, int64(len(b.x)))
		}
		b.polygonOffsets = append(b.polygonOffsets, int64(len(b.ringOffsets)-1))
	}
	b.geomOffsets = append(b.geomOffsets, int64(len(b.polygonOffsets)-1))
	b.validity.append(true)
}

// PushNull appends a null slot: the previous offset repeats and nothing
// lands in the finer levels.
func (b *MultiPolygonBuilder) PushNull() {
	b.geomOffsets = append(b.geomOffsets, int64(len(b.polygonOffsets)-1))
	b.validity.append(false)
}

// Finish freezes the builder into an immutable array. The builder must
// not be used afterwards.
func (b *MultiPolygonBuilder) Finish() *MultiPolygonArray {
	return NewMultiPolygonArrayUnchecked(
		b.x, b.y,
		NewOffsetsUnchecked(b.geomOffsets),
		NewOffsetsUnchecked(b.polygonOffsets),
		NewOffsetsUnchecked(b.ringOffsets),
		b.validity.finish())
}
