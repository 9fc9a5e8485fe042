// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"math"
	"slices"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/twpayne/go-geom"
)

// PointArray is an immutable array of points, semantically a
// []*geom.Point with nulls. Depth 0 of the nested layout: the coordinate
// buffers are themselves the geometry level and there is no offset
// hierarchy. A null slot still occupies one coordinate pair, stored as
// NaN.
type PointArray struct {
	x, y     []float64
	validity *Bitmap
}

var _ GeometryArray = (*PointArray)(nil)

// NewPointArray validates the shared-buffer invariants and constructs an
// array in O(1).
func NewPointArray(x, y []float64, validity *Bitmap) (*PointArray, error) {
	if err := checkArray(x, y, validity, len(x)); err != nil {
		return nil, err
	}
	return NewPointArrayUnchecked(x, y, validity), nil
}

// NewPointArrayUnchecked is the trusted-caller twin of NewPointArray.
func NewPointArrayUnchecked(x, y []float64, validity *Bitmap) *PointArray {
	return &PointArray{x: x, y: y, validity: validity}
}

func (a *PointArray) sealed() {}

// Len returns the number of points, nulls included.
func (a *PointArray) Len() int { return len(a.x) }

// GeometryType implements GeometryArray.
func (a *PointArray) GeometryType() GeometryType { return TypePoint }

// Validity returns the optional validity mask.
func (a *PointArray) Validity() *Bitmap { return a.validity }

// IsNull reports whether slot i is null.
func (a *PointArray) IsNull(i int) bool {
	return a.validity != nil && !a.validity.IsSet(i)
}

// Value returns the view of slot i, ignoring validity.
func (a *PointArray) Value(i int) Point {
	return Point{x: a.x, y: a.y, index: i}
}

// Geometry implements GeometryArray.
func (a *PointArray) Geometry(i int) Geometry { return a.Value(i) }

// Get returns the owned go-geom value of slot i, or nil when the slot is
// null.
func (a *PointArray) Get(i int) *geom.Point {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i).GeomPoint()
}

// Slice returns a zero-copy window of the array. For points the
// coordinate buffers are the outermost level, so the window applies to
// them directly.
func (a *PointArray) Slice(offset, length int) (GeometryArray, error) {
	if err := checkSlice(offset, length, a.Len()); err != nil {
		return nil, err
	}
	return a.SliceUnchecked(offset, length), nil
}

// SliceUnchecked is the trusted-caller twin of Slice.
func (a *PointArray) SliceUnchecked(offset, length int) GeometryArray {
	var validity *Bitmap
	if a.validity != nil {
		validity = a.validity.Slice(offset, length)
	}
	return &PointArray{
		x:        a.x[offset : offset+length],
		y:        a.y[offset : offset+length],
		validity: validity,
	}
}

// ToArrow converts the array to a struct{x, y} Arrow array over the
// shared buffers.
func (a *PointArray) ToArrow() arrow.Array {
	return array.MakeFromData(coordData(a.x, a.y, a.validity))
}

// NewPointArrayFromArrow imports a foreign struct{x, y} array, sharing
// its buffers. The value's concrete layout must match exactly;
// ErrIncompatibleLayout otherwise.
func NewPointArrayFromArrow(arr arrow.Array) (*PointArray, error) {
	// Field accessors of a sliced struct come back pre-windowed to the
	// parent's logical range, so the buffers are used as returned.
	x, y, validity, err := coordBuffers(arr, true)
	if err != nil {
		return nil, err
	}
	return NewPointArray(x, y, validity)
}

// Process implements GeometryArray.
func (a *PointArray) Process(p Processor) error {
	if err := p.CollectionBegin(a.Len()); err != nil {
		return err
	}
	for i := 0; i < a.Len(); i++ {
		null := a.IsNull(i)
		if err := p.PointBegin(null, i); err != nil {
			return err
		}
		if !null {
			if err := p.XY(a.x[i], a.y[i], 0); err != nil {
				return err
			}
		}
		if err := p.PointEnd(i); err != nil {
			return err
		}
	}
	return p.CollectionEnd()
}

// Point is the non-owning view of one slot of a PointArray.
type Point struct {
	x, y  []float64
	index int
}

var _ Geometry = Point{}

// X returns the x coordinate.
func (p Point) X() float64 { return p.x[p.index] }

// Y returns the y coordinate.
func (p Point) Y() float64 { return p.y[p.index] }

// GeometryType implements Geometry.
func (p Point) GeometryType() GeometryType { return TypePoint }

// BoundingBox implements Geometry.
func (p Point) BoundingBox() BoundingBox {
	return BoundingBox{MinX: p.X(), MinY: p.Y(), MaxX: p.X(), MaxY: p.Y()}
}

// GeomPoint copies the view out into an owned go-geom point.
func (p Point) GeomPoint() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{p.X(), p.Y()})
}

// Geom implements Geometry.
func (p Point) Geom() (geom.T, error) { return p.GeomPoint(), nil }

// PointBuilder is the append-only mutable counterpart of a PointArray.
// It owns its buffers exclusively until Finish freezes them.
type PointBuilder struct {
	x, y     []float64
	validity bitmapBuilder
}

// NewPointBuilder returns an empty builder.
func NewPointBuilder() *PointBuilder { return &PointBuilder{} }

// Reserve grows the builder's capacity ahead of n pushes. It is a
// performance hint only.
func (b *PointBuilder) Reserve(n int) {
	b.x = slices.Grow(b.x, n)
	b.y = slices.Grow(b.y, n)
	b.validity.reserve(n)
}

// Len returns the number of geometries pushed so far.
func (b *PointBuilder) Len() int { return len(b.x) }

// PushXY appends one point.
func (b *PointBuilder) PushXY(x, y float64) {
	b.x = append(b.x, x)
	b.y = append(b.y, y)
	b.validity.append(true)
}

// Push appends one go-geom point, or a null when p is nil.
func (b *PointBuilder) Push(p *geom.Point) {
	if p == nil {
		b.PushNull()
		return
	}
	b.PushXY(p.X(), p.Y())
}

// PushNull appends a null slot. The coordinate pair is still occupied,
// by NaN, to keep the buffers aligned with the geometry count.
func (b *PointBuilder) PushNull() {
	b.x = append(b.x, math.NaN())
	b.y = append(b.y, math.NaN())
	b.validity.append(false)
}

// Finish freezes the builder into an immutable array. The builder must
// not be used afterwards.
func (b *PointBuilder) Finish() *PointArray {
	return NewPointArrayUnchecked(b.x, b.y, b.validity.finish())
}
