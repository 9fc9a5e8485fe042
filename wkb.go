// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"encoding/binary"
	"slices"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// WKBArray is an immutable array of opaque well-known-binary blobs,
// the fallback encoding for mixed-type or otherwise irregular columns.
// One offset level windows slots into the shared byte buffer.
type WKBArray struct {
	data     []byte
	offsets  Offsets
	validity *Bitmap
}

var _ GeometryArray = (*WKBArray)(nil)

// NewWKBArray validates the buffer invariants and constructs an array in
// O(1). Blob contents are not parsed.
func NewWKBArray(data []byte, offsets Offsets, validity *Bitmap) (*WKBArray, error) {
	if offsets.First() < 0 || offsets.Last() > int64(len(data)) {
		return nil, invariantViolationf(
			"wkb offsets [%d, %d] exceed data buffer of %d bytes",
			offsets.First(), offsets.Last(), len(data))
	}
	if validity != nil && validity.Len() != offsets.Len() {
		return nil, invariantViolationf(
			"validity length %d does not match geometry count %d",
			validity.Len(), offsets.Len())
	}
	return NewWKBArrayUnchecked(data, offsets, validity), nil
}

// NewWKBArrayUnchecked is the trusted-caller twin of NewWKBArray.
func NewWKBArrayUnchecked(data []byte, offsets Offsets, validity *Bitmap) *WKBArray {
	return &WKBArray{data: data, offsets: offsets, validity: validity}
}

func (a *WKBArray) sealed() {}

// Len returns the number of blobs, nulls included.
func (a *WKBArray) Len() int { return a.offsets.Len() }

// GeometryType implements GeometryArray.
func (a *WKBArray) GeometryType() GeometryType { return TypeWKB }

// Validity returns the optional validity mask.
func (a *WKBArray) Validity() *Bitmap { return a.validity }

// IsNull reports whether slot i is null.
func (a *WKBArray) IsNull(i int) bool {
	return a.validity != nil && !a.validity.IsSet(i)
}

// Value returns the raw bytes of slot i, sharing the buffer.
func (a *WKBArray) Value(i int) []byte {
	start, end := a.offsets.StartEnd(i)
	return a.data[start:end:end]
}

// Geometry implements GeometryArray.
func (a *WKBArray) Geometry(i int) Geometry {
	return WKB{data: a.Value(i)}
}

// Get returns the decoded go-geom value of slot i, or nil when the slot
// is null.
func (a *WKBArray) Get(i int) (geom.T, error) {
	if a.IsNull(i) {
		return nil, nil
	}
	return wkb.Unmarshal(a.Value(i))
}

// Slice re-windows the offset level and the validity mask in O(1). The
// byte buffer is untouched, offset values stay absolute.
func (a *WKBArray) Slice(offset, length int) (GeometryArray, error) {
	if err := checkSlice(offset, length, a.Len()); err != nil {
		return nil, err
	}
	return a.SliceUnchecked(offset, length), nil
}

// SliceUnchecked is the trusted-caller twin of Slice.
func (a *WKBArray) SliceUnchecked(offset, length int) GeometryArray {
	return &WKBArray{
		data:     a.data,
		offsets:  a.offsets.Slice(offset, length),
		validity: a.validity.Slice(offset, length),
	}
}

// ToArrow converts the array to a large binary array over the shared
// buffers.
func (a *WKBArray) ToArrow() arrow.Array {
	nullBuf, nulls := validityBuffer(a.validity)
	return array.MakeFromData(array.NewData(
		arrow.BinaryTypes.LargeBinary, a.offsets.Len(),
		[]*memory.Buffer{nullBuf, int64Buffer(a.offsets.Values()), memory.NewBufferBytes(a.data)},
		nil, nulls, 0))
}

// NewWKBArrayFromArrow imports a foreign large binary array, sharing its
// buffers. ErrIncompatibleLayout when arr is not large binary.
func NewWKBArrayFromArrow(arr arrow.Array) (*WKBArray, error) {
	b, ok := arr.(*array.LargeBinary)
	if !ok {
		return nil, incompatibleLayoutf(
			"geometry level: expected large binary, got %s", arr.DataType())
	}
	var data []byte
	if buf := b.Data().Buffers()[2]; buf != nil {
		data = buf.Bytes()
	}
	var validity *Bitmap
	if b.NullN() > 0 && b.Data().Buffers()[0] != nil {
		validity = &Bitmap{data: b.NullBitmapBytes(), offset: b.Data().Offset(), length: b.Len()}
	}
	return NewWKBArray(data, NewOffsetsUnchecked(b.ValueOffsets()), validity)
}

// Process implements GeometryArray. Each blob decodes before it streams,
// so unlike the native layouts this is not allocation free. Null slots
// have no type to stream as and are skipped.
func (a *WKBArray) Process(p Processor) error {
	if err := p.CollectionBegin(a.Len() - a.nullCount()); err != nil {
		return err
	}
	n := 0
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		g, err := wkb.Unmarshal(a.Value(i))
		if err != nil {
			return err
		}
		if err := processGeom(p, g, n); err != nil {
			return err
		}
		n++
	}
	return p.CollectionEnd()
}

func (a *WKBArray) nullCount() int {
	if a.validity == nil {
		return 0
	}
	return a.validity.UnsetBits()
}

// processGeom streams one decoded geometry as tagged events.
func processGeom(p Processor, g geom.T, idx int) error {
	switch g := g.(type) {
	case *geom.Point:
		if err := p.PointBegin(false, idx); err != nil {
			return err
		}
		if err := p.XY(g.X(), g.Y(), 0); err != nil {
			return err
		}
		return p.PointEnd(idx)
	case *geom.MultiPoint:
		if err := p.MultiPointBegin(g.NumPoints(), idx); err != nil {
			return err
		}
		if err := processGeomCoords(p, g.FlatCoords(), g.Stride()); err != nil {
			return err
		}
		return p.MultiPointEnd(idx)
	case *geom.LineString:
		if err := p.LineStringBegin(true, g.NumCoords(), idx); err != nil {
			return err
		}
		if err := processGeomCoords(p, g.FlatCoords(), g.Stride()); err != nil {
			return err
		}
		return p.LineStringEnd(true, idx)
	case *geom.MultiLineString:
		if err := p.MultiLineStringBegin(g.NumLineStrings(), idx); err != nil {
			return err
		}
		for l := 0; l < g.NumLineStrings(); l++ {
			line := g.LineString(l)
			if err := p.LineStringBegin(false, line.NumCoords(), l); err != nil {
				return err
			}
			if err := processGeomCoords(p, line.FlatCoords(), line.Stride()); err != nil {
				return err
			}
			if err := p.LineStringEnd(false, l); err != nil {
				return err
			}
		}
		return p.MultiLineStringEnd(idx)
	case *geom.Polygon:
		if err := p.PolygonBegin(true, g.NumLinearRings(), idx); err != nil {
			return err
		}
		if err := processGeomRings(p, g); err != nil {
			return err
		}
		return p.PolygonEnd(true, idx)
	case *geom.MultiPolygon:
		if err := p.MultiPolygonBegin(g.NumPolygons(), idx); err != nil {
			return err
		}
		for j := 0; j < g.NumPolygons(); j++ {
			poly := g.Polygon(j)
			if err := p.PolygonBegin(false, poly.NumLinearRings(), j); err != nil {
				return err
			}
			if err := processGeomRings(p, poly); err != nil {
				return err
			}
			if err := p.PolygonEnd(false, j); err != nil {
				return err
			}
		}
		return p.MultiPolygonEnd(idx)
	default:
		return incompatibleLayoutf("unsupported wkb geometry %T", g)
	}
}

func processGeomCoords(p Processor, flat []float64, stride int) error {
	for i, n := 0, 0; i+1 < len(flat); i, n = i+stride, n+1 {
		if err := p.XY(flat[i], flat[i+1], n); err != nil {
			return err
		}
	}
	return nil
}

func processGeomRings(p Processor, poly *geom.Polygon) error {
	for r := 0; r < poly.NumLinearRings(); r++ {
		ring := poly.LinearRing(r)
		if err := p.LineStringBegin(false, ring.NumCoords(), r); err != nil {
			return err
		}
		if err := processGeomCoords(p, ring.FlatCoords(), ring.Stride()); err != nil {
			return err
		}
		if err := p.LineStringEnd(false, r); err != nil {
			return err
		}
	}
	return nil
}

// WKB is the owning scalar wrapper of one well-known-binary blob.
type WKB struct {
	data []byte
}

var _ Geometry = WKB{}

// Bytes returns the raw encoding.
func (g WKB) Bytes() []byte { return g.data }

// GeometryType implements Geometry.
func (g WKB) GeometryType() GeometryType { return TypeWKB }

// BoundingBox implements Geometry. The blob decodes on every call;
// an undecodable blob yields the empty box.
func (g WKB) BoundingBox() BoundingBox {
	t, err := wkb.Unmarshal(g.data)
	if err != nil {
		return NewBoundingBox()
	}
	box := NewBoundingBox()
	flat := t.FlatCoords()
	stride := t.Stride()
	for i := 0; i+1 < len(flat); i += stride {
		box.Update(flat[i], flat[i+1])
	}
	return box
}

// Geom implements Geometry.
func (g WKB) Geom() (geom.T, error) { return wkb.Unmarshal(g.data) }

// WKBBuilder is the append-only mutable counterpart of a WKBArray.
type WKBBuilder struct {
	data     []byte
	offsets  []int64
	validity bitmapBuilder
}

// NewWKBBuilder returns an empty builder.
func NewWKBBuilder() *WKBBuilder {
	return &WKBBuilder{offsets: []int64{0}}
}

// Reserve grows capacity ahead of geoms pushes totalling bytes encoded
// bytes. Performance hint only.
func (b *WKBBuilder) Reserve(geoms, bytes int) {
	b.data = slices.Grow(b.data, bytes)
	b.offsets = slices.Grow(b.offsets, geoms)
	b.validity.reserve(geoms)
}

// Len returns the number of blobs pushed so far.
func (b *WKBBuilder) Len() int { return len(b.offsets) - 1 }

// PushBytes appends one pre-encoded blob without parsing it.
func (b *WKBBuilder) PushBytes(blob []byte) {
	b.data = append(b.data, blob...)
	b.offsets = append(b.offsets, int64(len(b.data)))
	b.validity.append(true)
}

// Push encodes and appends one go-geom value, or a null when g is nil.
func (b *WKBBuilder) Push(g geom.T) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	blob, err := wkb.Marshal(g, binary.LittleEndian)
	if err != nil {
		return err
	}
	b.PushBytes(blob)
	return nil
}

// PushNull appends a null slot.
func (b *WKBBuilder) PushNull() {
	b.offsets = append(b.offsets, int64(len(b.data)))
	b.validity.append(false)
}

// Finish freezes the builder into an immutable array. The builder must
// not be used afterwards.
func (b *WKBBuilder) Finish() *WKBArray {
	return NewWKBArrayUnchecked(b.data, NewOffsetsUnchecked(b.offsets), b.validity.finish())
}
