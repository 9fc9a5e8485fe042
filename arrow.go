// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
)

// The canonical Arrow shape of each kind is a stack of large (64-bit
// offset) lists over a two-field float64 struct leaf. Coordinate fields
// and interior list levels are non-nullable; only the outermost, geometry
// level carries nullability, since whole geometries but never partial
// rings may be absent.
var (
	coordType = arrow.StructOf(
		arrow.Field{Name: "x", Type: arrow.PrimitiveTypes.Float64},
		arrow.Field{Name: "y", Type: arrow.PrimitiveTypes.Float64},
	)

	innerVertexListType = largeListOf("vertices", coordType, false)
	innerRingListType   = largeListOf("rings", innerVertexListType, false)

	lineStringArrowType      = largeListOf("vertices", coordType, true)
	multiPointArrowType      = largeListOf("points", coordType, true)
	polygonArrowType         = largeListOf("rings", innerVertexListType, true)
	multiLineStringArrowType = largeListOf("lines", innerVertexListType, true)
	multiPolygonArrowType    = largeListOf("polygons", innerRingListType, true)
)

func largeListOf(name string, elem arrow.DataType, nullable bool) *arrow.LargeListType {
	return arrow.LargeListOfField(arrow.Field{Name: name, Type: elem, Nullable: nullable})
}

func float64Buffer(v []float64) *memory.Buffer {
	return memory.NewBufferBytes(arrow.Float64Traits.CastToBytes(v))
}

func int64Buffer(v []int64) *memory.Buffer {
	return memory.NewBufferBytes(arrow.Int64Traits.CastToBytes(v))
}

func validityBuffer(validity *Bitmap) (*memory.Buffer, int) {
	if validity == nil {
		return nil, 0
	}
	bits, nulls := validity.alignedBytes()
	return memory.NewBufferBytes(bits), nulls
}

// coordData builds the struct{x, y} leaf over the shared coordinate
// buffers without copying them. The validity argument is non-nil only for
// point arrays, where the leaf is itself the geometry level.
func coordData(x, y []float64, validity *Bitmap) arrow.ArrayData {
	xData := array.NewData(
		arrow.PrimitiveTypes.Float64, len(x),
		[]*memory.Buffer{nil, float64Buffer(x)}, nil, 0, 0)
	yData := array.NewData(
		arrow.PrimitiveTypes.Float64, len(y),
		[]*memory.Buffer{nil, float64Buffer(y)}, nil, 0, 0)
	nullBuf, nulls := validityBuffer(validity)
	return array.NewData(
		coordType, len(x),
		[]*memory.Buffer{nullBuf},
		[]arrow.ArrayData{xData, yData}, nulls, 0)
}

// largeListData wraps one offset level around a child, sharing the offset
// buffer.
func largeListData(
	dt *arrow.LargeListType, offsets Offsets, child arrow.ArrayData, validity *Bitmap,
) arrow.ArrayData {
	nullBuf, nulls := validityBuffer(validity)
	return array.NewData(
		dt, offsets.Len(),
		[]*memory.Buffer{nullBuf, int64Buffer(offsets.Values())},
		[]arrow.ArrayData{child}, nulls, 0)
}

// asLargeList downcasts one nesting level of a foreign array, failing
// with ErrIncompatibleLayout on anything but a 64-bit offset list.
func asLargeList(arr arrow.Array, level string) (*array.LargeList, error) {
	l, ok := arr.(*array.LargeList)
	if !ok {
		return nil, incompatibleLayoutf(
			"%s level: expected large list with 64-bit offsets, got %s", level, arr.DataType())
	}
	return l, nil
}

// listOffsets windows the raw offset buffer of a foreign list to the
// array's logical range, sharing the buffer.
func listOffsets(l *array.LargeList) Offsets {
	off := l.Data().Offset()
	return NewOffsetsUnchecked(l.Offsets()[off : off+l.Len()+1])
}

// listValidity windows the validity buffer of a foreign list, dropping it
// when the array holds no nulls.
func listValidity(l *array.LargeList) *Bitmap {
	if l.NullN() == 0 || l.Data().Buffers()[0] == nil {
		return nil
	}
	return &Bitmap{data: l.NullBitmapBytes(), offset: l.Data().Offset(), length: l.Len()}
}

// requireInteriorNonNull rejects foreign arrays whose interior list
// levels carry nulls: the layout only admits absence at the geometry
// level.
func requireInteriorNonNull(l *array.LargeList, level string) error {
	if l.NullN() > 0 {
		return incompatibleLayoutf(
			"%s level: interior list must be non-nullable, found %d nulls", level, l.NullN())
	}
	return nil
}

// coordBuffers extracts the shared x/y buffers from a foreign coordinate
// leaf, validating arity and field types.
func coordBuffers(arr arrow.Array, validityOK bool) (x, y []float64, validity *Bitmap, _ error) {
	st, ok := arr.(*array.Struct)
	if !ok {
		return nil, nil, nil, incompatibleLayoutf(
			"coordinate leaf: expected struct of {x, y}, got %s", arr.DataType())
	}
	if st.NumField() != 2 {
		return nil, nil, nil, incompatibleLayoutf(
			"coordinate leaf: expected 2 fields, got %d", st.NumField())
	}
	xa, ok := st.Field(0).(*array.Float64)
	if !ok {
		return nil, nil, nil, incompatibleLayoutf(
			"coordinate leaf: x field must be float64, got %s", st.Field(0).DataType())
	}
	ya, ok := st.Field(1).(*array.Float64)
	if !ok {
		return nil, nil, nil, incompatibleLayoutf(
			"coordinate leaf: y field must be float64, got %s", st.Field(1).DataType())
	}
	if st.NullN() > 0 {
		if !validityOK {
			return nil, nil, nil, incompatibleLayoutf(
				"coordinate leaf: interior struct must be non-nullable, found %d nulls", st.NullN())
		}
		validity = &Bitmap{
			data:   st.NullBitmapBytes(),
			offset: st.Data().Offset(),
			length: st.Len(),
		}
	}
	return xa.Float64Values(), ya.Float64Values(), validity, nil
}
