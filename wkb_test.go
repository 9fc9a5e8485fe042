// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestWKBArray(t *testing.T) {
	b := NewWKBBuilder()
	require.NoError(t, b.Push(fixturePoint(30, 10)))
	require.NoError(t, b.Push(nil))
	require.NoError(t, b.Push(fixtureMultiPolygon1()))
	arr := b.Finish()

	require.Equal(t, 3, arr.Len())
	require.Equal(t, TypeWKB, arr.GeometryType())
	require.True(t, arr.IsNull(1))
	require.Empty(t, arr.Value(1))

	g, err := arr.Get(0)
	require.NoError(t, err)
	require.Equal(t, fixturePoint(30, 10), g)

	g, err = arr.Get(1)
	require.NoError(t, err)
	require.Nil(t, g)

	g, err = arr.Get(2)
	require.NoError(t, err)
	require.Equal(t, fixtureMultiPolygon1(), g)

	require.Equal(t,
		BoundingBox{MinX: -111, MinY: 41, MaxX: -104, MaxY: 45},
		arr.Geometry(2).BoundingBox())
}

func TestWKBArraySlice(t *testing.T) {
	b := NewWKBBuilder()
	require.NoError(t, b.Push(fixturePoint(1, 1)))
	require.NoError(t, b.Push(fixturePoint(2, 2)))
	require.NoError(t, b.Push(nil))
	arr := b.Finish()

	s, err := arr.Slice(1, 2)
	require.NoError(t, err)
	wa := s.(*WKBArray)
	g, err := wa.Get(0)
	require.NoError(t, err)
	require.Equal(t, fixturePoint(2, 2), g)
	require.True(t, wa.IsNull(1))

	_, err = arr.Slice(1, 3)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBoundsViolation))
}

func TestWKBArrayArrowRoundTrip(t *testing.T) {
	b := NewWKBBuilder()
	require.NoError(t, b.Push(fixtureLineString(0, 0, 1, 1)))
	require.NoError(t, b.Push(nil))
	arr := b.Finish()

	col := arr.ToArrow()
	require.Equal(t, 2, col.Len())
	require.Equal(t, 1, col.NullN())

	back, err := NewWKBArrayFromArrow(col)
	require.NoError(t, err)
	g, err := back.Get(0)
	require.NoError(t, err)
	require.Equal(t, fixtureLineString(0, 0, 1, 1), g)
	require.True(t, back.IsNull(1))
}

// The event stream of a WKB column matches the native layout's stream
// for the same geometries.
func TestWKBArrayProcess(t *testing.T) {
	wb := NewWKBBuilder()
	require.NoError(t, wb.Push(fixtureMultiPolygon0()))
	require.NoError(t, wb.Push(fixtureMultiPolygon1()))

	nb := NewMultiPolygonBuilder()
	nb.Push(fixtureMultiPolygon0())
	nb.Push(fixtureMultiPolygon1())

	want, err := ToWKT(nb.Finish())
	require.NoError(t, err)
	got, err := ToWKT(wb.Finish())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Null blobs have no type to stream as; they disappear from the stream
// instead of rendering EMPTY.
func TestWKBArrayProcessNulls(t *testing.T) {
	b := NewWKBBuilder()
	require.NoError(t, b.Push(nil))
	require.NoError(t, b.Push(fixturePoint(30, 10)))
	wkt, err := ToWKT(b.Finish())
	require.NoError(t, err)
	require.Equal(t, "GEOMETRYCOLLECTION(POINT(30 10))", wkt)
}

func TestWKBArrayValidation(t *testing.T) {
	_, err := NewWKBArray([]byte{1, 2}, NewOffsetsUnchecked([]int64{0, 5}), nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvariantViolation))
}
