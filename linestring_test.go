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

func TestLineStringArray(t *testing.T) {
	b := NewLineStringBuilder()
	b.Push(fixtureLineString(0, 0, 1, 1, 2, 0))
	b.PushNull()
	b.Push(fixtureLineString(5, 5, 6, 6))
	arr := b.Finish()

	require.Equal(t, 3, arr.Len())
	require.Equal(t, TypeLineString, arr.GeometryType())
	require.Equal(t, fixtureLineString(0, 0, 1, 1, 2, 0), arr.Get(0))
	require.Nil(t, arr.Get(1))
	require.Equal(t, fixtureLineString(5, 5, 6, 6), arr.Get(2))

	v := arr.Value(0)
	require.Equal(t, 3, v.NumPoints())
	require.Equal(t, 1.0, v.Point(1).X())
	require.Equal(t, BoundingBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 1}, v.BoundingBox())

	// The null slot is an empty range.
	require.Equal(t, 0, arr.Value(1).NumPoints())
}

func TestLineStringArraySlice(t *testing.T) {
	b := NewLineStringBuilder()
	b.Push(fixtureLineString(0, 0, 1, 1))
	b.Push(fixtureLineString(2, 2, 3, 3, 4, 4))
	b.PushNull()
	b.Push(fixtureLineString(9, 9, 8, 8))
	arr := b.Finish()

	s, err := arr.Slice(1, 3)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	ls := s.(*LineStringArray)
	require.Equal(t, fixtureLineString(2, 2, 3, 3, 4, 4), ls.Get(0))
	require.True(t, ls.IsNull(1))
	require.Equal(t, fixtureLineString(9, 9, 8, 8), ls.Get(2))

	// Slicing a slice composes with the outer window.
	ss, err := ls.Slice(2, 1)
	require.NoError(t, err)
	require.Equal(t, fixtureLineString(9, 9, 8, 8), ss.(*LineStringArray).Get(0))
	require.Nil(t, ss.Validity())

	_, err = arr.Slice(3, 2)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBoundsViolation))
}

func TestLineStringArrayArrowRoundTrip(t *testing.T) {
	b := NewLineStringBuilder()
	b.Push(fixtureLineString(0, 0, 1, 1))
	b.PushNull()
	b.Push(fixtureLineString(2, 2, 3, 3, 4, 4))
	arr := b.Finish()

	col := arr.ToArrow()
	require.Equal(t, 3, col.Len())
	require.Equal(t, 1, col.NullN())

	back, err := NewLineStringArrayFromArrow(col)
	require.NoError(t, err)
	require.Equal(t, fixtureLineString(0, 0, 1, 1), back.Get(0))
	require.Nil(t, back.Get(1))
	require.Equal(t, fixtureLineString(2, 2, 3, 3, 4, 4), back.Get(2))
}

func TestLineStringAsMultiPointArray(t *testing.T) {
	b := NewLineStringBuilder()
	b.Push(fixtureLineString(0, 0, 1, 1, 2, 2))
	arr := b.Finish()

	mp := arr.AsMultiPointArray()
	require.Equal(t, TypeMultiPoint, mp.GeometryType())
	require.Equal(t, 1, mp.Len())
	require.Equal(t, fixtureMultiPoint(0, 0, 1, 1, 2, 2), mp.Get(0))

	// And back again.
	require.Equal(t, fixtureLineString(0, 0, 1, 1, 2, 2), mp.AsLineStringArray().Get(0))
}

func TestLineStringArrayWKT(t *testing.T) {
	b := NewLineStringBuilder()
	b.Push(fixtureLineString(30, 10, 10, 30, 40, 40))
	b.PushNull()
	wkt, err := ToWKT(b.Finish())
	require.NoError(t, err)
	require.Equal(t,
		"GEOMETRYCOLLECTION(LINESTRING(30 10,10 30,40 40),LINESTRING EMPTY)", wkt)
}
