// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiPointArray(t *testing.T) {
	b := NewMultiPointBuilder()
	b.Reserve(3, 5)
	b.Push(fixtureMultiPoint(10, 40, 40, 30, 20, 20, 30, 10))
	b.PushNull()
	b.Push(fixtureMultiPoint(0, 0))
	arr := b.Finish()

	require.Equal(t, 3, arr.Len())
	require.Equal(t, TypeMultiPoint, arr.GeometryType())
	require.Equal(t, fixtureMultiPoint(10, 40, 40, 30, 20, 20, 30, 10), arr.Get(0))
	require.Nil(t, arr.Get(1))
	require.Equal(t, fixtureMultiPoint(0, 0), arr.Get(2))

	v := arr.Value(0)
	require.Equal(t, 4, v.NumPoints())
	require.Equal(t, 40.0, v.Point(1).X())
	require.Equal(t, BoundingBox{MinX: 10, MinY: 10, MaxX: 40, MaxY: 40}, v.BoundingBox())
}

func TestMultiPointArrayArrowRoundTrip(t *testing.T) {
	b := NewMultiPointBuilder()
	b.Push(fixtureMultiPoint(10, 40, 40, 30))
	b.PushNull()
	arr := b.Finish()

	col := arr.ToArrow()
	back, err := NewMultiPointArrayFromArrow(col)
	require.NoError(t, err)
	require.Equal(t, fixtureMultiPoint(10, 40, 40, 30), back.Get(0))
	require.Nil(t, back.Get(1))
}

func TestMultiPointArrayWKT(t *testing.T) {
	b := NewMultiPointBuilder()
	b.Push(fixtureMultiPoint(10, 40, 40, 30))
	b.PushNull()
	wkt, err := ToWKT(b.Finish())
	require.NoError(t, err)
	require.Equal(t,
		"GEOMETRYCOLLECTION(MULTIPOINT(10 40,40 30),MULTIPOINT EMPTY)", wkt)
}
