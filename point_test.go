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

func TestPointArray(t *testing.T) {
	b := NewPointBuilder()
	b.Reserve(4)
	b.PushXY(1, 2)
	b.Push(fixturePoint(3, 4))
	b.PushNull()
	b.PushXY(-5, 0.5)
	arr := b.Finish()

	require.Equal(t, 4, arr.Len())
	require.Equal(t, TypePoint, arr.GeometryType())
	require.False(t, arr.IsNull(0))
	require.True(t, arr.IsNull(2))
	require.Equal(t, 1, arr.Validity().UnsetBits())

	require.Equal(t, fixturePoint(1, 2), arr.Get(0))
	require.Equal(t, fixturePoint(3, 4), arr.Get(1))
	require.Nil(t, arr.Get(2))

	v := arr.Value(3)
	require.Equal(t, -5.0, v.X())
	require.Equal(t, 0.5, v.Y())
	require.Equal(t, BoundingBox{MinX: -5, MinY: 0.5, MaxX: -5, MaxY: 0.5}, v.BoundingBox())
}

func TestPointArrayValidation(t *testing.T) {
	t.Run("x y length mismatch", func(t *testing.T) {
		_, err := NewPointArray([]float64{1, 2}, []float64{1}, nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvariantViolation))
	})

	t.Run("validity length mismatch", func(t *testing.T) {
		_, err := NewPointArray(
			[]float64{1, 2}, []float64{1, 2}, NewBitmapFromBools([]bool{true, false, true}))
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvariantViolation))
	})
}

func TestPointArraySlice(t *testing.T) {
	b := NewPointBuilder()
	b.PushXY(0, 0)
	b.PushNull()
	b.PushXY(2, 2)
	b.PushXY(3, 3)
	arr := b.Finish()

	s, err := arr.Slice(1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	require.True(t, s.IsNull(0))
	require.Equal(t, fixturePoint(2, 2), s.(*PointArray).Get(1))

	// A window past the nulls drops the mask.
	s2, err := arr.Slice(2, 2)
	require.NoError(t, err)
	require.Nil(t, s2.Validity())

	_, err = arr.Slice(2, 3)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBoundsViolation))

	_, err = arr.Slice(-1, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBoundsViolation))
}

func TestPointArrayArrowRoundTrip(t *testing.T) {
	b := NewPointBuilder()
	b.PushXY(1, 2)
	b.PushNull()
	b.PushXY(3, 4)
	arr := b.Finish()

	col := arr.ToArrow()
	require.Equal(t, 3, col.Len())
	require.Equal(t, 1, col.NullN())

	back, err := NewPointArrayFromArrow(col)
	require.NoError(t, err)
	require.Equal(t, 3, back.Len())
	require.Equal(t, fixturePoint(1, 2), back.Get(0))
	require.Nil(t, back.Get(1))
	require.Equal(t, fixturePoint(3, 4), back.Get(2))
}

func TestPointArrayWKT(t *testing.T) {
	b := NewPointBuilder()
	b.PushXY(30, 10)
	b.PushNull()
	b.PushXY(-1.5, 2.25)
	wkt, err := ToWKT(b.Finish())
	require.NoError(t, err)
	// Null slots render as typed EMPTY like every other kind, never as
	// their NaN placeholder coordinates.
	require.Equal(t,
		"GEOMETRYCOLLECTION(POINT(30 10),POINT EMPTY,POINT(-1.5 2.25))", wkt)
}
