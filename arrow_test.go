// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"testing"

	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// Foreign arrays arrive pre-sliced: their offset buffers start at an
// arbitrary logical offset and their validity buffers at an arbitrary bit.
// Import must window through both.
func TestImportSlicedArrowArray(t *testing.T) {
	b := NewLineStringBuilder()
	b.Push(fixtureLineString(0, 0, 1, 1))
	b.PushNull()
	b.Push(fixtureLineString(2, 2, 3, 3, 4, 4))
	b.Push(fixtureLineString(5, 5, 6, 6))
	col := b.Finish().ToArrow()

	sliced := array.NewSlice(col, 1, 4)
	back, err := NewLineStringArrayFromArrow(sliced)
	require.NoError(t, err)
	require.Equal(t, 3, back.Len())
	require.True(t, back.IsNull(0))
	require.Equal(t, fixtureLineString(2, 2, 3, 3, 4, 4), back.Get(1))
	require.Equal(t, fixtureLineString(5, 5, 6, 6), back.Get(2))
}

func TestImportSlicedPointArray(t *testing.T) {
	b := NewPointBuilder()
	b.PushXY(0, 0)
	b.PushNull()
	b.PushXY(2, 2)
	b.PushXY(3, 3)
	col := b.Finish().ToArrow()

	sliced := array.NewSlice(col, 1, 4)
	back, err := NewPointArrayFromArrow(sliced)
	require.NoError(t, err)
	require.Equal(t, 3, back.Len())
	require.True(t, back.IsNull(0))
	require.Equal(t, fixturePoint(2, 2), back.Get(1))
	require.Equal(t, fixturePoint(3, 3), back.Get(2))
}

func TestImportLayoutMismatch(t *testing.T) {
	pb := NewPointBuilder()
	pb.PushXY(1, 2)
	pointCol := pb.Finish().ToArrow()

	lb := NewLineStringBuilder()
	lb.Push(fixtureLineString(0, 0, 1, 1))
	lineCol := lb.Finish().ToArrow()

	t.Run("point from list", func(t *testing.T) {
		_, err := NewPointArrayFromArrow(lineCol)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrIncompatibleLayout))
	})

	t.Run("linestring from struct", func(t *testing.T) {
		_, err := NewLineStringArrayFromArrow(pointCol)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrIncompatibleLayout))
	})

	t.Run("polygon from depth 1", func(t *testing.T) {
		_, err := NewPolygonArrayFromArrow(lineCol)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrIncompatibleLayout))
	})

	t.Run("multipolygon from depth 1", func(t *testing.T) {
		_, err := NewMultiPolygonArrayFromArrow(lineCol)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrIncompatibleLayout))
	})

	t.Run("wkb from struct", func(t *testing.T) {
		_, err := NewWKBArrayFromArrow(pointCol)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrIncompatibleLayout))
	})
}
