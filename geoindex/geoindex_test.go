// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoindex

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/geopolars/geoarrow"
)

func fixtureQuad(minX, minY, maxX, maxY float64) *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY,
		[]float64{minX, minY, maxX, minY, maxX, maxY, minX, maxY, minX, minY},
		[]int{10})
}

func diagonalPoints(n int) *geoarrow.PointArray {
	b := geoarrow.NewPointBuilder()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		b.PushXY(float64(i), float64(i))
	}
	return b.Finish()
}

func TestIndexRange(t *testing.T) {
	arr := diagonalPoints(10)
	ix := New(arr)
	require.Equal(t, 10, ix.Len())
	require.Same(t, arr, ix.Array())

	got := ix.Range(geoarrow.BoundingBox{MinX: 2.5, MinY: 2.5, MaxX: 5.5, MaxY: 5.5}, nil)
	sort.Ints(got)
	require.Equal(t, []int{3, 4, 5}, got)

	// Matches a brute-force scan for a larger query.
	query := geoarrow.BoundingBox{MinX: 1, MinY: 0, MaxX: 7.2, MaxY: 6}
	var want []int
	for i := 0; i < arr.Len(); i++ {
		if arr.Geometry(i).BoundingBox().Intersects(query) {
			want = append(want, i)
		}
	}
	got = ix.Range(query, got[:0])
	sort.Ints(got)
	require.Equal(t, want, got)

	require.Empty(t, ix.Range(geoarrow.BoundingBox{MinX: 100, MinY: 100, MaxX: 101, MaxY: 101}, nil))
}

func TestIndexContains(t *testing.T) {
	ix := New(diagonalPoints(5))
	require.True(t, ix.Contains(geoarrow.BoundingBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}))
	require.False(t, ix.Contains(geoarrow.BoundingBox{MinX: 10, MinY: 10, MaxX: 11, MaxY: 11}))
}

func TestIndexNearest(t *testing.T) {
	ix := New(diagonalPoints(10))

	require.Equal(t, []int{0, 1, 2}, ix.Nearest(0, 0, 3))
	require.Equal(t, []int{9, 8}, ix.Nearest(50, 50, 2))
	require.Nil(t, ix.Nearest(0, 0, 0))

	// Capped by the tree size.
	require.Len(t, ix.Nearest(0, 0, 100), 10)
}

func TestIndexSkipsNulls(t *testing.T) {
	b := geoarrow.NewPointBuilder()
	b.PushXY(0, 0)
	b.PushNull()
	b.PushXY(2, 2)
	ix := New(b.Finish())

	require.Equal(t, 2, ix.Len())
	got := ix.Range(geoarrow.BoundingBox{MinX: -1, MinY: -1, MaxX: 3, MaxY: 3}, nil)
	sort.Ints(got)
	require.Equal(t, []int{0, 2}, got)
}

func TestIndexOverPolygons(t *testing.T) {
	pb := geoarrow.NewPolygonBuilder()
	pb.Push(fixtureQuad(0, 0, 2, 2))
	pb.Push(fixtureQuad(10, 10, 12, 12))
	ix := New(pb.Finish())

	got := ix.Range(geoarrow.BoundingBox{MinX: 1, MinY: 1, MaxX: 3, MaxY: 3}, nil)
	require.Equal(t, []int{0}, got)
	require.Equal(t, []int{1, 0}, ix.Nearest(11, 11, 2))
}
