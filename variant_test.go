// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"testing"

	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestFromArrow(t *testing.T) {
	pb := NewPointBuilder()
	pb.PushXY(1, 2)
	lb := NewLineStringBuilder()
	lb.Push(fixtureLineString(0, 0, 1, 1))
	gb := NewPolygonBuilder()
	gb.Push(fixturePolygonA())
	mb := NewMultiPolygonBuilder()
	mb.Push(fixtureMultiPolygon1())
	wb := NewWKBBuilder()
	require.NoError(t, wb.Push(fixturePoint(1, 2)))

	testCases := []struct {
		desc    string
		arr     GeometryArray
		isMulti bool
		want    GeometryType
	}{
		{"struct is point", pb.Finish(), false, TypePoint},
		{"depth 1", lb.Finish(), false, TypeLineString},
		{"depth 1 multi", lb.Finish(), true, TypeMultiPoint},
		{"depth 2", gb.Finish(), false, TypePolygon},
		{"depth 2 multi", gb.Finish(), true, TypeMultiLineString},
		{"depth 3", mb.Finish(), false, TypeMultiPolygon},
		{"depth 3 multi flag ignored", mb.Finish(), true, TypeMultiPolygon},
		{"large binary is wkb", wb.Finish(), false, TypeWKB},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := FromArrow(tc.arr.ToArrow(), tc.isMulti)
			require.NoError(t, err)
			require.Equal(t, tc.want, got.GeometryType())
			require.Equal(t, tc.arr.Len(), got.Len())
		})
	}
}

func TestFromArrowIncompatible(t *testing.T) {
	ib := array.NewInt64Builder(memory.DefaultAllocator)
	defer ib.Release()
	ib.Append(42)
	col := ib.NewInt64Array()
	defer col.Release()

	_, err := FromArrow(col, false)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrIncompatibleLayout))
}

func TestFromArrowRejectsSmallList(t *testing.T) {
	lb := array.NewListBuilder(memory.DefaultAllocator, coordType)
	defer lb.Release()
	col := lb.NewListArray()
	defer col.Release()

	_, err := FromArrow(col, false)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrIncompatibleLayout))
}
