// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"github.com/apache/arrow/go/v11/arrow"
)

// nestingDepth counts large-list levels above the coordinate leaf, or -1
// when the type is not a recognized nesting.
func nestingDepth(dt arrow.DataType) int {
	depth := 0
	for {
		switch t := dt.(type) {
		case *arrow.LargeListType:
			depth++
			dt = t.Elem()
		case *arrow.StructType:
			return depth
		default:
			return -1
		}
	}
}

// FromArrow imports a foreign array as whichever geometry layout its
// nesting encodes, sharing its buffers. Depth 1 is ambiguous between
// linestrings and multipoints, depth 2 between polygons and
// multilinestrings; isMulti picks the multi reading. The result slots
// into one of the native arrays or WKBArray; anything else fails with
// ErrIncompatibleLayout.
func FromArrow(arr arrow.Array, isMulti bool) (GeometryArray, error) {
	switch dt := arr.DataType().(type) {
	case *arrow.StructType:
		return NewPointArrayFromArrow(arr)
	case *arrow.LargeBinaryType:
		return NewWKBArrayFromArrow(arr)
	case *arrow.LargeListType:
		switch nestingDepth(dt) {
		case 1:
			if isMulti {
				return NewMultiPointArrayFromArrow(arr)
			}
			return NewLineStringArrayFromArrow(arr)
		case 2:
			if isMulti {
				return NewMultiLineStringArrayFromArrow(arr)
			}
			return NewPolygonArrayFromArrow(arr)
		case 3:
			return NewMultiPolygonArrayFromArrow(arr)
		}
	}
	return nil, incompatibleLayoutf(
		"no geometry layout matches arrow type %s", arr.DataType())
}
