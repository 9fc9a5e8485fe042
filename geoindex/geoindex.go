// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

// Package geoindex accelerates spatial lookups over a geometry array
// with an in-memory R-tree keyed by slot index.
package geoindex

import (
	"github.com/tidwall/rtree"

	"github.com/geopolars/geoarrow"
)

// Index is an immutable R-tree over the bounding boxes of one geometry
// array. Null slots are absent from the tree. An Index is safe for
// concurrent readers once built.
type Index struct {
	tree rtree.RTreeG[int]
	arr  geoarrow.GeometryArray
}

// New builds the index in one pass over arr. The array must not be
// mutated afterwards; slicing the array does not carry the index along.
func New(arr geoarrow.GeometryArray) *Index {
	ix := &Index{arr: arr}
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			continue
		}
		box := arr.Geometry(i).BoundingBox()
		if box.Empty() {
			continue
		}
		ix.tree.Insert(
			[2]float64{box.MinX, box.MinY}, [2]float64{box.MaxX, box.MaxY}, i)
	}
	return ix
}

// Array returns the indexed array.
func (ix *Index) Array() geoarrow.GeometryArray { return ix.arr }

// Len returns the number of indexed slots. Null and empty slots do not
// count.
func (ix *Index) Len() int { return ix.tree.Len() }

// Range appends to dst the slot indices whose bounding boxes intersect
// box, in tree order.
func (ix *Index) Range(box geoarrow.BoundingBox, dst []int) []int {
	ix.tree.Search(
		[2]float64{box.MinX, box.MinY}, [2]float64{box.MaxX, box.MaxY},
		func(_, _ [2]float64, i int) bool {
			dst = append(dst, i)
			return true
		})
	return dst
}

// Contains reports whether any indexed bounding box intersects box.
func (ix *Index) Contains(box geoarrow.BoundingBox) bool {
	found := false
	ix.tree.Search(
		[2]float64{box.MinX, box.MinY}, [2]float64{box.MaxX, box.MaxY},
		func(_, _ [2]float64, _ int) bool {
			found = true
			return false
		})
	return found
}

// Nearest returns the k slot indices whose bounding boxes lie closest to
// the point (x, y), nearest first. Fewer than k come back when the tree
// is smaller.
func (ix *Index) Nearest(x, y float64, k int) []int {
	if k <= 0 {
		return nil
	}
	out := make([]int, 0, k)
	target := [2]float64{x, y}
	ix.tree.Nearby(
		rtree.BoxDist[float64, int](target, target, nil),
		func(_, _ [2]float64, i int, _ float64) bool {
			out = append(out, i)
			return len(out) < k
		})
	return out
}
