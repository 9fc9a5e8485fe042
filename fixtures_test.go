// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"github.com/twpayne/go-geom"
)

// Shared fixtures. Rings are explicitly closed; the layout stores
// coordinates exactly as given.

func fixturePoint(x, y float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{x, y})
}

func fixtureLineString(coords ...float64) *geom.LineString {
	return geom.NewLineStringFlat(geom.XY, coords)
}

func fixtureMultiPoint(coords ...float64) *geom.MultiPoint {
	return geom.NewMultiPointFlat(geom.XY, coords)
}

// fixturePolygonA is a plain quad.
func fixturePolygonA() *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY,
		[]float64{-111, 45, -111, 41, -104, 41, -104, 45, -111, 45},
		[]int{10})
}

// fixturePolygonB carries one hole.
func fixturePolygonB() *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY,
		[]float64{
			-110, 44, -110, 42, -105, 42, -105, 44, -110, 44,
			-108, 43.5, -108, 42.5, -107, 42.5, -107, 43.5, -108, 43.5,
		},
		[]int{10, 20})
}

func fixtureMultiPolygon0() *geom.MultiPolygon {
	return geom.NewMultiPolygonFlat(geom.XY,
		[]float64{-111, 45, -111, 41, -104, 41, -104, 45, -111, 45},
		[][]int{{10}})
}

func fixtureMultiPolygon1() *geom.MultiPolygon {
	return geom.NewMultiPolygonFlat(geom.XY,
		[]float64{
			-111, 45, -111, 41, -104, 41, -104, 45, -111, 45,
			-110, 44, -110, 42, -105, 42, -105, 44, -110, 44,
			-108, 43.5, -108, 42.5, -107, 42.5, -107, 43.5, -108, 43.5,
		},
		[][]int{{10}, {20, 30}})
}

const (
	wktMultiPolygon0 = "MULTIPOLYGON(((-111 45,-111 41,-104 41,-104 45,-111 45)))"
	wktMultiPolygon1 = "MULTIPOLYGON(((-111 45,-111 41,-104 41,-104 45,-111 45))," +
		"((-110 44,-110 42,-105 42,-105 44,-110 44)," +
		"(-108 43.5,-108 42.5,-107 42.5,-107 43.5,-108 43.5)))"
)
