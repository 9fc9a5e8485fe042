// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/pierrre/geohash"
)

// BoundingBox is an axis-aligned envelope in the plane.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewBoundingBox returns an inverted bounding box that grows to fit the
// first coordinate passed to Update.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
}

// Update grows the bounding box to cover (x, y).
func (b *BoundingBox) Update(x, y float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MaxX = math.Max(b.MaxX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxY = math.Max(b.MaxY, y)
}

// Extend grows the bounding box to cover another box.
func (b *BoundingBox) Extend(o BoundingBox) {
	b.Update(o.MinX, o.MinY)
	b.Update(o.MaxX, o.MaxY)
}

// Empty reports whether the box is still inverted, covering nothing.
func (b BoundingBox) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Intersects reports whether two boxes overlap, boundaries included.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// GeoHashMaxPrecision is the maximum geohash length. Doubles carry 51
// significant bits and each base32 character 5, so 20 characters exhaust
// the precision of an x/y pair.
const GeoHashMaxPrecision = 20

// GeoHash encodes the center of the bounding box as a geohash of the
// given character length, interpreting x as longitude and y as latitude.
// It fails when the box exceeds lat/lng bounds.
func (b BoundingBox) GeoHash(precision int) (string, error) {
	if b.MinX < -180 || b.MaxX > 180 || b.MinY < -90 || b.MaxY > 90 {
		return "", errors.Newf(
			"bounding box exceeds lat/lng bounds, got (%f %f, %f %f)",
			b.MinX, b.MinY, b.MaxX, b.MaxY,
		)
	}
	if precision <= 0 || precision > GeoHashMaxPrecision {
		precision = GeoHashMaxPrecision
	}
	centerLng := b.MinX + (b.MaxX-b.MinX)/2.0
	centerLat := b.MinY + (b.MaxY-b.MinY)/2.0
	return geohash.Encode(centerLat, centerLng, precision), nil
}

// boundingBoxCoords folds a coordinate range of the shared buffers into a
// bounding box.
func boundingBoxCoords(x, y []float64, start, end int64) BoundingBox {
	b := NewBoundingBox()
	for i := start; i < end; i++ {
		b.Update(x[i], y[i])
	}
	return b
}
