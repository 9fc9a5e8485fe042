// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

// Processor is the streaming visitor protocol driven by GeometryArray.Process.
// A traversal emits an ordered begin/element/end event sequence over the
// nested structure without materializing owned geometries: the walk reads
// offsets and coordinates directly.
//
// An array of n geometries always opens with CollectionBegin(n) and closes
// with CollectionEnd; in between, each slot emits the events of its kind.
// The tagged argument distinguishes a standalone geometry (true) from one
// nested inside a larger one (false): a polygon's ring is an untagged
// linestring, a multipolygon's part an untagged polygon. Size arguments
// are the number of immediate children; index arguments the position
// among siblings. A null slot is emitted as its kind with size zero;
// points, which have no size, carry an empty flag instead and emit no
// XY event when it is set.
//
// Any error returned by a callback aborts the traversal and is surfaced
// unchanged.
type Processor interface {
	CollectionBegin(size int) error
	CollectionEnd() error
	PointBegin(empty bool, idx int) error
	PointEnd(idx int) error
	MultiPointBegin(size, idx int) error
	MultiPointEnd(idx int) error
	LineStringBegin(tagged bool, size, idx int) error
	LineStringEnd(tagged bool, idx int) error
	MultiLineStringBegin(size, idx int) error
	MultiLineStringEnd(idx int) error
	PolygonBegin(tagged bool, size, idx int) error
	PolygonEnd(tagged bool, idx int) error
	MultiPolygonBegin(size, idx int) error
	MultiPolygonEnd(idx int) error
	XY(x, y float64, idx int) error
}

// BaseProcessor is a no-op Processor for embedding, so sinks implement
// only the events they care about.
type BaseProcessor struct{}

var _ Processor = BaseProcessor{}

func (BaseProcessor) CollectionBegin(size int) error                 { return nil }
func (BaseProcessor) CollectionEnd() error                           { return nil }
func (BaseProcessor) PointBegin(empty bool, idx int) error           { return nil }
func (BaseProcessor) PointEnd(idx int) error                         { return nil }
func (BaseProcessor) MultiPointBegin(size, idx int) error            { return nil }
func (BaseProcessor) MultiPointEnd(idx int) error                    { return nil }
func (BaseProcessor) LineStringBegin(tagged bool, size, idx int) error { return nil }
func (BaseProcessor) LineStringEnd(tagged bool, idx int) error       { return nil }
func (BaseProcessor) MultiLineStringBegin(size, idx int) error       { return nil }
func (BaseProcessor) MultiLineStringEnd(idx int) error               { return nil }
func (BaseProcessor) PolygonBegin(tagged bool, size, idx int) error  { return nil }
func (BaseProcessor) PolygonEnd(tagged bool, idx int) error          { return nil }
func (BaseProcessor) MultiPolygonBegin(size, idx int) error          { return nil }
func (BaseProcessor) MultiPolygonEnd(idx int) error                  { return nil }
func (BaseProcessor) XY(x, y float64, idx int) error                 { return nil }

// processCoordRange streams one contiguous coordinate range, re-indexed
// from zero. Every kind's traversal bottoms out here.
func processCoordRange(p Processor, x, y []float64, start, end int64) error {
	for i := start; i < end; i++ {
		if err := p.XY(x[i], y[i], int(i-start)); err != nil {
			return err
		}
	}
	return nil
}

// processRings streams a ring range as untagged linestrings.
func processRings(p Processor, x, y []float64, ringOffsets Offsets, start, end int64) error {
	for r := start; r < end; r++ {
		cs, ce := ringOffsets.StartEnd(int(r))
		if err := p.LineStringBegin(false, int(ce-cs), int(r-start)); err != nil {
			return err
		}
		if err := processCoordRange(p, x, y, cs, ce); err != nil {
			return err
		}
		if err := p.LineStringEnd(false, int(r-start)); err != nil {
			return err
		}
	}
	return nil
}
