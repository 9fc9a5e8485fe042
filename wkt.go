// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"strconv"
	"strings"
)

// WKTWriter is a Processor sink that renders the event stream as
// well-known text. The whole array renders as one GEOMETRYCOLLECTION.
// Coordinates print with the shortest exact decimal representation and no
// whitespace between elements.
type WKTWriter struct {
	sb strings.Builder
	// open records, per begin event, whether a parenthesis was opened
	// (empty geometries print EMPTY instead and close nothing).
	open []bool
}

var _ Processor = (*WKTWriter)(nil)

// String returns the text accumulated so far.
func (w *WKTWriter) String() string {
	return w.sb.String()
}

// Reset clears the writer for reuse.
func (w *WKTWriter) Reset() {
	w.sb.Reset()
	w.open = w.open[:0]
}

func (w *WKTWriter) begin(tag string, empty bool, idx int) error {
	if idx > 0 {
		w.sb.WriteByte(',')
	}
	w.sb.WriteString(tag)
	if empty {
		if tag != "" {
			w.sb.WriteByte(' ')
		}
		w.sb.WriteString("EMPTY")
		w.open = append(w.open, false)
		return nil
	}
	w.sb.WriteByte('(')
	w.open = append(w.open, true)
	return nil
}

func (w *WKTWriter) end() error {
	n := len(w.open) - 1
	if w.open[n] {
		w.sb.WriteByte(')')
	}
	w.open = w.open[:n]
	return nil
}

func (w *WKTWriter) CollectionBegin(size int) error {
	return w.begin("GEOMETRYCOLLECTION", size == 0, 0)
}

func (w *WKTWriter) CollectionEnd() error { return w.end() }

func (w *WKTWriter) PointBegin(empty bool, idx int) error {
	return w.begin("POINT", empty, idx)
}

func (w *WKTWriter) PointEnd(idx int) error { return w.end() }

func (w *WKTWriter) MultiPointBegin(size, idx int) error {
	return w.begin("MULTIPOINT", size == 0, idx)
}

func (w *WKTWriter) MultiPointEnd(idx int) error { return w.end() }

func (w *WKTWriter) LineStringBegin(tagged bool, size, idx int) error {
	tag := ""
	if tagged {
		tag = "LINESTRING"
	}
	return w.begin(tag, size == 0, idx)
}

func (w *WKTWriter) LineStringEnd(tagged bool, idx int) error { return w.end() }

func (w *WKTWriter) MultiLineStringBegin(size, idx int) error {
	return w.begin("MULTILINESTRING", size == 0, idx)
}

func (w *WKTWriter) MultiLineStringEnd(idx int) error { return w.end() }

func (w *WKTWriter) PolygonBegin(tagged bool, size, idx int) error {
	tag := ""
	if tagged {
		tag = "POLYGON"
	}
	return w.begin(tag, size == 0, idx)
}

func (w *WKTWriter) PolygonEnd(tagged bool, idx int) error { return w.end() }

func (w *WKTWriter) MultiPolygonBegin(size, idx int) error {
	return w.begin("MULTIPOLYGON", size == 0, idx)
}

func (w *WKTWriter) MultiPolygonEnd(idx int) error { return w.end() }

func (w *WKTWriter) XY(x, y float64, idx int) error {
	if idx > 0 {
		w.sb.WriteByte(',')
	}
	w.sb.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	w.sb.WriteByte(' ')
	w.sb.WriteString(strconv.FormatFloat(y, 'f', -1, 64))
	return nil
}

// ToWKT serializes an array to well-known text by streaming it through a
// WKTWriter.
func ToWKT(a GeometryArray) (string, error) {
	var w WKTWriter
	if err := a.Process(&w); err != nil {
		return "", err
	}
	return w.String(), nil
}
