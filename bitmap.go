// Copyright 2023 The GeoPolars Authors.
//
// Use of this software is governed by the MIT License
// included in the file LICENSE.

package geoarrow

import (
	"github.com/apache/arrow/go/v11/arrow/bitutil"
)

// Bitmap is a validity mask: one bit per geometry, set means valid. A nil
// *Bitmap means provably all-valid and is the fast path every consumer
// must preserve; code never assumes a mask exists.
//
// A Bitmap is a window into shared bytes: slicing adjusts the bit offset
// and length without copying, so masks windowed out of foreign Arrow
// arrays (whose validity buffers start at arbitrary bit positions) are
// represented directly.
type Bitmap struct {
	data   []byte
	offset int
	length int
}

// NewBitmap wraps data as a validity mask of length bits, starting at bit
// zero. It fails if data is too short to hold length bits.
func NewBitmap(data []byte, length int) (*Bitmap, error) {
	if int64(len(data)) < bitutil.BytesForBits(int64(length)) {
		return nil, invariantViolationf(
			"validity mask needs %d bytes for %d bits, have %d",
			bitutil.BytesForBits(int64(length)), length, len(data))
	}
	return &Bitmap{data: data, length: length}, nil
}

// NewBitmapFromBools builds a mask from a per-element validity slice.
// It returns nil when every element is valid.
func NewBitmapFromBools(valid []bool) *Bitmap {
	var b bitmapBuilder
	for _, v := range valid {
		b.append(v)
	}
	return b.finish()
}

// Len returns the number of bits in the window.
func (b *Bitmap) Len() int {
	if b == nil {
		return 0
	}
	return b.length
}

// IsSet reports whether bit i of the window is set (element i is valid).
func (b *Bitmap) IsSet(i int) bool {
	return bitutil.BitIsSet(b.data, b.offset+i)
}

// UnsetBits returns the number of unset (null) bits in the window.
func (b *Bitmap) UnsetBits() int {
	if b == nil {
		return 0
	}
	return b.length - bitutil.CountSetBits(b.data, b.offset, b.length)
}

// Slice re-windows the mask to length bits starting at offset. The bytes
// are shared, not copied. When the window holds no unset bits the mask is
// dropped entirely (nil return) to restore the all-valid fast path. The
// caller must ensure offset+length <= Len().
func (b *Bitmap) Slice(offset, length int) *Bitmap {
	if b == nil {
		return nil
	}
	s := &Bitmap{data: b.data, offset: b.offset + offset, length: length}
	if s.UnsetBits() == 0 {
		return nil
	}
	return s
}

// alignedBytes returns the window's bits repacked to start at bit zero,
// plus the null count, in the form Arrow buffers want. When the window is
// already byte-aligned the underlying bytes are shared.
func (b *Bitmap) alignedBytes() ([]byte, int) {
	if b == nil {
		return nil, 0
	}
	nulls := b.UnsetBits()
	if b.offset%8 == 0 {
		return b.data[b.offset/8:], nulls
	}
	packed := make([]byte, bitutil.BytesForBits(int64(b.length)))
	for i := 0; i < b.length; i++ {
		if b.IsSet(i) {
			bitutil.SetBit(packed, i)
		}
	}
	return packed, nulls
}

// bitmapBuilder accumulates validity bits for a mutable array. Storage is
// allocated lazily on the first null so that all-valid pushes freeze into
// a nil mask.
type bitmapBuilder struct {
	data   []byte
	length int
	unset  int
}

func (b *bitmapBuilder) append(valid bool) {
	if b.data == nil && valid {
		b.length++
		return
	}
	if b.data == nil {
		// First null: materialize the bits seen so far, all set.
		b.data = make([]byte, bitutil.BytesForBits(int64(b.length)+1))
		for i := 0; i < b.length; i++ {
			bitutil.SetBit(b.data, i)
		}
	}
	if int64(len(b.data))*8 < int64(b.length)+1 {
		grown := make([]byte, len(b.data)*2)
		copy(grown, b.data)
		b.data = grown
	}
	if valid {
		bitutil.SetBit(b.data, b.length)
	} else {
		b.unset++
	}
	b.length++
}

func (b *bitmapBuilder) reserve(n int) {
	if b.data == nil {
		return
	}
	need := bitutil.BytesForBits(int64(b.length + n))
	if int64(len(b.data)) < need {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
}

// finish freezes the accumulated bits, returning nil when no null was
// ever appended.
func (b *bitmapBuilder) finish() *Bitmap {
	if b.unset == 0 {
		return nil
	}
	return &Bitmap{data: b.data, length: b.length}
}
