// Copyright 2026 The Bc1 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package refdec is a reference decoder for single BC1 blocks.
//
// It is an incomplete implementation (and hence an internal package), only
// providing what's needed by the github.com/blockpack/bc1 module's tests.
// The module itself does not decode BC1 data.
package refdec

// Palette expands a block's two 16-bit endpoint fields to the four palette
// colors, in stored-index order, with normalized channel values. Each 16-bit
// field holds 5 bits red in bits [0,5), 6 bits green in bits [5,11) and 5
// bits blue in bits [11,16).
//
// Stored index 0 selects the first endpoint field, index 1 the second, and
// indices 2 and 3 the interpolants at 1/3 and 2/3 of the way from the first
// field to the second.
func Palette(field0 uint16, field1 uint16) [4][3]float64 {
	c0 := expand(field0)
	c1 := expand(field1)
	return [4][3]float64{
		c0,
		c1,
		lerp(c0, c1, 1.0/3),
		lerp(c0, c1, 2.0/3),
	}
}

// DecodeBlock expands 8 bytes of BC1 data to 16 RGB colors in raster order,
// with normalized channel values in [0,1].
func DecodeBlock(block *[8]byte) [16][3]float64 {
	field0 := uint16(block[0]) | (uint16(block[1]) << 8)
	field1 := uint16(block[2]) | (uint16(block[3]) << 8)
	palette := Palette(field0, field1)

	indexes := uint32(block[4]) |
		(uint32(block[5]) << 8) |
		(uint32(block[6]) << 16) |
		(uint32(block[7]) << 24)

	ret := [16][3]float64{}
	for i := range 16 {
		ret[i] = palette[(indexes>>(2*uint(i)))&3]
	}
	return ret
}

func expand(c uint16) [3]float64 {
	return [3]float64{
		float64((c>>0)&0x1F) / 31,
		float64((c>>5)&0x3F) / 63,
		float64((c>>11)&0x1F) / 31,
	}
}

func lerp(a [3]float64, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		a[0] + ((b[0] - a[0]) * t),
		a[1] + ((b[1] - a[1]) * t),
		a[2] + ((b[2] - a[2]) * t),
	}
}
