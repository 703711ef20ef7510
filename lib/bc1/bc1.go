// Copyright 2026 The Bc1 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package bc1 implements an encoder for the BC1 block texture compression
// format (also called DXT1 or S3TC).
//
// BC1 compresses each 4×4 block of pixels to 8 bytes: two RGB565 endpoint
// colors followed by sixteen 2-bit palette indices. The four palette entries
// are the two endpoints plus two interpolants at 1/3 and 2/3 along the line
// segment between them. BC1 is often wrapped in .dds container files, which
// prepend a 128-byte header stating width, height and format.
//
// This package only encodes. Decoding BC1 data is out of scope, as are the
// other block compression formats (BC2 through BC7) and BC1's optional 1-bit
// "punch-through" transparency mode.
package bc1

import (
	"errors"
)

var (
	ErrBadArgument     = errors.New("bc1: bad argument")
	ErrImageIsTooLarge = errors.New("bc1: image is too large")
)

const (
	// BlockWidth and BlockHeight are the pixel dimensions of one block.
	BlockWidth  = 4
	BlockHeight = 4

	// BytesPerBlock is the number of bytes used to encode each 4×4 block.
	BytesPerBlock = 8
)

// OpenGLInternalFormat is the OpenGL internalFormat enum value for BC1 RGB
// data, suitable for passing to the glCompressedTexImage2D function.
const OpenGLInternalFormat = 0x83F0 // GL_COMPRESSED_RGB_S3TC_DXT1_EXT

// RGB565 is a 16-bit color: 5 bits red in bits [0,5), 6 bits green in bits
// [5,11) and 5 bits blue in bits [11,16).
type RGB565 uint16

// PackRGB565 quantizes a color to the nearest representable RGB565 value.
// Channel values are normalized to the range [0,1]. Out-of-range values are
// clamped rather than propagated.
func PackRGB565(red float64, green float64, blue float64) RGB565 {
	r := uint32((clamp01(red) * 31) + 0.5)
	g := uint32((clamp01(green) * 63) + 0.5)
	b := uint32((clamp01(blue) * 31) + 0.5)
	return RGB565(r | (g << 5) | (b << 11))
}

// RGB expands c back to normalized floating point channel values.
func (c RGB565) RGB() (red float64, green float64, blue float64) {
	red = float64((c>>0)&0x1F) / 31
	green = float64((c>>5)&0x3F) / 63
	blue = float64((c>>11)&0x1F) / 31
	return red, green, blue
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}

// indexRemap converts a raw index (the linear position along the endpoint
// line, 0 at ep0 and 3 at ep1) to a stored index (the wire format's palette
// position). The wire format's palette order is not sequential along the
// line: position 0 is the first stored endpoint, position 1 the second, and
// positions 2 and 3 the interpolants at 1/3 and 2/3 from the first.
var indexRemap = [4]uint8{1, 3, 2, 0}
