// Copyright 2026 The Bc1 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc1

import (
	"image"
)

// makeExtract returns a closure that extracts the 4×4 block from src with the
// given top-left corner, writing normalized RGB values to colors in raster
// order.
//
// Out-of-bound pixels right of and below the image are substituted with the
// nearest in-bound pixel from the right and bottom edges.
//
// BC1's base format has no alpha channel. Premultiplied sources are
// un-premultiplied so that the encoded RGB matches the non-premultiplied
// color, and the alpha value is then dropped.
func makeExtract(colors *[16][3]float64, src image.Image) func(blockX int, blockY int) {
	maxPoint := src.Bounds().Max
	mX1 := maxPoint.X - 1
	mY1 := maxPoint.Y - 1

	if srcNRGBA, ok := src.(*image.NRGBA); ok {
		return func(blockX int, blockY int) {
			for y := range 4 {
				for x := range 4 {
					i := (4 * y) + x
					c := srcNRGBA.NRGBAAt(min(mX1, blockX+x), min(mY1, blockY+y))
					colors[i][0] = float64(c.R) / 0xFF
					colors[i][1] = float64(c.G) / 0xFF
					colors[i][2] = float64(c.B) / 0xFF
				}
			}
		}

	} else if srcNRGBA64, ok := src.(*image.NRGBA64); ok {
		return func(blockX int, blockY int) {
			for y := range 4 {
				for x := range 4 {
					i := (4 * y) + x
					c := srcNRGBA64.NRGBA64At(min(mX1, blockX+x), min(mY1, blockY+y))
					colors[i][0] = float64(c.R) / 0xFFFF
					colors[i][1] = float64(c.G) / 0xFFFF
					colors[i][2] = float64(c.B) / 0xFFFF
				}
			}
		}

	} else if srcRGBA64, ok := src.(image.RGBA64Image); ok {
		return func(blockX int, blockY int) {
			for y := range 4 {
				for x := range 4 {
					i := (4 * y) + x
					c := srcRGBA64.RGBA64At(min(mX1, blockX+x), min(mY1, blockY+y))
					if (c.A != 0x0000) && (c.A != 0xFFFF) {
						c.R = uint16((uint32(c.R) * 0xFFFF) / uint32(c.A))
						c.G = uint16((uint32(c.G) * 0xFFFF) / uint32(c.A))
						c.B = uint16((uint32(c.B) * 0xFFFF) / uint32(c.A))
					}
					colors[i][0] = float64(c.R) / 0xFFFF
					colors[i][1] = float64(c.G) / 0xFFFF
					colors[i][2] = float64(c.B) / 0xFFFF
				}
			}
		}
	}

	return func(blockX int, blockY int) {
		for y := range 4 {
			for x := range 4 {
				i := (4 * y) + x
				r, g, b, a := src.At(min(mX1, blockX+x), min(mY1, blockY+y)).RGBA()
				if (a != 0x0000) && (a != 0xFFFF) {
					r = (r * 0xFFFF) / a
					g = (g * 0xFFFF) / a
					b = (b * 0xFFFF) / a
				}
				colors[i][0] = float64(r) / 0xFFFF
				colors[i][1] = float64(g) / 0xFFFF
				colors[i][2] = float64(b) / 0xFFFF
			}
		}
	}
}
