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
	"io"
	"runtime"
	"sync"
)

// EncodeOptions are optional arguments to Encode and EncodeTexture. The zero
// value is valid and means to use the default configuration.
type EncodeOptions struct {
	// Fitter chooses each block's endpoint colors. If nil, the default is
	// BoundingBoxFitter.
	Fitter EndpointFitter

	// Concurrency caps the number of concurrent block-row workers used by
	// EncodeTexture. If zero, the default is runtime.GOMAXPROCS(0). Encode
	// ignores this field and always encodes sequentially, since it streams
	// its output.
	Concurrency int
}

func (o *EncodeOptions) fitter() EndpointFitter {
	if (o != nil) && (o.Fitter != nil) {
		return o.Fitter
	}
	return BoundingBoxFitter{}
}

// EncodeBlock encodes one 4×4 block of colors as 8 bytes of BC1 data.
//
// colors must hold exactly 16 entries, in raster order, with normalized
// channel values in [0,1]. Out-of-range values are clamped. fitter may be
// nil, which means BoundingBoxFitter.
//
// EncodeBlock is deterministic: the same input always produces the same
// output, byte for byte.
func EncodeBlock(colors [][3]float64, fitter EndpointFitter) ([8]byte, error) {
	if len(colors) != 16 {
		return [8]byte{}, ErrBadArgument
	}
	if fitter == nil {
		fitter = BoundingBoxFitter{}
	}

	e := encoder{}
	copy(e.colors[:], colors)
	for i := range 16 {
		for c := range 3 {
			e.colors[i][c] = clamp01(e.colors[i][c])
		}
	}

	ret := [8]byte{}
	writeU64LE(ret[:], e.encodeBlock(fitter))
	return ret, nil
}

// Encode writes src to dst as BC1 block data, blocks in raster order.
//
// Pixels right of and below the image, when the dimensions are not multiples
// of 4, are substituted with the nearest in-bound pixel. Alpha is dropped
// (BC1's base format is opaque).
//
// options may be nil, which means to use the default configuration.
func Encode(dst io.Writer, src image.Image, options *EncodeOptions) error {
	if (dst == nil) || (src == nil) {
		return ErrBadArgument
	}

	b := src.Bounds()
	bW, bH := b.Dx(), b.Dy()
	if (bW > maxImageDimension) || (bH > maxImageDimension) {
		return ErrImageIsTooLarge
	}

	fitter := options.fitter()
	e, bufJ := &encoder{}, 0
	extract := makeExtract(&e.colors, src)

	for blockY := 0; blockY < bH; blockY += 4 {
		for blockX := 0; blockX < bW; blockX += 4 {
			extract(b.Min.X+blockX, b.Min.Y+blockY)
			writeU64LE(e.buf[bufJ:], e.encodeBlock(fitter))
			bufJ += 8

			if bufJ >= encoderBufferSize {
				if _, err := dst.Write(e.buf[:]); err != nil {
					return err
				}
				bufJ = 0
			}
		}
	}

	if bufJ > 0 {
		if _, err := dst.Write(e.buf[:bufJ]); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTexture encodes src as a flat sequence of 8-byte BC1 blocks, one per
// 4×4 tile, in raster order of block coordinates: the block whose top-left
// pixel is (4*bx, 4*by) occupies ret[8*((by*blocksPerRow)+bx):][:8]. This
// mirrors standard block-compressed texture layout, so the result is directly
// usable as texture data.
//
// Blocks are independent of each other, so EncodeTexture may encode them
// concurrently (see EncodeOptions.Concurrency). Workers write to disjoint
// output slots and need no synchronization. The result does not depend on
// the concurrency level.
//
// options may be nil, which means to use the default configuration.
func EncodeTexture(src image.Image, options *EncodeOptions) ([]byte, error) {
	if src == nil {
		return nil, ErrBadArgument
	}

	b := src.Bounds()
	bW, bH := b.Dx(), b.Dy()
	if (bW > maxImageDimension) || (bH > maxImageDimension) {
		return nil, ErrImageIsTooLarge
	}

	blocksPerRow := (bW + 3) / 4
	blocksPerCol := (bH + 3) / 4
	dst := make([]byte, 8*blocksPerRow*blocksPerCol)

	fitter := options.fitter()
	workers := runtime.GOMAXPROCS(0)
	if (options != nil) && (options.Concurrency > 0) {
		workers = options.Concurrency
	}
	workers = min(workers, blocksPerCol)

	if workers <= 1 {
		e := &encoder{}
		extract := makeExtract(&e.colors, src)
		for by := 0; by < blocksPerCol; by++ {
			e.encodeBlockRow(dst, extract, fitter, b.Min, by, blocksPerRow)
		}
		return dst, nil
	}

	rows := make(chan int)
	wg := sync.WaitGroup{}
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := &encoder{}
			extract := makeExtract(&e.colors, src)
			for by := range rows {
				e.encodeBlockRow(dst, extract, fitter, b.Min, by, blocksPerRow)
			}
		}()
	}
	for by := 0; by < blocksPerCol; by++ {
		rows <- by
	}
	close(rows)
	wg.Wait()

	return dst, nil
}

const (
	// encoderBufferSize is a multiple of the 8-byte block size.
	encoderBufferSize = 4096

	maxImageDimension = 65532
)

type encoder struct {
	colors [16][3]float64
	buf    [encoderBufferSize]byte
}

func (e *encoder) encodeBlockRow(
	dst []byte,
	extract func(blockX int, blockY int),
	fitter EndpointFitter,
	minPoint image.Point,
	by int,
	blocksPerRow int) {

	for bx := 0; bx < blocksPerRow; bx++ {
		extract(minPoint.X+(4*bx), minPoint.Y+(4*by))
		writeU64LE(dst[8*((by*blocksPerRow)+bx):], e.encodeBlock(fitter))
	}
}

// encodeBlock compresses e.colors to a 64-bit block code: bits [0,16) hold
// the packed ep1 endpoint, bits [16,32) the packed ep0 endpoint and bits
// [32,64) the sixteen 2-bit stored indices, texel 0 in bits [32,34).
func (e *encoder) encodeBlock(fitter EndpointFitter) uint64 {
	fit0, fit1 := fitter.Fit(&e.colors)

	// Quantize the endpoints before assigning indices, so that index
	// selection measures error against the actual decoded palette colors
	// rather than the unquantized fit.
	q0 := PackRGB565(fit0[0], fit0[1], fit0[2])
	q1 := PackRGB565(fit1[0], fit1[1], fit1[2])

	code := (uint64(q1) << 0) | (uint64(q0) << 16)

	// Equal quantized endpoints mean a solid block. Every stored index is 0
	// and there is no line to project onto: without this path, the direction
	// vector below would have zero length.
	if q0 == q1 {
		return code
	}

	r0, g0, b0 := q0.RGB()
	r1, g1, b1 := q1.RGB()
	dR := r1 - r0
	dG := g1 - g0
	dB := b1 - b0
	lenSquared := (dR * dR) + (dG * dG) + (dB * dB)

	for i := range 16 {
		// Project the color onto the endpoint line. t is nominally in [0,1]
		// but quantization can push it outside, so clamp before rounding.
		// The four palette entries are evenly spaced along the line, so the
		// nearest palette entry is the one whose position rounds from 3*t.
		t := 0 +
			((e.colors[i][0] - r0) * dR) +
			((e.colors[i][1] - g0) * dG) +
			((e.colors[i][2] - b0) * dB)
		t /= lenSquared

		rawIndex := int32((clamp01(t) * 3) + 0.5)
		code |= uint64(indexRemap[rawIndex]) << (32 + (2 * uint(i)))
	}

	return code
}

func writeU64LE(buf []byte, x uint64) {
	buf = buf[:8]
	buf[0] = uint8(x >> 0)
	buf[1] = uint8(x >> 8)
	buf[2] = uint8(x >> 16)
	buf[3] = uint8(x >> 24)
	buf[4] = uint8(x >> 32)
	buf[5] = uint8(x >> 40)
	buf[6] = uint8(x >> 48)
	buf[7] = uint8(x >> 56)
}
