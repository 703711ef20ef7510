// Copyright 2026 The Bc1 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc1

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/blockpack/bc1/internal/refdec"
)

// testBlocks returns n deterministic pseudo-random blocks, from a fixed
// linear congruential generator so that test failures are reproducible.
func testBlocks(n int) [][16][3]float64 {
	state := uint32(0x12345678)
	next := func() float64 {
		state = (state * 1664525) + 1013904223
		return float64(state>>24) / 0xFF
	}

	ret := make([][16][3]float64, n)
	for b := range ret {
		for i := range 16 {
			for c := range 3 {
				ret[b][i][c] = next()
			}
		}
	}
	return ret
}

func TestEncodeBlockBadArgument(tt *testing.T) {
	for _, n := range []int{0, 15, 17} {
		if _, err := EncodeBlock(make([][3]float64, n), nil); err != ErrBadArgument {
			tt.Errorf("n=%d: got %v, want ErrBadArgument", n, err)
		}
	}
	if _, err := EncodeBlock(make([][3]float64, 16), nil); err != nil {
		tt.Errorf("n=16: got %v, want nil", err)
	}
}

func TestAllBlackBlockIsAllZeroes(tt *testing.T) {
	got, err := EncodeBlock(make([][3]float64, 16), nil)
	if err != nil {
		tt.Fatalf("EncodeBlock: %v", err)
	}
	if got != ([8]byte{}) {
		tt.Errorf("got % 02X, want all zeroes", got)
	}
}

func TestSolidBlocks(tt *testing.T) {
	testCases := [][3]float64{
		{1, 1, 1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.5, 0.5, 0.5},
		{0.2, 0.8, 0.4},
		{0.99, 0.01, 0.37},
	}

	for _, tc := range testCases {
		colors := make([][3]float64, 16)
		for i := range colors {
			colors[i] = tc
		}
		got, err := EncodeBlock(colors, nil)
		if err != nil {
			tt.Fatalf("tc=%v: EncodeBlock: %v", tc, err)
		}

		q := PackRGB565(tc[0], tc[1], tc[2])
		field0 := uint16(got[0]) | (uint16(got[1]) << 8)
		field1 := uint16(got[2]) | (uint16(got[3]) << 8)
		if (field0 != uint16(q)) || (field1 != uint16(q)) {
			tt.Errorf("tc=%v: fields: got 0x%04X, 0x%04X, want both 0x%04X", tc, field0, field1, q)
		}
		if (got[4] | got[5] | got[6] | got[7]) != 0 {
			tt.Errorf("tc=%v: indexes: got % 02X, want all zeroes", tc, got[4:])
		}

		wantR, wantG, wantB := q.RGB()
		for i, d := range refdec.DecodeBlock(&got) {
			if (d[0] != wantR) || (d[1] != wantG) || (d[2] != wantB) {
				tt.Errorf("tc=%v: decoded texel %d: got %v, want (%v, %v, %v)",
					tc, i, d, wantR, wantG, wantB)
			}
		}
	}
}

func TestDeterminism(tt *testing.T) {
	for b, block := range testBlocks(8) {
		got0, err := EncodeBlock(block[:], nil)
		if err != nil {
			tt.Fatalf("b=%d: EncodeBlock: %v", b, err)
		}
		got1, err := EncodeBlock(block[:], nil)
		if err != nil {
			tt.Fatalf("b=%d: EncodeBlock: %v", b, err)
		}
		if got0 != got1 {
			tt.Errorf("b=%d: got % 02X and % 02X, want identical", b, got0, got1)
		}
	}
}

func TestEndpointOrdering(tt *testing.T) {
	for b, block := range testBlocks(64) {
		got, err := EncodeBlock(block[:], nil)
		if err != nil {
			tt.Fatalf("b=%d: EncodeBlock: %v", b, err)
		}

		lo, hi := block[0], block[0]
		for i := 1; i < 16; i++ {
			for c := range 3 {
				lo[c] = min(lo[c], block[i][c])
				hi[c] = max(hi[c], block[i][c])
			}
		}
		wantMax := PackRGB565(hi[0], hi[1], hi[2])
		wantMin := PackRGB565(lo[0], lo[1], lo[2])

		field0 := RGB565(uint16(got[0]) | (uint16(got[1]) << 8))
		field1 := RGB565(uint16(got[2]) | (uint16(got[3]) << 8))
		if field0 != wantMax {
			tt.Errorf("b=%d: bits [0,16): got 0x%04X, want componentwise max 0x%04X", b, field0, wantMax)
		}
		if field1 != wantMin {
			tt.Errorf("b=%d: bits [16,32): got 0x%04X, want componentwise min 0x%04X", b, field1, wantMin)
		}
	}
}

// TestIndexOptimality checks that, with the endpoints fixed, no texel's
// stored index could be swapped for another index to reduce that texel's
// individual reconstruction error.
func TestIndexOptimality(tt *testing.T) {
	for b, block := range testBlocks(64) {
		got, err := EncodeBlock(block[:], nil)
		if err != nil {
			tt.Fatalf("b=%d: EncodeBlock: %v", b, err)
		}

		field0 := uint16(got[0]) | (uint16(got[1]) << 8)
		field1 := uint16(got[2]) | (uint16(got[3]) << 8)
		palette := refdec.Palette(field0, field1)
		indexes := uint32(got[4]) |
			(uint32(got[5]) << 8) |
			(uint32(got[6]) << 16) |
			(uint32(got[7]) << 24)

		for i := range 16 {
			stored := (indexes >> (2 * uint(i))) & 3
			errStored := colorDistSquared(block[i], palette[stored])
			for j := range 4 {
				if errJ := colorDistSquared(block[i], palette[j]); errStored > errJ+1e-9 {
					tt.Errorf("b=%d: texel %d: stored index %d has error %v but index %d has error %v",
						b, i, stored, errStored, j, errJ)
				}
			}
		}
	}
}

func colorDistSquared(a [3]float64, b [3]float64) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	d2 := a[2] - b[2]
	return (d0 * d0) + (d1 * d1) + (d2 * d2)
}

func TestGradientBlockIndexes(tt *testing.T) {
	colors := make([][3]float64, 16)
	for i := range colors {
		g := float64(i&3) / 3
		colors[i] = [3]float64{g, g, g}
	}

	got, err := EncodeBlock(colors, nil)
	if err != nil {
		tt.Fatalf("EncodeBlock: %v", err)
	}

	// Endpoints are black and white. Along each row the raw (linear) index
	// runs 0, 1, 2, 3 which stores as 1, 3, 2, 0: the 0x2D bit pattern.
	want := [8]byte{0xFF, 0xFF, 0x00, 0x00, 0x2D, 0x2D, 0x2D, 0x2D}
	if got != want {
		tt.Fatalf("got % 02X, want % 02X", got, want)
	}

	// The gradient exercises all four distinct index values, monotonically
	// non-decreasing in linear order along the gradient direction.
	rawFromStored := [4]int{}
	for raw, stored := range indexRemap {
		rawFromStored[stored] = raw
	}
	indexes := uint32(got[4]) |
		(uint32(got[5]) << 8) |
		(uint32(got[6]) << 16) |
		(uint32(got[7]) << 24)
	seen := [4]bool{}
	for i := range 16 {
		raw := rawFromStored[(indexes>>(2*uint(i)))&3]
		seen[raw] = true
		if raw != (i & 3) {
			tt.Errorf("texel %d: got raw index %d, want %d", i, raw, i&3)
		}
	}
	if seen != ([4]bool{true, true, true, true}) {
		tt.Errorf("got %v, want all four index values used", seen)
	}
}

// TestRedBlueScenario encodes a block whose texel 0 is pure red and whose
// other 15 texels are pure blue. All 16 colors are collinear, so the
// principal-axis fit puts one endpoint at each color: the red texel must
// decode nearest red and the others nearest blue.
func TestRedBlueScenario(tt *testing.T) {
	red := [3]float64{1, 0, 0}
	blue := [3]float64{0, 0, 1}

	colors := make([][3]float64, 16)
	colors[0] = red
	for i := 1; i < 16; i++ {
		colors[i] = blue
	}

	got, err := EncodeBlock(colors, PCAFitter{})
	if err != nil {
		tt.Fatalf("EncodeBlock: %v", err)
	}

	field0 := uint16(got[0]) | (uint16(got[1]) << 8)
	field1 := uint16(got[2]) | (uint16(got[3]) << 8)
	if field0 == field1 {
		tt.Fatalf("endpoints: got 0x%04X twice, want two distinct endpoints", field0)
	}

	for i, d := range refdec.DecodeBlock(&got) {
		nearRed := colorDistSquared(d, red) < colorDistSquared(d, blue)
		if wantNearRed := i == 0; nearRed != wantNearRed {
			tt.Errorf("texel %d: decoded %v: nearRed: got %t, want %t", i, d, nearRed, wantNearRed)
		}
	}
}

func TestEncodeBadArgument(tt *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if err := Encode(nil, m, nil); err != ErrBadArgument {
		tt.Errorf("nil dst: got %v, want ErrBadArgument", err)
	}
	if err := Encode(&bytes.Buffer{}, nil, nil); err != ErrBadArgument {
		tt.Errorf("nil src: got %v, want ErrBadArgument", err)
	}
	if _, err := EncodeTexture(nil, nil); err != ErrBadArgument {
		tt.Errorf("nil src: got %v, want ErrBadArgument", err)
	}
}

// testImageNRGBA returns a deterministic multi-block test image with
// gradients and a few sharp edges.
func testImageNRGBA(width int, height int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / max(1, width-1))
			g := uint8((y * 255) / max(1, height-1))
			b := uint8(0)
			if ((x/4)+(y/4))&1 == 1 {
				b = 255
			}
			m.SetNRGBA(x, y, color.NRGBA{r, g, b, 0xFF})
		}
	}
	return m
}

func TestEncodeTextureMatchesEncode(tt *testing.T) {
	for _, tc := range []image.Point{{16, 8}, {12, 12}, {5, 6}, {1, 1}, {17, 9}} {
		m := testImageNRGBA(tc.X, tc.Y)

		buf := bytes.Buffer{}
		if err := Encode(&buf, m, nil); err != nil {
			tt.Fatalf("tc=%v: Encode: %v", tc, err)
		}

		blocksPerRow := (tc.X + 3) / 4
		blocksPerCol := (tc.Y + 3) / 4
		if wantLen := 8 * blocksPerRow * blocksPerCol; buf.Len() != wantLen {
			tt.Errorf("tc=%v: length: got %d, want %d", tc, buf.Len(), wantLen)
		}

		for _, concurrency := range []int{1, 4} {
			got, err := EncodeTexture(m, &EncodeOptions{Concurrency: concurrency})
			if err != nil {
				tt.Fatalf("tc=%v: EncodeTexture: %v", tc, err)
			}
			if !bytes.Equal(got, buf.Bytes()) {
				tt.Errorf("tc=%v: concurrency=%d: EncodeTexture and Encode outputs differ",
					tc, concurrency)
			}
		}
	}
}

func TestEncodeTextureLayout(tt *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := range 4 {
		for x := range 4 {
			m.SetNRGBA(x+0, y, color.NRGBA{0xFF, 0x00, 0x00, 0xFF})
			m.SetNRGBA(x+4, y, color.NRGBA{0x00, 0x00, 0xFF, 0xFF})
		}
	}

	got, err := EncodeTexture(m, nil)
	if err != nil {
		tt.Fatalf("EncodeTexture: %v", err)
	}
	if len(got) != 16 {
		tt.Fatalf("length: got %d, want 16", len(got))
	}

	// Solid red packs as 0x001F (red is the low 5 bits), solid blue as
	// 0xF800, and solid blocks store all-zero indices.
	wantRed := [8]byte{0x1F, 0x00, 0x1F, 0x00, 0x00, 0x00, 0x00, 0x00}
	wantBlue := [8]byte{0x00, 0xF8, 0x00, 0xF8, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got[0:8], wantRed[:]) {
		tt.Errorf("block (0,0): got % 02X, want % 02X", got[0:8], wantRed)
	}
	if !bytes.Equal(got[8:16], wantBlue[:]) {
		tt.Errorf("block (1,0): got % 02X, want % 02X", got[8:16], wantBlue)
	}
}

func TestEncodeImageTypesAgree(tt *testing.T) {
	src := testImageNRGBA(16, 16)
	b := src.Bounds()

	want := bytes.Buffer{}
	if err := Encode(&want, src, nil); err != nil {
		tt.Fatalf("Encode: %v", err)
	}

	others := []draw.Image{
		image.NewNRGBA64(b),
		image.NewRGBA(b),
		image.NewRGBA64(b),
	}
	for _, other := range others {
		draw.Draw(other, b, src, b.Min, draw.Src)

		got := bytes.Buffer{}
		if err := Encode(&got, other, nil); err != nil {
			tt.Fatalf("%T: Encode: %v", other, err)
		}
		if !bytes.Equal(got.Bytes(), want.Bytes()) {
			tt.Errorf("%T: output differs from *image.NRGBA output", other)
		}
	}
}

func TestEncodeSubImage(tt *testing.T) {
	whole := testImageNRGBA(24, 16)
	r := image.Rect(4, 4, 16, 12)
	sub := whole.SubImage(r)

	standalone := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(standalone, standalone.Bounds(), whole, r.Min, draw.Src)

	got := bytes.Buffer{}
	if err := Encode(&got, sub, nil); err != nil {
		tt.Fatalf("Encode(sub): %v", err)
	}
	want := bytes.Buffer{}
	if err := Encode(&want, standalone, nil); err != nil {
		tt.Fatalf("Encode(standalone): %v", err)
	}
	if !bytes.Equal(got.Bytes(), want.Bytes()) {
		tt.Errorf("sub-image output differs from standalone copy's output")
	}
}

func TestEncodeClampsOutOfRangeChannels(tt *testing.T) {
	wild := make([][3]float64, 16)
	tame := make([][3]float64, 16)
	for i := range 16 {
		for c := range 3 {
			x := (float64((i*3)+c) / 10) - 1.5 // Spans below 0 and above 1.
			wild[i][c] = x
			tame[i][c] = max(0, min(1, x))
		}
	}

	got, err := EncodeBlock(wild, nil)
	if err != nil {
		tt.Fatalf("EncodeBlock(wild): %v", err)
	}
	want, err := EncodeBlock(tame, nil)
	if err != nil {
		tt.Fatalf("EncodeBlock(tame): %v", err)
	}
	if got != want {
		tt.Errorf("got % 02X, want % 02X", got, want)
	}
}
