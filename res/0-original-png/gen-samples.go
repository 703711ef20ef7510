// Copyright 2026 The Bc1 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

//go:build ignore

// gen-samples.go generates the sample PNG images that exercise the encoder's
// interesting cases: smooth gradients (low per-block contrast, where the
// bounding-box endpoint fit shines), concentric rings (sharp radial edges)
// and a rendered glyph (anti-aliased high-contrast edges, where the PCA fit
// earns its keep).
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const size = 64

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	if err := write("gradient.png", genGradient()); err != nil {
		return err
	}
	if err := write("rings.png", genRings()); err != nil {
		return err
	}
	glyph, err := genGlyph()
	if err != nil {
		return err
	}
	return write("glyph.png", glyph)
}

func genGradient() image.Image {
	m := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			m.SetNRGBA(x, y, color.NRGBA{
				uint8((x * 255) / (size - 1)),
				uint8((y * 255) / (size - 1)),
				uint8(((x + y) * 255) / (2 * (size - 1))),
				0xFF,
			})
		}
	}
	return m
}

func genRings() image.Image {
	m := image.NewNRGBA(image.Rect(0, 0, size, size))
	const cx, cy = size / 2, size / 2
	for y := range size {
		dy := float64(y - cy)
		for x := range size {
			dx := float64(x - cx)
			distance := math.Sqrt((dx * dx) + (dy * dy))
			v := uint8(0x00)
			if (int(distance) & 4) == 0 {
				v = 0xFF
			}
			m.SetNRGBA(x, y, color.NRGBA{v, v / 2, 0xFF - v, 0xFF})
		}
	}
	return m
}

func genGlyph() (image.Image, error) {
	f, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("opentype.Parse: %v", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    56,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("opentype.NewFace: %v", err)
	}

	m := image.NewRGBA(image.Rect(0, 0, size, size))
	d := font.Drawer{
		Dst:  m,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(8, 52),
	}
	d.DrawString("B")
	return m, nil
}

func write(filename string, m image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("os.Create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, m); err != nil {
		return fmt.Errorf("png.Encode: %v", err)
	}
	return nil
}
