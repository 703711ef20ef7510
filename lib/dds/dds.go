// Copyright 2026 The Bc1 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package dds implements the DDS (DirectDraw Surface) container format for
// BC1 textures.
//
// DDS prepends a 128-byte header (a 4-byte magic string and a 124-byte
// header struct) to the block data, stating width, height and format. Only
// the BC1 ("DXT1" FourCC) payload format is supported, and only encoding:
// DecodeConfig parses the header but this package does not decode block
// data.
package dds

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/blockpack/bc1/lib/bc1"
)

// Magic is the byte string prefix of every DDS image file.
const Magic = "DDS "

var (
	ErrBadArgument       = errors.New("dds: bad argument")
	ErrNotADDSFile       = errors.New("dds: not a DDS file")
	ErrUnsupportedFormat = errors.New("dds: unsupported format")
	ErrImageIsTooLarge   = errors.New("dds: image is too large")
)

const (
	headerSize = 124

	flagCaps        = 0x00000001
	flagHeight      = 0x00000002
	flagWidth       = 0x00000004
	flagPixelFormat = 0x00001000
	flagLinearSize  = 0x00080000

	pixelFormatFourCC = 0x00000004
	capsTexture       = 0x00001000

	fourCCDXT1 = 0x31545844 // "DXT1" read as a little-endian uint32.
)

// EncodeOptions are optional arguments to Encode. The zero value is valid
// and means to use the default configuration.
type EncodeOptions struct {
	// Fitter chooses each block's endpoint colors. If nil, the default is
	// bc1.BoundingBoxFitter.
	Fitter bc1.EndpointFitter
}

// Encode writes src to w as a DDS file holding BC1 block data.
//
// options may be nil, which means to use the default configuration.
func Encode(w io.Writer, src image.Image, options *EncodeOptions) error {
	if (w == nil) || (src == nil) {
		return ErrBadArgument
	}

	b := src.Bounds()
	bW, bH := b.Dx(), b.Dy()
	if (bW > 65532) || (bH > 65532) {
		return ErrImageIsTooLarge
	}

	blocksPerRow := (bW + 3) / 4
	blocksPerCol := (bH + 3) / 4

	buf := [4 + headerSize]byte{}
	copy(buf[:4], Magic)
	putU32LE(buf[0x04:], headerSize)
	putU32LE(buf[0x08:], flagCaps|flagHeight|flagWidth|flagPixelFormat|flagLinearSize)
	putU32LE(buf[0x0C:], uint32(bH))
	putU32LE(buf[0x10:], uint32(bW))
	putU32LE(buf[0x14:], uint32(blocksPerRow*blocksPerCol*bc1.BytesPerBlock))
	putU32LE(buf[0x4C:], 32) // Pixel format struct size.
	putU32LE(buf[0x50:], pixelFormatFourCC)
	putU32LE(buf[0x54:], fourCCDXT1)
	putU32LE(buf[0x6C:], capsTexture)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	bc1Options := bc1.EncodeOptions{}
	if options != nil {
		bc1Options.Fitter = options.Fitter
	}
	return bc1.Encode(w, src, &bc1Options)
}

// DecodeConfig reads a DDS image configuration from r. It only parses the
// 128-byte header. It returns ErrUnsupportedFormat for DDS files whose
// payload is not BC1 ("DXT1") block data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	buf := [4 + headerSize]byte{}
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return image.Config{}, err
	}

	if (buf[0] != Magic[0]) ||
		(buf[1] != Magic[1]) ||
		(buf[2] != Magic[2]) ||
		(buf[3] != Magic[3]) ||
		(u32LE(buf[0x04:]) != headerSize) {
		return image.Config{}, ErrNotADDSFile
	}

	if ((u32LE(buf[0x50:]) & pixelFormatFourCC) == 0) ||
		(u32LE(buf[0x54:]) != fourCCDXT1) {
		return image.Config{}, ErrUnsupportedFormat
	}

	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      int(u32LE(buf[0x10:])),
		Height:     int(u32LE(buf[0x0C:])),
	}, nil
}

func putU32LE(buf []byte, x uint32) {
	buf = buf[:4]
	buf[0] = uint8(x >> 0)
	buf[1] = uint8(x >> 8)
	buf[2] = uint8(x >> 16)
	buf[3] = uint8(x >> 24)
}

func u32LE(buf []byte) uint32 {
	return uint32(buf[0]) |
		(uint32(buf[1]) << 8) |
		(uint32(buf[2]) << 16) |
		(uint32(buf[3]) << 24)
}
