// Copyright 2026 The Bc1 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// bc1pack encodes images as the BC1 (DXT1) lossy block texture compression
// format.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/blockpack/bc1/lib/bc1"
	"github.com/blockpack/bc1/lib/dds"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	encodeFlag = flag.Bool("encode", false, "whether to encode the input")
	configFlag = flag.Bool("config", false, "whether to print the input's DDS configuration")
	outputFlag = flag.String("output", "", "output format")
	fitterFlag = flag.String("fitter", "", "endpoint fitter")
)

const usageStr = `bc1pack encodes images as the BC1 (DXT1) block texture compression format.

Usage: choose one of

    bc1pack -encode [path]
    bc1pack -config [path]

The path to the input file is optional. If omitted, stdin is read.

When encoding you can also pass these flags (before the path):

    -output=bc1 (raw block data, no container)
    -output=dds (this is the default)
    -fitter=box (bounding-box endpoint fit, this is the default)
    -fitter=pca (principal-component-analysis endpoint fit)

The output is written to stdout.

Encode inputs BMP, GIF, JPEG, PNG, TIFF or WEBP and outputs DDS or raw BC1.
Config inputs DDS and prints its width and height.
`

var (
	ErrBadFitterFlag = errors.New("main: bad -fitter flag")
	ErrBadOutputFlag = errors.New("main: bad -output flag")
)

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()

	inFile := os.Stdin
	switch flag.NArg() {
	case 0:
		// No-op.
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		inFile = f
	default:
		return errors.New("too many filenames; the maximum is one")
	}

	if *encodeFlag && !*configFlag {
		return encode(inFile)
	}
	if !*encodeFlag && *configFlag {
		return config(inFile)
	}
	return errors.New("must specify exactly one of -encode, -config or -help")
}

func encode(inFile *os.File) error {
	fitter := bc1.EndpointFitter(nil)
	switch *fitterFlag {
	case "", "box":
		fitter = bc1.BoundingBoxFitter{}
	case "pca":
		fitter = bc1.PCAFitter{}
	default:
		return ErrBadFitterFlag
	}

	src, _, err := image.Decode(inFile)
	if err != nil {
		return err
	}

	switch *outputFlag {
	case "", "dds":
		return dds.Encode(os.Stdout, src, &dds.EncodeOptions{Fitter: fitter})
	case "bc1":
		return bc1.Encode(os.Stdout, src, &bc1.EncodeOptions{Fitter: fitter})
	}
	return ErrBadOutputFlag
}

func config(inFile *os.File) error {
	c, err := dds.DecodeConfig(inFile)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%d x %d\n", c.Width, c.Height)
	return err
}
