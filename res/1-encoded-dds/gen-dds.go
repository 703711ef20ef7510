// Copyright 2026 The Bc1 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

//go:build ignore

// gen-dds.go encodes the sample PNG images as DDS files, once per endpoint
// fitter.
package main

import (
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/blockpack/bc1/lib/bc1"
	"github.com/blockpack/bc1/lib/dds"
)

const srcDirName = "../0-original-png"

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	entries, err := os.ReadDir(srcDirName)
	if err != nil {
		return fmt.Errorf("os.ReadDir: %v", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".png") {
			continue
		}
		if err := do(name, "box", bc1.BoundingBoxFitter{}); err != nil {
			return err
		}
		if err := do(name, "pca", bc1.PCAFitter{}); err != nil {
			return err
		}
	}
	return nil
}

func do(name string, suffix string, fitter bc1.EndpointFitter) error {
	f, err := os.Open(srcDirName + "/" + name)
	if err != nil {
		return fmt.Errorf("os.Open: %v", err)
	}
	defer f.Close()
	src, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("png.Decode: %v", err)
	}

	outName := strings.TrimSuffix(name, ".png") + "." + suffix + ".dds"
	out, err := os.Create(outName)
	if err != nil {
		return fmt.Errorf("os.Create: %v", err)
	}
	defer out.Close()
	if err := dds.Encode(out, src, &dds.EncodeOptions{Fitter: fitter}); err != nil {
		return fmt.Errorf("dds.Encode: %v", err)
	}
	return nil
}
