// Copyright 2026 The Bc1 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc1

import (
	"math"
)

// An EndpointFitter chooses the two endpoint colors whose line segment a
// block's 4-color palette is interpolated along. The 16 colors are in raster
// order with normalized channel values in [0,1].
//
// Fitters only choose endpoints. Quantization, index assignment and bit
// packing are the same for every fitter.
type EndpointFitter interface {
	Fit(colors *[16][3]float64) (ep0 [3]float64, ep1 [3]float64)
}

// BoundingBoxFitter fits endpoints to the axis-aligned bounding box of the
// block's colors: ep0 is the componentwise minimum and ep1 the componentwise
// maximum. It is the default fitter. It is cheap and a good fit for
// low-contrast blocks.
type BoundingBoxFitter struct{}

func (BoundingBoxFitter) Fit(colors *[16][3]float64) (ep0 [3]float64, ep1 [3]float64) {
	ep0 = colors[0]
	ep1 = colors[0]
	for i := 1; i < 16; i++ {
		for c := range 3 {
			ep0[c] = min(ep0[c], colors[i][c])
			ep1[c] = max(ep1[c], colors[i][c])
		}
	}
	return ep0, ep1
}

// PCAFitter fits endpoints along the principal axis of the block's colors,
// found by power iteration on their covariance matrix. It handles
// high-contrast blocks better than BoundingBoxFitter, at higher cost.
//
// The endpoints are the extreme projections of the block's colors onto the
// axis, clamped to the [0,1] unit cube.
type PCAFitter struct{}

func (PCAFitter) Fit(colors *[16][3]float64) (ep0 [3]float64, ep1 [3]float64) {
	mean := [3]float64{}
	for i := range 16 {
		for c := range 3 {
			mean[c] += colors[i][c]
		}
	}
	for c := range 3 {
		mean[c] /= 16
	}

	cov := [3][3]float64{}
	for i := range 16 {
		d := [3]float64{
			colors[i][0] - mean[0],
			colors[i][1] - mean[1],
			colors[i][2] - mean[2],
		}
		for a := range 3 {
			for b := range 3 {
				cov[a][b] += d[a] * d[b]
			}
		}
	}

	// A solid-color block has no spread at all. Both endpoints are the mean
	// and the caller's solid-block path takes over after quantization.
	if (cov[0][0] + cov[1][1] + cov[2][2]) < 1e-12 {
		return mean, mean
	}

	// Start power iteration from the covariance column with the largest
	// diagonal entry. That column is never orthogonal to the dominant
	// eigenvector when the corresponding channel has any spread.
	largest := 0
	if cov[1][1] > cov[largest][largest] {
		largest = 1
	}
	if cov[2][2] > cov[largest][largest] {
		largest = 2
	}
	axis := [3]float64{cov[0][largest], cov[1][largest], cov[2][largest]}

	for range 8 {
		next := [3]float64{
			(cov[0][0] * axis[0]) + (cov[0][1] * axis[1]) + (cov[0][2] * axis[2]),
			(cov[1][0] * axis[0]) + (cov[1][1] * axis[1]) + (cov[1][2] * axis[2]),
			(cov[2][0] * axis[0]) + (cov[2][1] * axis[1]) + (cov[2][2] * axis[2]),
		}
		norm := length(next)
		if norm < 1e-12 {
			break
		}
		axis = [3]float64{next[0] / norm, next[1] / norm, next[2] / norm}
	}

	// Orient the axis deterministically: its largest-magnitude component
	// points in the positive direction.
	largest = 0
	if abs(axis[1]) > abs(axis[largest]) {
		largest = 1
	}
	if abs(axis[2]) > abs(axis[largest]) {
		largest = 2
	}
	if axis[largest] < 0 {
		axis = [3]float64{-axis[0], -axis[1], -axis[2]}
	}

	tMin, tMax := maxFloat64, -maxFloat64
	for i := range 16 {
		t := 0 +
			((colors[i][0] - mean[0]) * axis[0]) +
			((colors[i][1] - mean[1]) * axis[1]) +
			((colors[i][2] - mean[2]) * axis[2])
		tMin = min(tMin, t)
		tMax = max(tMax, t)
	}

	for c := range 3 {
		ep0[c] = clamp01(mean[c] + (tMin * axis[c]))
		ep1[c] = clamp01(mean[c] + (tMax * axis[c]))
	}
	return ep0, ep1
}

func length(v [3]float64) float64 {
	return math.Sqrt((v[0] * v[0]) + (v[1] * v[1]) + (v[2] * v[2]))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

const maxFloat64 = float64(0x1p1023 * (1 + (1 - 0x1p-52))) // 1.79769313486231570814527423731704356798070e+308
