// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sub

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// bestStepAlongDirection maximises |const + t*b + 1/2*t^2*a| for
// t in [0, tmax], where a = d^T H d and b = g^T d, returning the best t.
func bestStepAlongDirection(constant, a, b, tmax float64) float64 {
	candidates := []float64{0, tmax}
	if math.Abs(a) > 1e-300 {
		tv := -b / a
		if tv > 0 && tv < tmax {
			candidates = append(candidates, tv)
		}
	}
	bestT, bestAbs := 0.0, math.Abs(constant)
	for _, t := range candidates {
		val := constant + t*b + 0.5*t*t*a
		if math.Abs(val) > bestAbs {
			bestAbs = math.Abs(val)
			bestT = t
		}
	}
	return bestT
}

// CauchyStep is the reference implementation of the cauchy_geometry
// contract (spec.md §6): a 1-D search along ±g, each clipped to the box
// and trust-region ball, keeping whichever sign and step length maximise
// |const + g^T s + 1/2 s^T H s|.
func CauchyStep(constant float64, g []float64, hprod HessProd, xl, xu []float64, radius float64, debug bool) []float64 {
	n := len(g)
	gn := la.VecNorm(g)
	if gn < 1e-300 {
		return make([]float64, n)
	}
	best := make([]float64, n)
	bestAbs := math.Abs(constant)
	for _, sign := range []float64{1, -1} {
		d := la.VecClone(g)
		la.VecScale(d, 0, sign/gn, d)
		zero := make([]float64, n)
		tmax := stepToBoundary(zero, d, xl, xu, radius)
		if tmax <= 0 {
			continue
		}
		Hd := hprod(d)
		a := la.VecDot(d, Hd)
		b := la.VecDot(g, d)
		t := bestStepAlongDirection(constant, a, b, tmax)
		val := constant + t*b + 0.5*t*t*a
		if math.Abs(val) > bestAbs {
			bestAbs = math.Abs(val)
			best = la.VecClone(d)
			la.VecScale(best, 0, t, best)
		}
	}
	clipBox(best, xl, xu)
	return best
}
