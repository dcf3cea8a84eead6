// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sub

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// SpiderStep is the reference implementation of the spider_geometry
// contract (spec.md §6): like CauchyStep but the search directions are
// the supplied columns of directions rather than ±g.
func SpiderStep(constant float64, g []float64, hprod HessProd, directions [][]float64, xl, xu []float64, radius float64, debug bool) []float64 {
	n := len(g)
	best := make([]float64, n)
	bestAbs := math.Abs(constant)
	zero := make([]float64, n)
	for _, dir := range directions {
		dn := la.VecNorm(dir)
		if dn < 1e-300 {
			continue
		}
		d := la.VecClone(dir)
		la.VecScale(d, 0, 1/dn, d)
		for _, sign := range []float64{1, -1} {
			ds := la.VecClone(d)
			la.VecScale(ds, 0, sign, ds)
			tmax := stepToBoundary(zero, ds, xl, xu, radius)
			if tmax <= 0 {
				continue
			}
			Hd := hprod(ds)
			a := la.VecDot(ds, Hd)
			b := la.VecDot(g, ds)
			t := bestStepAlongDirection(constant, a, b, tmax)
			val := constant + t*b + 0.5*t*t*a
			if math.Abs(val) > bestAbs {
				bestAbs = math.Abs(val)
				best = la.VecClone(ds)
				la.VecScale(best, 0, t, best)
			}
		}
	}
	clipBox(best, xl, xu)
	return best
}
