// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sub

import (
	"github.com/cpmech/gosl/la"
)

// TangentialStep is the reference implementation of the
// tangential_byrd_omojokun contract (spec.md §6): a Steihaug-Toint
// truncated conjugate-gradient solve of min g^T s + 1/2 s^T H s, stopped
// (and, for negative curvature, redirected) the moment the box [xl,xu] or
// the trust-region ball would be left.
func TangentialStep(g []float64, hprod HessProd, xl, xu []float64, radius float64, debug bool) []float64 {
	n := len(g)
	s := make([]float64, n)
	r := la.VecClone(g) // r = g + H*s = g, since s = 0
	rNorm0 := la.VecNorm(r)
	if rNorm0 < 1e-14 {
		return s
	}
	d := la.VecClone(r)
	la.VecScale(d, 0, -1, d)

	const maxIt = 200
	for iter := 0; iter < maxIt && iter < 2*n+10; iter++ {
		Hd := hprod(d)
		dHd := la.VecDot(d, Hd)
		tau := stepToBoundary(s, d, xl, xu, radius)
		if dHd <= 1e-14 {
			la.VecAdd(s, tau, d)
			clipBox(s, xl, xu)
			return s
		}
		rr := la.VecDot(r, r)
		alpha := rr / dHd
		if alpha >= tau {
			la.VecAdd(s, tau, d)
			clipBox(s, xl, xu)
			return s
		}
		la.VecAdd(s, alpha, d)
		rNext := la.VecClone(r)
		la.VecAdd(rNext, alpha, Hd)
		if la.VecNorm(rNext) < 1e-10*rNorm0 {
			r = rNext
			break
		}
		beta := la.VecDot(rNext, rNext) / rr
		dNext := la.VecClone(rNext)
		la.VecScale(dNext, 0, -1, dNext)
		la.VecAdd(dNext, beta, d)
		r, d = rNext, dNext
	}
	return projectBoxBall(s, xl, xu, radius)
}
