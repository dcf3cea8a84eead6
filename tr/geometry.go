// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/dfocore/model"
)

// GetGeometryStep computes the geometry-improving step of spec.md §4.4:
// a step from x* that (heuristically) maximises the absolute denominator
// |σ(x*+s, kNew)| of replacing interpolation point kNew, subject to the
// translated bounds and the trust-region ball. Three candidates are
// tried and the best by |σ| is kept.
func (o *Framework) GetGeometryStep(kNew int) []float64 {
	xStar := o.XStar()
	xl, xu := o.boundsRelativeTo(xStar)
	n := o.Prob.N

	ell, err := o.Models.LagrangePoly(kNew)
	if err != nil {
		chk.Panic("dfocore: cannot build geometry step: %v", err)
	}
	gl := ell.Grad(o.Models.Interp.Offset(kNew))

	// 1. Cauchy geometry.
	best := o.Solvers.Cauchy(0, gl, ell.HessProd, xl, xu, o.State.Delta, o.Cfg.Debug)
	bestSigma, err := o.Models.Denominators(addVec(xStar, best), kNew)
	if err != nil {
		chk.Panic("dfocore: cannot evaluate denominator: %v", err)
	}

	// 2. Spider geometry: directions are every other point's offset from
	// x*, with the slot that would hold x*'s own (zero) offset swapped
	// out of the candidate list.
	m := o.Models.Interp.M
	xptPrime := make([][]float64, m)
	for k := 0; k < m; k++ {
		d := make([]float64, n)
		la.VecAdd2(d, 1, o.Models.Interp.Point(k), -1, xStar)
		xptPrime[k] = d
	}
	xptPrime[0], xptPrime[o.State.KStar] = xptPrime[o.State.KStar], xptPrime[0]
	directions := xptPrime[1:]

	sAlt := o.Solvers.Spider(0, gl, ell.HessProd, directions, xl, xu, o.State.Delta, o.Cfg.Debug)
	sigmaAlt, err := o.Models.Denominators(addVec(xStar, sAlt), kNew)
	if err != nil {
		chk.Panic("dfocore: cannot evaluate denominator: %v", err)
	}
	if math.Abs(sigmaAlt) >= math.Abs(bestSigma) {
		best, bestSigma = sAlt, sigmaAlt
	}

	// 3. Projected Cauchy on the active tangent space, only meaningful
	// when the problem carries linear or nonlinear constraints.
	if o.Prob.HasLinear() || o.Prob.HasNonlinear() {
		s3, sigma3, ok := o.projectedCauchyOnActiveTangent(xStar, xl, xu, gl, ell, kNew, bestSigma)
		if ok && math.Abs(sigma3) > math.Abs(bestSigma) {
			best, bestSigma = s3, sigma3
		}
	}

	clipBoxTo(best, xl, xu)
	if o.Cfg.Debug {
		o.checkBounds("geometry step", best, xl, xu)
		if bn := la.VecNorm(best); bn > 1.1*o.State.Delta {
			o.warn("geometry step norm %.6g exceeds 1.1*Delta=%.6g", bn, 1.1*o.State.Delta)
		}
	}
	return best
}

// projectedCauchyOnActiveTangent implements candidate 3 of spec.md §4.4.
func (o *Framework) projectedCauchyOnActiveTangent(xStar, xl, xu, gl []float64, ell *model.Quadratic, kNew int, bestSigma float64) (s []float64, sigma float64, ok bool) {
	n := o.Prob.N
	aub, bub, aeq, beq := o.Linearize(xStar)

	freeXl := make([]bool, n)
	freeXu := make([]bool, n)
	for i := 0; i < n; i++ {
		freeXl[i] = xl[i] < -eps
		freeXu[i] = xu[i] > eps
	}
	freeUb := make([]bool, len(bub))
	for r := range bub {
		freeUb[r] = bub[r] > eps
	}

	nAct, Q := o.Solvers.QR(aub, aeq, freeXl, freeXu, freeUb)
	if nAct <= 0 || nAct >= n {
		return nil, 0, false
	}

	glProj := make([]float64, n)
	for j := nAct; j < n; j++ {
		coeff := 0.0
		for i := 0; i < n; i++ {
			coeff += Q[i][j] * gl[i]
		}
		for i := 0; i < n; i++ {
			glProj[i] += coeff * Q[i][j]
		}
	}
	glProjNorm := la.VecNorm(glProj)
	if glProjNorm <= tiny*o.State.Delta {
		return nil, 0, false
	}

	sAlt := make([]float64, n)
	scale := o.State.Delta / glProjNorm
	for i := 0; i < n; i++ {
		sAlt[i] = scale * glProj[i]
	}
	if ell.Curv(sAlt) < 0 {
		for i := range sAlt {
			sAlt[i] = -sAlt[i]
		}
	}

	// tau: largest violation already present (at s=0) on the active faces.
	tau := 0.0
	for r := range aub {
		if !freeUb[r] {
			v := -bub[r]
			if v > tau {
				tau = v
			}
		}
	}
	for r := range aeq {
		v := math.Abs(beq[r])
		if v > tau {
			tau = v
		}
	}

	resid := 0.0
	for r, row := range aub {
		v := la.VecDot(row, sAlt) - bub[r]
		if v > resid {
			resid = v
		}
	}
	for r, row := range aeq {
		v := math.Abs(la.VecDot(row, sAlt) - beq[r])
		if v > resid {
			resid = v
		}
	}
	for i := 0; i < n; i++ {
		if !freeXl[i] || !freeXu[i] {
			if sAlt[i] < xl[i] && xl[i]-sAlt[i] > resid {
				resid = xl[i] - sAlt[i]
			}
			if sAlt[i] > xu[i] && sAlt[i]-xu[i] > resid {
				resid = sAlt[i] - xu[i]
			}
		}
	}

	tol := math.Min(10*tau, 0.01*la.VecNorm(sAlt))
	if resid > tol {
		return nil, 0, false
	}

	clipBoxTo(sAlt, xl, xu)
	sigma3, err := o.Models.Denominators(addVec(xStar, sAlt), kNew)
	if err != nil {
		return nil, 0, false
	}
	if math.Abs(sigma3) < 0.1*math.Abs(bestSigma) {
		return nil, 0, false
	}
	return sAlt, sigma3, true
}

// addVec returns a+b in a fresh slice.
func addVec(a, b []float64) []float64 {
	out := make([]float64, len(a))
	la.VecAdd2(out, 1, a, 1, b)
	return out
}

// clipBoxTo clips s in place to [xl,xu].
func clipBoxTo(s, xl, xu []float64) {
	for i := range s {
		if s[i] < xl[i] {
			s[i] = xl[i]
		}
		if s[i] > xu[i] {
			s[i] = xu[i]
		}
	}
}
