// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// GetTrustRegionStep computes the composite trust-region trial step of
// spec.md §4.3: a normal step n reducing linearized constraint violation,
// followed by a tangential step t reducing the Lagrangian within the
// (reduced-radius) tangent space. The caller forms the trial point as
// x*+n+t and evaluates the black box there.
func (o *Framework) GetTrustRegionStep() (n, t []float64) {
	xStar := o.XStar()
	aub, bub, aeq, beq := o.Linearize(xStar)
	xl, xu := o.boundsRelativeTo(xStar)

	n = o.Solvers.Normal(aub, bub, aeq, beq, xl, xu, 0.8*o.State.Delta, o.Cfg.Debug)
	if o.Cfg.Debug {
		o.checkBounds("normal step", n, xl, xu)
		if nn := la.VecNorm(n); nn > 1.1*0.8*o.State.Delta {
			o.warn("normal step norm %.6g exceeds 1.1*0.8*Delta=%.6g", nn, 1.1*0.8*o.State.Delta)
		}
	}

	nNorm2 := la.VecDot(n, n)
	rr := o.State.Delta*o.State.Delta - nNorm2
	if rr < 0 {
		rr = 0
	}
	r := math.Sqrt(rr)

	xl2 := make([]float64, o.Prob.N)
	xu2 := make([]float64, o.Prob.N)
	for i := 0; i < o.Prob.N; i++ {
		xl2[i] = xl[i] - n[i]
		xu2[i] = xu[i] - n[i]
	}
	bubRelaxed := make([]float64, len(bub))
	an := matVec(aub, n)
	for r0 := range bub {
		v := bub[r0] - an[r0]
		if v > 0 {
			bubRelaxed[r0] = v
		}
	}

	off := o.offset(xStar)
	gTilde := la.VecClone(o.Models.QF.Grad(off))
	la.VecAdd(gTilde, 1, o.Lag.HessProd(n))

	if o.Prob.IsBoundOnly() {
		t = o.Solvers.Tangential(gTilde, o.Lag.HessProd, xl2, xu2, r, o.Cfg.Debug)
	} else {
		t = o.Solvers.ConstrainedTangential(gTilde, o.Lag.HessProd, xl2, xu2, aub, bubRelaxed, aeq, r, o.Cfg.Debug)
	}

	if o.Cfg.Debug {
		o.checkBounds("tangential step", t, xl2, xu2)
		nt := make([]float64, o.Prob.N)
		la.VecAdd2(nt, 1, n, 1, t)
		if ntn := la.VecNorm(nt); ntn > 1.1*math.Sqrt2*o.State.Delta {
			o.warn("n+t norm %.6g exceeds 1.1*sqrt(2)*Delta=%.6g", ntn, 1.1*math.Sqrt2*o.State.Delta)
		}
	}
	return
}

// checkBounds emits a debug warning if s violates [xl,xu] beyond a loose
// tolerance (spec.md §7, "Invariant warnings").
func (o *Framework) checkBounds(label string, s, xl, xu []float64) {
	const tol = 1e-6
	for i := range s {
		if s[i] < xl[i]-tol || s[i] > xu[i]+tol {
			o.warn("%s: component %d = %.6g outside [%.6g, %.6g]", label, i, s[i], xl[i], xu[i])
		}
	}
}
