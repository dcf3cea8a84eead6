// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// IncreasePenalty implements spec.md §4.7: raises μ when the predicted
// SQP reduction is not justified by the linearized violation reduction
// achieved by s, and re-selects k* if μ changed (the merit ranking may
// have changed). Returns true iff k* did not change.
func (o *Framework) IncreasePenalty(s []float64) bool {
	xStar := o.XStar()
	aub, bub, aeq, beq := o.Linearize(xStar)

	bubNeg := make([]float64, len(bub))
	for i, b := range bub {
		bubNeg[i] = -b
	}
	violOld := norm2(posPart(bubNeg), beq)

	as := matVec(aub, s)
	asViol := make([]float64, len(as))
	for i := range as {
		v := as[i] - bub[i]
		if v > 0 {
			asViol[i] = v
		}
	}
	aeqS := matVec(aeq, s)
	aeqViol := make([]float64, len(aeqS))
	for i := range aeqS {
		aeqViol[i] = aeqS[i] - beq[i]
	}
	violNew := norm2(asViol, aeqViol)
	violDiff := violOld - violNew

	off := o.offset(xStar)
	gF := o.Models.QF.Grad(off)
	hs := o.Lag.HessProd(s)
	sqpVar := la.VecDot(s, gF) + 0.5*la.VecDot(s, hs)

	threshold := norm2(o.State.LamLinI, o.State.LamLinE, o.State.LamCI, o.State.LamCE)
	if math.Abs(violDiff) > tiny*math.Abs(sqpVar) {
		threshold = math.Max(threshold, sqpVar/violDiff)
	}

	changed := false
	if o.State.Mu <= 1.5*threshold {
		o.State.Mu = 2 * threshold
		old := o.State.KStar
		o.SetBestIndex()
		changed = old != o.State.KStar
	}
	return !changed
}

// DecreasePenalty implements spec.md §4.7: μ ← min(μ, μ_low).
func (o *Framework) DecreasePenalty() {
	low := o.lowPenaltyEstimate()
	if low < o.State.Mu {
		o.State.Mu = low
	}
}
