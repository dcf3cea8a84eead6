// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// violation returns v(x) of spec.md §4.6: the concatenation of
// (xl−x)+, (x−xu)+, (A_I x − b_I)+, (c_I_val)+, |A_E x − b_E|, |c_E_val|.
func (o *Framework) violation(x []float64, ciVal, ceVal []float64) []float64 {
	n := o.Prob.N
	lo := make([]float64, n)
	hi := make([]float64, n)
	for i := 0; i < n; i++ {
		lo[i] = o.Prob.Xl[i] - x[i]
		hi[i] = x[i] - o.Prob.Xu[i]
	}
	ai := matVec(splitRows(o.Prob.Ai, o.Prob.Mi, o.Prob.N), x)
	for i := range ai {
		ai[i] -= o.Prob.Bi[i]
	}
	ae := matVec(splitRows(o.Prob.Ae, o.Prob.Me, o.Prob.N), x)
	for i := range ae {
		ae[i] -= o.Prob.Be[i]
	}
	var out []float64
	out = append(out, posPart(lo)...)
	out = append(out, posPart(hi)...)
	out = append(out, posPart(ai)...)
	out = append(out, posPart(ciVal)...)
	out = append(out, absVals(ae)...)
	out = append(out, absVals(ceVal)...)
	return out
}

// splitRows reinterprets a flat row-major [m*n]float64 as m row slices.
func splitRows(flat []float64, m, n int) [][]float64 {
	rows := make([][]float64, m)
	for i := 0; i < m; i++ {
		rows[i] = flat[i*n : (i+1)*n]
	}
	return rows
}

// violationNorm returns ||v(x)||_2, used both by Merit and as the
// constraint-residual tiebreaker of spec.md §4.8.
func (o *Framework) violationNorm(x []float64, ciVal, ceVal []float64) float64 {
	return la.VecNorm(o.violation(x, ciVal, ceVal))
}

// Merit evaluates φ_μ(x, fVal, ciVal, ceVal) of spec.md §4.6. fVal, ciVal
// and ceVal may be passed as nil to have them filled by evaluating the
// black box at x (spec.md: "Any omitted argument is filled by evaluating
// the black box"); pass a non-nil fVal pointing at an explicit value
// (including 0) to avoid the black-box call for the SQP-predicted merit.
func (o *Framework) Merit(x []float64, fVal *float64, ciVal, ceVal []float64) float64 {
	f := 0.0
	if fVal != nil {
		f = *fVal
	} else {
		f = o.Prob.Obj(x)
	}
	if ciVal == nil && o.Prob.NCI > 0 {
		ciVal = o.Prob.CI(x)
	}
	if ceVal == nil && o.Prob.NCE > 0 {
		ceVal = o.Prob.CE(x)
	}
	m := f
	if o.State.Mu > 0 {
		m += o.State.Mu * o.violationNorm(x, ciVal, ceVal)
	}
	return m
}

// GetReductionRatio implements spec.md §4.6: the ratio of actual to
// predicted merit reduction for the trial step s, using caller-supplied
// true values at x*+s and the cached true values at x* (no incidental
// black-box evaluation, per spec.md §5).
func (o *Framework) GetReductionRatio(s []float64, fNew float64, ciNew, ceNew []float64) float64 {
	xStar := o.XStar()
	xNew := addVec(xStar, s)
	k := o.State.KStar

	fOld := o.Models.FVal[k]
	actualOld := o.Merit(xStar, &fOld, o.Models.CIVal[k], o.Models.CEVal[k])
	actualNew := o.Merit(xNew, &fNew, ciNew, ceNew)
	actual := actualOld - actualNew

	off := o.offset(xStar)
	ciModel := make([]float64, o.Prob.NCI)
	for j := range ciModel {
		ciModel[j] = o.Models.QCI[j].Val(off)
	}
	ceModel := make([]float64, o.Prob.NCE)
	for j := range ceModel {
		ceModel[j] = o.Models.QCE[j].Val(off)
	}
	zero := 0.0
	modelOld := o.Merit(xStar, &zero, ciModel, ceModel)

	gF := o.Models.QF.Grad(off)
	hs := o.Lag.HessProd(s)
	sqpF := la.VecDot(s, gF) + 0.5*la.VecDot(s, hs)
	sqpCI := make([]float64, o.Prob.NCI)
	for j := range sqpCI {
		sqpCI[j] = ciModel[j] + la.VecDot(o.Models.QCI[j].Grad(off), s)
	}
	sqpCE := make([]float64, o.Prob.NCE)
	for j := range sqpCE {
		sqpCE[j] = ceModel[j] + la.VecDot(o.Models.QCE[j].Grad(off), s)
	}
	modelNew := o.Merit(xNew, &sqpF, sqpCI, sqpCE)
	model := modelOld - modelNew

	if math.Abs(model) > tiny*math.Abs(actual) {
		return actual / math.Abs(model)
	}
	return -1
}
