// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lagrangian

import (
	"math"
	"testing"

	"github.com/cpmech/dfocore/model"
	"github.com/cpmech/dfocore/prob"
)

// exactQuad is a full quadratic in 2 variables; a poised 6-point set makes
// the minimum-Frobenius-norm interpolant exact for it everywhere, not
// merely at the sample points, which keeps the arithmetic in these tests
// checkable by hand.
func exactQuad(x []float64) float64 {
	return 2*x[0]*x[0] + 1*x[1]*x[1] + 4*x[0] - 1*x[1] + 7
}

func exactQuadGrad(x []float64) []float64 {
	return []float64{4*x[0] + 4, 2*x[1] - 1}
}

func buildPoisedModels() *model.Models {
	offsets := [][]float64{{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}}
	interp := model.NewInterpSet(2, 6, []float64{0, 0})
	for k, o := range offsets {
		interp.UpdatePoint(k, o)
	}
	models := model.NewModels(interp, 1, 0)
	for k, o := range offsets {
		models.SetValues(k, exactQuad(o), []float64{exactQuad(o) - 1}, nil)
	}
	models.Sync()
	return models
}

func buildProblem() *prob.Problem {
	xl := []float64{-10, -10}
	xu := []float64{10, 10}
	ai := []float64{1, 1} // x0 + x1 <= 3
	bi := []float64{3}
	obj := func(x []float64) float64 { return exactQuad(x) }
	ci := func(x []float64) []float64 { return []float64{exactQuad(x) - 1} }
	return prob.NewProblem(2, xl, xu, ai, bi, 1, nil, nil, 0, obj, ci, 1, nil, 0)
}

func TestLagrangianValueZeroMultipliersMatchesFModel(t *testing.T) {
	models := buildPoisedModels()
	p := buildProblem()
	lg := New(models, p)
	x := []float64{0.3, -0.2}
	got := lg.Value(x)
	want := models.QF.Val(x) // XBase is the origin
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Value=%v, want %v", got, want)
	}
}

func TestLagrangianValueIncludesWeightedConstraintTerms(t *testing.T) {
	models := buildPoisedModels()
	p := buildProblem()
	lg := New(models, p)
	lg.SetMultipliers([]float64{2.0}, nil, []float64{0.5}, nil)
	x := []float64{0.3, -0.2}

	fModel := models.QF.Val(x)
	linTerm := 2.0 * (p.AiRow(0)[0]*x[0] + p.AiRow(0)[1]*x[1] - p.Bi[0])
	ciTerm := 0.5 * models.QCI[0].Val(x)
	want := fModel + linTerm + ciTerm

	got := lg.Value(x)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Value=%v, want %v", got, want)
	}
}

func TestLagrangianGradIncludesLinearRowAndConstraintGradient(t *testing.T) {
	models := buildPoisedModels()
	p := buildProblem()
	lg := New(models, p)
	lg.SetMultipliers([]float64{2.0}, nil, []float64{0.5}, nil)
	x := []float64{0.3, -0.2}

	got := lg.Grad(x)
	fGrad := exactQuadGrad(x)
	want := []float64{
		fGrad[0] + 2.0*p.AiRow(0)[0] + 0.5*fGrad[0],
		fGrad[1] + 2.0*p.AiRow(0)[1] + 0.5*fGrad[1],
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("Grad=%v, want %v", got, want)
		}
	}
}

func TestLagrangianHessIgnoresLinearTerms(t *testing.T) {
	models := buildPoisedModels()
	p := buildProblem()
	lg := New(models, p)
	v := []float64{1, 0}

	lg.SetMultipliers(nil, nil, nil, nil)
	hv0 := lg.HessProd(v)

	lg.SetMultipliers([]float64{100.0}, nil, nil, nil)
	hv1 := lg.HessProd(v)

	for i := range hv0 {
		if math.Abs(hv0[i]-hv1[i]) > 1e-9 {
			t.Fatalf("linear multiplier changed the Hessian: hv0=%v hv1=%v", hv0, hv1)
		}
	}
}

func TestLagrangianCurvAddsNonlinearConstraintCurvature(t *testing.T) {
	models := buildPoisedModels()
	p := buildProblem()
	lg := New(models, p)
	v := []float64{1, 1}

	lg.SetMultipliers(nil, nil, []float64{0}, nil)
	curv0 := lg.Curv(v)

	lg.SetMultipliers(nil, nil, []float64{3}, nil)
	curv1 := lg.Curv(v)

	qciCurv := models.QCI[0].Curv(v)
	if math.Abs((curv1-curv0)-3*qciCurv) > 1e-9 {
		t.Fatalf("curvature delta=%v, want %v", curv1-curv0, 3*qciCurv)
	}
}
