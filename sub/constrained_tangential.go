// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sub

import (
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// projectNullSpace returns the point in {s : aeq*s = 0} nearest to s, via
// the normal-equations correction s - Aeq^T (Aeq Aeq^T)^-1 Aeq s. aeq is
// assumed to have full row rank; rows are few in practice (one per
// nonlinear/linear equality constraint).
func projectNullSpace(s []float64, aeq [][]float64) []float64 {
	p := len(aeq)
	out := la.VecClone(s)
	if p == 0 {
		return out
	}
	n := len(s)
	A := mat.NewDense(p, n, nil)
	for i, row := range aeq {
		for j := 0; j < n; j++ {
			A.Set(i, j, row[j])
		}
	}
	as := mat.NewVecDense(p, nil)
	as.MulVec(A, mat.NewVecDense(n, s))
	G := mat.NewDense(p, p, nil)
	G.Mul(A, A.T())
	y := mat.NewVecDense(p, nil)
	if err := y.SolveVec(G, as); err != nil {
		return out // singular normal equations: skip the correction
	}
	corr := mat.NewVecDense(n, nil)
	corr.MulVec(A.T(), y)
	for i := 0; i < n; i++ {
		out[i] -= corr.AtVec(i)
	}
	return out
}

// ConstrainedTangentialStep is the reference implementation of the
// constrained_tangential_byrd_omojokun contract (spec.md §6): projected
// gradient on g^T s + 1/2 s^T H s plus a smooth penalty on aub*s <= bub,
// interleaved with an exact projection onto the aeq*s = 0 null space.
func ConstrainedTangentialStep(g []float64, hprod HessProd, xl, xu []float64, aub [][]float64, bub []float64, aeq [][]float64, radius float64, debug bool) []float64 {
	n := len(g)
	const rho = 10.0
	valGrad := func(s []float64) (float64, []float64) {
		Hs := hprod(s)
		val := la.VecDot(g, s) + 0.5*la.VecDot(s, Hs)
		grad := la.VecClone(g)
		la.VecAdd(grad, 1, Hs)
		for r, row := range aub {
			z := la.VecDot(row, s) - bub[r]
			if z > 0 {
				val += 0.5 * rho * z * z
				la.VecAdd(grad, rho*z, row)
			}
		}
		return val, grad
	}

	s := make([]float64, n)
	val, grad := valGrad(s)
	step := radius
	if step <= 0 {
		step = 1
	}
	const maxIt = 80
	for iter := 0; iter < maxIt; iter++ {
		gn := la.VecNorm(grad)
		if gn < 1e-14 {
			break
		}
		alpha := step / gn
		var next []float64
		var nextVal float64
		for ls := 0; ls < 30; ls++ {
			trial := la.VecClone(s)
			la.VecAdd(trial, -alpha, grad)
			trial = projectNullSpace(trial, aeq)
			next = projectBoxBall(trial, xl, xu, radius)
			nextVal, _ = valGrad(next)
			if nextVal <= val-1e-4*alpha*gn*gn || alpha < 1e-16 {
				break
			}
			alpha *= 0.5
		}
		if nextVal >= val-1e-15 {
			break
		}
		s = next
		val = nextVal
		_, grad = valGrad(s)
	}
	return projectBoxBall(projectNullSpace(s, aeq), xl, xu, radius)
}
