// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sub

import (
	"github.com/cpmech/gosl/la"
)

// violPenaltyValGrad returns the value and gradient at s of
// 1/2(||max(aub s - bub,0)||^2 + ||aeq s - beq||^2), the smooth, convex
// objective minimised by NormalStep.
func violPenaltyValGrad(s []float64, aub [][]float64, bub []float64, aeq [][]float64, beq []float64) (val float64, grad []float64) {
	n := len(s)
	grad = make([]float64, n)
	for r, row := range aub {
		z := la.VecDot(row, s) - bub[r]
		if z > 0 {
			val += 0.5 * z * z
			la.VecAdd(grad, z, row)
		}
	}
	for r, row := range aeq {
		z := la.VecDot(row, s) - beq[r]
		val += 0.5 * z * z
		la.VecAdd(grad, z, row)
	}
	return
}

// NormalStep is the reference implementation of the
// normal_byrd_omojokun contract (spec.md §6): projected-gradient descent
// on the smooth, convex violation penalty, with the box-and-ball
// projection of project.go and Armijo backtracking.
func NormalStep(aub [][]float64, bub []float64, aeq [][]float64, beq []float64, xl, xu []float64, radius float64, debug bool) []float64 {
	n := len(xl)
	s := make([]float64, n)
	val, grad := violPenaltyValGrad(s, aub, bub, aeq, beq)
	if val < 1e-28 {
		return s // already feasible; contract requires returning s=0 here
	}
	const maxIt = 60
	step := radius
	if step <= 0 {
		step = 1
	}
	for iter := 0; iter < maxIt; iter++ {
		gn := la.VecNorm(grad)
		if gn < 1e-14 {
			break
		}
		// backtracking line search along -grad, projected each trial
		alpha := step / gn
		var next []float64
		var nextVal float64
		for ls := 0; ls < 30; ls++ {
			trial := la.VecClone(s)
			la.VecAdd(trial, -alpha, grad)
			next = projectBoxBall(trial, xl, xu, radius)
			nextVal, _ = violPenaltyValGrad(next, aub, bub, aeq, beq)
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
		_, grad = violPenaltyValGrad(s, aub, bub, aeq, beq)
	}
	return projectBoxBall(s, xl, xu, radius)
}
