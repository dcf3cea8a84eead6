// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lagrangian implements the Lagrangian model of spec.md §4.1:
// the f surrogate plus the weighted linear- and nonlinear-constraint
// terms, used by the tangential subproblem and by the SQP merit
// prediction of spec.md §4.6.
package lagrangian

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/dfocore/model"
	"github.com/cpmech/dfocore/prob"
)

// Lagrangian is
//
//	L(x) = f_model(x) + λ_linI·(A_I x - b_I) + λ_linE·(A_E x - b_E)
//	                   + λ_cI·c_I_model(x)   + λ_cE·c_E_model(x)
//
// Only the nonlinear-constraint quadratics contribute curvature: linear
// terms are affine in x, so their Hessian is zero (spec.md §4.1, "Only
// the nonlinear-constraint quadratic models contribute to ∇²L").
type Lagrangian struct {
	Models  *model.Models
	Problem *prob.Problem

	LamLinI []float64 // [Mi]
	LamLinE []float64 // [Me]
	LamCI   []float64 // [NCI]
	LamCE   []float64 // [NCE]
}

// New allocates a Lagrangian over models/problem with zero multipliers.
func New(models *model.Models, problem *prob.Problem) (o *Lagrangian) {
	o = &Lagrangian{Models: models, Problem: problem}
	o.LamLinI = make([]float64, problem.Mi)
	o.LamLinE = make([]float64, problem.Me)
	o.LamCI = make([]float64, problem.NCI)
	o.LamCE = make([]float64, problem.NCE)
	return
}

// SetMultipliers overwrites the four multiplier blocks.
func (o *Lagrangian) SetMultipliers(lamLinI, lamLinE, lamCI, lamCE []float64) {
	copy(o.LamLinI, lamLinI)
	copy(o.LamLinE, lamLinE)
	copy(o.LamCI, lamCI)
	copy(o.LamCE, lamCE)
}

// offset returns x expressed relative to the models' current base point,
// the representation every Quadratic method expects.
func (o *Lagrangian) offset(x []float64) []float64 {
	off := make([]float64, o.Models.Interp.N)
	la.VecAdd2(off, 1, x, -1, o.Models.Interp.XBase)
	return off
}

// Value returns L(x).
func (o *Lagrangian) Value(x []float64) float64 {
	off := o.offset(x)
	val := o.Models.QF.Val(off)
	for i := 0; i < o.Problem.Mi; i++ {
		val += o.LamLinI[i] * (la.VecDot(o.Problem.AiRow(i), x) - o.Problem.Bi[i])
	}
	for i := 0; i < o.Problem.Me; i++ {
		val += o.LamLinE[i] * (la.VecDot(o.Problem.AeRow(i), x) - o.Problem.Be[i])
	}
	for j := 0; j < o.Problem.NCI; j++ {
		val += o.LamCI[j] * o.Models.QCI[j].Val(off)
	}
	for j := 0; j < o.Problem.NCE; j++ {
		val += o.LamCE[j] * o.Models.QCE[j].Val(off)
	}
	return val
}

// Grad returns ∇L(x). The source this package is modelled on carries a
// stray "+ +" at this summation (spec.md §9 open question); it is not
// reproduced here, this is a plain sum.
func (o *Lagrangian) Grad(x []float64) []float64 {
	off := o.offset(x)
	g := la.VecClone(o.Models.QF.Grad(off))
	for i := 0; i < o.Problem.Mi; i++ {
		la.VecAdd(g, o.LamLinI[i], o.Problem.AiRow(i))
	}
	for i := 0; i < o.Problem.Me; i++ {
		la.VecAdd(g, o.LamLinE[i], o.Problem.AeRow(i))
	}
	for j := 0; j < o.Problem.NCI; j++ {
		la.VecAdd(g, o.LamCI[j], o.Models.QCI[j].Grad(off))
	}
	for j := 0; j < o.Problem.NCE; j++ {
		la.VecAdd(g, o.LamCE[j], o.Models.QCE[j].Grad(off))
	}
	return g
}

// HessProd returns ∇²L·v. H is independent of the expansion point, so no
// absolute x is needed. Only the nonlinear-constraint quadratics
// contribute (spec.md §4.1).
func (o *Lagrangian) HessProd(v []float64) []float64 {
	hv := la.VecClone(o.Models.QF.HessProd(v))
	for j := 0; j < o.Problem.NCI; j++ {
		la.VecAdd(hv, o.LamCI[j], o.Models.QCI[j].HessProd(v))
	}
	for j := 0; j < o.Problem.NCE; j++ {
		la.VecAdd(hv, o.LamCE[j], o.Models.QCE[j].HessProd(v))
	}
	return hv
}

// Curv returns v^T ∇²L v.
func (o *Lagrangian) Curv(v []float64) float64 {
	return la.VecDot(v, o.HessProd(v))
}
