// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// rowBlock tags which State field a stacked active-Jacobian row feeds
// back into once the bounded least-squares solve (below) is done.
type rowBlock int

const (
	blockBound rowBlock = iota // bound rows participate in the solve but are not stored in State
	blockLinI
	blockLinE
	blockCI
	blockCE
)

// SetMultipliers implements spec.md §4.11: stacks the active Jacobian in
// the specified row order, solves the bounded least-squares problem
// min ||J^T λ + ∇f_model(x*)||² with λ >= 0 on the inequality blocks and
// λ free on the equality blocks, and records the result (zero on every
// inactive inequality, by construction: inactive rows are never
// stacked). Idempotent when Models and x* are unchanged (spec.md §8).
func (o *Framework) SetMultipliers() {
	xStar := o.XStar()
	off := o.offset(xStar)
	n := o.Prob.N

	var rows [][]float64
	var lowerZero []bool // true => this row's lambda must stay >= 0
	var blocks []rowBlock
	var idxs []int

	for i := 0; i < n; i++ {
		if o.Prob.Xl[i] >= xStar[i]-eps {
			row := make([]float64, n)
			row[i] = -1
			rows = append(rows, row)
			lowerZero = append(lowerZero, true)
			blocks = append(blocks, blockBound)
			idxs = append(idxs, i)
		}
	}
	for i := 0; i < n; i++ {
		if o.Prob.Xu[i] <= xStar[i]+eps {
			row := make([]float64, n)
			row[i] = 1
			rows = append(rows, row)
			lowerZero = append(lowerZero, true)
			blocks = append(blocks, blockBound)
			idxs = append(idxs, i)
		}
	}
	aiRows := splitRows(o.Prob.Ai, o.Prob.Mi, o.Prob.N)
	for i := 0; i < o.Prob.Mi; i++ {
		if dotRow(aiRows[i], xStar) >= o.Prob.Bi[i]-eps {
			rows = append(rows, la.VecClone(aiRows[i]))
			lowerZero = append(lowerZero, true)
			blocks = append(blocks, blockLinI)
			idxs = append(idxs, i)
		}
	}
	for j := 0; j < o.Prob.NCI; j++ {
		if o.Models.QCI[j].Val(off) >= -eps {
			rows = append(rows, o.Models.QCI[j].Grad(off))
			lowerZero = append(lowerZero, true)
			blocks = append(blocks, blockCI)
			idxs = append(idxs, j)
		}
	}
	aeRows := splitRows(o.Prob.Ae, o.Prob.Me, o.Prob.N)
	for i := 0; i < o.Prob.Me; i++ {
		rows = append(rows, la.VecClone(aeRows[i]))
		lowerZero = append(lowerZero, false)
		blocks = append(blocks, blockLinE)
		idxs = append(idxs, i)
	}
	for j := 0; j < o.Prob.NCE; j++ {
		rows = append(rows, o.Models.QCE[j].Grad(off))
		lowerZero = append(lowerZero, false)
		blocks = append(blocks, blockCE)
		idxs = append(idxs, j)
	}

	lamLinI := make([]float64, o.Prob.Mi)
	lamLinE := make([]float64, o.Prob.Me)
	lamCI := make([]float64, o.Prob.NCI)
	lamCE := make([]float64, o.Prob.NCE)

	if len(rows) > 0 {
		gF := o.Models.QF.Grad(off)
		lambda := bvlsSolve(rows, gF, lowerZero)
		for r, lam := range lambda {
			switch blocks[r] {
			case blockLinI:
				lamLinI[idxs[r]] = lam
			case blockLinE:
				lamLinE[idxs[r]] = lam
			case blockCI:
				lamCI[idxs[r]] = lam
			case blockCE:
				lamCE[idxs[r]] = lam
			}
		}
	}

	copy(o.State.LamLinI, lamLinI)
	copy(o.State.LamLinE, lamLinE)
	copy(o.State.LamCI, lamCI)
	copy(o.State.LamCE, lamCE)
	o.Lag.SetMultipliers(lamLinI, lamLinE, lamCI, lamCE)
}

// bvlsSolve approximately solves min ||A*lambda + g||^2 subject to
// lambda[k] >= 0 wherever lowerZero[k] is true, via projected gradient
// descent with Armijo backtracking (the same recipe as the normal and
// constrained-tangential reference solvers in package sub): a standard
// primal active-set BVLS is the textbook approach (spec.md §9), but since
// p = len(rows) is always small (one row per active constraint) a few
// dozen projected-gradient iterations already meet the tolerance spec.md
// §9 allows ("any implementation satisfying optimality within a supplied
// tolerance is acceptable").
func bvlsSolve(rows [][]float64, g []float64, lowerZero []bool) []float64 {
	n := len(g)
	p := len(rows)
	A := mat.NewDense(n, p, nil)
	for k, row := range rows {
		for i := 0; i < n; i++ {
			A.Set(i, k, row[i])
		}
	}
	gv := mat.NewVecDense(n, append([]float64(nil), g...))

	valGrad := func(lam []float64) (float64, []float64) {
		lamV := mat.NewVecDense(p, append([]float64(nil), lam...))
		r := mat.NewVecDense(n, nil)
		r.MulVec(A, lamV)
		r.AddVec(r, gv)
		val := mat.Dot(r, r)
		gr := mat.NewVecDense(p, nil)
		gr.MulVec(A.T(), r)
		grad := make([]float64, p)
		for k := 0; k < p; k++ {
			grad[k] = 2 * gr.AtVec(k)
		}
		return val, grad
	}
	project := func(lam []float64) {
		for k := 0; k < p; k++ {
			if lowerZero[k] && lam[k] < 0 {
				lam[k] = 0
			}
		}
	}

	lambda := make([]float64, p)
	val, grad := valGrad(lambda)
	const maxIt = 200
	for iter := 0; iter < maxIt; iter++ {
		gn := la.VecNorm(grad)
		if gn < 1e-13 {
			break
		}
		alpha := 1.0 / gn
		next := make([]float64, p)
		nextVal := val
		for ls := 0; ls < 40; ls++ {
			for k := range next {
				next[k] = lambda[k] - alpha*grad[k]
			}
			project(next)
			nextVal, _ = valGrad(next)
			if nextVal <= val-1e-4*alpha*gn*gn || alpha < 1e-16 {
				break
			}
			alpha *= 0.5
		}
		if nextVal >= val-1e-15 {
			break
		}
		lambda = next
		val = nextVal
		_, grad = valGrad(lambda)
	}
	return lambda
}
