// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import "github.com/cpmech/gosl/la"

// Linearize builds the linearized constraint set of spec.md §4.2 at the
// absolute point x:
//
//	aub = [A_I; ∇c_I_model(x)],  bub = [b_I − A_I x; −c_I_model(x)]
//	aeq = [A_E; ∇c_E_model(x)],  beq = [b_E − A_E x; −c_E_model(x)]
//
// expressing the linearized feasible set {s : aub·s <= bub, aeq·s = beq}.
func (o *Framework) Linearize(x []float64) (aub [][]float64, bub []float64, aeq [][]float64, beq []float64) {
	off := o.offset(x)
	for i := 0; i < o.Prob.Mi; i++ {
		row := la.VecClone(o.Prob.AiRow(i))
		aub = append(aub, row)
		bub = append(bub, o.Prob.Bi[i]-la.VecDot(o.Prob.AiRow(i), x))
	}
	for j := 0; j < o.Prob.NCI; j++ {
		g := o.Models.QCI[j].Grad(off)
		aub = append(aub, g)
		bub = append(bub, -o.Models.QCI[j].Val(off))
	}
	for i := 0; i < o.Prob.Me; i++ {
		row := la.VecClone(o.Prob.AeRow(i))
		aeq = append(aeq, row)
		beq = append(beq, o.Prob.Be[i]-la.VecDot(o.Prob.AeRow(i), x))
	}
	for j := 0; j < o.Prob.NCE; j++ {
		g := o.Models.QCE[j].Grad(off)
		aeq = append(aeq, g)
		beq = append(beq, -o.Models.QCE[j].Val(off))
	}
	return
}
