// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import "github.com/cpmech/gosl/la"

// GetSecondOrderCorrectionStep implements spec.md §4.5: given a trial
// step s that caused an increase in constraint violation, recompute the
// linearizations at x* and run the normal Byrd–Omojokun solver with
// radius ‖s‖² (intentionally small and shrinking) to produce a
// correction.
func (o *Framework) GetSecondOrderCorrectionStep(s []float64) []float64 {
	xStar := o.XStar()
	aub, bub, aeq, beq := o.Linearize(xStar)
	xl, xu := o.boundsRelativeTo(xStar)
	radius := la.VecDot(s, s)
	soc := o.Solvers.Normal(aub, bub, aeq, beq, xl, xu, radius, o.Cfg.Debug)
	if o.Cfg.Debug {
		if socn := la.VecNorm(soc); socn > 1.1*radius {
			o.warn("second-order correction norm %.6g exceeds 1.1*||s||^2=%.6g", socn, 1.1*radius)
		}
	}
	return soc
}
