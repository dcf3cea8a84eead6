// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// lowPenaltyEstimate implements spec.md §4.10: builds the residual matrix
// across every one-sided constraint channel over the interpolation set
// and returns the penalty level below which the objective range alone
// could justify the constraint-residual range. Returns 0 when no channel
// qualifies, and +Inf when the residual spread collapses to zero (the
// caller interprets +Inf as 0 for the initial μ, per spec.md §7).
func (o *Framework) lowPenaltyEstimate() float64 {
	m := o.Models.Interp.M
	var columns [][]float64

	aiRows := splitRows(o.Prob.Ai, o.Prob.Mi, o.Prob.N)
	for i := 0; i < o.Prob.Mi; i++ {
		col := make([]float64, m)
		for k := 0; k < m; k++ {
			x := o.Models.Interp.Point(k)
			col[k] = dotRow(aiRows[i], x) - o.Prob.Bi[i]
		}
		columns = append(columns, col)
	}
	for j := 0; j < o.Prob.NCI; j++ {
		col := make([]float64, m)
		for k := 0; k < m; k++ {
			col[k] = o.Models.CIVal[k][j]
		}
		columns = append(columns, col)
	}
	aeRows := splitRows(o.Prob.Ae, o.Prob.Me, o.Prob.N)
	for i := 0; i < o.Prob.Me; i++ {
		pos := make([]float64, m)
		neg := make([]float64, m)
		for k := 0; k < m; k++ {
			x := o.Models.Interp.Point(k)
			v := dotRow(aeRows[i], x) - o.Prob.Be[i]
			pos[k], neg[k] = v, -v
		}
		columns = append(columns, pos, neg)
	}
	for j := 0; j < o.Prob.NCE; j++ {
		pos := make([]float64, m)
		neg := make([]float64, m)
		for k := 0; k < m; k++ {
			pos[k] = o.Models.CEVal[k][j]
			neg[k] = -o.Models.CEVal[k][j]
		}
		columns = append(columns, pos, neg)
	}

	if len(columns) == 0 {
		return 0
	}

	cDiff := math.Inf(1)
	any := false
	for _, col := range columns {
		cmin, cmax := floats.Min(col), floats.Max(col)
		if cmin < 2*cmax {
			any = true
			d := cmax - math.Min(0, cmin)
			if d < cDiff {
				cDiff = d
			}
		}
	}
	if !any {
		return 0
	}

	fRange := floats.Max(o.Models.FVal) - floats.Min(o.Models.FVal)
	if cDiff > tiny*fRange {
		return fRange / cDiff
	}
	return math.Inf(1)
}

func dotRow(row, x []float64) float64 {
	s := 0.0
	for i := range row {
		s += row[i] * x[i]
	}
	return s
}
