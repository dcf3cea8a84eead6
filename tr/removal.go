// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// GetIndexToRemove implements spec.md §4.9. Pass xNew = nil for the
// geometry phase (weights are pure squared distance, σ ≡ 1); pass the
// trial point otherwise (weights favour far points, scaled by the true
// denominator). Returns the chosen index and its distance to x*.
func (o *Framework) GetIndexToRemove(xNew []float64) (idx int, dist float64) {
	xStar := o.XStar()
	m := o.Models.Interp.M
	dist2 := make([]float64, m)
	for k := 0; k < m; k++ {
		dist2[k] = o.Models.Interp.Dist2(k, xStar)
	}

	weights := make([]float64, m)
	sigma := make([]float64, m)
	if xNew == nil {
		copy(weights, dist2)
		for k := range sigma {
			sigma[k] = 1
		}
	} else {
		denom := math.Max(0.1*o.State.Delta, o.State.Rho)
		denom2 := denom * denom
		for k := 0; k < m; k++ {
			s, err := o.Models.Denominators(xNew, k)
			if err != nil {
				chk.Panic("dfocore: cannot evaluate denominator: %v", err)
			}
			sigma[k] = s
			r := math.Max(1, dist2[k]/denom2)
			weights[k] = r * r * r
		}
	}

	best := 0
	bestVal := weights[0] * math.Abs(sigma[0])
	for k := 1; k < m; k++ {
		v := weights[k] * math.Abs(sigma[k])
		if v > bestVal {
			bestVal, best = v, k
		}
	}
	return best, math.Sqrt(dist2[best])
}
