// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// UpdateRadius implements spec.md §4.12's update_radius: adjusts Δ from
// the step norm and the reduction ratio ρ_ratio, then applies the
// snap-to-floor setter.
func (o *Framework) UpdateRadius(s []float64, rhoRatio float64) {
	sn := la.VecNorm(s)
	var newDelta float64
	switch {
	case rhoRatio <= 0.1:
		newDelta = o.State.Delta / 2
	case rhoRatio <= 0.7:
		newDelta = math.Max(o.State.Delta/2, sn)
	default:
		newDelta = math.Min(math.Sqrt2*o.State.Delta, math.Max(o.State.Delta/2, 2*sn))
	}
	o.State.SetDelta(newDelta)
}

// ReduceResolution implements spec.md §4.12's reduce_resolution: tightens
// ρ toward ρ_final and halves Δ (floored at the new ρ) without going
// through the snap-to-floor setter.
func (o *Framework) ReduceResolution(rhoFinal float64) {
	switch {
	case o.State.Rho > 250*rhoFinal:
		o.State.Rho /= 10
	case o.State.Rho > 16*rhoFinal:
		o.State.Rho = math.Sqrt(o.State.Rho * rhoFinal)
	default:
		o.State.Rho = rhoFinal
	}
	o.State.Delta = math.Max(o.State.Delta/2, o.State.Rho)
}

// ShiftXBase implements spec.md §4.12's shift_x_base: re-expresses the
// interpolation set (and every quadratic) relative to the current best
// point, preserving all interpolation values exactly.
func (o *Framework) ShiftXBase() {
	o.Models.ShiftBase(o.XStar())
}
