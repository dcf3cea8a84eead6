// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tr implements the trust-region framework of spec.md §4: the
// component that drives the interpolation set, the quadratic models, and
// the six external subproblem solvers through one outer iteration.
package tr

// State holds the mutable trust-region state of spec.md §3
// ("Trust-region state"): radius Δ, resolution ρ, penalty μ, best index
// k*, and the Lagrange multiplier blocks λ = (λ_linI, λ_linE, λ_cI, λ_cE).
type State struct {
	Delta float64
	Rho   float64
	Mu    float64
	KStar int

	LamLinI []float64
	LamLinE []float64
	LamCI   []float64
	LamCE   []float64
}

// newState allocates a zero-valued state sized to the problem's
// constraint blocks.
func newState(mi, me, nci, nce int) *State {
	return &State{
		LamLinI: make([]float64, mi),
		LamLinE: make([]float64, me),
		LamCI:   make([]float64, nci),
		LamCE:   make([]float64, nce),
	}
}

// SetDelta applies the radius setter invariant of spec.md §3/§8: Δ ≤
// 1.4·ρ snaps Δ down to ρ exactly. Used by every mutation of Δ except
// ReduceResolution, which bypasses this rule by specification (§4.12).
func (o *State) SetDelta(newDelta float64) {
	if newDelta <= 1.4*o.Rho {
		o.Delta = o.Rho
		return
	}
	o.Delta = newDelta
}

// Snapshot is a read-only copy of (Δ, ρ, μ, k*, λ) for driver-side
// logging and for round-trip assertions such as spec.md §8's "re-invoking
// set_best_index immediately after it returns is a no-op".
type Snapshot struct {
	Delta, Rho, Mu float64
	KStar          int
	LamLinI        []float64
	LamLinE        []float64
	LamCI          []float64
	LamCE          []float64
}

// Snapshot captures the current state. Slice fields are copies: mutating
// them does not affect the live State.
func (o *State) Snapshot() Snapshot {
	return Snapshot{
		Delta:   o.Delta,
		Rho:     o.Rho,
		Mu:      o.Mu,
		KStar:   o.KStar,
		LamLinI: append([]float64(nil), o.LamLinI...),
		LamLinE: append([]float64(nil), o.LamLinE...),
		LamCI:   append([]float64(nil), o.LamCI...),
		LamCE:   append([]float64(nil), o.LamCE...),
	}
}
