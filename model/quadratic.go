// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gosl/la"
)

// Quadratic is a quadratic surrogate
//
//	q(x) = C + <G, x-XBase> + 1/2 <x-XBase, H (x-XBase)>
//
// stored with H split into an explicit symmetric part (HExplicit, zero
// unless a caller seeds it with prior curvature information) and an
// implicit part accumulated from the interpolation coefficients
// (HImplicit = Σ_k λ_k · offset_k ⊗ offset_k), matching spec.md §3's
// "owns a symmetric explicit Hessian ... plus implicit rank-one updates".
// The Models bundle recomputes both C, G and HImplicit together whenever
// it resolves the interpolation system (see models.go); this file only
// owns the algebra that reads the representation (value/gradient/Hessian
// products) and the O(n²) base re-centering used by Models.ShiftBase.
type Quadratic struct {
	N         int
	C         float64
	G         []float64   // [n]
	HExplicit [][]float64 // [n][n], symmetric
	HImplicit [][]float64 // [n][n], symmetric
}

// NewQuadratic allocates a zero quadratic (q ≡ 0) over n variables.
func NewQuadratic(n int) (o *Quadratic) {
	o = &Quadratic{N: n}
	o.G = make([]float64, n)
	o.HExplicit = la.MatAlloc(n, n)
	o.HImplicit = la.MatAlloc(n, n)
	return
}

// Val returns q(XBase + xOffset).
func (o *Quadratic) Val(xOffset []float64) float64 {
	hv := o.HessProd(xOffset)
	return o.C + la.VecDot(o.G, xOffset) + 0.5*la.VecDot(xOffset, hv)
}

// Grad returns ∇q(XBase + xOffset) = G + H·xOffset.
func (o *Quadratic) Grad(xOffset []float64) []float64 {
	g := la.VecClone(o.G)
	la.VecAdd(g, 1, o.HessProd(xOffset))
	return g
}

// Hess returns a fresh copy of H = HExplicit + HImplicit.
func (o *Quadratic) Hess() [][]float64 {
	h := la.MatAlloc(o.N, o.N)
	for i := 0; i < o.N; i++ {
		for j := 0; j < o.N; j++ {
			h[i][j] = o.HExplicit[i][j] + o.HImplicit[i][j]
		}
	}
	return h
}

// HessProd returns H·v without materialising H twice.
func (o *Quadratic) HessProd(v []float64) []float64 {
	out := make([]float64, o.N)
	for i := 0; i < o.N; i++ {
		sum := 0.0
		for j := 0; j < o.N; j++ {
			sum += (o.HExplicit[i][j] + o.HImplicit[i][j]) * v[j]
		}
		out[i] = sum
	}
	return out
}

// Curv returns v^T H v.
func (o *Quadratic) Curv(v []float64) float64 {
	return la.VecDot(v, o.HessProd(v))
}

// recentre re-expresses the quadratic relative to a new base point that is
// offset by delta = newBase - oldBase from the current one:
//
//	C'      = C + <G, delta> + 1/2 <delta, H delta>
//	G'      = G + H·delta
//	H'      = H   (unchanged; only the expansion point moves)
//
// This is exact (no refit), giving shift_x_base its O(n²) cost and its
// round-trip invariant: q evaluated at any fixed absolute point is
// unchanged by recentre (spec.md §8).
func (o *Quadratic) recentre(delta []float64) {
	hv := o.HessProd(delta)
	o.C += la.VecDot(o.G, delta) + 0.5*la.VecDot(delta, hv)
	la.VecAdd(o.G, 1, hv)
}

// setFromSolve overwrites C, G and HImplicit from a solved interpolation
// system: lambda are the m Lagrange-style multipliers, pts are the m
// interpolation offsets (from the same base this quadratic is expressed
// relative to). HExplicit is left untouched (callers seed it once, if at
// all, before the first update).
func (o *Quadratic) setFromSolve(c float64, g []float64, lambda []float64, pts [][]float64) {
	o.C = c
	copy(o.G, g)
	la.MatFill(o.HImplicit, 0)
	for k := 0; k < len(lambda); k++ {
		if lambda[k] == 0 {
			continue
		}
		la.VecOuterAdd(o.HImplicit, lambda[k], pts[k], pts[k])
	}
}
