// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package model implements the interpolation set, the quadratic surrogate
// models, and the models bundle of spec.md §3 (components 1–3 of §2).
package model

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// InterpSet stores the base point and the m interpolation points as offsets
// from the base (spec.md §3, "Interpolation set"). Points are stored
// point-major (one slice per point) rather than as a literal n×m matrix;
// this is the natural Go layout for "shift one point, query one point"
// access and is equivalent to the math notation's columns of xpt.
type InterpSet struct {
	N int // number of variables
	M int // number of interpolation points (npt)

	XBase []float64   // base point [n]
	Xpt   [][]float64 // offsets from XBase, one [n] slice per point, length m
}

// NewInterpSet allocates an interpolation set with m points, all initially
// coincident with xBase (offsets zero). Callers populate Xpt via
// UpdatePoint before the set is poised.
func NewInterpSet(n, m int, xBase []float64) (o *InterpSet) {
	if len(xBase) != n {
		chk.Panic("xBase must have length n=%d; got %d", n, len(xBase))
	}
	o = &InterpSet{N: n, M: m}
	o.XBase = la.VecClone(xBase)
	o.Xpt = make([][]float64, m)
	for k := 0; k < m; k++ {
		o.Xpt[k] = make([]float64, n)
	}
	return
}

// Point returns the absolute position of interpolation point k:
// XBase + Xpt[k].
func (o *InterpSet) Point(k int) []float64 {
	x := la.VecClone(o.XBase)
	la.VecAdd(x, 1, o.Xpt[k]) // x += 1*offset
	return x
}

// Offset returns the offset (from XBase) of interpolation point k.
func (o *InterpSet) Offset(k int) []float64 { return o.Xpt[k] }

// UpdatePoint replaces interpolation point k with the absolute position
// xAbs, recording it as an offset from the current base.
func (o *InterpSet) UpdatePoint(k int, xAbs []float64) {
	for i := 0; i < o.N; i++ {
		o.Xpt[k][i] = xAbs[i] - o.XBase[i]
	}
}

// Dist2 returns the squared Euclidean distance from interpolation point k
// to the absolute point x.
func (o *InterpSet) Dist2(k int, x []float64) float64 {
	sum := 0.0
	for i := 0; i < o.N; i++ {
		d := o.XBase[i] + o.Xpt[k][i] - x[i]
		sum += d * d
	}
	return sum
}

// ShiftBase re-expresses every point as an offset from the new base
// newBase, preserving every point's absolute position exactly:
//
//	Xpt[k]_new = Xpt[k]_old - (newBase - XBase_old)
func (o *InterpSet) ShiftBase(newBase []float64) {
	delta := make([]float64, o.N)
	la.VecAdd2(delta, 1, newBase, -1, o.XBase) // delta = newBase - XBase
	for k := 0; k < o.M; k++ {
		la.VecAdd(o.Xpt[k], -1, delta) // Xpt[k] -= delta
	}
	copy(o.XBase, newBase)
}
