// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// Models is the "models bundle" of spec.md §3/§2 (component 3): it owns
// one Quadratic for f and one per component of c_I and c_E, the cached
// function/constraint values at every interpolation point, and the
// factorization of the underdetermined interpolation system shared by all
// of them (the "denominator σ" oracle is a query against this shared
// factorization, not a per-quadratic concept).
//
// The interpolation system solved is the standard minimum-Frobenius-norm
// quadratic interpolant (Powell's natural formulation): for m offsets
// y_0..y_{m-1} from the base point and target values v_0..v_{m-1},
//
//	[ A    Y ] [λ]   [v]
//	[ Y^T  0 ] [c;g] = [0]
//
// with A_ij = 1/2·<y_i,y_j>^2 and Y's rows [1, y_k]. The (m+n+1)×(m+n+1)
// system matrix W depends only on geometry. Rather than re-factorize W
// from scratch on every interpolation-point replacement, Models keeps the
// explicit inverse Winv and, when exactly one point's offset changes (the
// only case update(k_new,...) ever produces), applies a symmetric rank-2
// Sherman-Morrison-Woodbury correction to it: replacing point k changes
// only row/column k of W, so the update is O((m+n)²), not a fresh
// O((m+n)³) factorization — matching spec.md §9's "O(n²) per
// interpolation-point replacement" (m is O(n) in practice). A full
// inversion is only ever performed at construction and after a base
// shift, where every offset changes at once and no incremental formula
// applies.
type Models struct {
	Interp *InterpSet

	NCI int
	NCE int

	FVal  []float64   // [m]
	CIVal [][]float64 // [m][NCI]
	CEVal [][]float64 // [m][NCE]

	QF  *Quadratic
	QCI []*Quadratic // len NCI
	QCE []*Quadratic // len NCE

	dirty          bool // values and/or geometry changed since the last Sync
	needsFullRefit bool // the whole geometry changed (construction, ShiftBase): Winv must be rebuilt from scratch
	pendingIdx     int  // index of the single point whose offset changed since the last Sync, or -1
	pendingOld     []float64

	winv *mat.Dense // (m+n+1)x(m+n+1) inverse of the interpolation system matrix
	dim  int
}

// NewModels allocates a models bundle over an existing interpolation set.
// Cached values are initially zero; call SetValues for every k then
// Sync (or UpdatePoint, which does both) before querying any quadratic.
func NewModels(interp *InterpSet, nci, nce int) (o *Models) {
	o = &Models{Interp: interp, NCI: nci, NCE: nce}
	m := interp.M
	o.FVal = make([]float64, m)
	o.CIVal = make([][]float64, m)
	o.CEVal = make([][]float64, m)
	for k := 0; k < m; k++ {
		o.CIVal[k] = make([]float64, nci)
		o.CEVal[k] = make([]float64, nce)
	}
	o.QF = NewQuadratic(interp.N)
	o.QCI = make([]*Quadratic, nci)
	for j := range o.QCI {
		o.QCI[j] = NewQuadratic(interp.N)
	}
	o.QCE = make([]*Quadratic, nce)
	for j := range o.QCE {
		o.QCE[j] = NewQuadratic(interp.N)
	}
	o.dirty = true
	o.needsFullRefit = true
	o.pendingIdx = -1
	return
}

// SetValues records the cached function/constraint values at point k
// without refitting the quadratics; call Sync (or UpdatePoint) afterwards.
// Geometry is untouched, so this alone never requires rebuilding Winv.
func (o *Models) SetValues(k int, fVal float64, ciVal, ceVal []float64) {
	o.FVal[k] = fVal
	copy(o.CIVal[k], ciVal)
	copy(o.CEVal[k], ceVal)
	o.dirty = true
}

// UpdatePoint is the Models-level one-point update of spec.md §3: it moves
// interpolation point kNew to xNew, records the new function/constraint
// values there, and refits every quadratic so that all m points remain
// interpolated exactly (spec.md invariant on the Models bundle). Only
// row/column kNew of the interpolation system changes, so Sync resolves
// this via the O(n²) rank-2 correction rather than a full refactorization.
func (o *Models) UpdatePoint(kNew int, xNew []float64, fNew float64, ciNew, ceNew []float64) error {
	oldOffset := la.VecClone(o.Interp.Xpt[kNew])
	o.Interp.UpdatePoint(kNew, xNew)
	o.SetValues(kNew, fNew, ciNew, ceNew)
	if !o.needsFullRefit {
		o.pendingIdx = kNew
		o.pendingOld = oldOffset
	}
	return o.Sync()
}

// ShiftBase delegates to InterpSet.ShiftBase and re-centres every owned
// quadratic in O(n²) each, preserving every interpolation value exactly
// (spec.md §8 round-trip property). Every offset y_k = x_k - x_base moves
// under a base shift, so every entry of the interpolation system matrix
// changes at once; unlike a single-point replacement there is no cheap
// incremental correction, so the next Sync rebuilds Winv from scratch.
func (o *Models) ShiftBase(newBase []float64) {
	delta := make([]float64, o.Interp.N)
	la.VecAdd2(delta, 1, newBase, -1, o.Interp.XBase)
	o.Interp.ShiftBase(newBase)
	o.QF.recentre(delta)
	for _, q := range o.QCI {
		q.recentre(delta)
	}
	for _, q := range o.QCE {
		q.recentre(delta)
	}
	o.dirty = true
	o.needsFullRefit = true
	o.pendingIdx = -1
}

// systemDim returns m+n+1, the size of the shared interpolation system.
func (o *Models) systemDim() int { return o.Interp.M + o.Interp.N + 1 }

// assemble builds the dense (m+n+1)x(m+n+1) interpolation system matrix W.
func (o *Models) assemble() *mat.Dense {
	n, m := o.Interp.N, o.Interp.M
	d := m + n + 1
	data := make([]float64, d*d)
	W := mat.NewDense(d, d, data)
	for i := 0; i < m; i++ {
		yi := o.Interp.Xpt[i]
		for j := 0; j < m; j++ {
			yj := o.Interp.Xpt[j]
			v := 0.5 * la.VecDot(yi, yj) * la.VecDot(yi, yj)
			W.Set(i, j, v)
		}
		W.Set(i, m, 1)
		W.Set(m, i, 1)
		for d0 := 0; d0 < n; d0++ {
			W.Set(i, m+1+d0, yi[d0])
			W.Set(m+1+d0, i, yi[d0])
		}
	}
	return W
}

// fullRefit inverts the current system matrix W from scratch, O((m+n)^3).
// Only used at construction and after a base shift.
func (o *Models) fullRefit() error {
	d := o.systemDim()
	W := o.assemble()
	var lu mat.LU
	lu.Factorize(W)
	ident := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		ident.Set(i, i, 1)
	}
	winv := mat.NewDense(d, d, nil)
	if err := lu.SolveTo(winv, false, ident); err != nil {
		return chk.Err("model: singular interpolation system:\n%v", err)
	}
	o.winv = winv
	o.dim = d
	return nil
}

// systemColumn builds column k of W (equivalently row k, W is symmetric)
// for the geometry given by offset yk at index k.
func (o *Models) systemColumn(k int, yk []float64) []float64 {
	n, m := o.Interp.N, o.Interp.M
	d := o.dim
	col := make([]float64, d)
	for j := 0; j < m; j++ {
		var yj []float64
		if j == k {
			yj = yk
		} else {
			yj = o.Interp.Xpt[j]
		}
		dot := la.VecDot(yk, yj)
		col[j] = 0.5 * dot * dot
	}
	col[m] = 1
	for i := 0; i < n; i++ {
		col[m+1+i] = yk[i]
	}
	return col
}

// applyPointUpdate corrects Winv in place for the replacement of point k's
// offset from yOld to its current (already-mutated) value, via the
// symmetric rank-2 Sherman-Morrison-Woodbury formula: only row/column k of
// W changed, W_new = W_old + e_k·dᵀ + d·e_kᵀ − d_k·e_k·e_kᵀ, so
//
//	Winv_new = Winv - [w_k, v]·M^-1·[w_k, v]ᵀ
//
// where w_k is column k of Winv, v = Winv·d, d is the column difference,
// and M is the 2x2 matrix Cinv + [w_k,v]ᵀ[e_k,d] with Cinv = [[0,1],[1,d_k]]
// (the inverse of the low-rank factor C in W_new = W_old + [e_k,d]·C·[e_k,d]ᵀ).
// Cost is O((m+n)²): one matrix-vector product plus one rank-2 correction.
func (o *Models) applyPointUpdate(k int, yOld []float64) error {
	d := o.dim
	yNew := o.Interp.Xpt[k]
	newCol := o.systemColumn(k, yNew)
	oldCol := o.systemColumn(k, yOld)

	diff := make([]float64, d)
	for i := 0; i < d; i++ {
		diff[i] = newCol[i] - oldCol[i]
	}
	dk := diff[k]

	wk := make([]float64, d) // Winv * e_k = k-th column of Winv
	for i := 0; i < d; i++ {
		wk[i] = o.winv.At(i, k)
	}
	v := make([]float64, d) // Winv * diff
	for i := 0; i < d; i++ {
		s := 0.0
		for j := 0; j < d; j++ {
			s += o.winv.At(i, j) * diff[j]
		}
		v[i] = s
	}

	m11 := wk[k]
	m12 := 1 + v[k]
	m21 := m12
	m22 := dk + la.VecDot(diff, v)
	det := m11*m22 - m12*m21
	if math.Abs(det) < 1e-300 {
		return chk.Err("model: geometry update for point %d produced a singular correction", k)
	}
	inv11 := m22 / det
	inv12 := -m12 / det
	inv21 := -m21 / det
	inv22 := m11 / det

	for i := 0; i < d; i++ {
		ci1 := wk[i]*inv11 + v[i]*inv21
		ci2 := wk[i]*inv12 + v[i]*inv22
		for j := 0; j < d; j++ {
			corr := ci1*wk[j] + ci2*v[j]
			o.winv.Set(i, j, o.winv.At(i, j)-corr)
		}
	}
	return nil
}

// solve resolves one right-hand side (function or constraint-component
// values at every interpolation point) against the current Winv via a
// dense matrix-vector product, O((m+n)²) — not a new factorization.
func (o *Models) solve(vals []float64) (c float64, g []float64, lambda []float64) {
	m, n, d := o.Interp.M, o.Interp.N, o.dim
	lambda = make([]float64, m)
	g = make([]float64, n)
	for i := 0; i < d; i++ {
		s := 0.0
		for j := 0; j < m; j++ {
			s += o.winv.At(i, j) * vals[j]
		}
		switch {
		case i < m:
			lambda[i] = s
		case i == m:
			c = s
		default:
			g[i-m-1] = s
		}
	}
	return
}

// Sync refits every owned quadratic against the current interpolation
// geometry and cached values, re-using (and incrementally correcting) one
// shared inverse of the interpolation system matrix (spec.md §3, "owns
// ... the factorization used to update models"). It is a no-op if nothing
// has changed since the last Sync.
func (o *Models) Sync() error {
	if !o.dirty {
		return nil
	}
	if o.winv == nil || o.needsFullRefit {
		if err := o.fullRefit(); err != nil {
			return err
		}
		o.needsFullRefit = false
	} else if o.pendingIdx >= 0 {
		if err := o.applyPointUpdate(o.pendingIdx, o.pendingOld); err != nil {
			return err
		}
	}
	o.pendingIdx = -1
	o.pendingOld = nil

	m := o.Interp.M
	c, g, lambda := o.solve(o.FVal)
	o.QF.setFromSolve(c, g, lambda, o.Interp.Xpt)

	for j := 0; j < o.NCI; j++ {
		col := make([]float64, m)
		for k := 0; k < m; k++ {
			col[k] = o.CIVal[k][j]
		}
		c, g, lambda = o.solve(col)
		o.QCI[j].setFromSolve(c, g, lambda, o.Interp.Xpt)
	}

	for j := 0; j < o.NCE; j++ {
		col := make([]float64, m)
		for k := 0; k < m; k++ {
			col[k] = o.CEVal[k][j]
		}
		c, g, lambda = o.solve(col)
		o.QCE[j].setFromSolve(c, g, lambda, o.Interp.Xpt)
	}

	o.dirty = false
	return nil
}

// LagrangePoly returns the unique quadratic ℓ interpolating the indicator
// e_kNew at the m interpolation points (spec.md §4.4 step 1).
func (o *Models) LagrangePoly(kNew int) (*Quadratic, error) {
	if err := o.Sync(); err != nil {
		return nil, err
	}
	m := o.Interp.M
	e := make([]float64, m)
	e[kNew] = 1
	c, g, lambda := o.solve(e)
	l := NewQuadratic(o.Interp.N)
	l.setFromSolve(c, g, lambda, o.Interp.Xpt)
	return l, nil
}

// Denominators evaluates the k_new-th Lagrange polynomial at the absolute
// point xTrial, the σ predictor of spec.md's GLOSSARY ("Denominator σ")
// used to accept/reject geometry-improving and replacement candidates.
func (o *Models) Denominators(xTrial []float64, kNew int) (float64, error) {
	l, err := o.LagrangePoly(kNew)
	if err != nil {
		return 0, err
	}
	s := make([]float64, o.Interp.N)
	la.VecAdd2(s, 1, xTrial, -1, o.Interp.XBase)
	return l.Val(s), nil
}
