// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/dfocore/config"
	"github.com/cpmech/dfocore/lagrangian"
	"github.com/cpmech/dfocore/model"
	"github.com/cpmech/dfocore/prob"
	"github.com/cpmech/dfocore/sub"
)

// eps is the generic numerical tolerance of spec.md's active-set detection
// ("ε" usage distinct from the near-zero guards below).
const eps = 1e-10

// machEps is IEEE-754 double machine epsilon, used by the best-index tie
// tolerance of spec.md §4.8 ("10*eps*max(npt,n)*max(|phi_best|,1)").
const machEps = 2.220446049250313e-16

// tiny is the smallest positive normalized float64 (equivalently Python's
// np.finfo(float).tiny), used wherever spec.md guards a division by "is
// this quantity exactly/effectively zero" rather than "is it small": the
// degenerate-reduction-ratio check, the low-penalty collapse check, the
// penalty-increase threshold, and the geometry step's projected-gradient
// check all compare against a near-zero floor, not a coarse numerical
// tolerance.
const tiny = 2.2250738585072014e-308

// Framework is the trust-region framework of spec.md §4 (component 4 of
// §2): it owns the Models bundle and drives the six sub.Solvers through
// one outer iteration. Problem is held read-only; Models is owned
// exclusively (spec.md §9, "Models is exclusively owned by TrustRegion").
type Framework struct {
	Prob    *prob.Problem
	Models  *model.Models
	Solvers *sub.Solvers
	Cfg     *config.Config
	Lag     *lagrangian.Lagrangian
	State   *State
}

// NewFramework constructs the framework over an already-populated and
// Sync'd Models bundle (callers populate every SetValues then call Sync
// before construction; NewFramework itself never mutates Models' cached
// values). radius_init seeds both the initial Δ and the
// initial ρ (spec.md §9 open question, followed as specified); the
// initial μ is the low-penalty estimate of §4.10, with +∞ interpreted as
// 0 (spec.md §7).
func NewFramework(p *prob.Problem, models *model.Models, solvers *sub.Solvers, cfg *config.Config) (o *Framework) {
	o = &Framework{
		Prob:    p,
		Models:  models,
		Solvers: solvers,
		Cfg:     cfg,
		Lag:     lagrangian.New(models, p),
		State:   newState(p.Mi, p.Me, p.NCI, p.NCE),
	}
	o.State.Rho = cfg.RadiusInit
	o.State.Delta = cfg.RadiusInit
	mu := o.lowPenaltyEstimate()
	if math.IsInf(mu, 1) {
		mu = 0
	}
	o.State.Mu = mu
	o.SetBestIndex()
	return
}

// XStar returns the absolute position of the current best interpolation
// point, x* = xpt[:,k*].
func (o *Framework) XStar() []float64 {
	return o.Models.Interp.Point(o.State.KStar)
}

// offset expresses the absolute point x relative to the models' base.
func (o *Framework) offset(x []float64) []float64 {
	off := make([]float64, o.Prob.N)
	la.VecAdd2(off, 1, x, -1, o.Models.Interp.XBase)
	return off
}

// boundsRelativeTo returns (x̃l, x̃u) = (xl−x, xu−x), the bound translation
// used throughout spec.md §4.3/§4.4.
func (o *Framework) boundsRelativeTo(x []float64) (xl, xu []float64) {
	n := o.Prob.N
	xl = make([]float64, n)
	xu = make([]float64, n)
	for i := 0; i < n; i++ {
		xl[i] = o.Prob.Xl[i] - x[i]
		xu[i] = o.Prob.Xu[i] - x[i]
	}
	return
}

// matVec returns A·v for a row-major [][]float64 A (possibly nil/empty).
func matVec(rows [][]float64, v []float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = la.VecDot(row, v)
	}
	return out
}

// posPart returns max(v, 0) elementwise in a freshly allocated slice.
func posPart(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if x > 0 {
			out[i] = x
		}
	}
	return out
}

// absVals returns |v| elementwise in a freshly allocated slice.
func absVals(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Abs(x)
	}
	return out
}

// norm2 returns the Euclidean norm of the concatenation of the given
// slices, without actually concatenating them.
func norm2(parts ...[]float64) float64 {
	sum := 0.0
	for _, p := range parts {
		for _, v := range p {
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

// warn prints a non-fatal invariant warning when debug is enabled
// (spec.md §7, "Invariant warnings").
func (o *Framework) warn(format string, args ...interface{}) {
	if o.Cfg.Debug {
		io.Pf("dfocore: warning: "+format+"\n", args...)
	}
}
