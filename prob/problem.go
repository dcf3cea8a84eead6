// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prob implements the immutable problem handle consumed by the
// trust-region framework: bounds, linear constraints, and the black-box
// objective/constraint oracles.
package prob

import (
	"github.com/cpmech/gosl/chk"
)

// Type classifies a Problem by the kind of constraints it carries.
type Type int

// recognised problem types
const (
	Unconstrained Type = iota
	BoundConstrained
	LinearlyConstrained
	NonlinearlyConstrained
)

// String implements fmt.Stringer
func (t Type) String() string {
	switch t {
	case Unconstrained:
		return "unconstrained"
	case BoundConstrained:
		return "bound-constrained"
	case LinearlyConstrained:
		return "linearly-constrained"
	case NonlinearlyConstrained:
		return "nonlinearly-constrained"
	}
	return "unknown"
}

// ObjFunc evaluates the objective at x
type ObjFunc func(x []float64) float64

// ConFunc evaluates the vector of constraint values at x. An inequality
// vector is interpreted as c_I(x) <= 0; an equality vector as c_E(x) = 0.
type ConFunc func(x []float64) []float64

// Problem is the immutable descriptor consumed by the trust-region
// framework. It must not be mutated after NewProblem returns.
type Problem struct {
	N int // number of variables

	Xl []float64 // lower bounds [n]; may contain -Inf
	Xu []float64 // upper bounds [n]; may contain +Inf

	Ai []float64 // linear inequality matrix [mI x n], row-major; nil if none
	Bi []float64 // linear inequality rhs [mI]
	Mi int       // number of linear inequality rows

	Ae []float64 // linear equality matrix [mE x n], row-major; nil if none
	Be []float64 // linear equality rhs [mE]
	Me int       // number of linear equality rows

	Obj ObjFunc // black-box objective; required
	CI  ConFunc // black-box nonlinear inequalities; nil if none
	CE  ConFunc // black-box nonlinear equalities; nil if none

	NCI int // number of nonlinear inequality components (0 if CI == nil)
	NCE int // number of nonlinear equality components (0 if CE == nil)

	typ Type
}

// NewProblem validates and constructs an immutable Problem handle.
//
// Shape mismatches between n and the supplied bounds/linear-constraint
// arrays are contract violations: the caller supplied inconsistent input,
// so NewProblem panics via chk.Panic (see spec.md §7).
func NewProblem(n int, xl, xu []float64, ai []float64, bi []float64, mi int,
	ae []float64, be []float64, me int, obj ObjFunc, ci ConFunc, nci int,
	ce ConFunc, nce int) (o *Problem) {

	if n <= 0 {
		chk.Panic("n must be positive; got n=%d", n)
	}
	if len(xl) != n || len(xu) != n {
		chk.Panic("xl and xu must have length n=%d; got %d and %d", n, len(xl), len(xu))
	}
	if mi > 0 && (len(ai) != mi*n || len(bi) != mi) {
		chk.Panic("Ai must be mi*n=%d and Bi must be mi=%d; got %d and %d", mi*n, mi, len(ai), len(bi))
	}
	if me > 0 && (len(ae) != me*n || len(be) != me) {
		chk.Panic("Ae must be me*n=%d and Be must be me=%d; got %d and %d", me*n, me, len(ae), len(be))
	}
	if obj == nil {
		chk.Panic("Obj oracle is required")
	}
	if ci == nil && nci != 0 {
		chk.Panic("nci must be zero when CI is nil")
	}
	if ce == nil && nce != 0 {
		chk.Panic("nce must be zero when CE is nil")
	}

	o = &Problem{
		N: n, Xl: xl, Xu: xu,
		Ai: ai, Bi: bi, Mi: mi,
		Ae: ae, Be: be, Me: me,
		Obj: obj, CI: ci, CE: ce,
		NCI: nci, NCE: nce,
	}

	switch {
	case nci > 0 || nce > 0:
		o.typ = NonlinearlyConstrained
	case mi > 0 || me > 0:
		o.typ = LinearlyConstrained
	case o.hasFiniteBound():
		o.typ = BoundConstrained
	default:
		o.typ = Unconstrained
	}
	return
}

func (o *Problem) hasFiniteBound() bool {
	for i := 0; i < o.N; i++ {
		if !isInf(o.Xl[i]) || !isInf(o.Xu[i]) {
			return true
		}
	}
	return false
}

func isInf(v float64) bool {
	return v > 1e300 || v < -1e300
}

// TypeOf returns the problem's classification, computed once at
// construction (spec.md §3 "Problem handle").
func (o *Problem) TypeOf() Type { return o.typ }

// IsBoundOnly returns true when the problem has no linear or nonlinear
// constraints (used by the tangential-step dispatch in spec.md §4.3).
func (o *Problem) IsBoundOnly() bool {
	return o.typ == Unconstrained || o.typ == BoundConstrained
}

// HasLinear returns true when linear inequality or equality rows are present.
func (o *Problem) HasLinear() bool { return o.Mi > 0 || o.Me > 0 }

// HasNonlinear returns true when nonlinear constraint components are present.
func (o *Problem) HasNonlinear() bool { return o.NCI > 0 || o.NCE > 0 }

// AiRow returns row i (0-based) of Ai as a slice view.
func (o *Problem) AiRow(i int) []float64 { return o.Ai[i*o.N : (i+1)*o.N] }

// AeRow returns row i (0-based) of Ae as a slice view.
func (o *Problem) AeRow(i int) []float64 { return o.Ae[i*o.N : (i+1)*o.N] }
