// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sub defines the six external subproblem-solver contracts of
// spec.md §6 and ships one concrete, swappable implementation of each.
// None of this package is part of the core's invariant surface: spec.md
// §1 explicitly scopes these solvers out of the core ("we specify only
// the contracts the core expects from them"); the tr package always
// depends on the sub.Solvers interface bundle, never on these concrete
// functions directly, so a driver may substitute any conforming
// implementation (e.g. a call into a faster native QP library).
package sub

// HessProd is a Hessian-vector product oracle.
type HessProd func(v []float64) []float64

// NormalByrdOmojokun approximately minimises
//
//	1/2 ( ||max(aub·s - bub, 0)||² + ||aeq·s - beq||² )
//
// subject to xl <= s <= xu and ||s|| <= radius. Implementations must
// return s = 0 when the origin is already near-feasible (spec.md §6).
type NormalByrdOmojokun func(aub [][]float64, bub []float64, aeq [][]float64, beq []float64, xl, xu []float64, radius float64, debug bool) []float64

// TangentialByrdOmojokun solves the bound-constrained trust-region
// subproblem min g^T s + 1/2 s^T H s s.t. xl <= s <= xu, ||s|| <= radius.
type TangentialByrdOmojokun func(g []float64, hprod HessProd, xl, xu []float64, radius float64, debug bool) []float64

// ConstrainedTangentialByrdOmojokun adds the (soft) linear inequality
// aub·s <= bub and the (hard) linear equality aeq·s = 0 to the bound-
// constrained trust-region subproblem.
type ConstrainedTangentialByrdOmojokun func(g []float64, hprod HessProd, xl, xu []float64, aub [][]float64, bub []float64, aeq [][]float64, radius float64, debug bool) []float64

// CauchyGeometry maximises |const + g^T s + 1/2 s^T H s| over the
// intersection of the box [xl,xu] and the ball of the given radius.
type CauchyGeometry func(constant float64, g []float64, hprod HessProd, xl, xu []float64, radius float64, debug bool) []float64

// SpiderGeometry is as CauchyGeometry but restricted to line searches
// along each column of directions.
type SpiderGeometry func(constant float64, g []float64, hprod HessProd, directions [][]float64, xl, xu []float64, radius float64, debug bool) []float64

// QRTangentialByrdOmojokun returns an orthonormal basis Q of R^n (n x n)
// whose last n-nAct columns span the null space of the active constraint
// rows: bound index i contributes a row iff !freeXl[i] (lower) or
// !freeXu[i] (upper); aub row r contributes iff !freeUb[r]; every aeq row
// always contributes.
type QRTangentialByrdOmojokun func(aub [][]float64, aeq [][]float64, freeXl, freeXu, freeUb []bool) (nAct int, Q [][]float64)

// Solvers bundles one implementation of each of the six contracts. The
// trust-region framework is constructed with a *Solvers value and never
// hard-codes a concrete solver (spec.md §6, "any implementation may be
// plugged in provided it satisfies the contract").
type Solvers struct {
	Normal                NormalByrdOmojokun
	Tangential            TangentialByrdOmojokun
	ConstrainedTangential ConstrainedTangentialByrdOmojokun
	Cauchy                CauchyGeometry
	Spider                SpiderGeometry
	QR                    QRTangentialByrdOmojokun
}

// DefaultSolvers returns the reference implementations in this package.
func DefaultSolvers() *Solvers {
	return &Solvers{
		Normal:                NormalStep,
		Tangential:            TangentialStep,
		ConstrainedTangential: ConstrainedTangentialStep,
		Cauchy:                CauchyStep,
		Spider:                SpiderStep,
		QR:                    QRTangential,
	}
}
