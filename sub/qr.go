// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sub

import (
	"gonum.org/v1/gonum/mat"
)

// identity returns the n x n identity matrix as [][]float64.
func identity(n int) [][]float64 {
	Q := make([][]float64, n)
	for i := range Q {
		Q[i] = make([]float64, n)
		Q[i][i] = 1
	}
	return Q
}

// QRTangential is the reference implementation of the
// qr_tangential_byrd_omojokun contract (spec.md §6): it stacks the active
// rows (non-free bounds, non-free aub rows, every aeq row) into a matrix
// A and returns Q from a full QR factorisation of A^T, whose trailing
// n-nAct columns span null(A) whenever A has full row rank.
func QRTangential(aub [][]float64, aeq [][]float64, freeXl, freeXu, freeUb []bool) (nAct int, Q [][]float64) {
	n := len(freeXl)
	var rows [][]float64
	for i := 0; i < n; i++ {
		if !freeXl[i] {
			row := make([]float64, n)
			row[i] = -1
			rows = append(rows, row)
		}
	}
	for i := 0; i < n; i++ {
		if !freeXu[i] {
			row := make([]float64, n)
			row[i] = 1
			rows = append(rows, row)
		}
	}
	for r, row := range aub {
		if r < len(freeUb) && !freeUb[r] {
			rows = append(rows, row)
		}
	}
	rows = append(rows, aeq...)

	nAct = len(rows)
	if nAct == 0 {
		return 0, identity(n)
	}
	if nAct > n {
		// more active rows than variables: keep the first n (redundant
		// rows contribute nothing new to the row space of a rank <= n
		// matrix); QR below requires a tall or square input.
		rows = rows[:n]
		nAct = n
	}

	AT := mat.NewDense(n, len(rows), nil)
	for j, row := range rows {
		for i := 0; i < n; i++ {
			AT.Set(i, j, row[i])
		}
	}
	var qr mat.QR
	qr.Factorize(AT)
	var Qfull mat.Dense
	qr.QTo(&Qfull)

	Q = make([][]float64, n)
	for i := 0; i < n; i++ {
		Q[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			Q[i][j] = Qfull.At(i, j)
		}
	}
	return
}
