// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prob

import (
	"math"
	"testing"
)

func TestTypeOfUnconstrained(t *testing.T) {
	inf := math.Inf(1)
	xl := []float64{-inf, -inf}
	xu := []float64{inf, inf}
	p := NewProblem(2, xl, xu, nil, nil, 0, nil, nil, 0,
		func(x []float64) float64 { return x[0]*x[0] + x[1]*x[1] }, nil, 0, nil, 0)
	if p.TypeOf() != Unconstrained {
		t.Fatalf("expected Unconstrained, got %v", p.TypeOf())
	}
	if !p.IsBoundOnly() {
		t.Fatalf("unconstrained must be bound-only")
	}
}

func TestTypeOfBoundConstrained(t *testing.T) {
	p := NewProblem(2, []float64{1, 1}, []float64{2, 2}, nil, nil, 0, nil, nil, 0,
		func(x []float64) float64 { return x[0] + x[1] }, nil, 0, nil, 0)
	if p.TypeOf() != BoundConstrained {
		t.Fatalf("expected BoundConstrained, got %v", p.TypeOf())
	}
}

func TestTypeOfLinearlyConstrained(t *testing.T) {
	inf := math.Inf(1)
	ai := []float64{1, 1}
	bi := []float64{1}
	p := NewProblem(2, []float64{-inf, -inf}, []float64{inf, inf}, ai, bi, 1, nil, nil, 0,
		func(x []float64) float64 { return x[0] + x[1] }, nil, 0, nil, 0)
	if p.TypeOf() != LinearlyConstrained {
		t.Fatalf("expected LinearlyConstrained, got %v", p.TypeOf())
	}
	if !p.HasLinear() {
		t.Fatalf("expected HasLinear true")
	}
}

func TestTypeOfNonlinearlyConstrained(t *testing.T) {
	inf := math.Inf(1)
	ci := func(x []float64) []float64 { return []float64{x[0]*x[0] + x[1]*x[1] - 1} }
	p := NewProblem(2, []float64{-inf, -inf}, []float64{inf, inf}, nil, nil, 0, nil, nil, 0,
		func(x []float64) float64 { return x[0] + x[1] }, ci, 1, nil, 0)
	if p.TypeOf() != NonlinearlyConstrained {
		t.Fatalf("expected NonlinearlyConstrained, got %v", p.TypeOf())
	}
	if p.IsBoundOnly() {
		t.Fatalf("nonlinearly constrained must not be bound-only")
	}
}

func TestNewProblemPanicsOnShapeMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on shape mismatch")
		}
	}()
	NewProblem(2, []float64{0}, []float64{1, 1}, nil, nil, 0, nil, nil, 0,
		func(x []float64) float64 { return 0 }, nil, 0, nil, 0)
}

func TestAiRow(t *testing.T) {
	inf := math.Inf(1)
	ai := []float64{1, 2, 3, 4}
	bi := []float64{1, 2}
	p := NewProblem(2, []float64{-inf, -inf}, []float64{inf, inf}, ai, bi, 2, nil, nil, 0,
		func(x []float64) float64 { return 0 }, nil, 0, nil, 0)
	row := p.AiRow(1)
	if row[0] != 3 || row[1] != 4 {
		t.Fatalf("unexpected row: %v", row)
	}
}
