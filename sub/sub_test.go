// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sub

import (
	"math"
	"testing"
)

func identityHprod(H [][]float64) HessProd {
	return func(v []float64) []float64 {
		n := len(v)
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			s := 0.0
			for j := 0; j < n; j++ {
				s += H[i][j] * v[j]
			}
			out[i] = s
		}
		return out
	}
}

func TestNormalStepReturnsZeroWhenFeasible(t *testing.T) {
	xl := []float64{-1, -1}
	xu := []float64{1, 1}
	aub := [][]float64{{1, 0}}
	bub := []float64{5} // already satisfied at s=0
	s := NormalStep(aub, bub, nil, nil, xl, xu, 1.0, false)
	for _, v := range s {
		if v != 0 {
			t.Fatalf("expected zero step, got %v", s)
		}
	}
}

func TestNormalStepReducesViolation(t *testing.T) {
	xl := []float64{-5, -5}
	xu := []float64{5, 5}
	aub := [][]float64{{1, 0}}
	bub := []float64{-2} // s1 <= -2, violated at s=0
	s := NormalStep(aub, bub, nil, nil, xl, xu, 3.0, false)
	val0, _ := violPenaltyValGrad([]float64{0, 0}, aub, bub, nil, nil)
	valS, _ := violPenaltyValGrad(s, aub, bub, nil, nil)
	if valS >= val0 {
		t.Fatalf("NormalStep did not reduce violation: val0=%v valS=%v", val0, valS)
	}
}

func TestTangentialStepUnconstrainedMinimum(t *testing.T) {
	H := [][]float64{{2, 0}, {0, 2}}
	g := []float64{1, 1}
	xl := []float64{-10, -10}
	xu := []float64{10, 10}
	s := TangentialStep(g, identityHprod(H), xl, xu, 10.0, false)
	// unconstrained minimiser of g^T s + s^T s is s = -g/2
	want := []float64{-0.5, -0.5}
	for i := range s {
		if math.Abs(s[i]-want[i]) > 1e-4 {
			t.Fatalf("TangentialStep=%v, want %v", s, want)
		}
	}
}

func TestTangentialStepRespectsRadius(t *testing.T) {
	H := [][]float64{{0.01, 0}, {0, 0.01}}
	g := []float64{-10, 0}
	xl := []float64{-100, -100}
	xu := []float64{100, 100}
	s := TangentialStep(g, identityHprod(H), xl, xu, 1.0, false)
	n := math.Hypot(s[0], s[1])
	if n > 1.0+1e-6 {
		t.Fatalf("||s||=%v exceeds radius 1", n)
	}
}

func TestCauchyStepRespectsBoxAndBall(t *testing.T) {
	H := [][]float64{{1, 0}, {0, 1}}
	g := []float64{1, 1}
	xl := []float64{-0.3, -10}
	xu := []float64{10, 10}
	s := CauchyStep(0, g, identityHprod(H), xl, xu, 1.0, false)
	if s[0] < xl[0]-1e-9 || s[0] > xu[0]+1e-9 {
		t.Fatalf("CauchyStep violates box: %v", s)
	}
	if math.Hypot(s[0], s[1]) > 1.0+1e-6 {
		t.Fatalf("CauchyStep violates radius: %v", s)
	}
}

func TestSpiderStepPicksBestDirection(t *testing.T) {
	H := [][]float64{{0, 0}, {0, 0}}
	g := []float64{1, 0}
	xl := []float64{-10, -10}
	xu := []float64{10, 10}
	dirs := [][]float64{{1, 0}, {0, 1}}
	s := SpiderStep(0, g, identityHprod(H), dirs, xl, xu, 1.0, false)
	// maximising |g^T s| over unit ball picks direction (1,0) with |value|=1;
	// (-1,0) reaches the same magnitude and does not displace it
	if math.Abs(math.Abs(s[0])-1) > 1e-6 || math.Abs(s[1]) > 1e-9 {
		t.Fatalf("SpiderStep=%v, want step of length 1 along e1", s)
	}
}

func TestQRTangentialNoActiveConstraints(t *testing.T) {
	freeXl := []bool{true, true}
	freeXu := []bool{true, true}
	nAct, Q := QRTangential(nil, nil, freeXl, freeXu, nil)
	if nAct != 0 {
		t.Fatalf("expected nAct=0, got %d", nAct)
	}
	if len(Q) != 2 || len(Q[0]) != 2 {
		t.Fatalf("expected 2x2 Q, got %dx%d", len(Q), len(Q[0]))
	}
}

func TestQRTangentialOneActiveBound(t *testing.T) {
	freeXl := []bool{false, true} // x1's lower bound is active
	freeXu := []bool{true, true}
	nAct, Q := QRTangential(nil, nil, freeXl, freeXu, nil)
	if nAct != 1 {
		t.Fatalf("expected nAct=1, got %d", nAct)
	}
	// the null-space column (index 1) must be orthogonal to e1 (the active row)
	if math.Abs(Q[0][1]) > 1e-9 {
		t.Fatalf("null-space column not orthogonal to active row: Q=%v", Q)
	}
}

func TestConstrainedTangentialRespectsEquality(t *testing.T) {
	H := [][]float64{{1, 0}, {0, 1}}
	g := []float64{1, 1}
	xl := []float64{-10, -10}
	xu := []float64{10, 10}
	aeq := [][]float64{{1, 1}} // s1 + s2 = 0
	s := ConstrainedTangentialStep(g, identityHprod(H), xl, xu, nil, nil, aeq, 5.0, false)
	if math.Abs(s[0]+s[1]) > 1e-4 {
		t.Fatalf("equality violated: s=%v", s)
	}
}
