// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"
	"testing"
)

// exactQuad is a full quadratic in 2 variables, used because a poised set
// of m=(n+1)(n+2)/2=6 points makes the minimum-Frobenius-norm interpolant
// exact for any quadratic, not merely interpolating at the sample points.
func exactQuad(x []float64) float64 {
	return 2*x[0]*x[0] + 3*x[1]*x[1] + 1*x[0]*x[1] + 4*x[0] - 5*x[1] + 7
}

func buildPoisedModels(t *testing.T) *Models {
	t.Helper()
	offsets := [][]float64{{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}}
	interp := NewInterpSet(2, 6, []float64{0, 0})
	for k, o := range offsets {
		interp.UpdatePoint(k, o)
	}
	models := NewModels(interp, 0, 0)
	for k, o := range offsets {
		models.SetValues(k, exactQuad(o), nil, nil)
	}
	if err := models.Sync(); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	return models
}

func TestModelsReconstructsExactQuadratic(t *testing.T) {
	models := buildPoisedModels(t)
	probe := []float64{0.37, -1.21}
	got := models.QF.Val(probe)
	want := exactQuad(probe)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("QF.Val(probe)=%v, want %v", got, want)
	}
}

func TestModelsInterpolatesAtSamplePoints(t *testing.T) {
	models := buildPoisedModels(t)
	for k := 0; k < models.Interp.M; k++ {
		got := models.QF.Val(models.Interp.Offset(k))
		want := models.FVal[k]
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("point %d: QF.Val=%v, want %v", k, got, want)
		}
	}
}

func TestModelsUpdatePointRefits(t *testing.T) {
	models := buildPoisedModels(t)
	newAbs := []float64{2, 2}
	if err := models.UpdatePoint(5, newAbs, exactQuad(newAbs), nil, nil); err != nil {
		t.Fatalf("UpdatePoint failed: %v", err)
	}
	probe := []float64{-0.4, 0.9}
	got := models.QF.Val(probe)
	want := exactQuad(probe)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("after update: QF.Val(probe)=%v, want %v", got, want)
	}
}

func TestModelsShiftBasePreservesValues(t *testing.T) {
	models := buildPoisedModels(t)
	probe := []float64{0.1, 0.2}
	before := models.QF.Val(probe)
	models.ShiftBase([]float64{0.5, -0.3})
	after := models.QF.Val([]float64{probe[0] - 0.5, probe[1] + 0.3})
	if math.Abs(before-after) > 1e-6 {
		t.Fatalf("shift changed value: before=%v after=%v", before, after)
	}
}

func TestModelsDenominatorsAtOwnPointIsOne(t *testing.T) {
	models := buildPoisedModels(t)
	// the k-th Lagrange polynomial must equal 1 at its own interpolation point.
	abs := models.Interp.Point(2)
	sigma, err := models.Denominators(abs, 2)
	if err != nil {
		t.Fatalf("Denominators failed: %v", err)
	}
	if math.Abs(sigma-1) > 1e-6 {
		t.Fatalf("sigma at own point = %v, want 1", sigma)
	}
}

func TestModelsDenominatorsAtOtherPointIsZero(t *testing.T) {
	models := buildPoisedModels(t)
	abs := models.Interp.Point(3)
	sigma, err := models.Denominators(abs, 2)
	if err != nil {
		t.Fatalf("Denominators failed: %v", err)
	}
	if math.Abs(sigma) > 1e-6 {
		t.Fatalf("sigma at other point = %v, want 0", sigma)
	}
}
