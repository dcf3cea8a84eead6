// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tr

import (
	"math"
	"testing"

	"github.com/cpmech/dfocore/config"
	"github.com/cpmech/dfocore/model"
	"github.com/cpmech/dfocore/prob"
	"github.com/cpmech/dfocore/sub"
)

// unconstrainedQuad is spec.md §8 scenario 1: f(x) = 1/2 x^T diag(1,10) x.
func unconstrainedQuad(x []float64) float64 {
	return 0.5 * (x[0]*x[0] + 10*x[1]*x[1])
}

// buildUnconstrainedFramework reproduces spec.md §8 scenario 1: a poised
// 6-point interpolation set around x0=(1,1) that exactly reconstructs the
// quadratic objective, rho_init=0.5, rho_final=1e-6.
func buildUnconstrainedFramework(t *testing.T) (*Framework, *prob.Problem) {
	t.Helper()
	base := []float64{1, 1}
	offsets := [][]float64{{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}}
	interp := model.NewInterpSet(2, 6, base)
	for k, off := range offsets {
		abs := []float64{base[0] + off[0], base[1] + off[1]}
		interp.UpdatePoint(k, abs)
	}
	models := model.NewModels(interp, 0, 0)
	for k := 0; k < 6; k++ {
		abs := interp.Point(k)
		models.SetValues(k, unconstrainedQuad(abs), nil, nil)
	}
	if err := models.Sync(); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	inf := math.Inf(1)
	xl := []float64{-inf, -inf}
	xu := []float64{inf, inf}
	p := prob.NewProblem(2, xl, xu, nil, nil, 0, nil, nil, 0, unconstrainedQuad, nil, 0, nil, 0)

	cfg := &config.Config{RadiusInit: 0.5, RadiusFinal: 1e-6, Debug: false}
	fw := NewFramework(p, models, sub.DefaultSolvers(), cfg)
	return fw, p
}

func TestNewFrameworkSelectsMinimumMeritPoint(t *testing.T) {
	fw, _ := buildUnconstrainedFramework(t)
	// f(1,0) = 0.5 is the smallest value among the six sample points.
	xStar := fw.XStar()
	if math.Abs(xStar[0]-1) > 1e-9 || math.Abs(xStar[1]-0) > 1e-9 {
		t.Fatalf("x* = %v, want (1,0)", xStar)
	}
	if fw.State.Mu != 0 {
		t.Fatalf("Mu = %v, want 0 for an unconstrained problem", fw.State.Mu)
	}
}

func TestTrustRegionStepReducesNormAndAcceptsWithHighRatio(t *testing.T) {
	fw, _ := buildUnconstrainedFramework(t)
	xStar := fw.XStar()

	n, tt := fw.GetTrustRegionStep()
	s := addVec(n, tt)
	xNew := addVec(xStar, s)

	if norm2(xNew) >= norm2(xStar) {
		t.Fatalf("||x*+s||=%v did not decrease from ||x*||=%v", norm2(xNew), norm2(xStar))
	}

	fNew := unconstrainedQuad(xNew)
	ratio := fw.GetReductionRatio(s, fNew, nil, nil)
	if ratio < 0.9 {
		t.Fatalf("reduction ratio = %v, want > 0.9", ratio)
	}
	if fw.State.Mu != 0 {
		t.Fatalf("Mu changed to %v, want 0 to remain", fw.State.Mu)
	}
}

func TestUpdateRadiusSnapsToFloorWhenSmall(t *testing.T) {
	fw, _ := buildUnconstrainedFramework(t)
	fw.State.Rho = 0.4
	fw.State.Delta = 0.5
	fw.UpdateRadius([]float64{0.01, 0}, 0.05) // ratio<=0.1 => Delta/2 = 0.25 <= 1.4*0.4
	if fw.State.Delta != fw.State.Rho {
		t.Fatalf("Delta=%v did not snap to Rho=%v", fw.State.Delta, fw.State.Rho)
	}
}

func TestReduceResolutionRespectsDeltaGreaterEqualRho(t *testing.T) {
	fw, _ := buildUnconstrainedFramework(t)
	fw.State.Rho = 1e-3
	fw.State.Delta = 1e-3
	fw.ReduceResolution(1e-6)
	if fw.State.Delta < fw.State.Rho {
		t.Fatalf("Delta=%v < Rho=%v after ReduceResolution", fw.State.Delta, fw.State.Rho)
	}
}

func TestSetMultipliersIdempotent(t *testing.T) {
	fw, _ := buildUnconstrainedFramework(t)
	fw.SetMultipliers()
	first := append([]float64(nil), fw.State.LamLinI...)
	fw.SetMultipliers()
	second := fw.State.LamLinI
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("SetMultipliers not idempotent: %v vs %v", first, second)
		}
	}
}

func TestStateSnapshotIsIndependentCopy(t *testing.T) {
	fw, _ := buildUnconstrainedFramework(t)
	fw.SetMultipliers()
	snap := fw.State.Snapshot()
	if len(snap.LamLinI) > 0 {
		snap.LamLinI[0] = 12345
	}
	for i, v := range fw.State.LamLinI {
		if v == 12345 {
			t.Fatalf("mutating Snapshot.LamLinI[%d] leaked into State", i)
		}
	}
	if snap.Delta != fw.State.Delta || snap.Rho != fw.State.Rho || snap.Mu != fw.State.Mu || snap.KStar != fw.State.KStar {
		t.Fatalf("Snapshot scalar fields do not match State: %+v vs Delta=%v Rho=%v Mu=%v KStar=%v",
			snap, fw.State.Delta, fw.State.Rho, fw.State.Mu, fw.State.KStar)
	}
}

func TestGeometryStepRespectsRadius(t *testing.T) {
	fw, _ := buildUnconstrainedFramework(t)
	s := fw.GetGeometryStep(1)
	if n := norm2(s); n > 1.1*fw.State.Delta+1e-9 {
		t.Fatalf("geometry step norm %v exceeds 1.1*Delta=%v", n, 1.1*fw.State.Delta)
	}
}
