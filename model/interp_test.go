// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"
	"testing"
)

func TestInterpSetPointRoundTrip(t *testing.T) {
	xBase := []float64{1, 2}
	o := NewInterpSet(2, 3, xBase)
	abs := []float64{3, -1}
	o.UpdatePoint(1, abs)
	got := o.Point(1)
	for i := range got {
		if math.Abs(got[i]-abs[i]) > 1e-12 {
			t.Fatalf("Point(1)=%v, want %v", got, abs)
		}
	}
}

func TestInterpSetDist2(t *testing.T) {
	o := NewInterpSet(2, 1, []float64{0, 0})
	o.UpdatePoint(0, []float64{3, 4})
	d2 := o.Dist2(0, []float64{0, 0})
	if math.Abs(d2-25) > 1e-9 {
		t.Fatalf("Dist2=%v, want 25", d2)
	}
}

func TestInterpSetShiftBasePreservesAbsolutePositions(t *testing.T) {
	o := NewInterpSet(2, 3, []float64{0, 0})
	pts := [][]float64{{1, 1}, {-1, 2}, {0.5, -0.5}}
	for k, p := range pts {
		o.UpdatePoint(k, p)
	}
	o.ShiftBase([]float64{0.7, 0.2})
	for k, want := range pts {
		got := o.Point(k)
		for i := range got {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Fatalf("point %d after shift = %v, want %v", k, got, want)
			}
		}
	}
}
