// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sub

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// clipBox clips s in place to the box [xl, xu].
func clipBox(s, xl, xu []float64) {
	for i := range s {
		if s[i] < xl[i] {
			s[i] = xl[i]
		}
		if s[i] > xu[i] {
			s[i] = xu[i]
		}
	}
}

// projectBoxBall returns a point near s that lies in the box [xl,xu] and
// the ball of the given radius: clip to the box, then rescale toward the
// origin if the clipped point still violates the ball. This is an
// approximate (not exact Euclidean) projection onto the intersection,
// adequate for the iterative solvers in this package.
func projectBoxBall(s, xl, xu []float64, radius float64) []float64 {
	out := la.VecClone(s)
	clipBox(out, xl, xu)
	n := la.VecNorm(out)
	if n > radius && n > 0 {
		la.VecScale(out, 0, radius/n, out)
		clipBox(out, xl, xu)
	}
	return out
}

// stepToBoundary returns the largest tau >= 0 such that s + tau*d remains
// in the box [xl,xu] and in the ball of the given radius, measured from
// the current point s (which is assumed feasible).
func stepToBoundary(s, d, xl, xu []float64, radius float64) float64 {
	tau := math.Inf(1)
	for i := range d {
		if d[i] > 1e-14 {
			t := (xu[i] - s[i]) / d[i]
			if t < tau {
				tau = t
			}
		} else if d[i] < -1e-14 {
			t := (xl[i] - s[i]) / d[i]
			if t < tau {
				tau = t
			}
		}
	}
	// ball: ||s + tau d||^2 = radius^2 => a*tau^2 + b*tau + c = 0
	a := la.VecDot(d, d)
	if a > 1e-300 {
		b := 2 * la.VecDot(s, d)
		c := la.VecDot(s, s) - radius*radius
		disc := b*b - 4*a*c
		if disc < 0 {
			disc = 0
		}
		tBall := (-b + math.Sqrt(disc)) / (2 * a)
		if tBall < tau {
			tau = tBall
		}
	}
	if tau < 0 {
		tau = 0
	}
	return tau
}
