// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// dfocore-demo drives the trust-region core through a handful of outer
// iterations on a small built-in problem. It is a thin example of the
// driver loop spec.md §1 explicitly scopes out of the core: deciding
// between a trial step and a geometry step, and when to stop.
package main

import (
	"flag"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/dfocore/config"
	"github.com/cpmech/dfocore/model"
	"github.com/cpmech/dfocore/prob"
	"github.com/cpmech/dfocore/sub"
	"github.com/cpmech/dfocore/tr"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	cfgPath := flag.String("config", "", "path to a JSON config file (radius_init, radius_final, debug)")
	maxIter := flag.Int("iters", 15, "maximum outer iterations")
	flag.Parse()

	io.Pf("dfocore-demo: unconstrained 2D quadratic (spec.md §8 scenario 1)\n")

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			chk.Panic("%v", err)
		}
	}

	obj := func(x []float64) float64 { return 0.5 * (x[0]*x[0] + 10*x[1]*x[1]) }

	base := []float64{1, 1}
	offsets := [][]float64{{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 1}}
	interp := model.NewInterpSet(2, len(offsets), base)
	for k, off := range offsets {
		interp.UpdatePoint(k, []float64{base[0] + off[0], base[1] + off[1]})
	}
	models := model.NewModels(interp, 0, 0)
	for k := 0; k < interp.M; k++ {
		models.SetValues(k, obj(interp.Point(k)), nil, nil)
	}
	if err := models.Sync(); err != nil {
		chk.Panic("%v", err)
	}

	inf := math.Inf(1)
	p := prob.NewProblem(2, []float64{-inf, -inf}, []float64{inf, inf}, nil, nil, 0, nil, nil, 0, obj, nil, 0, nil, 0)
	fw := tr.NewFramework(p, models, sub.DefaultSolvers(), cfg)

	for iter := 0; iter < *maxIter; iter++ {
		xStar := fw.XStar()
		n, t := fw.GetTrustRegionStep()
		s := make([]float64, p.N)
		for i := range s {
			s[i] = n[i] + t[i]
		}
		xNew := make([]float64, p.N)
		for i := range xNew {
			xNew[i] = xStar[i] + s[i]
		}
		fNew := obj(xNew)
		ratio := fw.GetReductionRatio(s, fNew, nil, nil)
		snap := fw.State.Snapshot()
		io.Pf("iter %2d: x*=%v f*=%.6g step=%v ratio=%.4g Delta=%.4g Rho=%.4g\n",
			iter, xStar, models.FVal[snap.KStar], s, ratio, snap.Delta, snap.Rho)

		fw.UpdateRadius(s, ratio)
		if ratio > 0 {
			idx, _ := fw.GetIndexToRemove(xNew)
			if err := models.UpdatePoint(idx, xNew, fNew, nil, nil); err != nil {
				chk.Panic("%v", err)
			}
			fw.SetBestIndex()
		} else if fw.State.Delta <= fw.State.Rho {
			fw.ReduceResolution(cfg.RadiusFinal)
		}
		if fw.State.Rho <= cfg.RadiusFinal {
			break
		}
	}

	io.Pf("\nfinal x* = %v\n", fw.XStar())
}
