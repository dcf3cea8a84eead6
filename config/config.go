// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config implements the framework's configuration record, loaded
// the way inp.ReadSim loads a gofem .sim file: a small JSON-tagged struct
// with a Load helper, kept separate from the framework itself (the
// framework always takes a *Config value, never a path).
package config

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Config holds exactly the three recognised option keys of spec.md §9:
// radius_init, radius_final, and debug. No other key affects core
// behaviour.
type Config struct {
	RadiusInit  float64 `json:"radius_init"`  // initial Δ and initial ρ (spec.md §9 open question)
	RadiusFinal float64 `json:"radius_final"` // terminal resolution floor
	Debug       bool    `json:"debug"`        // enable post-condition invariant warnings
}

// Default returns sane defaults mirroring common derivative-free solver
// practice: radius_init is a unit step, radius_final is tight.
func Default() *Config {
	return &Config{
		RadiusInit:  1.0,
		RadiusFinal: 1e-6,
		Debug:       false,
	}
}

// Load reads a Config from a JSON file at path.
func Load(path string) (o *Config, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("config: cannot open %q:\n%v", path, err)
	}
	defer f.Close()
	o = new(Config)
	dec := json.NewDecoder(f)
	if err = dec.Decode(o); err != nil {
		return nil, chk.Err("config: cannot decode %q:\n%v", path, err)
	}
	if err = o.Validate(); err != nil {
		return nil, err
	}
	return
}

// Validate checks the two radii are positive and ordered.
func (o *Config) Validate() error {
	if o.RadiusInit <= 0 {
		return chk.Err("config: radius_init must be positive; got %g", o.RadiusInit)
	}
	if o.RadiusFinal <= 0 {
		return chk.Err("config: radius_final must be positive; got %g", o.RadiusFinal)
	}
	if o.RadiusFinal > o.RadiusInit {
		return chk.Err("config: radius_final (%g) must not exceed radius_init (%g)", o.RadiusFinal, o.RadiusInit)
	}
	return nil
}
