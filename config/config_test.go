// Copyright 2024 The Dfocore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsInvertedRadii(t *testing.T) {
	c := &Config{RadiusInit: 1e-6, RadiusFinal: 1.0}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error when radius_final > radius_init")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.json")
	body := `{"radius_init": 0.5, "radius_final": 1e-7, "debug": true}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.RadiusInit != 0.5 || c.RadiusFinal != 1e-7 || !c.Debug {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
