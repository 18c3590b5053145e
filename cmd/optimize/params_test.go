package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/telemetry"
)

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-spec.Default) > 1e-9 {
			t.Errorf("%s: config default %v, spec default %v", spec.Path, got[i], spec.Default)
		}
	}
}

func TestNormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: roundtrip %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyClampsAndRecomputes(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	pv := NewParamVector()
	v := pv.DefaultVector()
	v[0] = 99 // forward_bonus above max

	pv.ApplyToConfig(cfg, v)

	if cfg.Steering.ForwardBonus != pv.Specs[0].Max {
		t.Errorf("forward_bonus = %v, want clamped to %v", cfg.Steering.ForwardBonus, pv.Specs[0].Max)
	}
	if got := pv.ExtractFromConfig(cfg); len(got) != pv.Dim() {
		t.Errorf("extract returned %d values, want %d", len(got), pv.Dim())
	}
}

func TestComputeQuality(t *testing.T) {
	steady := []telemetry.WindowStats{
		{Delivered: 0},
		{Delivered: 10, Ants: 10},
		{Delivered: 10, Ants: 10},
		{Delivered: 10, Ants: 10},
	}
	bursty := []telemetry.WindowStats{
		{Delivered: 0},
		{Delivered: 30, Ants: 10},
		{Delivered: 0, Ants: 10},
		{Delivered: 0, Ants: 10},
	}

	qs := computeQuality(steady)
	qb := computeQuality(bursty)
	if math.Abs(qs-1) > 1e-9 {
		t.Errorf("steady quality = %v, want 1", qs)
	}
	if qb >= qs {
		t.Errorf("bursty quality %v should be below steady %v", qb, qs)
	}
	if computeQuality(steady[:1]) != 0 {
		t.Error("warmup-only run should score 0")
	}
}

func TestComputeFitness(t *testing.T) {
	r := &runResult{available: 100, delivered: 50}
	if got := computeFitness(r, 0); math.Abs(got+0.5) > 1e-9 {
		t.Errorf("fitness = %v, want -0.5", got)
	}
	if got := computeFitness(&runResult{}, 1); got != 0 {
		t.Errorf("fitness with nothing available = %v, want 0", got)
	}
}
