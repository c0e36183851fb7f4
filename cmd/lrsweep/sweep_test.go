package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/descent/field"
)

func bowlPreset(t *testing.T) field.Preset {
	t.Helper()
	p, err := field.Lookup("bowl")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLearningRatesLogSpaced(t *testing.T) {
	lrs := LearningRates(0.001, 0.1, 3)
	want := []float64{0.001, 0.01, 0.1}
	if len(lrs) != len(want) {
		t.Fatalf("got %d rates, want %d", len(lrs), len(want))
	}
	for i := range want {
		if math.Abs(lrs[i]-want[i]) > 1e-12 {
			t.Errorf("rate[%d] = %g, want %g", i, lrs[i], want[i])
		}
	}

	if got := LearningRates(0.05, 0.1, 1); len(got) != 1 || got[0] != 0.05 {
		t.Errorf("single rate = %v, want [0.05]", got)
	}
}

func TestSweeperBowlConverges(t *testing.T) {
	sw := NewSweeper(bowlPreset(t), 2000, 0.001)
	if !sw.Reference().Valid {
		t.Fatal("bowl should have a reference minimum")
	}

	r, err := sw.Run(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if r.Diverged {
		t.Fatal("lr=0.5 diverged on the bowl")
	}
	if r.Ticks != 2000 {
		t.Errorf("ticks = %d, want 2000", r.Ticks)
	}
	if r.DistToMin > 1e-3 {
		t.Errorf("dist to min = %g, want < 1e-3", r.DistToMin)
	}
}

func TestSweeperFlagsDivergence(t *testing.T) {
	// x coefficient 0.5 gives curvature 1, so lr > 2 oscillates outward.
	sw := NewSweeper(bowlPreset(t), 2000, 0.001)
	r, err := sw.Run(3)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Diverged {
		t.Fatalf("lr=3 should diverge, got height %g", r.Height)
	}
	if r.Fitness() != divergedPenalty {
		t.Errorf("fitness = %g, want penalty", r.Fitness())
	}
}

func TestSweeperRejectsBadRate(t *testing.T) {
	sw := NewSweeper(bowlPreset(t), 10, 0.001)
	if _, err := sw.Run(0); err == nil {
		t.Error("expected error for zero learning rate")
	}
}

func TestBestPicksLowestFitness(t *testing.T) {
	nan := math.NaN()
	results := []RunResult{
		{LearningRate: 0.01, Height: 3, DistToMin: nan},
		{LearningRate: 0.02, Height: 1, DistToMin: nan},
		{LearningRate: 0.04, Diverged: true},
	}
	b, ok := Best(results)
	if !ok {
		t.Fatal("expected a best result")
	}
	if b.LearningRate != 0.02 {
		t.Errorf("best lr = %g, want 0.02", b.LearningRate)
	}

	if _, ok := Best(nil); ok {
		t.Error("Best(nil) should report false")
	}
}

func TestRefineDoesNotWorsen(t *testing.T) {
	sw := NewSweeper(bowlPreset(t), 50, 0.001)
	start, err := sw.Run(0.01)
	if err != nil {
		t.Fatal(err)
	}
	got, err := sw.Refine(start, 0.001, 1, 40)
	if err != nil {
		t.Logf("refine: %v", err)
	}
	if got.Fitness() > start.Fitness() {
		t.Errorf("refined fitness %g worse than start %g", got.Fitness(), start.Fitness())
	}
	if got.LearningRate < 0.001 || got.LearningRate > 1 {
		t.Errorf("refined lr %g outside bounds", got.LearningRate)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[string]string{
		"65s":    "1m05s",
		"1h2m3s": "1h02m03s",
	}
	for in, want := range cases {
		d, err := time.ParseDuration(in)
		if err != nil {
			t.Fatal(err)
		}
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%s) = %q, want %q", in, got, want)
		}
	}
}
