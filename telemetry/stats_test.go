package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/field"
)

func TestStepStats(t *testing.T) {
	tests := []struct {
		name     string
		sizes    []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{0.5}, 0.5, 0},
		{"constant", []float64{2, 2, 2, 2}, 2, 0},
		{"spread", []float64{1, 2, 3, 4, 5}, 3, math.Sqrt(2.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := StepStats(tt.sizes)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}

func TestGradStats(t *testing.T) {
	lo, p50, hi := GradStats([]float64{5, 1, 3, 2, 4})
	if lo != 1 || hi != 5 {
		t.Errorf("min/max = %v/%v, want 1/5", lo, hi)
	}
	if p50 != 3 {
		t.Errorf("p50 = %v, want 3", p50)
	}

	lo, p50, hi = GradStats(nil)
	if lo != 0 || p50 != 0 || hi != 0 {
		t.Errorf("empty = %v/%v/%v, want zeros", lo, p50, hi)
	}
}

func TestWindowStatsDiverging(t *testing.T) {
	tests := []struct {
		name  string
		stats WindowStats
		want  bool
	}{
		{"falling", WindowStats{Height: 1, HeightDelta: -0.5}, false},
		{"flat", WindowStats{Height: 1, HeightDelta: 0}, false},
		{"rising", WindowStats{Height: 1, HeightDelta: 0.5}, true},
		{"nan height", WindowStats{Height: math.NaN()}, true},
		{"inf height", WindowStats{Height: math.Inf(1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.Diverging(); got != tt.want {
				t.Errorf("Diverging() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTrajectoryRecord(t *testing.T) {
	s := descent.Step{
		Tick:         1,
		From:         field.Point{X: 4, Y: 3},
		To:           field.Point{X: 3.968, Y: 2.9904},
		GradX:        4,
		GradY:        1.2,
		LearningRate: 0.008,
	}
	ref := Reference{Point: field.Point{}, Valid: true}

	r := NewTrajectoryRecord(s, field.Bowl(3.968, 2.9904), ref)

	if r.Tick != 1 || r.X != 3.968 || r.Y != 2.9904 {
		t.Errorf("record position = %d (%v, %v)", r.Tick, r.X, r.Y)
	}
	if math.Abs(r.GradNorm-math.Hypot(4, 1.2)) > 1e-12 {
		t.Errorf("grad norm = %v", r.GradNorm)
	}
	if math.Abs(r.StepSize-0.008*math.Hypot(4, 1.2)) > 1e-9 {
		t.Errorf("step size = %v", r.StepSize)
	}
	if math.Abs(r.DistToMin-math.Hypot(3.968, 2.9904)) > 1e-12 {
		t.Errorf("dist to min = %v", r.DistToMin)
	}

	r = NewTrajectoryRecord(s, 0, Reference{})
	if !math.IsNaN(r.DistToMin) {
		t.Errorf("dist to min without reference = %v, want NaN", r.DistToMin)
	}
}
