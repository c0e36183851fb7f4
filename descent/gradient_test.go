package descent

import (
	"math"
	"testing"

	"github.com/pthm-cable/descent/field"
)

func TestGradientParaboloid(t *testing.T) {
	f := func(x, y float64) float64 { return x*x + y*y }

	gx, gy := Gradient(f, 1, 1, DefaultStep)
	if math.Abs(gx-2) > 1e-5 || math.Abs(gy-2) > 1e-5 {
		t.Errorf("expected gradient (2, 2), got (%v, %v)", gx, gy)
	}
}

func TestGradientKnownFields(t *testing.T) {
	tests := []struct {
		name   string
		f      field.Func
		x, y   float64
		gx, gy float64
		tol    float64
	}{
		{"bowl", field.Bowl, 4, 3, 4, 1.2, 1e-9},
		{"saddle", field.Saddle, 1, 2, 2, -4, 1e-9},
		{"rosenbrock at min", field.Rosenbrock, 1, 1, 0, 0, 1e-3},
		{"cubic", func(x, y float64) float64 { return x * x * x }, 2, 0, 12, 0, 1e-5},
		{"sin", func(x, y float64) float64 { return math.Sin(x) * math.Cos(y) }, 0.3, 0.7,
			math.Cos(0.3) * math.Cos(0.7), -math.Sin(0.3) * math.Sin(0.7), 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := Gradient(tt.f, tt.x, tt.y, DefaultStep)
			if math.Abs(gx-tt.gx) > tt.tol || math.Abs(gy-tt.gy) > tt.tol {
				t.Errorf("Gradient at (%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, gx, gy, tt.gx, tt.gy)
			}
		})
	}
}

func TestGradientUsesFourEvaluations(t *testing.T) {
	calls := 0
	f := func(x, y float64) float64 {
		calls++
		return x*y + x
	}

	e := NewEstimator(DefaultStep)
	e.Gradient(f, 0.5, -0.5)
	if calls != 4 {
		t.Errorf("expected 4 field evaluations, got %d", calls)
	}
}

func TestEstimatorDefaultStep(t *testing.T) {
	if h := NewEstimator(0).Step(); h != DefaultStep {
		t.Errorf("expected default step %v, got %v", DefaultStep, h)
	}
	if h := NewEstimator(1e-4).Step(); h != 1e-4 {
		t.Errorf("expected step 1e-4, got %v", h)
	}
}
