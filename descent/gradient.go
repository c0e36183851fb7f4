// Package descent implements numerical gradients and a fixed-rate gradient
// descent stepper driven by a tick schedule.
package descent

import (
	"gonum.org/v1/gonum/diff/fd"

	"github.com/pthm-cable/descent/field"
)

// DefaultStep is the finite-difference step h. Central differences are
// accurate to O(h²).
const DefaultStep = 1e-3

// Estimator computes central-difference gradients of a field.
// It reuses its buffers and is not safe for concurrent use.
type Estimator struct {
	settings fd.Settings
	x, dst   [2]float64
}

// NewEstimator returns an estimator with step h (DefaultStep if h <= 0).
func NewEstimator(h float64) *Estimator {
	if h <= 0 {
		h = DefaultStep
	}
	return &Estimator{
		settings: fd.Settings{
			Formula: fd.Central,
			Step:    h,
		},
	}
}

// Step returns the finite-difference step in use.
func (e *Estimator) Step() float64 {
	return e.settings.Step
}

// Gradient returns (∂f/∂x, ∂f/∂y) at (x, y) using four field evaluations.
func (e *Estimator) Gradient(f field.Func, x, y float64) (gx, gy float64) {
	e.x[0], e.x[1] = x, y
	fd.Gradient(e.dst[:], func(p []float64) float64 {
		return f(p[0], p[1])
	}, e.x[:], &e.settings)
	return e.dst[0], e.dst[1]
}

// Gradient is a one-shot convenience wrapper around Estimator.
func Gradient(f field.Func, x, y, h float64) (gx, gy float64) {
	return NewEstimator(h).Gradient(f, x, y)
}
