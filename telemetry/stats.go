package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats summarizes the steps applied in one window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"window_start"`
	WindowEndTick   int `csv:"window_end"`
	Steps           int `csv:"steps"`

	// Position and height at window end
	X         float64 `csv:"x"`
	Y         float64 `csv:"y"`
	Height    float64 `csv:"height"`
	DistToMin float64 `csv:"dist_to_min"`

	// Step size distribution
	StepMean float64 `csv:"step_mean"`
	StepStd  float64 `csv:"step_std"`

	// Gradient norm distribution
	GradMin float64 `csv:"grad_min"`
	GradP50 float64 `csv:"grad_p50"`
	GradMax float64 `csv:"grad_max"`

	HeightDelta  float64 `csv:"height_delta"` // end height minus start height
	LearningRate float64 `csv:"learning_rate"`
}

// StepStats returns the mean and standard deviation of step sizes.
// Returns zeros for an empty slice.
func StepStats(sizes []float64) (mean, std float64) {
	switch len(sizes) {
	case 0:
		return 0, 0
	case 1:
		return sizes[0], 0
	}
	return stat.MeanStdDev(sizes, nil)
}

// GradStats returns the minimum, median and maximum of the gradient norms.
// values is sorted in place.
func GradStats(values []float64) (lo, p50, hi float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sort.Float64s(values)
	lo = floats.Min(values)
	hi = floats.Max(values)
	p50 = stat.Quantile(0.5, stat.Empirical, values, nil)
	return lo, p50, hi
}

// Diverging reports whether the window ended higher than it started, or with
// a non-finite height.
func (s WindowStats) Diverging() bool {
	return math.IsNaN(s.Height) || math.IsInf(s.Height, 0) || s.HeightDelta > 0
}

// LogStats logs the window summary.
func (s WindowStats) LogStats() {
	attrs := []any{
		"tick", s.WindowEndTick,
		"steps", s.Steps,
		"x", s.X,
		"y", s.Y,
		"height", s.Height,
		"step_mean", s.StepMean,
		"grad_p50", s.GradP50,
		"lr", s.LearningRate,
	}
	if !math.IsNaN(s.DistToMin) {
		attrs = append(attrs, "dist_to_min", s.DistToMin)
	}
	if s.Diverging() {
		attrs = append(attrs, "diverging", true)
	}
	slog.Info("stats", attrs...)
}
