package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/field"
	"github.com/pthm-cable/descent/telemetry"
)

// divergedPenalty is the fitness of a run that left the finite range.
const divergedPenalty = 1e12

// RunResult is one row of the sweep output.
type RunResult struct {
	Preset       string  `csv:"preset"`
	LearningRate float64 `csv:"learning_rate"`
	Ticks        int     `csv:"ticks"`
	X            float64 `csv:"x"`
	Y            float64 `csv:"y"`
	Height       float64 `csv:"height"`
	GradNorm     float64 `csv:"grad_norm"`
	DistToMin    float64 `csv:"dist_to_min"`
	Diverged     bool    `csv:"diverged"`
	Refined      bool    `csv:"refined"`
}

// Fitness scores a run for minimisation. Runs with a reference minimum are
// scored by distance to it, others by final height.
func (r RunResult) Fitness() float64 {
	if r.Diverged {
		return divergedPenalty
	}
	if !math.IsNaN(r.DistToMin) {
		return r.DistToMin
	}
	return r.Height
}

// Sweeper runs fixed-length descents on one preset.
type Sweeper struct {
	preset       field.Preset
	ticks        int
	gradientStep float64
	ref          telemetry.Reference
}

// NewSweeper searches the preset's reference minimum once up front.
func NewSweeper(p field.Preset, ticks int, gradientStep float64) *Sweeper {
	s := &Sweeper{preset: p, ticks: ticks, gradientStep: gradientStep}
	if pt, v, err := field.ReferenceMinimum(p.Func, p.Start); err == nil {
		if pt.X >= p.XMin && pt.X <= p.XMax && pt.Y >= p.YMin && pt.Y <= p.YMax {
			s.ref = telemetry.Reference{Point: pt, Value: v, Valid: true}
		}
	}
	return s
}

// Reference returns the minimum runs are measured against.
func (s *Sweeper) Reference() telemetry.Reference {
	return s.ref
}

// Run descends from the preset start at learning rate lr.
func (s *Sweeper) Run(lr float64) (RunResult, error) {
	params := descent.DefaultParams()
	params.LearningRate = lr
	params.GradientStep = s.gradientStep

	st, err := descent.NewStepper(s.preset.Func, s.preset.Start, params)
	if err != nil {
		return RunResult{}, fmt.Errorf("learning rate %g: %w", lr, err)
	}

	var last descent.Step
	for range s.ticks {
		last = st.Step()
		if !last.To.IsFinite() {
			break
		}
	}

	pos := st.Position()
	height := s.preset.Func(pos.X, pos.Y)
	return RunResult{
		Preset:       s.preset.Name,
		LearningRate: lr,
		Ticks:        st.State().Tick,
		X:            pos.X,
		Y:            pos.Y,
		Height:       height,
		GradNorm:     last.GradNorm(),
		DistToMin:    s.ref.Dist(pos),
		Diverged:     !pos.IsFinite() || math.IsNaN(height) || math.IsInf(height, 0),
	}, nil
}

// LearningRates returns n log-spaced rates covering [lo, hi].
func LearningRates(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.LogSpan(make([]float64, n), lo, hi)
}

// Refine searches log10(lr) around start with Nelder-Mead, keeping the rate
// inside [lo, hi]. It returns the best run seen.
func (s *Sweeper) Refine(start RunResult, lo, hi float64, maxEvals int) (RunResult, error) {
	best := start
	improved := false
	var runErr error

	clampRate := func(x float64) float64 {
		return math.Min(math.Max(math.Pow(10, x), lo), hi)
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			r, err := s.Run(clampRate(x[0]))
			if err != nil {
				runErr = err
				return divergedPenalty
			}
			if r.Fitness() < best.Fitness() {
				best = r
				improved = true
			}
			return r.Fitness()
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
	}

	_, err := optimize.Minimize(problem, []float64{math.Log10(start.LearningRate)}, settings, &optimize.NelderMead{})
	if runErr != nil {
		return best, runErr
	}
	if err != nil && !improved {
		return best, fmt.Errorf("refining %s: %w", s.preset.Name, err)
	}
	best.Refined = improved
	return best, nil
}

// Best returns the run with the lowest fitness, preferring the smaller
// learning rate on ties.
func Best(results []RunResult) (RunResult, bool) {
	if len(results) == 0 {
		return RunResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Fitness() < best.Fitness() {
			best = r
		}
	}
	return best, true
}
