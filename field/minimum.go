package field

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// ErrNoMinimum is returned when the search ends at a non-finite point,
// e.g. on fields that are unbounded below.
var ErrNoMinimum = errors.New("field: no finite minimum found")

// minimumEvalBudget caps the Nelder-Mead search so unbounded fields terminate.
const minimumEvalBudget = 4000

// ReferenceMinimum searches for a local minimum of f starting at start.
// The result is only a reference for display and telemetry; it never
// influences the descent itself.
func ReferenceMinimum(f Func, start Point) (Point, float64, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return f(x[0], x[1])
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: minimumEvalBudget,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-12,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, []float64{start.X, start.Y}, settings, &optimize.NelderMead{})
	if result == nil {
		return Point{}, 0, fmt.Errorf("searching reference minimum: %w", err)
	}

	p := Point{X: result.X[0], Y: result.X[1]}
	if !p.IsFinite() || math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		return Point{}, 0, ErrNoMinimum
	}
	return p, result.F, nil
}
