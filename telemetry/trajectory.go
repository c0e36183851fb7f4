package telemetry

import (
	"math"

	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/field"
)

// TrajectoryRecord is one row of trajectory.csv.
type TrajectoryRecord struct {
	Tick         int     `csv:"tick"`
	X            float64 `csv:"x"`
	Y            float64 `csv:"y"`
	Height       float64 `csv:"height"`
	GradX        float64 `csv:"grad_x"`
	GradY        float64 `csv:"grad_y"`
	GradNorm     float64 `csv:"grad_norm"`
	StepSize     float64 `csv:"step_size"`
	LearningRate float64 `csv:"learning_rate"`
	DistToMin    float64 `csv:"dist_to_min"` // NaN without a reference minimum
}

// Reference is an optional reference minimum.
type Reference struct {
	Point field.Point
	Value float64
	Valid bool
}

// Dist returns the distance from p to the reference, or NaN if there is none.
func (r Reference) Dist(p field.Point) float64 {
	if !r.Valid {
		return math.NaN()
	}
	return r.Point.Dist(p)
}

// NewTrajectoryRecord builds a record for an applied step. height is f at
// the step's destination.
func NewTrajectoryRecord(s descent.Step, height float64, ref Reference) TrajectoryRecord {
	return TrajectoryRecord{
		Tick:         s.Tick,
		X:            s.To.X,
		Y:            s.To.Y,
		Height:       height,
		GradX:        s.GradX,
		GradY:        s.GradY,
		GradNorm:     s.GradNorm(),
		StepSize:     s.From.Dist(s.To),
		LearningRate: s.LearningRate,
		DistToMin:    ref.Dist(s.To),
	}
}
