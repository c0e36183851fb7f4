package descent

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pthm-cable/descent/field"
)

// ErrInvalidParams is returned for non-positive learning rates or tick rates.
var ErrInvalidParams = errors.New("descent: invalid parameters")

// Params configures the stepper. Both fields may change between ticks.
type Params struct {
	LearningRate   float64
	StepsPerSecond int
	GradientStep   float64 // finite-difference h (0 = DefaultStep)
}

// DefaultParams returns the parameters the visualizer starts with.
func DefaultParams() Params {
	return Params{
		LearningRate:   0.008,
		StepsPerSecond: 30,
		GradientStep:   DefaultStep,
	}
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	if err := validateLearningRate(p.LearningRate); err != nil {
		return err
	}
	if err := validateStepsPerSecond(p.StepsPerSecond); err != nil {
		return err
	}
	if p.GradientStep < 0 || math.IsNaN(p.GradientStep) {
		return fmt.Errorf("%w: gradient step %v", ErrInvalidParams, p.GradientStep)
	}
	return nil
}

func validateLearningRate(lr float64) error {
	if !(lr > 0) || math.IsInf(lr, 0) {
		return fmt.Errorf("%w: learning rate %v must be positive", ErrInvalidParams, lr)
	}
	return nil
}

func validateStepsPerSecond(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: steps per second %d must be at least 1", ErrInvalidParams, n)
	}
	return nil
}

// State is the current descent position.
type State struct {
	X, Y float64
	Tick int // updates applied since the last restart
}

// Point returns the position as a field point.
func (s State) Point() field.Point {
	return field.Point{X: s.X, Y: s.Y}
}

// Step describes one applied update.
type Step struct {
	Tick         int
	From, To     field.Point
	GradX, GradY float64
	LearningRate float64
}

// GradNorm returns the length of the gradient the step was taken along.
func (s Step) GradNorm() float64 {
	return math.Hypot(s.GradX, s.GradY)
}

// Stepper owns the descent state and applies one gradient descent update per
// call to Step. There is no convergence or divergence handling: a position
// may run off to infinity and stays there.
type Stepper struct {
	f      field.Func
	start  field.Point
	params Params
	state  State
	est    *Estimator
}

// NewStepper returns a stepper positioned at start.
func NewStepper(f field.Func, start field.Point, p Params) (*Stepper, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil field", ErrInvalidParams)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Stepper{
		f:      f,
		start:  start,
		params: p,
		est:    NewEstimator(p.GradientStep),
	}
	s.Restart()
	return s, nil
}

// Step applies x ← x − lr·∂f/∂x, y ← y − lr·∂f/∂y at the current position.
func (s *Stepper) Step() Step {
	from := s.state.Point()
	gx, gy := s.est.Gradient(s.f, from.X, from.Y)
	lr := s.params.LearningRate

	s.state.X = from.X - lr*gx
	s.state.Y = from.Y - lr*gy
	s.state.Tick++

	return Step{
		Tick:         s.state.Tick,
		From:         from,
		To:           s.state.Point(),
		GradX:        gx,
		GradY:        gy,
		LearningRate: lr,
	}
}

// Restart returns the position to the configured start and clears the tick count.
func (s *Stepper) Restart() {
	s.state = State{X: s.start.X, Y: s.start.Y}
}

// SetStart changes the start position and restarts from it.
func (s *Stepper) SetStart(p field.Point) {
	s.start = p
	s.Restart()
}

// SetField swaps the field and start position and restarts.
func (s *Stepper) SetField(f field.Func, start field.Point) error {
	if f == nil {
		return fmt.Errorf("%w: nil field", ErrInvalidParams)
	}
	s.f = f
	s.SetStart(start)
	return nil
}

// SetLearningRate changes the learning rate used from the next step on.
func (s *Stepper) SetLearningRate(lr float64) error {
	if err := validateLearningRate(lr); err != nil {
		return err
	}
	s.params.LearningRate = lr
	return nil
}

// SetStepsPerSecond changes the tick rate used to schedule the next tick.
func (s *Stepper) SetStepsPerSecond(n int) error {
	if err := validateStepsPerSecond(n); err != nil {
		return err
	}
	s.params.StepsPerSecond = n
	return nil
}

// Position returns the current position.
func (s *Stepper) Position() field.Point {
	return s.state.Point()
}

// State returns a copy of the current state.
func (s *Stepper) State() State {
	return s.state
}

// Start returns the configured start position.
func (s *Stepper) Start() field.Point {
	return s.start
}

// Params returns the current parameters.
func (s *Stepper) Params() Params {
	return s.params
}

// Field returns the field being descended.
func (s *Stepper) Field() field.Func {
	return s.f
}

// Interval is the wall-clock time between ticks at the current tick rate.
func (s *Stepper) Interval() time.Duration {
	return time.Second / time.Duration(s.params.StepsPerSecond)
}
