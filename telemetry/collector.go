package telemetry

import (
	"github.com/pthm-cable/descent/descent"
)

// Collector accumulates steps within a window of ticks and produces WindowStats.
type Collector struct {
	windowTicks int
	ref         Reference

	// Current window
	windowStart int
	startHeight float64
	stepSizes   []float64
	gradNorms   []float64
	last        descent.Step
	lastHeight  float64
}

// NewCollector creates a collector that closes a window every windowTicks steps.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		stepSizes:   make([]float64, 0, windowTicks),
		gradNorms:   make([]float64, 0, windowTicks),
	}
}

// SetReference sets the reference minimum used for distance readouts.
func (c *Collector) SetReference(ref Reference) {
	c.ref = ref
}

// Reference returns the current reference minimum.
func (c *Collector) Reference() Reference {
	return c.ref
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}

// Record adds an applied step. height is f at the step's destination and
// fromHeight is f at its origin.
func (c *Collector) Record(s descent.Step, fromHeight, height float64) {
	if len(c.stepSizes) == 0 {
		c.windowStart = s.Tick
		c.startHeight = fromHeight
	}
	c.stepSizes = append(c.stepSizes, s.From.Dist(s.To))
	c.gradNorms = append(c.gradNorms, s.GradNorm())
	c.last = s
	c.lastHeight = height
}

// Pending returns the number of steps recorded in the open window.
func (c *Collector) Pending() int {
	return len(c.stepSizes)
}

// Ready reports whether the open window is full.
func (c *Collector) Ready() bool {
	return len(c.stepSizes) >= c.windowTicks
}

// Flush closes the open window and returns its stats. ok is false if no steps
// were recorded.
func (c *Collector) Flush() (stats WindowStats, ok bool) {
	if len(c.stepSizes) == 0 {
		return WindowStats{}, false
	}
	mean, std := StepStats(c.stepSizes)
	lo, p50, hi := GradStats(c.gradNorms)
	stats = WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   c.last.Tick,
		Steps:           len(c.stepSizes),
		X:               c.last.To.X,
		Y:               c.last.To.Y,
		Height:          c.lastHeight,
		DistToMin:       c.ref.Dist(c.last.To),
		StepMean:        mean,
		StepStd:         std,
		GradMin:         lo,
		GradP50:         p50,
		GradMax:         hi,
		HeightDelta:     c.lastHeight - c.startHeight,
		LearningRate:    c.last.LearningRate,
	}
	c.Reset()
	return stats, true
}

// Reset discards the open window.
func (c *Collector) Reset() {
	c.stepSizes = c.stepSizes[:0]
	c.gradNorms = c.gradNorms[:0]
	c.windowStart = 0
	c.startHeight = 0
}
