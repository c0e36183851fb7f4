package descent

import (
	"context"
	"time"
)

// RunState is the ticker's state: Stopped (no schedule) or Running.
type RunState int

const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// DefaultMaxCatchUp bounds how many overdue ticks one Advance call fires.
const DefaultMaxCatchUp = 8

// Ticker schedules stepper updates at the stepper's tick rate.
//
// It can be driven two ways from a single goroutine: a frame loop calls
// Advance with the current time, or Run blocks on a wall-clock timer until
// the context is cancelled. Each next deadline uses the tick rate current at
// the moment it is scheduled, so rate changes apply from the next tick.
type Ticker struct {
	stepper *Stepper
	onStep  func(Step)

	state RunState
	next  time.Time

	// MaxCatchUp caps ticks fired per Advance; when hit, the schedule is
	// re-anchored to now instead of bursting through the backlog.
	MaxCatchUp int
}

// NewTicker returns a stopped ticker. onStep is called after every update
// and may be nil.
func NewTicker(s *Stepper, onStep func(Step)) *Ticker {
	return &Ticker{
		stepper:    s,
		onStep:     onStep,
		MaxCatchUp: DefaultMaxCatchUp,
	}
}

// State returns Running or Stopped.
func (t *Ticker) State() RunState {
	return t.state
}

// Next returns the deadline of the next scheduled tick (zero when stopped).
func (t *Ticker) Next() time.Time {
	return t.next
}

// Start moves Stopped → Running with the first tick one interval after now.
// Starting a running ticker does nothing.
func (t *Ticker) Start(now time.Time) {
	if t.state == Running {
		return
	}
	t.state = Running
	t.next = now.Add(t.stepper.Interval())
}

// Stop moves Running → Stopped and drops the schedule.
func (t *Ticker) Stop() {
	t.state = Stopped
	t.next = time.Time{}
}

// Restart resets the stepper to its start and schedules afresh from now.
func (t *Ticker) Restart(now time.Time) {
	t.Stop()
	t.stepper.Restart()
	t.Start(now)
}

// Advance fires every tick due at or before now and returns how many fired.
func (t *Ticker) Advance(now time.Time) int {
	fired := 0
	for t.state == Running && !now.Before(t.next) {
		if t.MaxCatchUp > 0 && fired >= t.MaxCatchUp {
			t.next = now.Add(t.stepper.Interval())
			break
		}

		due := t.next
		step := t.stepper.Step()
		fired++
		if t.onStep != nil {
			t.onStep(step)
		}

		// The callback may have stopped or re-anchored the schedule.
		if t.state == Running && t.next.Equal(due) {
			t.next = due.Add(t.stepper.Interval())
		}
	}
	return fired
}

// Run drives the ticker on a wall-clock timer until ctx is cancelled or the
// ticker is stopped (e.g. from the step callback). The timer is always
// stopped on return.
func (t *Ticker) Run(ctx context.Context) error {
	t.Start(time.Now())
	timer := time.NewTimer(time.Until(t.next))
	defer func() {
		timer.Stop()
		t.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-timer.C:
			t.Advance(now)
			if t.state != Running {
				return nil
			}
			timer.Reset(time.Until(t.next))
		}
	}
}
