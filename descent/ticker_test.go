package descent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pthm-cable/descent/field"
)

func newTestTicker(t *testing.T, rate int) (*Ticker, *Stepper, *[]Step) {
	t.Helper()
	s, err := NewStepper(field.Bowl, field.Point{X: 4, Y: 3}, Params{LearningRate: 0.008, StepsPerSecond: rate})
	if err != nil {
		t.Fatal(err)
	}
	var steps []Step
	tk := NewTicker(s, func(st Step) { steps = append(steps, st) })
	return tk, s, &steps
}

func TestTickerStateMachine(t *testing.T) {
	tk, _, _ := newTestTicker(t, 10)
	t0 := time.Unix(1000, 0)

	if tk.State() != Stopped {
		t.Fatalf("expected new ticker stopped, got %v", tk.State())
	}
	if n := tk.Advance(t0.Add(time.Hour)); n != 0 {
		t.Errorf("stopped ticker fired %d ticks", n)
	}

	tk.Start(t0)
	if tk.State() != Running {
		t.Fatalf("expected running after Start, got %v", tk.State())
	}
	if !tk.Next().Equal(t0.Add(100 * time.Millisecond)) {
		t.Errorf("expected first tick one interval after start, got %v", tk.Next())
	}

	tk.Stop()
	tk.Stop() // idempotent
	if tk.State() != Stopped || !tk.Next().IsZero() {
		t.Errorf("expected stopped with no schedule, got %v next=%v", tk.State(), tk.Next())
	}
	if Running.String() != "running" || Stopped.String() != "stopped" {
		t.Error("unexpected RunState strings")
	}
}

func TestTickerAdvanceSchedule(t *testing.T) {
	tk, s, steps := newTestTicker(t, 10)
	t0 := time.Unix(1000, 0)
	tk.Start(t0)

	if n := tk.Advance(t0.Add(50 * time.Millisecond)); n != 0 {
		t.Errorf("expected no tick before first deadline, got %d", n)
	}
	if n := tk.Advance(t0.Add(100 * time.Millisecond)); n != 1 {
		t.Errorf("expected 1 tick at first deadline, got %d", n)
	}
	if n := tk.Advance(t0.Add(350 * time.Millisecond)); n != 2 {
		t.Errorf("expected 2 overdue ticks, got %d", n)
	}
	if len(*steps) != 3 || s.State().Tick != 3 {
		t.Fatalf("expected 3 callbacks and ticks, got %d / %d", len(*steps), s.State().Tick)
	}
	if !tk.Next().Equal(t0.Add(400 * time.Millisecond)) {
		t.Errorf("expected next deadline at 400ms, got %v", tk.Next().Sub(t0))
	}
}

func TestTickerRateChangeAppliesFromNextTick(t *testing.T) {
	tk, s, _ := newTestTicker(t, 10)
	t0 := time.Unix(1000, 0)
	tk.Start(t0)
	tk.Advance(t0.Add(100 * time.Millisecond))
	pos := s.Position()

	if err := s.SetStepsPerSecond(20); err != nil {
		t.Fatal(err)
	}
	if s.Position() != pos {
		t.Error("rate change must not move the position")
	}

	// The already scheduled tick at 200ms stays; the one after uses 50ms.
	if !tk.Next().Equal(t0.Add(200 * time.Millisecond)) {
		t.Fatalf("expected pending deadline unchanged, got %v", tk.Next().Sub(t0))
	}
	if n := tk.Advance(t0.Add(260 * time.Millisecond)); n != 2 {
		t.Errorf("expected ticks at 200ms and 250ms, got %d", n)
	}
	if !tk.Next().Equal(t0.Add(300 * time.Millisecond)) {
		t.Errorf("expected next deadline at 300ms, got %v", tk.Next().Sub(t0))
	}
}

func TestTickerCatchUpCap(t *testing.T) {
	tk, _, _ := newTestTicker(t, 10)
	tk.MaxCatchUp = 3
	t0 := time.Unix(1000, 0)
	tk.Start(t0)

	now := t0.Add(10 * time.Second)
	if n := tk.Advance(now); n != 3 {
		t.Errorf("expected catch-up capped at 3, got %d", n)
	}
	if !tk.Next().Equal(now.Add(100 * time.Millisecond)) {
		t.Errorf("expected schedule re-anchored to now, got %v", tk.Next().Sub(now))
	}
}

func TestTickerRestart(t *testing.T) {
	tk, s, _ := newTestTicker(t, 10)
	t0 := time.Unix(1000, 0)
	tk.Start(t0)
	tk.Advance(t0.Add(time.Second))

	later := t0.Add(2 * time.Second)
	tk.Restart(later)
	if s.Position() != (field.Point{X: 4, Y: 3}) || s.State().Tick != 0 {
		t.Errorf("expected stepper reset, got %+v", s.State())
	}
	if tk.State() != Running || !tk.Next().Equal(later.Add(100*time.Millisecond)) {
		t.Errorf("expected running with fresh schedule, got %v next=%v", tk.State(), tk.Next().Sub(later))
	}
}

func TestTickerStopFromCallback(t *testing.T) {
	s, _ := NewStepper(field.Bowl, field.Point{X: 4, Y: 3}, Params{LearningRate: 0.008, StepsPerSecond: 10})
	var tk *Ticker
	tk = NewTicker(s, func(st Step) {
		if st.Tick == 2 {
			tk.Stop()
		}
	})
	t0 := time.Unix(1000, 0)
	tk.Start(t0)

	if n := tk.Advance(t0.Add(time.Second)); n != 2 {
		t.Errorf("expected 2 ticks before stop, got %d", n)
	}
	if tk.State() != Stopped {
		t.Errorf("expected stopped, got %v", tk.State())
	}
}

func TestTickerRunStopsOnCancel(t *testing.T) {
	tk, _, _ := newTestTicker(t, 120)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := tk.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if tk.State() != Stopped {
		t.Errorf("expected ticker stopped after Run, got %v", tk.State())
	}
}

func TestTickerRunFiresTicks(t *testing.T) {
	s, _ := NewStepper(field.Bowl, field.Point{X: 4, Y: 3}, Params{LearningRate: 0.008, StepsPerSecond: 120})
	var tk *Ticker
	count := 0
	tk = NewTicker(s, func(st Step) {
		count++
		if count == 5 {
			tk.Stop()
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tk.Run(ctx); err != nil {
		t.Fatalf("expected clean return after stop, got %v", err)
	}
	if count != 5 || s.State().Tick != 5 {
		t.Errorf("expected 5 ticks, got count=%d tick=%d", count, s.State().Tick)
	}
}
