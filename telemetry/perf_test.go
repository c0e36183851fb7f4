package telemetry

import (
	"testing"
	"time"
)

func runUpdates(pc *PerfCollector, n int, phases map[string]time.Duration) {
	for range n {
		pc.StartTick()
		for _, name := range Phases {
			if d, ok := phases[name]; ok {
				pc.StartPhase(name)
				time.Sleep(d)
			}
		}
		pc.EndTick()
	}
}

func TestPerfCollectorTracksPhases(t *testing.T) {
	pc := NewPerfCollector(10)
	runUpdates(pc, 5, map[string]time.Duration{
		PhaseDescent: 100 * time.Microsecond,
		PhaseSample:  200 * time.Microsecond,
	})

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average update duration")
	}
	for _, name := range []string{PhaseDescent, PhaseSample} {
		if stats.PhaseAvg[name] <= 0 {
			t.Errorf("phase %s not tracked", name)
		}
	}
	if _, ok := stats.PhaseAvg[PhaseTrail]; ok {
		t.Error("trail phase was never entered")
	}
	if stats.MinTickDuration > stats.P95TickDuration || stats.P95TickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= p95 <= max, got %v %v %v",
			stats.MinTickDuration, stats.P95TickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollectorPhaseShares(t *testing.T) {
	pc := NewPerfCollector(10)
	runUpdates(pc, 5, map[string]time.Duration{
		PhaseInput:   10 * time.Microsecond,
		PhaseDescent: 2 * time.Millisecond,
	})

	stats := pc.Stats()
	if stats.PhasePct[PhaseDescent] <= stats.PhasePct[PhaseInput] {
		t.Errorf("expected descent share %v%% > input share %v%%",
			stats.PhasePct[PhaseDescent], stats.PhasePct[PhaseInput])
	}
	if total := stats.PhasePct[PhaseDescent] + stats.PhasePct[PhaseInput]; total > 100.5 {
		t.Errorf("phase shares sum to %v%%", total)
	}
}

func TestPerfCollectorSkippedPhaseCountsAsZero(t *testing.T) {
	pc := NewPerfCollector(4)
	runUpdates(pc, 4, map[string]time.Duration{PhaseSample: time.Millisecond})
	runUpdates(pc, 4, map[string]time.Duration{PhaseDescent: 0})

	// The window has wrapped; no update in it entered the sample phase.
	if got := pc.Stats().PhaseAvg[PhaseSample]; got != 0 {
		t.Errorf("sample avg = %v after window rolled over, want 0", got)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg update duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct:        map[string]float64{PhaseDescent: 40, PhaseSample: 60},
	}
	row := s.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.DescentPct != 40 || row.SamplePct != 60 || row.TrailPct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}
