package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame update.
const (
	PhaseInput     = "input"
	PhaseDescent   = "descent"
	PhaseSample    = "sample"
	PhaseTrail     = "trail"
	PhaseTelemetry = "telemetry"
)

// Phases lists the phases in reporting order.
var Phases = []string{PhaseInput, PhaseDescent, PhaseSample, PhaseTrail, PhaseTelemetry}

// PerfCollector times frame updates and their phases over a rolling window
// of the last windowSize updates.
type PerfCollector struct {
	windowSize int
	next       int
	filled     int

	updateUS []float64            // ring of update durations, microseconds
	phaseUS  map[string][]float64 // ring per phase, same indexing

	current    map[string]time.Duration
	updateFrom time.Time
	phaseFrom  time.Time
	phase      string

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps windowSize updates (60 if < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		updateUS:   make([]float64, windowSize),
		phaseUS:    make(map[string][]float64),
		current:    make(map[string]time.Duration),
	}
}

// StartTick begins timing a frame update.
func (p *PerfCollector) StartTick() {
	p.updateFrom = time.Now()
	clear(p.current)
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens phase.
// A phase may be entered several times per update; its time accumulates.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseFrom = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseFrom)
	}
}

// EndTick closes the update and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.updateUS[p.next] = toUS(now.Sub(p.updateFrom))
	for name, d := range p.current {
		ring, ok := p.phaseUS[name]
		if !ok {
			ring = make([]float64, p.windowSize)
			p.phaseUS[name] = ring
		}
		ring[p.next] = toUS(d)
	}
	// Phases skipped this update count as zero.
	for name, ring := range p.phaseUS {
		if _, ok := p.current[name]; !ok {
			ring[p.next] = 0
		}
	}

	p.next = (p.next + 1) % p.windowSize
	if p.filled < p.windowSize {
		p.filled++
	}
}

// RecordFrame measures the time since the previous call.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average update

	TicksPerSecond float64 // updates per second the window could sustain

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	// Only the first filled slots are valid until the ring wraps.
	updates := p.updateUS[:p.filled]
	avg := stat.Mean(updates, nil)

	sorted := append([]float64(nil), updates...)
	sort.Float64s(sorted)

	s.AvgTickDuration = fromUS(avg)
	s.MinTickDuration = fromUS(floats.Min(updates))
	s.MaxTickDuration = fromUS(floats.Max(updates))
	s.P95TickDuration = fromUS(stat.Quantile(0.95, stat.Empirical, sorted, nil))
	if avg > 0 {
		s.TicksPerSecond = 1e6 / avg
	}

	for name, ring := range p.phaseUS {
		phaseAvg := stat.Mean(ring[:p.filled], nil)
		s.PhaseAvg[name] = fromUS(phaseAvg)
		if avg > 0 {
			s.PhasePct[name] = phaseAvg / avg * 100
		}
	}
	return s
}

func toUS(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

func fromUS(us float64) time.Duration {
	return time.Duration(us * float64(time.Microsecond))
}

// LogStats writes one "perf" line.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_update_us", s.AvgTickDuration.Microseconds(),
		"p95_update_us", s.P95TickDuration.Microseconds(),
		"max_update_us", s.MaxTickDuration.Microseconds(),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_update_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_update_us", s.MinTickDuration.Microseconds()),
		slog.Int64("p95_update_us", s.P95TickDuration.Microseconds()),
		slog.Int64("max_update_us", s.MaxTickDuration.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_update_us"`
	P95TickUS    int64   `csv:"p95_update_us"`
	MaxTickUS    int64   `csv:"max_update_us"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	DescentPct   float64 `csv:"descent_pct"`
	SamplePct    float64 `csv:"sample_pct"`
	TrailPct     float64 `csv:"trail_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the row ending at descent tick windowEnd.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		P95TickUS:    s.P95TickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		DescentPct:   s.PhasePct[PhaseDescent],
		SamplePct:    s.PhasePct[PhaseSample],
		TrailPct:     s.PhasePct[PhaseTrail],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
