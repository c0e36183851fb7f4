package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/surface"
)

// MilestoneType identifies the kind of milestone.
type MilestoneType string

const (
	MilestoneSettled    MilestoneType = "settled"
	MilestoneLeftDomain MilestoneType = "left_domain"
	MilestoneNonFinite  MilestoneType = "non_finite"
	MilestoneDiverging  MilestoneType = "diverging"
)

// divergingWindows is how many consecutive rising windows trigger MilestoneDiverging.
const divergingWindows = 3

// Milestone is a notable moment in a run. Milestones are observational only.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Tick        int           `csv:"tick"`
	X           float64       `csv:"x"`
	Y           float64       `csv:"y"`
	Description string        `csv:"description"`
}

// LogMilestone logs the milestone using slog.
func (m Milestone) LogMilestone() {
	slog.Info("milestone",
		"type", string(m.Type),
		"tick", m.Tick,
		"x", m.X,
		"y", m.Y,
		"description", m.Description,
	)
}

// MilestoneDetector watches steps and window stats. Each milestone type fires
// at most once per run; Reset starts a new run.
type MilestoneDetector struct {
	settleGradNorm float64
	domain         surface.Domain
	fired          map[MilestoneType]bool
	rising         int // consecutive windows with rising height
}

// NewMilestoneDetector creates a detector. A step whose gradient norm is below
// settleGradNorm counts as settled.
func NewMilestoneDetector(settleGradNorm float64, d surface.Domain) *MilestoneDetector {
	return &MilestoneDetector{
		settleGradNorm: settleGradNorm,
		domain:         d,
		fired:          make(map[MilestoneType]bool),
	}
}

// SetDomain changes the domain used for MilestoneLeftDomain and resets.
func (md *MilestoneDetector) SetDomain(d surface.Domain) {
	md.domain = d
	md.Reset()
}

// Reset clears fired milestones.
func (md *MilestoneDetector) Reset() {
	clear(md.fired)
	md.rising = 0
}

// Fired reports whether a milestone of type t has fired since the last reset.
func (md *MilestoneDetector) Fired(t MilestoneType) bool {
	return md.fired[t]
}

// CheckStep analyzes an applied step and returns any triggered milestones.
func (md *MilestoneDetector) CheckStep(s descent.Step) []Milestone {
	var out []Milestone
	to := s.To

	if !to.IsFinite() {
		if m, ok := md.fire(MilestoneNonFinite, s, fmt.Sprintf("position became (%v, %v)", to.X, to.Y)); ok {
			out = append(out, m)
		}
		return out
	}

	if !md.domain.Contains(to.X, to.Y) {
		if m, ok := md.fire(MilestoneLeftDomain, s, fmt.Sprintf("left [%g,%g]x[%g,%g]",
			md.domain.XMin, md.domain.XMax, md.domain.YMin, md.domain.YMax)); ok {
			out = append(out, m)
		}
	}

	if norm := s.GradNorm(); norm < md.settleGradNorm {
		if m, ok := md.fire(MilestoneSettled, s, fmt.Sprintf("gradient norm %.2e below %.2e", norm, md.settleGradNorm)); ok {
			out = append(out, m)
		}
	}

	return out
}

// CheckWindow analyzes closed window stats and returns any triggered milestones.
func (md *MilestoneDetector) CheckWindow(stats WindowStats) []Milestone {
	if stats.Steps == 0 || !stats.Diverging() {
		md.rising = 0
		return nil
	}
	md.rising++
	if md.rising < divergingWindows || md.fired[MilestoneDiverging] {
		return nil
	}
	md.fired[MilestoneDiverging] = true
	return []Milestone{{
		Type:        MilestoneDiverging,
		Tick:        stats.WindowEndTick,
		X:           stats.X,
		Y:           stats.Y,
		Description: fmt.Sprintf("height rose over %d consecutive windows", md.rising),
	}}
}

func (md *MilestoneDetector) fire(t MilestoneType, s descent.Step, desc string) (Milestone, bool) {
	if md.fired[t] {
		return Milestone{}, false
	}
	md.fired[t] = true
	return Milestone{
		Type:        t,
		Tick:        s.Tick,
		X:           s.To.X,
		Y:           s.To.Y,
		Description: desc,
	}, true
}
