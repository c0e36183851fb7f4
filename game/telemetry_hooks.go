package game

import (
	"log/slog"

	"github.com/pthm-cable/descent/components"
	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/surface"
	"github.com/pthm-cable/descent/telemetry"
)

// onStep runs after every applied update. Nothing here feeds back into the
// stepper.
func (g *Game) onStep(s descent.Step) {
	g.lastStep = s
	g.hasStep = true

	g.perfCollector.StartPhase(telemetry.PhaseTrail)
	g.dropCrumb()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	f := g.stepper.Field()
	height := f(s.To.X, s.To.Y)
	g.collector.Record(s, f(s.From.X, s.From.Y), height)

	if err := g.outputManager.WriteTrajectory(telemetry.NewTrajectoryRecord(s, height, g.collector.Reference())); err != nil {
		slog.Error("failed to write trajectory", "error", err)
	}

	g.handleMilestones(g.milestones.CheckStep(s))

	if g.collector.Ready() {
		g.flushTelemetry(false)
	}

	if g.maxTicks > 0 && s.Tick >= g.maxTicks {
		slog.Info("max ticks reached", "tick", s.Tick)
		g.ticker.Stop()
	}

	g.perfCollector.StartPhase(telemetry.PhaseDescent)
}

// dropCrumb adds the current position to the trail.
func (g *Game) dropCrumb() {
	p := g.stepper.Position()
	v := surface.Point(g.stepper.Field(), p.X, p.Y, g.preset.HeightScale)
	g.trail.Drop(components.Position{X: v.X, Y: v.Y, Z: v.Z}, g.Tick())
}

// flushTelemetry closes the open stats window. Without force it only flushes
// a full window.
func (g *Game) flushTelemetry(force bool) {
	if !force && !g.collector.Ready() {
		return
	}
	stats, ok := g.collector.Flush()
	if !ok {
		return
	}

	if g.opts.LogStats {
		stats.LogStats()
	}
	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.outputManager.WritePerf(g.perfCollector.Stats(), stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	if g.milestones != nil {
		g.handleMilestones(g.milestones.CheckWindow(stats))
	}
}

// handleMilestones logs and records triggered milestones.
func (g *Game) handleMilestones(ms []telemetry.Milestone) {
	for _, m := range ms {
		g.lastMilestone = string(m.Type)
		if g.opts.LogStats {
			m.LogMilestone()
		}
		if err := g.outputManager.WriteMilestone(m); err != nil {
			slog.Error("failed to write milestone", "error", err)
		}
	}
}
