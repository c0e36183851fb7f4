package game

import (
	"errors"
	"log/slog"
	"time"

	"github.com/pthm-cable/descent/camera"
	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/field"
	"github.com/pthm-cable/descent/surface"
	"github.com/pthm-cable/descent/telemetry"
)

// loadPreset switches to presets[idx]: resamples the surface, swaps the
// stepper's field and start, finds the reference minimum and restarts.
// The run state is preserved.
func (g *Game) loadPreset(idx int) error {
	cfg := g.config()
	p := g.presets[idx]

	d, err := surface.FromPreset(p, cfg.Surface.Steps)
	if err != nil {
		return err
	}
	g.flushTelemetry(true)

	g.presetIdx = idx
	g.preset = p
	g.domain = d
	if err := g.rebuildSurface(); err != nil {
		return err
	}
	if err := g.stepper.SetField(p.Func, p.Start); err != nil {
		return err
	}

	g.collector.SetReference(g.findReference(p))
	if g.milestones == nil {
		g.milestones = telemetry.NewMilestoneDetector(cfg.Telemetry.SettleGradNorm, d)
	} else {
		g.milestones.SetDomain(d)
	}

	g.resetView()
	g.resetRun()

	slog.Info("preset loaded",
		"preset", p.Name,
		"formula", p.Formula,
		"steps", d.Steps,
		"start_x", p.Start.X,
		"start_y", p.Start.Y,
	)
	return nil
}

// findReference searches for a local minimum from the preset start. A
// minimum outside the domain (or none at all) is reported as invalid.
func (g *Game) findReference(p field.Preset) telemetry.Reference {
	pt, val, err := field.ReferenceMinimum(p.Func, p.Start)
	switch {
	case errors.Is(err, field.ErrNoMinimum):
		slog.Info("no reference minimum", "preset", p.Name)
		return telemetry.Reference{}
	case err != nil:
		slog.Warn("reference minimum search failed", "preset", p.Name, "error", err)
		return telemetry.Reference{}
	case !g.domain.Contains(pt.X, pt.Y):
		slog.Info("reference minimum outside domain", "preset", p.Name, "x", pt.X, "y", pt.Y)
		return telemetry.Reference{}
	}
	return telemetry.Reference{Point: pt, Value: val, Valid: true}
}

// rebuildSurface resamples the mesh for the current preset and domain.
func (g *Game) rebuildSurface() error {
	g.perfCollector.StartPhase(telemetry.PhaseSample)
	mesh, err := surface.Sample(g.preset.Func, g.domain, g.preset.HeightScale, g.palette)
	if err != nil {
		return err
	}
	g.mesh = mesh
	if g.surfaceRenderer != nil {
		g.surfaceRenderer.SetMesh(mesh)
	}
	return nil
}

// resetView frames the camera and sizes the marker for the current domain.
func (g *Game) resetView() {
	if g.opts.Headless {
		return
	}
	cfg := g.config().Camera
	ext := float32(g.domain.Extent())

	g.camera = camera.New(
		float32(cfg.Yaw), float32(cfg.Pitch),
		float32(cfg.Distance)*ext, float32(cfg.MinDistance)*ext, float32(cfg.MaxDistance)*ext,
	)
	c := g.domain.Center()
	mid := float32((g.mesh.Min + g.mesh.Max) / 2 * g.mesh.Scale)
	if g.mesh.Flat() || !isFinite32(mid) {
		mid = 0
	}
	g.camera.SetTarget(float32(c.X), mid, float32(c.Y))

	g.markerRenderer.Radius = float32(g.config().Trail.MarkerRadius) * ext
}

// resetRun clears per-run state after the stepper has been reset.
func (g *Game) resetRun() {
	g.trail.Clear()
	g.collector.Reset()
	g.milestones.Reset()
	g.hasStep = false
	g.lastMilestone = ""
	g.dropCrumb()
}

// restart returns the marker to the start position and (re)starts the ticker.
func (g *Game) restart() {
	g.flushTelemetry(true)
	g.ticker.Restart(time.Now())
	g.resetRun()
	slog.Info("restart", "preset", g.preset.Name, "x", g.stepper.Start().X, "y", g.stepper.Start().Y)
}

// setStart moves the start position and restarts from it.
func (g *Game) setStart(p field.Point) {
	g.flushTelemetry(true)
	g.stepper.SetStart(p)
	g.ticker.Restart(time.Now())
	g.resetRun()
	slog.Info("start moved", "x", p.X, "y", p.Y)
}

// setLearningRate applies a new rate from the next tick on.
func (g *Game) setLearningRate(lr float64) {
	lr = g.config().Descent.ClampLearningRate(lr)
	if err := g.stepper.SetLearningRate(lr); err != nil {
		slog.Warn("learning rate rejected", "lr", lr, "error", err)
	}
}

// setStepsPerSecond applies a new tick rate from the next scheduled tick on.
func (g *Game) setStepsPerSecond(n int) {
	n = g.config().Descent.ClampStepsPerSecond(n)
	if err := g.stepper.SetStepsPerSecond(n); err != nil {
		slog.Warn("tick rate rejected", "steps_per_second", n, "error", err)
	}
}

// togglePause switches between Running and Stopped. Position is kept.
func (g *Game) togglePause() {
	if g.ticker.State() == descent.Running {
		g.ticker.Stop()
	} else {
		g.ticker.Start(time.Now())
	}
	slog.Info("run state", "state", g.ticker.State().String(), "tick", g.Tick())
}
