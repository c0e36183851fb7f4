package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/renderer"
	"github.com/pthm-cable/descent/surface"
	"github.com/pthm-cable/descent/telemetry"
	"github.com/pthm-cable/descent/ui"
)

const controlsLegend = "Drag: orbit | Wheel: zoom | Click: set start | Space: pause | R: restart | 1-7: preset | Tab: panel | Home: camera"

var background = rl.Color{R: 18, G: 20, B: 26, A: 255}

// camera3D converts the orbit camera to a raylib camera.
func (g *Game) camera3D() rl.Camera3D {
	x, y, z := g.camera.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{X: g.camera.TargetX, Y: g.camera.TargetY, Z: g.camera.TargetZ},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       g.config().Derived.FOV32,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the frame and applies control panel events.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(background)

	rl.BeginMode3D(g.camera3D())
	g.drawScene()
	rl.EndMode3D()

	ev := g.drawUI()

	rl.EndDrawing()

	g.handleControls(ev)
}

// markerPoint maps the current position onto the surface.
func (g *Game) markerPoint() surface.Vec3 {
	p := g.stepper.Position()
	return surface.Point(g.stepper.Field(), p.X, p.Y, g.preset.HeightScale)
}

// drawScene renders the 3D content.
func (g *Game) drawScene() {
	g.surfaceRenderer.Wireframe = g.overlays.IsEnabled(ui.OverlayWireframe)
	g.surfaceRenderer.Draw()

	if g.overlays.IsEnabled(ui.OverlayFrame) {
		g.frameRenderer.Draw(g.mesh)
	}
	if g.overlays.IsEnabled(ui.OverlayTrail) {
		g.markerRenderer.DrawTrail(g.trail.Points())
	}
	if g.overlays.IsEnabled(ui.OverlayStart) {
		s := g.stepper.Start()
		g.markerRenderer.DrawStart(surface.Point(g.stepper.Field(), s.X, s.Y, g.preset.HeightScale))
	}
	if ref := g.collector.Reference(); ref.Valid && g.overlays.IsEnabled(ui.OverlayReference) {
		pt := surface.Point(g.stepper.Field(), ref.Point.X, ref.Point.Y, g.preset.HeightScale)
		g.markerRenderer.DrawReference(pt, renderer.Floor(g.mesh))
	}

	g.markerRenderer.Draw(g.markerPoint())
}

// drawUI renders panels and returns the control panel events.
func (g *Game) drawUI() ui.ControlEvents {
	cfg := g.config()
	params := g.stepper.Params()

	names := make([]string, len(g.presets))
	for i, p := range g.presets {
		names[i] = p.Name
	}
	ev := g.controls.Draw(ui.ControlState{
		Presets:        names,
		PresetIndex:    g.presetIdx,
		LearningRate:   params.LearningRate,
		MinLR:          cfg.Descent.MinLearningRate,
		MaxLR:          cfg.Descent.MaxLearningRate,
		StepsPerSecond: params.StepsPerSecond,
		MinSPS:         cfg.Descent.MinStepsPerSecond,
		MaxSPS:         cfg.Descent.MaxStepsPerSecond,
		Running:        g.ticker.State() == descent.Running,
	}, g.overlays)

	g.hud.Draw(g.hudData(), g.screenWidth, g.screenHeight)
	g.hud.DrawControls(g.screenHeight, controlsLegend)

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		stats := g.perfCollector.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			PhaseAvg: stats.PhaseAvg,
			Phases:   telemetry.Phases,
			Total:    stats.AvgTickDuration,
		})
	}
	return ev
}

// hudData collects the readouts for the HUD.
func (g *Game) hudData() ui.HUDData {
	p := g.stepper.Position()
	f := g.stepper.Field()
	params := g.stepper.Params()
	height := f(p.X, p.Y)

	d := ui.HUDData{
		Preset:         g.preset.Name,
		Formula:        g.preset.Formula,
		X:              p.X,
		Y:              p.Y,
		Height:         height,
		Tick:           g.Tick(),
		LearningRate:   params.LearningRate,
		StepsPerSecond: params.StepsPerSecond,
		State:          g.ticker.State().String(),
		LastMilestone:  g.lastMilestone,
		FPS:            rl.GetFPS(),
		MarkerColor:    rl.Gray,
	}
	if g.hasStep {
		d.GradX, d.GradY = g.lastStep.GradX, g.lastStep.GradY
	}
	if m := g.mesh; m != nil && !m.Flat() && isFinite(height) {
		t := (height - m.Min) / (m.Max - m.Min)
		d.MarkerColor = renderer.ToColor(g.palette.At(t), 255)
	} else if m != nil && m.Flat() {
		d.MarkerColor = renderer.ToColor(g.palette.Mid, 255)
	}
	if ref := g.collector.Reference(); ref.Valid {
		d.HasReference = true
		d.RefX, d.RefY = ref.Point.X, ref.Point.Y
		d.RefValue = ref.Value
		d.DistToMin = ref.Dist(p)
	}
	return d
}
