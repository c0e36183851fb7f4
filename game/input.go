package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/descent/ui"
)

// clickSlop is how far (in pixels) the mouse may move between press and
// release and still count as a click rather than an orbit drag.
const clickSlop = 4

// handleInput processes keyboard, mouse and control panel input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.togglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.restart()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	// Number keys select presets
	for i := range g.presets {
		if i < 9 && rl.IsKeyPressed(rl.KeyOne+int32(i)) {
			g.selectPreset(i)
		}
	}

	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}

	g.handleCameraInput()
	g.handleMouse()
}

// handleControls applies events from the control panel.
func (g *Game) handleControls(ev ui.ControlEvents) {
	if ev.PresetChanged {
		g.selectPreset(ev.PresetIndex)
	}
	if ev.LearningRateChanged {
		g.setLearningRate(ev.LearningRate)
	}
	if ev.StepsChanged {
		g.setStepsPerSecond(ev.StepsPerSecond)
	}
	if ev.Restart {
		g.restart()
	}
	if ev.TogglePause {
		g.togglePause()
	}
	if ev.ResetCamera && g.camera != nil {
		g.camera.Reset()
	}
	if ev.Overlay != "" {
		g.overlays.Toggle(ev.Overlay)
	}
}

// selectPreset loads a preset, logging failures instead of aborting.
func (g *Game) selectPreset(idx int) {
	if idx == g.presetIdx {
		return
	}
	if err := g.loadPreset(idx); err != nil {
		slog.Error("failed to load preset", "preset", g.presets[idx].Name, "error", err)
	}
}

// handleResize tracks window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = int32(rl.GetScreenWidth())
	g.screenHeight = int32(rl.GetScreenHeight())
}

// handleCameraInput processes orbit and zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}
	speed := float32(g.config().Camera.OrbitSpeed) * rl.Deg2rad

	// Arrow keys orbit
	step := speed * 4
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Orbit(step, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Orbit(-step, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Orbit(0, step)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Orbit(0, -step)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleMouse orbits on left drag and picks a new start on left click.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if g.controls.Contains(mouse.X, mouse.Y) || g.hud.Contains(mouse.X, mouse.Y) {
			return
		}
		g.dragging = true
		g.dragStart = mouse
		g.lastMouse = mouse
		return
	}
	if !g.dragging {
		return
	}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		speed := float32(g.config().Camera.OrbitSpeed) * rl.Deg2rad
		dx := mouse.X - g.lastMouse.X
		dy := mouse.Y - g.lastMouse.Y
		g.camera.Orbit(dx*speed, dy*speed)
		g.lastMouse = mouse
		return
	}

	// Released
	g.dragging = false
	if rl.Vector2Distance(mouse, g.dragStart) > clickSlop {
		return
	}
	if p, ok := g.pickDomainPoint(mouse); ok {
		g.setStart(p)
	}
}
