// Package game composes the visualizer: surface, stepper, ticker, trail,
// telemetry, camera, renderers and UI, driven one frame at a time.
package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/descent/camera"
	"github.com/pthm-cable/descent/config"
	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/field"
	"github.com/pthm-cable/descent/renderer"
	"github.com/pthm-cable/descent/surface"
	"github.com/pthm-cable/descent/systems"
	"github.com/pthm-cable/descent/telemetry"
	"github.com/pthm-cable/descent/ui"
)

// Options configures a new Game.
type Options struct {
	Preset    string // overrides config preset when non-empty
	LogStats  bool   // log window stats and milestones via slog
	OutputDir string // directory for CSV logs and config snapshot ("" = disabled)
	Headless  bool   // no window; renderers and UI are not created
}

// Game holds the complete visualizer state.
type Game struct {
	opts Options

	// Scene
	presets   []field.Preset
	presetIdx int
	preset    field.Preset
	palette   surface.Palette
	domain    surface.Domain
	mesh      *surface.Mesh

	// Descent
	stepper  *descent.Stepper
	ticker   *descent.Ticker
	lastStep descent.Step
	hasStep  bool

	// Trail
	world *ecs.World
	trail *systems.TrailSystem

	// Telemetry
	collector     *telemetry.Collector
	milestones    *telemetry.MilestoneDetector
	outputManager *telemetry.OutputManager
	perfCollector *telemetry.PerfCollector
	lastMilestone string
	frames        int
	maxTicks      int // stop after this many ticks (0 = unlimited)

	// View (nil when headless)
	camera          *camera.Camera
	surfaceRenderer *renderer.SurfaceRenderer
	markerRenderer  *renderer.MarkerRenderer
	frameRenderer   *renderer.FrameRenderer
	overlays        *ui.OverlayRegistry
	controls        *ui.ControlPanel
	hud             *ui.HUD
	perfPanel       *ui.PerfPanel

	// Mouse orbit
	dragging  bool
	dragStart rl.Vector2
	lastMouse rl.Vector2

	screenWidth, screenHeight int32
}

// config returns the global configuration.
func (g *Game) config() *config.Config {
	return config.Cfg()
}

// NewGameWithOptions creates a game showing the configured preset. The ticker
// starts stopped; call Start (graphical) or RunHeadless.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	palette, err := surface.ParsePalette(cfg.Surface.Palette.Low, cfg.Surface.Palette.Mid, cfg.Surface.Palette.High)
	if err != nil {
		return nil, err
	}

	name := cfg.Preset
	if opts.Preset != "" {
		name = opts.Preset
	}
	idx := field.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", field.ErrUnknownPreset, name)
	}

	world := ecs.NewWorld()
	g := &Game{
		opts:          opts,
		presets:       field.Presets(),
		palette:       palette,
		world:         world,
		trail:         systems.NewTrailSystem(world, cfg.Trail.MaxLength),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		screenWidth:   int32(cfg.Screen.Width),
		screenHeight:  int32(cfg.Screen.Height),
	}

	params := descent.Params{
		LearningRate:   cfg.Descent.ClampLearningRate(cfg.Descent.LearningRate),
		StepsPerSecond: cfg.Descent.ClampStepsPerSecond(cfg.Descent.StepsPerSecond),
		GradientStep:   cfg.Descent.GradientStep,
	}
	first := g.presets[idx]
	g.stepper, err = descent.NewStepper(first.Func, first.Start, params)
	if err != nil {
		return nil, err
	}
	g.ticker = descent.NewTicker(g.stepper, g.onStep)
	g.ticker.MaxCatchUp = cfg.Descent.MaxCatchUp

	if !opts.Headless {
		g.surfaceRenderer = renderer.NewSurfaceRenderer()
		g.frameRenderer = renderer.NewFrameRenderer()
		g.markerRenderer = renderer.NewMarkerRenderer(0)
		g.overlays = ui.NewOverlayRegistry()
		g.overlays.SetEnabled(ui.OverlayWireframe, cfg.Surface.Wireframe)
		g.controls = ui.NewControlPanel(10, 10, 250)
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(270, 10)
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		g.outputManager.Close()
		return nil, err
	}

	if err := g.loadPreset(idx); err != nil {
		g.outputManager.Close()
		return nil, err
	}
	return g, nil
}

// Start begins stepping from now.
func (g *Game) Start() {
	g.ticker.Start(time.Now())
}

// Update handles input and fires due ticks for one frame.
func (g *Game) Update() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perfCollector.StartPhase(telemetry.PhaseDescent)
	g.ticker.Advance(time.Now())

	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()

	g.frames++
	if g.opts.LogStats && g.frames%g.config().Telemetry.PerfWindow == 0 {
		g.perfCollector.Stats().LogStats()
	}
}

// Unload stops the ticker, flushes telemetry and releases resources.
func (g *Game) Unload() {
	g.ticker.Stop()
	g.flushTelemetry(true)
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if g.surfaceRenderer != nil {
		g.surfaceRenderer.Unload()
	}
}

// Tick returns the number of updates applied since the last restart.
func (g *Game) Tick() int {
	return g.stepper.State().Tick
}

// Position returns the current descent position.
func (g *Game) Position() field.Point {
	return g.stepper.Position()
}

// Preset returns the active preset.
func (g *Game) Preset() field.Preset {
	return g.preset
}

// State returns the ticker state.
func (g *Game) State() descent.RunState {
	return g.ticker.State()
}
