package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/descent/config"
	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/field"
)

func init() {
	config.MustInit("")
}

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestNewGameUnknownPreset(t *testing.T) {
	_, err := NewGameWithOptions(Options{Headless: true, Preset: "volcano"})
	if !errors.Is(err, field.ErrUnknownPreset) {
		t.Fatalf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestNewGameStartsStoppedAtPresetStart(t *testing.T) {
	g := newHeadless(t, Options{Preset: "bowl"})

	if g.State() != descent.Stopped {
		t.Errorf("state = %v, want stopped", g.State())
	}
	if g.Position() != g.Preset().Start {
		t.Errorf("position = %v, want %v", g.Position(), g.Preset().Start)
	}
	if n := g.mesh.VertexCount(); n != 61*61 {
		t.Errorf("vertices = %d, want %d", n, 61*61)
	}
	if !g.collector.Reference().Valid {
		t.Error("bowl should have a reference minimum")
	}
	if g.trail.Len() != 1 {
		t.Errorf("trail length = %d, want 1", g.trail.Len())
	}
}

func TestRunHeadlessMatchesStepper(t *testing.T) {
	dir := t.TempDir()
	g := newHeadless(t, Options{Preset: "bowl", OutputDir: dir})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := g.RunHeadless(ctx, 5); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	if g.Tick() != 5 {
		t.Fatalf("tick = %d, want 5", g.Tick())
	}
	if g.State() != descent.Stopped {
		t.Errorf("state = %v, want stopped after max ticks", g.State())
	}

	ref, err := descent.NewStepper(field.Bowl, g.Preset().Start, g.stepper.Params())
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	for i := 0; i < 5; i++ {
		ref.Step()
	}
	if g.Position() != ref.Position() {
		t.Errorf("position = %v, want %v", g.Position(), ref.Position())
	}
	if g.trail.Len() != 6 {
		t.Errorf("trail length = %d, want 6", g.trail.Len())
	}

	g.Unload()
	data, err := os.ReadFile(filepath.Join(dir, "trajectory.csv"))
	if err != nil {
		t.Fatalf("read trajectory.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 6 {
		t.Errorf("trajectory.csv has %d lines, want header + 5", len(lines))
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml: %v", err)
	}
}

func TestRestartResetsToStart(t *testing.T) {
	g := newHeadless(t, Options{Preset: "bowl"})
	for i := 0; i < 10; i++ {
		g.stepper.Step()
	}

	g.restart()

	if g.Position() != g.Preset().Start {
		t.Errorf("position = %v, want %v", g.Position(), g.Preset().Start)
	}
	if g.Tick() != 0 {
		t.Errorf("tick = %d, want 0", g.Tick())
	}
	if g.State() != descent.Running {
		t.Errorf("state = %v, want running after restart", g.State())
	}
	if g.trail.Len() != 1 {
		t.Errorf("trail length = %d, want 1", g.trail.Len())
	}
}

func TestSetStartAndParams(t *testing.T) {
	g := newHeadless(t, Options{Preset: "bowl"})

	p := field.Point{X: -2, Y: 1}
	g.setStart(p)
	if g.Position() != p || g.stepper.Start() != p {
		t.Errorf("position/start = %v/%v, want %v", g.Position(), g.stepper.Start(), p)
	}

	g.stepper.Step()
	before := g.Position()
	g.setLearningRate(5)
	g.setStepsPerSecond(1000)
	if g.Position() != before {
		t.Error("parameter change moved the position")
	}
	cfg := config.Cfg().Descent
	if lr := g.stepper.Params().LearningRate; lr != cfg.MaxLearningRate {
		t.Errorf("learning rate = %v, want clamp to %v", lr, cfg.MaxLearningRate)
	}
	if n := g.stepper.Params().StepsPerSecond; n != cfg.MaxStepsPerSecond {
		t.Errorf("steps per second = %d, want clamp to %d", n, cfg.MaxStepsPerSecond)
	}
}

func TestLoadPresetSwitchesField(t *testing.T) {
	g := newHeadless(t, Options{Preset: "bowl"})
	idx := field.Index("saddle")

	if err := g.loadPreset(idx); err != nil {
		t.Fatalf("loadPreset: %v", err)
	}
	if g.Preset().Name != "saddle" {
		t.Errorf("preset = %q", g.Preset().Name)
	}
	if g.Position() != g.Preset().Start {
		t.Errorf("position = %v, want saddle start", g.Position())
	}
	if g.collector.Reference().Valid {
		t.Error("saddle should have no reference minimum inside its domain")
	}
	if g.domain.XMin != g.Preset().XMin || g.domain.YMax != g.Preset().YMax {
		t.Errorf("domain = %+v", g.domain)
	}
}
