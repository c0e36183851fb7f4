// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Preset    string          `yaml:"preset"` // field preset shown at startup
	Surface   SurfaceConfig   `yaml:"surface"`
	Descent   DescentConfig   `yaml:"descent"`
	Camera    CameraConfig    `yaml:"camera"`
	Trail     TrailConfig     `yaml:"trail"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SurfaceConfig holds mesh sampling settings.
type SurfaceConfig struct {
	Steps     int           `yaml:"steps"`     // grid intervals per axis
	Wireframe bool          `yaml:"wireframe"` // draw grid lines over the mesh
	Palette   PaletteConfig `yaml:"palette"`
}

// PaletteConfig holds the three color stops as hex strings.
type PaletteConfig struct {
	Low  string `yaml:"low"`
	Mid  string `yaml:"mid"`
	High string `yaml:"high"`
}

// DescentConfig holds stepper parameters and the ranges the UI allows.
type DescentConfig struct {
	LearningRate    float64 `yaml:"learning_rate"`
	MinLearningRate float64 `yaml:"min_learning_rate"`
	MaxLearningRate float64 `yaml:"max_learning_rate"`

	StepsPerSecond    int `yaml:"steps_per_second"`
	MinStepsPerSecond int `yaml:"min_steps_per_second"`
	MaxStepsPerSecond int `yaml:"max_steps_per_second"`

	GradientStep float64 `yaml:"gradient_step"` // central-difference h
	MaxCatchUp   int     `yaml:"max_catch_up"`  // overdue ticks fired per frame
}

// CameraConfig holds orbit camera settings. Angles are in degrees.
type CameraConfig struct {
	Yaw         float64 `yaml:"yaw"`
	Pitch       float64 `yaml:"pitch"`
	Distance    float64 `yaml:"distance"` // multiple of the domain extent
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	FOV         float64 `yaml:"fov"`
	OrbitSpeed  float64 `yaml:"orbit_speed"` // degrees per pixel of drag
}

// TrailConfig holds breadcrumb trail settings.
type TrailConfig struct {
	MaxLength    int     `yaml:"max_length"`    // breadcrumbs kept behind the marker
	MarkerRadius float64 `yaml:"marker_radius"` // fraction of the domain extent
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow    int     `yaml:"stats_window"`     // ticks per stats window
	SettleGradNorm float64 `yaml:"settle_grad_norm"` // gradient norm counted as settled
	PerfWindow     int     `yaml:"perf_window"`      // frames in the rolling perf average
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	FOV32     float32 // Camera.FOV as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks ranges that would otherwise fail deep inside the visualizer.
func (c *Config) Validate() error {
	d := c.Descent
	switch {
	case c.Surface.Steps < 1:
		return fmt.Errorf("%w: surface.steps %d < 1", ErrInvalidConfig, c.Surface.Steps)
	case d.MinLearningRate <= 0 || d.MinLearningRate > d.MaxLearningRate:
		return fmt.Errorf("%w: learning rate range [%v, %v]", ErrInvalidConfig, d.MinLearningRate, d.MaxLearningRate)
	case d.LearningRate <= 0:
		return fmt.Errorf("%w: learning_rate %v must be positive", ErrInvalidConfig, d.LearningRate)
	case d.MinStepsPerSecond < 1 || d.MinStepsPerSecond > d.MaxStepsPerSecond:
		return fmt.Errorf("%w: steps per second range [%d, %d]", ErrInvalidConfig, d.MinStepsPerSecond, d.MaxStepsPerSecond)
	case d.StepsPerSecond < 1:
		return fmt.Errorf("%w: steps_per_second %d must be at least 1", ErrInvalidConfig, d.StepsPerSecond)
	case d.GradientStep <= 0:
		return fmt.Errorf("%w: gradient_step %v must be positive", ErrInvalidConfig, d.GradientStep)
	case c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance:
		return fmt.Errorf("%w: camera distance range [%v, %v]", ErrInvalidConfig, c.Camera.MinDistance, c.Camera.MaxDistance)
	case c.Telemetry.StatsWindow < 1:
		return fmt.Errorf("%w: telemetry.stats_window %d < 1", ErrInvalidConfig, c.Telemetry.StatsWindow)
	case c.Telemetry.PerfWindow < 1:
		return fmt.Errorf("%w: telemetry.perf_window %d < 1", ErrInvalidConfig, c.Telemetry.PerfWindow)
	}
	return nil
}

// ClampLearningRate pulls lr into the configured slider range.
func (d DescentConfig) ClampLearningRate(lr float64) float64 {
	if lr < d.MinLearningRate {
		return d.MinLearningRate
	}
	if lr > d.MaxLearningRate {
		return d.MaxLearningRate
	}
	return lr
}

// ClampStepsPerSecond pulls n into the configured slider range.
func (d DescentConfig) ClampStepsPerSecond(n int) int {
	if n < d.MinStepsPerSecond {
		return d.MinStepsPerSecond
	}
	if n > d.MaxStepsPerSecond {
		return d.MaxStepsPerSecond
	}
	return n
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.FOV32 = float32(c.Camera.FOV)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
