package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// ErrUnknownPreset is returned by Lookup for names not in the registry.
var ErrUnknownPreset = errors.New("field: unknown preset")

// HillsSeed seeds the noise behind the "hills" preset.
const HillsSeed = 7

// Preset bundles a field with the domain and start point it is shown with.
type Preset struct {
	Name    string
	Formula string // human-readable, shown in the HUD
	Func    Func

	// Domain bounds
	XMin, XMax float64
	YMin, YMax float64

	Start       Point
	HeightScale float64 // scene height per unit of field value
}

// Center returns the middle of the preset's domain.
func (p Preset) Center() Point {
	return Point{X: (p.XMin + p.XMax) / 2, Y: (p.YMin + p.YMax) / 2}
}

var presets = []Preset{
	{
		Name:        "bowl",
		Formula:     "0.5x² + 0.2y²",
		Func:        Bowl,
		XMin:        -6,
		XMax:        6,
		YMin:        -6,
		YMax:        6,
		Start:       Point{X: 4, Y: 3},
		HeightScale: 0.25,
	},
	{
		Name:        "saddle",
		Formula:     "x² − y²",
		Func:        Saddle,
		XMin:        -3,
		XMax:        3,
		YMin:        -3,
		YMax:        3,
		Start:       Point{X: 2.5, Y: 0.1},
		HeightScale: 0.4,
	},
	{
		Name:        "rosenbrock",
		Formula:     "(1 − x)² + 100(y − x²)²",
		Func:        Rosenbrock,
		XMin:        -2,
		XMax:        2,
		YMin:        -1,
		YMax:        3,
		Start:       Point{X: -1.5, Y: 2},
		HeightScale: 0.0015,
	},
	{
		Name:        "rastrigin",
		Formula:     "20 + x² − 10cos(2πx) + y² − 10cos(2πy)",
		Func:        Rastrigin,
		XMin:        -5.12,
		XMax:        5.12,
		YMin:        -5.12,
		YMax:        5.12,
		Start:       Point{X: 3.2, Y: -2.7},
		HeightScale: 0.06,
	},
	{
		Name:        "ackley",
		Formula:     "−20e^(−0.2√(0.5(x²+y²))) − e^(0.5(cos2πx+cos2πy)) + e + 20",
		Func:        Ackley,
		XMin:        -5,
		XMax:        5,
		YMin:        -5,
		YMax:        5,
		Start:       Point{X: 3.5, Y: 3},
		HeightScale: 0.3,
	},
	{
		Name:        "himmelblau",
		Formula:     "(x² + y − 11)² + (x + y² − 7)²",
		Func:        Himmelblau,
		XMin:        -5,
		XMax:        5,
		YMin:        -5,
		YMax:        5,
		Start:       Point{X: 0, Y: 0},
		HeightScale: 0.008,
	},
	{
		Name:        "hills",
		Formula:     "opensimplex fBm, 4 octaves",
		Func:        Hills(HillsSeed),
		XMin:        -5,
		XMax:        5,
		YMin:        -5,
		YMax:        5,
		Start:       Point{X: 2, Y: 2},
		HeightScale: 1.5,
	},
}

// Presets returns all registered presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Names returns the preset names in display order.
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a preset by name.
func Lookup(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Index returns the display position of the named preset, or -1.
func Index(name string) int {
	for i, p := range presets {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Bowl is an elongated quadratic bowl with its minimum at the origin.
func Bowl(x, y float64) float64 {
	return 0.5*x*x + 0.2*y*y
}

// Saddle has a stationary point at the origin and is unbounded below along y.
func Saddle(x, y float64) float64 {
	return x*x - y*y
}

// Rosenbrock is the banana valley with its minimum at (1, 1).
func Rosenbrock(x, y float64) float64 {
	a := 1 - x
	b := y - x*x
	return a*a + 100*b*b
}

// Rastrigin is a highly multimodal field with its global minimum at the origin.
func Rastrigin(x, y float64) float64 {
	return 20 + x*x - 10*math.Cos(2*math.Pi*x) + y*y - 10*math.Cos(2*math.Pi*y)
}

// Ackley has a narrow global minimum at the origin inside a flat outer region.
func Ackley(x, y float64) float64 {
	r := math.Sqrt(0.5 * (x*x + y*y))
	c := 0.5 * (math.Cos(2*math.Pi*x) + math.Cos(2*math.Pi*y))
	return -20*math.Exp(-0.2*r) - math.Exp(c) + math.E + 20
}

// Himmelblau has four equal minima, one of them at (3, 2).
func Himmelblau(x, y float64) float64 {
	a := x*x + y - 11
	b := x + y*y - 7
	return a*a + b*b
}

// Hills returns a rolling noise surface built from four octaves of
// OpenSimplex noise. The same seed always yields the same surface.
func Hills(seed int64) Func {
	noise := opensimplex.New(seed)
	return func(x, y float64) float64 {
		var sum float64
		freq, amp := 0.35, 1.0
		for octave := 0; octave < 4; octave++ {
			sum += amp * noise.Eval2(x*freq, y*freq)
			freq *= 2.0
			amp *= 0.5
		}
		return sum
	}
}
