package surface

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is a three-stop color ramp: Low at the field minimum, Mid halfway,
// High at the field maximum.
type Palette struct {
	Low, Mid, High colorful.Color
}

// DefaultPalette runs green (low) through yellow to red (high).
func DefaultPalette() Palette {
	return Palette{
		Low:  colorful.Color{R: 0x2e / 255.0, G: 0xcc / 255.0, B: 0x40 / 255.0},
		Mid:  colorful.Color{R: 1, G: 0xdc / 255.0, B: 0},
		High: colorful.Color{R: 1, G: 0x41 / 255.0, B: 0x36 / 255.0},
	}
}

// ParsePalette builds a palette from hex strings such as "#2ecc40".
func ParsePalette(low, mid, high string) (Palette, error) {
	var p Palette
	var err error
	if p.Low, err = colorful.Hex(low); err != nil {
		return Palette{}, fmt.Errorf("parsing low color %q: %w", low, err)
	}
	if p.Mid, err = colorful.Hex(mid); err != nil {
		return Palette{}, fmt.Errorf("parsing mid color %q: %w", mid, err)
	}
	if p.High, err = colorful.Hex(high); err != nil {
		return Palette{}, fmt.Errorf("parsing high color %q: %w", high, err)
	}
	return p, nil
}

// At maps a normalized height t in [0, 1] onto the ramp using two linear
// segments: Low→Mid over [0, 0.5] and Mid→High over (0.5, 1].
func (p Palette) At(t float64) colorful.Color {
	if t <= 0.5 {
		return p.Low.BlendRgb(p.Mid, t*2)
	}
	return p.Mid.BlendRgb(p.High, (t-0.5)*2)
}
