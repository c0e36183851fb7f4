package surface

import (
	"math"
	"testing"
)

func TestPaletteEndpoints(t *testing.T) {
	p := DefaultPalette()

	if got := p.At(0); got != p.Low {
		t.Errorf("At(0) = %+v, want low %+v", got, p.Low)
	}
	mid := p.At(0.5)
	if math.Abs(mid.R-p.Mid.R) > 1e-12 || math.Abs(mid.G-p.Mid.G) > 1e-12 || math.Abs(mid.B-p.Mid.B) > 1e-12 {
		t.Errorf("At(0.5) = %+v, want mid %+v", mid, p.Mid)
	}
}

func TestPaletteSegmentsLinear(t *testing.T) {
	p := DefaultPalette()

	// Quarter point is halfway along the first segment
	q := p.At(0.25)
	wantR := (p.Low.R + p.Mid.R) / 2
	if math.Abs(q.R-wantR) > 1e-12 {
		t.Errorf("At(0.25).R = %v, want %v", q.R, wantR)
	}

	// Three-quarter point is halfway along the second segment
	q = p.At(0.75)
	wantG := (p.Mid.G + p.High.G) / 2
	if math.Abs(q.G-wantG) > 1e-12 {
		t.Errorf("At(0.75).G = %v, want %v", q.G, wantG)
	}
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette("#2ecc40", "#ffdc00", "#ff4136")
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	def := DefaultPalette()
	for _, pair := range [][2]float64{
		{p.Low.R, def.Low.R}, {p.Low.G, def.Low.G}, {p.Mid.G, def.Mid.G}, {p.High.B, def.High.B},
	} {
		if math.Abs(pair[0]-pair[1]) > 1e-9 {
			t.Errorf("parsed channel %v, want %v", pair[0], pair[1])
		}
	}

	if _, err := ParsePalette("green", "#ffdc00", "#ff4136"); err == nil {
		t.Error("expected error for non-hex color")
	}
}
