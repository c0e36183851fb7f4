package surface

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/descent/field"
)

func TestNewDomainValidation(t *testing.T) {
	tests := []struct {
		name                   string
		xMin, xMax, yMin, yMax float64
		steps                  int
		wantErr                bool
	}{
		{"valid", -1, 1, -2, 2, 10, false},
		{"single step", 0, 1, 0, 1, 1, false},
		{"x reversed", 1, -1, -1, 1, 10, true},
		{"x empty", 1, 1, -1, 1, 10, true},
		{"y reversed", -1, 1, 2, -2, 10, true},
		{"zero steps", -1, 1, -1, 1, 0, true},
		{"negative steps", -1, 1, -1, 1, -3, true},
		{"nan bound", math.NaN(), 1, -1, 1, 10, true},
		{"inf bound", -1, math.Inf(1), -1, 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDomain(tt.xMin, tt.xMax, tt.yMin, tt.yMax, tt.steps)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDomain) {
					t.Errorf("expected ErrInvalidDomain, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDomainGridEndpoints(t *testing.T) {
	d, err := NewDomain(-6, 6, -1, 3, 7)
	if err != nil {
		t.Fatal(err)
	}
	if d.X(0) != -6 || d.X(7) != 6 {
		t.Errorf("x endpoints: got %v, %v", d.X(0), d.X(7))
	}
	if d.Y(0) != -1 || d.Y(7) != 3 {
		t.Errorf("y endpoints: got %v, %v", d.Y(0), d.Y(7))
	}

	// Equal spacing
	step := 12.0 / 7
	for i := 1; i <= 7; i++ {
		if math.Abs(d.X(i)-d.X(i-1)-step) > 1e-12 {
			t.Errorf("uneven spacing at column %d", i)
		}
	}
}

func TestDomainContainsClampCenter(t *testing.T) {
	d, _ := NewDomain(-2, 2, 0, 4, 4)

	if !d.Contains(2, 4) || !d.Contains(0, 1) {
		t.Error("expected edge and interior points to be contained")
	}
	if d.Contains(2.01, 1) || d.Contains(0, -0.1) {
		t.Error("expected outside points to be rejected")
	}

	x, y := d.Clamp(5, -3)
	if x != 2 || y != 0 {
		t.Errorf("Clamp(5, -3) = (%v, %v), want (2, 0)", x, y)
	}

	if c := d.Center(); c != (field.Point{X: 0, Y: 2}) {
		t.Errorf("Center() = %+v", c)
	}
	if e := d.Extent(); e != 4 {
		t.Errorf("Extent() = %v, want 4", e)
	}
}

func TestFromPreset(t *testing.T) {
	p, _ := field.Lookup("bowl")
	d, err := FromPreset(p, 30)
	if err != nil {
		t.Fatal(err)
	}
	if d.XMin != -6 || d.XMax != 6 || d.Steps != 30 {
		t.Errorf("unexpected domain %+v", d)
	}

	if _, err := FromPreset(p, 0); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("expected ErrInvalidDomain, got %v", err)
	}
}
