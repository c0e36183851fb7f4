package surface

import (
	"errors"
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/descent/field"
)

func mustDomain(t testing.TB, xMin, xMax, yMin, yMax float64, steps int) Domain {
	t.Helper()
	d, err := NewDomain(xMin, xMax, yMin, yMax, steps)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	return d
}

func TestSampleCounts(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17, 60} {
		d := mustDomain(t, -1, 1, -1, 1, n)
		m, err := Sample(field.Bowl, d, 1, DefaultPalette())
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if got, want := m.VertexCount(), (n+1)*(n+1); got != want {
			t.Errorf("steps=%d: got %d vertices, want %d", n, got, want)
		}
		if got, want := m.TriangleCount(), 2*n*n; got != want {
			t.Errorf("steps=%d: got %d triangles, want %d", n, got, want)
		}
	}
}

func TestSampleRejectsInvalidDomain(t *testing.T) {
	d := Domain{XMin: 1, XMax: -1, YMin: 0, YMax: 1, Steps: 4}
	if _, err := Sample(field.Bowl, d, 1, DefaultPalette()); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("expected ErrInvalidDomain, got %v", err)
	}
}

func TestSamplePositions(t *testing.T) {
	d := mustDomain(t, -6, 6, -6, 6, 4)
	m, _ := Sample(field.Bowl, d, 0.5, DefaultPalette())

	// Row-major, x fastest: vertex 1 is (x=-3, y=-6)
	v := m.Vertices[1]
	want := Vec3{X: -3, Y: float32(field.Bowl(-3, -6) * 0.5), Z: -6}
	if v.Position != want {
		t.Errorf("vertex 1 position = %+v, want %+v", v.Position, want)
	}
	if v.Height != field.Bowl(-3, -6) {
		t.Errorf("vertex 1 height = %v", v.Height)
	}

	if m.Min != 0 {
		t.Errorf("expected min 0 at origin sample, got %v", m.Min)
	}
	if m.Max != field.Bowl(6, 6) {
		t.Errorf("expected max at corner, got %v", m.Max)
	}
}

func TestSampleWinding(t *testing.T) {
	d := mustDomain(t, 0, 1, 0, 1, 3)
	m, _ := Sample(field.Constant(0), d, 1, DefaultPalette())

	// On a flat surface every triangle normal must point up (+Y).
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		e1x, e1z := b.Position.X-a.Position.X, b.Position.Z-a.Position.Z
		e2x, e2z := c.Position.X-a.Position.X, c.Position.Z-a.Position.Z
		// Y component of e1 x e2
		ny := e1z*e2x - e1x*e2z
		if ny <= 0 {
			t.Fatalf("triangle %d faces down (ny=%v)", i, ny)
		}
	}
}

func TestSampleFlatFieldUsesMidColor(t *testing.T) {
	p := DefaultPalette()
	d := mustDomain(t, -3, 3, -3, 3, 8)
	m, _ := Sample(field.Constant(4.2), d, 1, p)

	if !m.Flat() {
		t.Fatal("expected flat mesh")
	}
	for i, v := range m.Vertices {
		if v.Color != p.Mid {
			t.Fatalf("vertex %d color %+v, want mid %+v", i, v.Color, p.Mid)
		}
	}
}

func TestSampleColorRampMonotonic(t *testing.T) {
	// A gray ramp makes the position along the ramp readable from any channel.
	p := Palette{
		Low:  colorful.Color{R: 0, G: 0, B: 0},
		Mid:  colorful.Color{R: 0.5, G: 0.5, B: 0.5},
		High: colorful.Color{R: 1, G: 1, B: 1},
	}
	// Increasing along x only, so vertex order within a row is increasing height.
	d := mustDomain(t, 0, 10, 0, 1, 40)
	m, _ := Sample(func(x, y float64) float64 { return x * x }, d, 1, p)

	row := m.Vertices[:d.Steps+1]
	if row[0].Color != p.Low {
		t.Errorf("expected low color at minimum, got %+v", row[0].Color)
	}
	if last := row[len(row)-1].Color; math.Abs(last.R-1) > 1e-12 {
		t.Errorf("expected high color at maximum, got %+v", last)
	}
	for i := 1; i < len(row); i++ {
		if row[i].Color.R < row[i-1].Color.R {
			t.Errorf("ramp position decreased at %d: %v -> %v", i, row[i-1].Color.R, row[i].Color.R)
		}
	}

	// Default ramp runs green to red: the red channel never decreases.
	m, _ = Sample(func(x, y float64) float64 { return x * x }, d, 1, DefaultPalette())
	row = m.Vertices[:d.Steps+1]
	for i := 1; i < len(row); i++ {
		if row[i].Color.R < row[i-1].Color.R-1e-12 {
			t.Errorf("red channel decreased at %d", i)
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	d := mustDomain(t, -5.12, 5.12, -5.12, 5.12, 25)
	a, _ := Sample(field.Rastrigin, d, 0.1, DefaultPalette())
	b, _ := Sample(field.Rastrigin, d, 0.1, DefaultPalette())

	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs between runs", i)
		}
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Fatalf("index %d differs between runs", i)
		}
	}
}

func TestSampleNonFinitePassesThrough(t *testing.T) {
	d := mustDomain(t, -1, 1, -1, 1, 2)
	f := func(x, y float64) float64 {
		if x == 0 && y == 0 {
			return math.Inf(1)
		}
		return x + y
	}
	m, err := Sample(f, d, 1, DefaultPalette())
	if err != nil {
		t.Fatalf("non-finite heights must not be rejected: %v", err)
	}

	center := m.Vertices[4]
	if !math.IsInf(center.Height, 1) || !math.IsInf(float64(center.Position.Y), 1) {
		t.Errorf("expected +Inf to propagate, got height %v y %v", center.Height, center.Position.Y)
	}
	if !math.IsInf(m.Max, 1) {
		t.Errorf("expected max +Inf, got %v", m.Max)
	}
}

func TestSurfacePoint(t *testing.T) {
	p := Point(field.Bowl, 2, -1, 0.5)
	want := Vec3{X: 2, Y: float32(field.Bowl(2, -1) * 0.5), Z: -1}
	if p != want {
		t.Errorf("Point = %+v, want %+v", p, want)
	}
}

func BenchmarkSample60(b *testing.B) {
	d := mustDomain(b, -5, 5, -5, 5, 60)
	p := DefaultPalette()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_, _ = Sample(field.Ackley, d, 0.3, p)
	}
}
