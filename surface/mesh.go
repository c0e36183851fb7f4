package surface

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/descent/field"
)

// Vec3 is a position in scene space. Y is up.
type Vec3 struct {
	X, Y, Z float32
}

// Vertex is one sampled grid point.
type Vertex struct {
	Position Vec3 // (x, height*scale, y)
	Color    colorful.Color
	Height   float64 // raw field value
}

// Mesh is a sampled, colored triangle grid.
// Vertices are stored row-major with x varying fastest; Indices holds three
// entries per triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	Domain Domain
	Scale  float64

	// Field extremes over the grid
	Min, Max float64
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c Vertex) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Flat reports whether every sample had the same height.
func (m *Mesh) Flat() bool {
	return m.Min == m.Max
}

// Sample evaluates f on the domain grid and builds the colored mesh.
// Heights are scaled by scale into scene Y. Non-finite field values are
// passed through untouched.
func Sample(f field.Func, d Domain, scale float64, p Palette) (*Mesh, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	n := d.Steps + 1
	heights := make([]float64, n*n)
	for j := 0; j < n; j++ {
		y := d.Y(j)
		for i := 0; i < n; i++ {
			heights[j*n+i] = f(d.X(i), y)
		}
	}

	m := &Mesh{
		Vertices: make([]Vertex, n*n),
		Indices:  make([]uint32, 0, 6*d.Steps*d.Steps),
		Domain:   d,
		Scale:    scale,
		Min:      floats.Min(heights),
		Max:      floats.Max(heights),
	}

	span := m.Max - m.Min
	for j := 0; j < n; j++ {
		y := d.Y(j)
		for i := 0; i < n; i++ {
			h := heights[j*n+i]

			color := p.Mid
			if !m.Flat() {
				color = p.At((h - m.Min) / span)
			}

			m.Vertices[j*n+i] = Vertex{
				Position: Vec3{X: float32(d.X(i)), Y: float32(h * scale), Z: float32(y)},
				Color:    color,
				Height:   h,
			}
		}
	}

	// Two triangles per quad, counter-clockwise seen from +Y
	for j := 0; j < d.Steps; j++ {
		for i := 0; i < d.Steps; i++ {
			a := uint32(j*n + i)
			b := a + 1
			c := a + uint32(n)
			dd := c + 1
			m.Indices = append(m.Indices, a, c, b, b, c, dd)
		}
	}

	return m, nil
}

// Point maps a domain position onto the surface in scene space.
func Point(f field.Func, x, y, scale float64) Vec3 {
	return Vec3{X: float32(x), Y: float32(f(x, y) * scale), Z: float32(y)}
}
