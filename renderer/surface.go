package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/descent/surface"
)

// SurfaceRenderer draws a sampled mesh in immediate mode at identity transform.
type SurfaceRenderer struct {
	mesh      *surface.Mesh
	colors    []rl.Color
	skip      []bool // vertices with non-finite heights
	Wireframe bool
	LineColor rl.Color
}

// NewSurfaceRenderer creates a renderer with no mesh.
func NewSurfaceRenderer() *SurfaceRenderer {
	return &SurfaceRenderer{
		LineColor: rl.Color{R: 20, G: 20, B: 24, A: 90},
	}
}

// SetMesh replaces the mesh and caches its vertex colors.
func (r *SurfaceRenderer) SetMesh(m *surface.Mesh) {
	r.mesh = m
	r.colors = r.colors[:0]
	r.skip = r.skip[:0]
	if m == nil {
		return
	}
	for _, v := range m.Vertices {
		r.colors = append(r.colors, ToColor(v.Color, 255))
		r.skip = append(r.skip, math.IsNaN(v.Height) || math.IsInf(v.Height, 0))
	}
}

// Mesh returns the current mesh.
func (r *SurfaceRenderer) Mesh() *surface.Mesh {
	return r.mesh
}

// Draw renders the mesh. Must be called inside BeginMode3D.
func (r *SurfaceRenderer) Draw() {
	m := r.mesh
	if m == nil || len(m.Indices) == 0 {
		return
	}

	// The surface is seen from below as well as above
	rl.DisableBackfaceCulling()
	defer rl.EnableBackfaceCulling()

	// One batch per grid row keeps each Begin/End well inside raylib's buffer
	perRow := 6 * m.Domain.Steps
	for start := 0; start < len(m.Indices); start += perRow {
		end := min(start+perRow, len(m.Indices))
		rl.Begin(rl.Triangles)
		for t := start; t+2 < end; t += 3 {
			a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
			if r.skip[a] || r.skip[b] || r.skip[c] {
				continue
			}
			r.vertex(a)
			r.vertex(b)
			r.vertex(c)
		}
		rl.End()
	}

	if r.Wireframe {
		r.drawWires()
	}
}

func (r *SurfaceRenderer) vertex(i uint32) {
	c := r.colors[i]
	p := r.mesh.Vertices[i].Position
	rl.Color4ub(c.R, c.G, c.B, c.A)
	rl.Vertex3f(p.X, p.Y, p.Z)
}

// drawWires draws the grid lines along x and y.
func (r *SurfaceRenderer) drawWires() {
	m := r.mesh
	n := m.Domain.Steps + 1
	c := r.LineColor
	for j := 0; j < n; j++ {
		rl.Begin(rl.Lines)
		for i := 0; i+1 < n; i++ {
			r.wire(j*n+i, j*n+i+1, c)
			r.wire(i*n+j, (i+1)*n+j, c)
		}
		rl.End()
	}
}

func (r *SurfaceRenderer) wire(a, b int, c rl.Color) {
	if r.skip[a] || r.skip[b] {
		return
	}
	pa := r.mesh.Vertices[a].Position
	pb := r.mesh.Vertices[b].Position
	rl.Color4ub(c.R, c.G, c.B, c.A)
	rl.Vertex3f(pa.X, pa.Y, pa.Z)
	rl.Color4ub(c.R, c.G, c.B, c.A)
	rl.Vertex3f(pb.X, pb.Y, pb.Z)
}

// Unload frees resources.
func (r *SurfaceRenderer) Unload() {
	r.mesh = nil
	r.colors = nil
	r.skip = nil
}
