package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/descent/surface"
)

// FrameRenderer draws the domain outline on the floor and the x/y/height axes.
type FrameRenderer struct {
	Divisions int
	GridColor rl.Color
	XColor    rl.Color
	YColor    rl.Color
	UpColor   rl.Color
}

// NewFrameRenderer creates a frame renderer.
func NewFrameRenderer() *FrameRenderer {
	return &FrameRenderer{
		Divisions: 12,
		GridColor: rl.Color{R: 80, G: 80, B: 90, A: 120},
		XColor:    rl.Color{R: 230, G: 80, B: 80, A: 255},
		YColor:    rl.Color{R: 80, G: 130, B: 230, A: 255},
		UpColor:   rl.Color{R: 200, G: 200, B: 200, A: 255},
	}
}

// Floor returns the scene height the floor grid is drawn at for mesh m.
func Floor(m *surface.Mesh) float32 {
	if m == nil || m.Flat() {
		return -0.5
	}
	lo := float32(m.Min * m.Scale)
	hi := float32(m.Max * m.Scale)
	return lo - 0.05*(hi-lo) - 0.01
}

// Draw renders the frame under mesh m. Must be called inside BeginMode3D.
func (r *FrameRenderer) Draw(m *surface.Mesh) {
	if m == nil {
		return
	}
	d := m.Domain
	y := Floor(m)
	x0, x1 := float32(d.XMin), float32(d.XMax)
	z0, z1 := float32(d.YMin), float32(d.YMax)

	n := r.Divisions
	if n < 1 {
		n = 1
	}
	for k := 0; k <= n; k++ {
		t := float32(k) / float32(n)
		x := x0 + t*(x1-x0)
		z := z0 + t*(z1-z0)
		rl.DrawLine3D(rl.Vector3{X: x, Y: y, Z: z0}, rl.Vector3{X: x, Y: y, Z: z1}, r.GridColor)
		rl.DrawLine3D(rl.Vector3{X: x0, Y: y, Z: z}, rl.Vector3{X: x1, Y: y, Z: z}, r.GridColor)
	}

	// Axes from the domain corner
	corner := rl.Vector3{X: x0, Y: y, Z: z0}
	height := float32(d.Extent()) * 0.25
	rl.DrawLine3D(corner, rl.Vector3{X: x1, Y: y, Z: z0}, r.XColor)
	rl.DrawLine3D(corner, rl.Vector3{X: x0, Y: y, Z: z1}, r.YColor)
	rl.DrawLine3D(corner, rl.Vector3{X: x0, Y: y + height, Z: z0}, r.UpColor)
}
