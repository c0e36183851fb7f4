package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/descent/systems"
	"github.com/pthm-cable/descent/surface"
)

// MarkerRenderer draws the descent marker, its trail and the reference minimum.
type MarkerRenderer struct {
	Radius         float32
	MarkerColor    rl.Color
	TrailColor     rl.Color
	ReferenceColor rl.Color
	StartColor     rl.Color
}

// NewMarkerRenderer creates a marker renderer with the given marker radius.
func NewMarkerRenderer(radius float32) *MarkerRenderer {
	return &MarkerRenderer{
		Radius:         radius,
		MarkerColor:    rl.Color{R: 30, G: 144, B: 255, A: 255},
		TrailColor:     rl.Color{R: 240, G: 240, B: 255, A: 230},
		ReferenceColor: rl.Color{R: 255, G: 255, B: 255, A: 200},
		StartColor:     rl.Color{R: 180, G: 180, B: 200, A: 160},
	}
}

// Draw renders the marker at p. Non-finite positions are not drawn.
func (r *MarkerRenderer) Draw(p surface.Vec3) {
	if !finite(p) {
		return
	}
	rl.DrawSphere(ToVector3(p), r.Radius, r.MarkerColor)
	rl.DrawSphereWires(ToVector3(p), r.Radius*1.05, 8, 8, rl.Color{R: 10, G: 40, B: 90, A: 160})
}

// DrawStart marks the configured start position.
func (r *MarkerRenderer) DrawStart(p surface.Vec3) {
	if !finite(p) {
		return
	}
	rl.DrawSphereWires(ToVector3(p), r.Radius*0.7, 6, 6, r.StartColor)
}

// DrawTrail connects the trail points, fading with age.
func (r *MarkerRenderer) DrawTrail(points []systems.TrailPoint) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		pa := surface.Vec3{X: a.Pos.X, Y: a.Pos.Y, Z: a.Pos.Z}
		pb := surface.Vec3{X: b.Pos.X, Y: b.Pos.Y, Z: b.Pos.Z}
		if !finite(pa) || !finite(pb) {
			continue
		}
		rl.DrawLine3D(ToVector3(pa), ToVector3(pb), fade(r.TrailColor, b.Fade))
	}
}

// DrawReference marks the reference minimum with a wire cube and a drop line
// to the floor.
func (r *MarkerRenderer) DrawReference(p surface.Vec3, floor float32) {
	if !finite(p) {
		return
	}
	size := r.Radius * 1.6
	rl.DrawCubeWires(ToVector3(p), size, size, size, r.ReferenceColor)
	rl.DrawLine3D(ToVector3(p), rl.Vector3{X: p.X, Y: floor, Z: p.Z}, fade(r.ReferenceColor, 0.5))
}

func finite(p surface.Vec3) bool {
	for _, v := range []float32{p.X, p.Y, p.Z} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
