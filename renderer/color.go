// Package renderer draws the sampled surface and the descent marker with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/descent/surface"
)

// ToColor converts a palette color to a raylib color with the given alpha.
// Out-of-gamut components are clamped.
func ToColor(c colorful.Color, alpha uint8) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.Color{R: r, G: g, B: b, A: alpha}
}

// ToVector3 converts a scene position.
func ToVector3(v surface.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func fade(c rl.Color, f float32) rl.Color {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	c.A = uint8(float32(c.A) * f)
	return c
}
