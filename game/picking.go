package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/descent/field"
	"github.com/pthm-cable/descent/renderer"
)

// pickDomainPoint casts a ray from a screen point onto the mesh and returns
// the domain coordinates of the nearest hit. The mesh is drawn at identity,
// so the hit point's (X, Z) are the domain (x, y).
func (g *Game) pickDomainPoint(screen rl.Vector2) (field.Point, bool) {
	if g.mesh == nil || g.camera == nil {
		return field.Point{}, false
	}
	ray := rl.GetScreenToWorldRay(screen, g.camera3D())

	best := rl.RayCollision{Distance: float32(math.Inf(1))}
	for i := 0; i < g.mesh.TriangleCount(); i++ {
		a, b, c := g.mesh.Triangle(i)
		if !isFinite(a.Height) || !isFinite(b.Height) || !isFinite(c.Height) {
			continue
		}
		hit := rl.GetRayCollisionTriangle(ray,
			renderer.ToVector3(a.Position),
			renderer.ToVector3(b.Position),
			renderer.ToVector3(c.Position),
		)
		if hit.Hit && hit.Distance < best.Distance {
			best = hit
		}
	}
	if !best.Hit {
		return field.Point{}, false
	}

	x, y := g.domain.Clamp(float64(best.Point.X), float64(best.Point.Z))
	return field.Point{X: x, Y: y}, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isFinite32(v float32) bool {
	return isFinite(float64(v))
}
