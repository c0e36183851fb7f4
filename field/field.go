// Package field defines scalar fields over the plane and the preset surfaces
// the visualizer ships with.
package field

import "math"

// Func is a scalar field: a pure function from (x, y) to a height.
type Func func(x, y float64) float64

// Point is a position in the field's domain.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Constant returns a field that is c everywhere.
func Constant(c float64) Func {
	return func(x, y float64) float64 { return c }
}
