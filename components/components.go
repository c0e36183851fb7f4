// Package components defines ECS components for scene entities.
package components

// Position is a point in scene space (Y up).
type Position struct {
	X, Y, Z float32
}

// Crumb marks a trail breadcrumb left behind by the descent marker.
type Crumb struct {
	Tick int   // descent tick the crumb was dropped on
	Age  int32 // drops since this crumb was created
}
