// Package camera provides a 3D orbit camera for viewing the surface.
package camera

import "math"

// Camera orbits a target point at a given distance.
// Yaw turns around the vertical axis; pitch tilts up from the ground plane.
type Camera struct {
	// Target is the orbit center in scene coordinates
	TargetX, TargetY, TargetZ float32

	// Orbit angles in radians
	Yaw, Pitch float32

	// Distance from target to eye
	Distance float32

	// Constraints
	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	// Values restored by Reset
	homeYaw, homePitch, homeDistance float32
}

// New creates an orbit camera. Angles are given in degrees.
func New(yawDeg, pitchDeg, distance, minDistance, maxDistance float32) *Camera {
	c := &Camera{
		MinDistance: minDistance,
		MaxDistance: maxDistance,
		// Stay just short of the poles so the up vector stays valid
		MinPitch: radians(5),
		MaxPitch: radians(89),
	}
	c.homeYaw = radians(yawDeg)
	c.homePitch = clamp(radians(pitchDeg), c.MinPitch, c.MaxPitch)
	c.homeDistance = clamp(distance, minDistance, maxDistance)
	c.Reset()
	return c
}

// Reset returns the camera to its initial angles and distance.
func (c *Camera) Reset() {
	c.Yaw = c.homeYaw
	c.Pitch = c.homePitch
	c.Distance = c.homeDistance
}

// SetTarget moves the orbit center.
func (c *Camera) SetTarget(x, y, z float32) {
	c.TargetX, c.TargetY, c.TargetZ = x, y, z
}

// Orbit rotates the camera by the given yaw and pitch deltas (radians).
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = wrapAngle(c.Yaw + dYaw)
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// ZoomBy multiplies magnification by factor (>1 moves closer).
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance = clamp(c.Distance/factor, c.MinDistance, c.MaxDistance)
}

// Position returns the eye position in scene coordinates.
func (c *Camera) Position() (x, y, z float32) {
	cp := float32(math.Cos(float64(c.Pitch)))
	sp := float32(math.Sin(float64(c.Pitch)))
	cy := float32(math.Cos(float64(c.Yaw)))
	sy := float32(math.Sin(float64(c.Yaw)))

	x = c.TargetX + c.Distance*cp*cy
	y = c.TargetY + c.Distance*sp
	z = c.TargetZ + c.Distance*cp*sy
	return x, y, z
}

func radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// wrapAngle wraps an angle to [-pi, pi].
func wrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
