// Package surface samples a scalar field over a rectangular domain and turns
// the samples into a colored triangle mesh.
package surface

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/descent/field"
)

// ErrInvalidDomain is returned for domains with empty extents, non-finite
// bounds or fewer than one step per axis.
var ErrInvalidDomain = errors.New("surface: invalid domain")

// Domain is an axis-aligned rectangle sampled on a regular grid of
// Steps intervals per axis.
type Domain struct {
	XMin, XMax float64
	YMin, YMax float64
	Steps      int
}

// NewDomain validates and returns a domain.
func NewDomain(xMin, xMax, yMin, yMax float64, steps int) (Domain, error) {
	d := Domain{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax, Steps: steps}
	if err := d.Validate(); err != nil {
		return Domain{}, err
	}
	return d, nil
}

// FromPreset builds the domain a preset is displayed over.
func FromPreset(p field.Preset, steps int) (Domain, error) {
	d, err := NewDomain(p.XMin, p.XMax, p.YMin, p.YMax, steps)
	if err != nil {
		return Domain{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return d, nil
}

// Validate checks the domain invariants.
func (d Domain) Validate() error {
	for _, v := range [...]float64{d.XMin, d.XMax, d.YMin, d.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound %v", ErrInvalidDomain, v)
		}
	}
	if d.XMin >= d.XMax {
		return fmt.Errorf("%w: xMin %v >= xMax %v", ErrInvalidDomain, d.XMin, d.XMax)
	}
	if d.YMin >= d.YMax {
		return fmt.Errorf("%w: yMin %v >= yMax %v", ErrInvalidDomain, d.YMin, d.YMax)
	}
	if d.Steps < 1 {
		return fmt.Errorf("%w: steps %d < 1", ErrInvalidDomain, d.Steps)
	}
	return nil
}

// X returns the x coordinate of grid column i (0..Steps).
func (d Domain) X(i int) float64 {
	if i == d.Steps {
		return d.XMax
	}
	return d.XMin + (d.XMax-d.XMin)*float64(i)/float64(d.Steps)
}

// Y returns the y coordinate of grid row j (0..Steps).
func (d Domain) Y(j int) float64 {
	if j == d.Steps {
		return d.YMax
	}
	return d.YMin + (d.YMax-d.YMin)*float64(j)/float64(d.Steps)
}

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (d Domain) Contains(x, y float64) bool {
	return x >= d.XMin && x <= d.XMax && y >= d.YMin && y <= d.YMax
}

// Clamp pulls (x, y) onto the rectangle.
func (d Domain) Clamp(x, y float64) (float64, float64) {
	return math.Min(math.Max(x, d.XMin), d.XMax), math.Min(math.Max(y, d.YMin), d.YMax)
}

// Center returns the middle of the rectangle.
func (d Domain) Center() field.Point {
	return field.Point{X: (d.XMin + d.XMax) / 2, Y: (d.YMin + d.YMax) / 2}
}

// Extent returns the larger of the two side lengths.
func (d Domain) Extent() float64 {
	return math.Max(d.XMax-d.XMin, d.YMax-d.YMin)
}
