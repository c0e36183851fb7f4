// Package systems provides ECS systems for scene entities.
package systems

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/descent/components"
)

// TrailPoint is a breadcrumb ready for drawing.
type TrailPoint struct {
	Pos  components.Position
	Tick int
	Fade float32 // 1 for the newest crumb, approaching 0 for the oldest
}

// TrailSystem keeps a bounded trail of breadcrumbs as ECS entities.
// Each drop ages the existing crumbs and removes those past the max length.
type TrailSystem struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Crumb]
	filter ecs.Filter2[components.Position, components.Crumb]

	maxLength int
	count     int

	expired []ecs.Entity // reused between drops
	points  []TrailPoint // reused between Points calls
}

// NewTrailSystem creates a trail that keeps at most maxLength crumbs.
func NewTrailSystem(w *ecs.World, maxLength int) *TrailSystem {
	if maxLength < 1 {
		maxLength = 1
	}
	return &TrailSystem{
		world:     w,
		mapper:    ecs.NewMap2[components.Position, components.Crumb](w),
		filter:    *ecs.NewFilter2[components.Position, components.Crumb](w),
		maxLength: maxLength,
	}
}

// Drop ages existing crumbs, adds one at pos and prunes the oldest.
func (s *TrailSystem) Drop(pos components.Position, tick int) {
	s.expired = s.expired[:0]

	query := s.filter.Query()
	for query.Next() {
		_, crumb := query.Get()
		crumb.Age++
		if int(crumb.Age) >= s.maxLength {
			s.expired = append(s.expired, query.Entity())
		}
	}

	// Remove after the query completes
	for _, e := range s.expired {
		s.world.RemoveEntity(e)
		s.count--
	}

	crumb := components.Crumb{Tick: tick}
	s.mapper.NewEntity(&pos, &crumb)
	s.count++
}

// Clear removes every crumb.
func (s *TrailSystem) Clear() {
	s.expired = s.expired[:0]
	query := s.filter.Query()
	for query.Next() {
		s.expired = append(s.expired, query.Entity())
	}
	for _, e := range s.expired {
		s.world.RemoveEntity(e)
	}
	s.count = 0
}

// Len returns the number of crumbs.
func (s *TrailSystem) Len() int {
	return s.count
}

// MaxLength returns the crumb limit.
func (s *TrailSystem) MaxLength() int {
	return s.maxLength
}

// Points returns the crumbs oldest first. The slice is reused by the next call.
func (s *TrailSystem) Points() []TrailPoint {
	s.points = s.points[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, crumb := query.Get()
		s.points = append(s.points, TrailPoint{
			Pos:  *pos,
			Tick: crumb.Tick,
			Fade: 1 - float32(crumb.Age)/float32(s.maxLength),
		})
	}
	sort.Slice(s.points, func(i, j int) bool {
		return s.points[i].Tick < s.points[j].Tick
	})
	return s.points
}
