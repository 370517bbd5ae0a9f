// Package spatial provides sphere-cast queries against a static scene.
//
// Casts follow the usual engine convention: the sphere is swept from origin
// along a unit direction, Hit.Distance is how far the sphere centre travelled
// before touching a surface, and colliders that already overlap the sphere at
// the origin are ignored.
package spatial

import (
	"github.com/Faultbox/hamsterrun/pkg/math"
)

// Hit describes the first contact of a sphere cast.
type Hit struct {
	Distance float32   // Distance travelled by the sphere centre
	Point    math.Vec3 // Contact point on the surface
	Normal   math.Vec3 // Surface normal at the contact
}

// Query answers sphere casts. Implementations must be deterministic for a
// static scene.
type Query interface {
	SphereCast(origin math.Vec3, radius float32, direction math.Vec3, maxDistance float32) (Hit, bool)
}

// Collider is a single piece of scene geometry.
type Collider interface {
	Query
}

// Scene is a set of colliders queried as one.
type Scene struct {
	colliders []Collider
}

// NewScene creates a scene from colliders.
func NewScene(colliders ...Collider) *Scene {
	return &Scene{colliders: colliders}
}

// Add appends a collider to the scene.
func (s *Scene) Add(c Collider) {
	s.colliders = append(s.colliders, c)
}

// Len returns the number of colliders.
func (s *Scene) Len() int {
	return len(s.colliders)
}

// SphereCast returns the nearest hit across all colliders.
func (s *Scene) SphereCast(origin math.Vec3, radius float32, direction math.Vec3, maxDistance float32) (Hit, bool) {
	dir := direction.Normalize()
	if dir == (math.Vec3{}) || maxDistance <= 0 || radius < 0 {
		return Hit{}, false
	}

	var best Hit
	found := false
	for _, c := range s.colliders {
		h, ok := c.SphereCast(origin, radius, dir, maxDistance)
		if !ok {
			continue
		}
		if !found || h.Distance < best.Distance {
			best = h
			found = true
		}
	}
	return best, found
}

// Floor is an infinite horizontal plane at height Y, solid below.
type Floor struct {
	Y float32
}

// SphereCast implements Query.
func (f Floor) SphereCast(origin math.Vec3, radius float32, direction math.Vec3, maxDistance float32) (Hit, bool) {
	dir := direction.Normalize()
	if dir.Y >= 0 {
		return Hit{}, false // Moving away or parallel
	}
	gap := origin.Y - radius - f.Y
	if gap < 0 {
		return Hit{}, false // Already overlapping
	}
	t := gap / -dir.Y
	if t > maxDistance {
		return Hit{}, false
	}
	center := origin.Add(dir.Scale(t))
	return Hit{
		Distance: t,
		Point:    math.Vec3{X: center.X, Y: f.Y, Z: center.Z},
		Normal:   math.Up,
	}, true
}
