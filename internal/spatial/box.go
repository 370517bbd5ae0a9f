package spatial

import (
	gomath "math"

	"github.com/Faultbox/hamsterrun/pkg/math"
)

// Box is an axis-aligned solid box.
type Box struct {
	Min math.Vec3
	Max math.Vec3
}

// NewBox creates a box from two corners, handling swapped coordinates.
func NewBox(a, b math.Vec3) Box {
	box := Box{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Expand grows the box by r on every side.
func (b Box) Expand(r float32) Box {
	d := math.Vec3{X: r, Y: r, Z: r}
	return Box{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// ClosestPoint returns the point of the box nearest to p.
func (b Box) ClosestPoint(p math.Vec3) math.Vec3 {
	return math.Vec3{
		X: math.Clamp(p.X, b.Min.X, b.Max.X),
		Y: math.Clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: math.Clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

// SphereCast sweeps the sphere as a ray against the box grown by the radius.
// Corners are treated as square, which over-reports hits by at most
// radius*(sqrt(3)-1).
func (b Box) SphereCast(origin math.Vec3, radius float32, direction math.Vec3, maxDistance float32) (Hit, bool) {
	dir := direction.Normalize()
	grown := b.Expand(radius)
	if grown.Contains(origin) {
		return Hit{}, false // Already overlapping
	}

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{grown.Min.X, grown.Min.Y, grown.Min.Z}
	hi := [3]float32{grown.Max.X, grown.Max.Y, grown.Max.Z}

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	axis, sign := -1, float32(0)

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return Hit{}, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		s := float32(-1) // entering through the min face
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin = t1
			axis, sign = i, s
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmin < 0 || tmin > maxDistance || axis < 0 {
		return Hit{}, false
	}

	var n [3]float32
	n[axis] = sign
	center := origin.Add(dir.Scale(tmin))
	return Hit{
		Distance: tmin,
		Point:    b.ClosestPoint(center),
		Normal:   math.Vec3{X: n[0], Y: n[1], Z: n[2]},
	}, true
}
