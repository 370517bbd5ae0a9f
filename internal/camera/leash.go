package camera

import "github.com/Faultbox/hamsterrun/pkg/math"

// Leash keeps position within maxDistance of target, pulling it straight
// toward the target when it strays.
func Leash(position, target math.Vec3, maxDistance float32) math.Vec3 {
	d := position.Sub(target)
	dist := d.Length()
	if dist <= maxDistance || dist == 0 {
		return position
	}
	return target.Add(d.Scale(maxDistance / dist))
}
