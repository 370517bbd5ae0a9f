package locomotion

import (
	"github.com/Faultbox/hamsterrun/internal/spatial"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

// lookRaw computes the unsmoothed look pitch for pose. The upper probe wins
// when both report; nothing ahead looks fully down.
func lookRaw(q spatial.Query, cfg Config, p Pose) float32 {
	if d, ok := castLook(q, p, cfg.LookUp); ok {
		return math.Clamp(1-span(d, cfg.LookUp), -1, 1)
	}
	if d, ok := castLook(q, p, cfg.LookDown); ok {
		return math.Clamp(min(0, -span(d, cfg.LookDown)), -1, 1)
	}
	return -1
}

func castLook(q spatial.Query, p Pose, probe LookProbe) (float32, bool) {
	dir := p.Rotation.Rotate(probe.Direction).Normalize()
	hit, ok := q.SphereCast(p.Point(probe.Offset), probe.Radius, dir, probe.MaxDist)
	if !ok {
		return 0, false
	}
	return hit.Distance, true
}

// span maps d onto [MinDist, MaxDist] as 0..1.
func span(d float32, probe LookProbe) float32 {
	width := probe.MaxDist - probe.MinDist
	if width <= 0 {
		if d <= probe.MinDist {
			return 0
		}
		return 1
	}
	return (d - probe.MinDist) / width
}

// smoothLook moves the carried pitch toward raw.
func smoothLook(cfg Config, s State, raw, dt float32) State {
	if cfg.LookDamp <= 0 {
		s.LookPitch, s.LookVelocity = raw, 0
	} else {
		s.LookPitch, s.LookVelocity = math.SmoothDamp(s.LookPitch, raw, s.LookVelocity, cfg.LookDamp, dt)
	}
	s.LookPitch = math.Clamp(s.LookPitch, -1, 1)
	return s
}
