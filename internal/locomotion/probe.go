package locomotion

import (
	"github.com/Faultbox/hamsterrun/internal/spatial"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

// checkStep probes the ground under one anchor and returns the clamped
// correction. margin shrinks the probe sphere.
func checkStep(q spatial.Query, cfg Config, origin, down math.Vec3, margin, step float32) FootHold {
	hold := FootHold{Position: origin}
	radius := cfg.CastRadius - margin
	hit, ok := q.SphereCast(origin, radius, down, cfg.MaxDistance)
	if !ok {
		return hold
	}
	hold.Hit = true
	hold.Dist = math.Clamp(hit.Distance+radius-cfg.FloorDistance, -step, step)
	hold.Position = origin.Add(down.Scale(hold.Dist))
	return hold
}

// checkRadar casts a side probe. A hit returns a negative shift that grows
// as the obstruction gets closer.
func checkRadar(q spatial.Query, cfg Config, origin, dir math.Vec3) (float32, bool) {
	hit, ok := q.SphereCast(origin, cfg.CastRadiusSides, dir, cfg.FrontDistance)
	if !ok {
		return 0, false
	}
	return -(cfg.FrontDistance - hit.Distance) / cfg.FrontDistance * cfg.ReachUpFactor, true
}

// probeFeet runs the four foot probes and the radar passes for pose.
// Each pair first casts along body-up; a hit blocks travel toward that end
// and skips the outward radar, whose averaged shift otherwise lifts the pair.
func probeFeet(q spatial.Query, cfg Config, p Pose, margin, step float32) Footing {
	up := p.Up()
	down := up.Neg()
	fwd := p.Forward()

	var anchors [4]math.Vec3
	var f Footing
	for i, c := range Corners {
		anchors[i] = p.Point(cfg.Anchors.At(c))
		f.Holds[i] = checkStep(q, cfg, anchors[i], down, margin, step)
	}

	pair := func(left, right Corner, out math.Vec3) bool {
		_, hitL := checkRadar(q, cfg, anchors[left], up)
		_, hitR := checkRadar(q, cfg, anchors[right], up)
		if hitL || hitR {
			return false
		}
		shiftL, _ := checkRadar(q, cfg, anchors[left], out)
		shiftR, _ := checkRadar(q, cfg, anchors[right], out)
		shift := (shiftL + shiftR) / 2
		for _, c := range [2]Corner{left, right} {
			h := &f.Holds[c]
			h.Dist = math.Clamp(h.Dist+shift, -step, step)
			h.Position = anchors[c].Add(down.Scale(h.Dist))
		}
		return true
	}

	f.CanForward = pair(FrontLeft, FrontRight, fwd)
	f.CanBackward = pair(BackLeft, BackRight, fwd.Neg())
	return f
}

// plane is the support surface fitted to the corrected feet.
type plane struct {
	Forward math.Vec3
	Up      math.Vec3
	Offset  float32 // Mean correction along body-down
}

// derivePlane averages the side and cross edges of the foot quad into an
// orthonormal frame.
func derivePlane(f Footing) plane {
	fl := f.Holds[FrontLeft].Position
	fr := f.Holds[FrontRight].Position
	bl := f.Holds[BackLeft].Position
	br := f.Holds[BackRight].Position

	fwd := fr.Sub(br).Normalize().Add(fl.Sub(bl).Normalize()).Scale(0.5)
	right := fr.Sub(fl).Normalize().Add(br.Sub(bl).Normalize()).Scale(0.5)
	fwd, right = math.OrthoNormalize(fwd, right)

	return plane{
		Forward: fwd,
		Up:      fwd.Cross(right),
		Offset:  f.Displacement(),
	}
}
