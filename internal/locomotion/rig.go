package locomotion

import (
	"github.com/Faultbox/hamsterrun/internal/spatial"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

// Rig holds what a tick reads but never changes: the tuning, the scene and
// the eat cooldown source. Step is a pure function of its arguments and the
// scene contents.
type Rig struct {
	cfg   Config
	query spatial.Query
	eat   Cooldown
}

// NewRig creates a rig. eat may be nil.
func NewRig(cfg Config, query spatial.Query, eat Cooldown) *Rig {
	return &Rig{cfg: cfg, query: query, eat: eat}
}

// Config returns the rig tuning.
func (r *Rig) Config() Config { return r.cfg }

// Step advances s by one tick.
func (r *Rig) Step(s State, in Input) (State, Output) {
	dt := max(in.DeltaTime, 0)

	// The committed pose passed validation last tick, so a stable reading
	// under it is safe to record.
	committed := s.Pose
	pre := r.orient(&s, dt)
	stable := pre.MaxDisplacement() < r.cfg.SafeThreshold
	if stable {
		s.Safe = committed
	}

	snapshot := s
	req := moveRequest(r.cfg, in, pre, r.eat)
	s.Pose = applyMove(r.cfg, s.Pose, req, dt)

	post := r.orient(&s, dt)
	postStable := post.MaxDisplacement() < r.cfg.SafeThreshold
	recheck := r.recheck(s.Pose, dt)

	out := Output{
		CanForward:  pre.CanForward,
		CanBackward: pre.CanBackward,
		Recheck:     recheck.Holds,
	}

	newlyBlocked := (!post.CanForward && pre.CanForward) || (!post.CanBackward && pre.CanBackward)
	if !recheck.AllHit() || newlyBlocked {
		s.Pose = snapshot.Pose
		s.MoveVelocity = snapshot.MoveVelocity
		out.Status = StatusRolledBack
		// Being held against a wall or overhang with every foot down is
		// not a problem worth escalating.
		if !recheck.AllHit() {
			s.ProblemTime += dt
		}
		if s.ProblemTime > r.cfg.ProblemTimeout {
			s.Pose = s.Safe
			s.MoveVelocity = math.Vec3{}
			s.ProblemTime = 0
			out.Status = StatusRestored
		}
		out.Stable = stable
	} else {
		s.ProblemTime = 0
		if postStable {
			s.Safe = s.Pose
		}
		out.Stable = postStable
	}

	s = smoothLook(r.cfg, s, lookRaw(r.query, r.cfg, s.Pose), dt)

	out.Pose = s.Pose
	out.Signal = Signal{
		Forward:   req.Forward,
		Turn:      req.Turn,
		LookPitch: s.LookPitch,
	}
	return s, out
}

// orient probes the feet under s.Pose and moves the body onto the fitted
// plane, carrying the translation accumulator in s.
func (r *Rig) orient(s *State, dt float32) Footing {
	step := r.cfg.MaxShiftSpeed * dt
	f := probeFeet(r.query, r.cfg, s.Pose, 0, step)
	pl := derivePlane(f)

	down := s.Pose.Up().Neg()
	target := s.Pose.Position.Add(down.Scale(pl.Offset))
	if r.cfg.TranslateDamp > 0 {
		s.Pose.Position, s.MoveVelocity = math.SmoothDampVec3(s.Pose.Position, target, s.MoveVelocity, r.cfg.TranslateDamp, dt)
	} else {
		s.Pose.Position = target
	}

	rot := math.QuatLookRotation(pl.Forward, pl.Up)
	if r.cfg.RotateDamp > 0 {
		s.Pose.Rotation = s.Pose.Rotation.Slerp(rot, math.ExpBlend(dt, r.cfg.RotateDamp)).Normalize()
	} else {
		s.Pose.Rotation = rot
	}
	return f
}

// recheck probes straight under the anchors of p with the reduced radius.
func (r *Rig) recheck(p Pose, dt float32) Footing {
	return probeFeet(r.query, r.cfg, p, r.cfg.CheckMoveMargin, r.cfg.MaxShiftSpeed*dt)
}
