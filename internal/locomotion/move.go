package locomotion

import "github.com/Faultbox/hamsterrun/pkg/math"

// Cooldown reports when the last eat gesture was triggered, in the same
// clock as Input.Now.
type Cooldown interface {
	LastTriggered() float32
}

// request is the effective move for one tick after all vetoes.
type request struct {
	Forward float32
	Turn    float32
	Speed   float32
}

// moveRequest applies the movement policy to the raw axes.
func moveRequest(cfg Config, in Input, f Footing, eat Cooldown) request {
	fwd := math.Clamp(in.Forward, -1, 1)
	turn := math.Clamp(in.Turn, -1, 1)

	if !f.CanForward {
		fwd = min(0, fwd)
	}
	if !f.CanBackward {
		fwd = max(0, fwd)
	}
	if eat != nil && in.Now-eat.LastTriggered() < cfg.EatCooldown {
		fwd = 0
	}
	if !in.Running {
		fwd, turn = 0, 0
	}

	return request{
		Forward: fwd,
		Turn:    turn,
		Speed:   math.Lerp(cfg.MoveSpeed, cfg.MoveSpeedTurning, math.Abs(turn)),
	}
}

// applyMove translates along body-forward and yaws about body-up. Turning
// scales with forward travel, so the body cannot spin in place.
func applyMove(cfg Config, p Pose, r request, dt float32) Pose {
	travel := r.Forward * r.Speed * dt
	p.Position = p.Position.Add(p.Forward().Scale(travel))
	yaw := r.Turn * cfg.TurnRate * travel * math.Deg2Rad
	if yaw != 0 {
		p.Rotation = p.Rotation.Mul(math.QuatFromAxisAngle(math.Up, yaw)).Normalize()
	}
	return p
}
