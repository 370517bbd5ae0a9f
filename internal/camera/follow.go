// Package camera provides the follow camera and camera-facing helpers.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hamsterrun/pkg/math"
)

// FollowCamera trails a target from behind and above. While disabled it
// holds its last position, which is how the menu view stays put.
type FollowCamera struct {
	Enabled bool

	// Placement relative to the target heading
	Pitch    float32 // Elevation angle (radians)
	Distance float32
	LookLift float32 // Aim above the target origin

	// Damping
	PositionDamp float32 // SmoothDamp time, 0 snaps
	YawDamp      float32 // Exponential time constant, 0 snaps

	Yaw float32 // Current heading (radians, 0 looks along +Z)

	position math.Vec3
	aim      math.Vec3
	velocity math.Vec3
}

// NewFollowCamera creates a follow camera with hamster-scale defaults.
func NewFollowCamera() *FollowCamera {
	return &FollowCamera{
		Pitch:        0.45,
		Distance:     2.5,
		LookLift:     0.3,
		PositionDamp: 0.25,
		YawDamp:      0.35,
	}
}

// Place puts the camera at position looking at aim.
func (c *FollowCamera) Place(position, aim math.Vec3) {
	c.position = position
	c.aim = aim
	c.velocity = math.Vec3{}
	d := aim.Sub(position)
	c.Yaw = float32(gomath.Atan2(float64(d.X), float64(d.Z)))
}

// Update moves the camera toward its spot behind target.
func (c *FollowCamera) Update(targetPos, targetForward math.Vec3, dt float32) {
	if !c.Enabled {
		return
	}

	if flat := (math.Vec3{X: targetForward.X, Z: targetForward.Z}); flat.Length() > 1e-4 {
		want := float32(gomath.Atan2(float64(flat.X), float64(flat.Z)))
		c.Yaw += wrapAngle(want-c.Yaw) * math.ExpBlend(dt, c.YawDamp)
	}

	desired := c.Offset(targetPos)
	if c.PositionDamp > 0 {
		c.position, c.velocity = math.SmoothDampVec3(c.position, desired, c.velocity, c.PositionDamp, dt)
	} else {
		c.position = desired
	}
	c.aim = targetPos.Add(math.Up.Scale(c.LookLift))
}

// Offset returns the resting camera position for a target at targetPos.
func (c *FollowCamera) Offset(targetPos math.Vec3) math.Vec3 {
	sp, cp := gomath.Sincos(float64(c.Pitch))
	sy, cy := gomath.Sincos(float64(c.Yaw))
	horiz := c.Distance * float32(cp)
	return math.Vec3{
		X: targetPos.X - horiz*float32(sy),
		Y: targetPos.Y + c.Distance*float32(sp),
		Z: targetPos.Z - horiz*float32(cy),
	}
}

// Position returns the camera position.
func (c *FollowCamera) Position() math.Vec3 {
	return c.position
}

// Forward returns the unit view direction.
func (c *FollowCamera) Forward() math.Vec3 {
	f := c.aim.Sub(c.position).Normalize()
	if f == (math.Vec3{}) {
		return math.Forward
	}
	return f
}

// Rotation returns the camera orientation.
func (c *FollowCamera) Rotation() math.Quat {
	return math.QuatLookRotation(c.Forward(), math.Up)
}

// wrapAngle maps a to (-pi, pi].
func wrapAngle(a float32) float32 {
	for a > gomath.Pi {
		a -= 2 * gomath.Pi
	}
	for a <= -gomath.Pi {
		a += 2 * gomath.Pi
	}
	return a
}
