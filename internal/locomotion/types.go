// Package locomotion implements four-footed ground alignment and safe
// movement for the hamster.
//
// Every tick the body is settled onto the terrain under its four foot
// anchors, a tentative move is applied, and the result is re-probed. Moves
// that leave a foot over nothing, or walk into a newly blocked direction, are
// rolled back. After ProblemTimeout seconds of consecutive failures the body
// is put back on the last stable pose.
package locomotion

import (
	"fmt"

	"github.com/Faultbox/hamsterrun/pkg/math"
)

// Pose is a world transform.
type Pose struct {
	Position math.Vec3
	Rotation math.Quat
}

// NewPose creates a pose at position with identity rotation.
func NewPose(position math.Vec3) Pose {
	return Pose{Position: position, Rotation: math.QuatIdentity()}
}

// Point transforms a body-relative point to world space.
func (p Pose) Point(local math.Vec3) math.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// Up returns the body up axis.
func (p Pose) Up() math.Vec3 { return p.Rotation.Up() }

// Forward returns the body forward axis.
func (p Pose) Forward() math.Vec3 { return p.Rotation.Forward() }

// Corner names one of the four foot anchors.
type Corner int

const (
	FrontLeft Corner = iota
	FrontRight
	BackLeft
	BackRight
)

// Corners lists the anchors in probe order.
var Corners = [4]Corner{FrontLeft, FrontRight, BackLeft, BackRight}

func (c Corner) String() string {
	switch c {
	case FrontLeft:
		return "front-left"
	case FrontRight:
		return "front-right"
	case BackLeft:
		return "back-left"
	case BackRight:
		return "back-right"
	default:
		return fmt.Sprintf("Corner(%d)", int(c))
	}
}

// Anchors holds the body-relative foot anchor offsets.
type Anchors struct {
	FrontLeft  math.Vec3 `yaml:"front_left"`
	FrontRight math.Vec3 `yaml:"front_right"`
	BackLeft   math.Vec3 `yaml:"back_left"`
	BackRight  math.Vec3 `yaml:"back_right"`
}

// At returns the offset of a corner.
func (a Anchors) At(c Corner) math.Vec3 {
	switch c {
	case FrontLeft:
		return a.FrontLeft
	case FrontRight:
		return a.FrontRight
	case BackLeft:
		return a.BackLeft
	default:
		return a.BackRight
	}
}

// FootHold is the result of probing one anchor.
type FootHold struct {
	Hit      bool      // Ground found within reach
	Dist     float32   // Correction along body-down, positive moves the body down
	Position math.Vec3 // Anchor position after correction
}

// Footing is the per-tick probe result for all four anchors.
type Footing struct {
	Holds       [4]FootHold
	CanForward  bool
	CanBackward bool
}

// Displacement returns the mean correction over the four feet.
func (f Footing) Displacement() float32 {
	var sum float32
	for _, h := range f.Holds {
		sum += h.Dist
	}
	return sum / 4
}

// MaxDisplacement returns the largest absolute correction.
func (f Footing) MaxDisplacement() float32 {
	var m float32
	for _, h := range f.Holds {
		if d := math.Abs(h.Dist); d > m {
			m = d
		}
	}
	return m
}

// AllHit reports whether every foot found ground.
func (f Footing) AllHit() bool {
	for _, h := range f.Holds {
		if !h.Hit {
			return false
		}
	}
	return true
}

// Signal is the locomotion output consumed by the animation bridge.
type Signal struct {
	Forward   float32 // Effective forward request in [-1, 1]
	Turn      float32 // Effective turn request in [-1, 1]
	LookPitch float32 // Smoothed look pitch in [-1, 1]
}

// Input is the per-tick request.
type Input struct {
	DeltaTime float32 // Seconds since the previous tick
	Now       float32 // Seconds since the level started
	Forward   float32 // Forward axis in [-1, 1]
	Turn      float32 // Turn axis in [-1, 1]
	Running   bool    // False while the menu is up
}

// Status is the outcome of a tick.
type Status int

const (
	StatusOK Status = iota
	StatusRolledBack
	StatusRestored
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusRolledBack:
		return "ROLLED_BACK"
	case StatusRestored:
		return "RESTORED_TO_SAFE"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is everything the controller carries between ticks.
type State struct {
	Pose         Pose
	Safe         Pose
	ProblemTime  float32
	MoveVelocity math.Vec3 // Translation smoothing accumulator
	LookPitch    float32
	LookVelocity float32 // Look smoothing accumulator
}

// NewState starts a session at pose, which is also the first safe pose.
func NewState(start Pose) State {
	return State{Pose: start, Safe: start}
}

// Output is the result of a tick.
type Output struct {
	Pose        Pose
	Signal      Signal
	Status      Status
	CanForward  bool // Pre-move check
	CanBackward bool // Pre-move check
	Stable      bool
	Recheck     [4]FootHold
}
