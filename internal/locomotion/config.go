package locomotion

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hamsterrun/pkg/math"
)

// Config holds the tuning of the locomotion controller. Distances are in
// world units, speeds in units per second, times in seconds.
type Config struct {
	// Foot probes
	CastRadius      float32 `yaml:"cast_radius"`       // Radius of the downward foot probes
	CastRadiusSides float32 `yaml:"cast_radius_sides"` // Radius of the radar probes
	CheckMoveMargin float32 `yaml:"check_move_margin"` // Radius shrink for post-move rechecks
	MaxDistance     float32 `yaml:"max_distance"`      // Longest downward probe
	FloorDistance   float32 `yaml:"floor_distance"`    // Target clearance between anchor and ground
	FrontDistance   float32 `yaml:"front_distance"`    // Radar reach
	ReachUpFactor   float32 `yaml:"reach_up_factor"`   // Lift applied when a wall is right ahead
	MaxShiftSpeed   float32 `yaml:"max_shift_speed"`   // Vertical correction limit per second

	Anchors Anchors `yaml:"anchors"`

	// Movement
	MoveSpeed        float32 `yaml:"move_speed"`
	MoveSpeedTurning float32 `yaml:"move_speed_turning"`
	TurnRate         float32 `yaml:"turn_rate"`    // Degrees per unit travelled at full turn
	EatCooldown      float32 `yaml:"eat_cooldown"` // Standstill after an eat trigger

	// Smoothing; zero applies targets directly
	TranslateDamp float32 `yaml:"translate_damp"`
	RotateDamp    float32 `yaml:"rotate_damp"`

	// Recovery
	SafeThreshold  float32 `yaml:"safe_threshold"`
	ProblemTimeout float32 `yaml:"problem_timeout"`

	// Look signal
	LookUp   LookProbe `yaml:"look_up"`
	LookDown LookProbe `yaml:"look_down"`
	LookDamp float32   `yaml:"look_damp"`
}

// LookProbe is a body-relative sphere cast used for the look signal.
type LookProbe struct {
	Offset    math.Vec3 `yaml:"offset"`
	Direction math.Vec3 `yaml:"direction"`
	Radius    float32   `yaml:"radius"`
	MinDist   float32   `yaml:"min_dist"`
	MaxDist   float32   `yaml:"max_dist"`
}

// DefaultConfig returns the tuning used by the shipped hamster.
func DefaultConfig() Config {
	return Config{
		CastRadius:      0.1,
		CastRadiusSides: 0.08,
		CheckMoveMargin: 0.02,
		MaxDistance:     1.5,
		FloorDistance:   0.3,
		FrontDistance:   0.35,
		ReachUpFactor:   0.3,
		MaxShiftSpeed:   1,
		Anchors: Anchors{
			FrontLeft:  math.Vec3{X: -0.15, Y: 0.3, Z: 0.25},
			FrontRight: math.Vec3{X: 0.15, Y: 0.3, Z: 0.25},
			BackLeft:   math.Vec3{X: -0.15, Y: 0.3, Z: -0.25},
			BackRight:  math.Vec3{X: 0.15, Y: 0.3, Z: -0.25},
		},
		MoveSpeed:        1,
		MoveSpeedTurning: 0.6,
		TurnRate:         90,
		EatCooldown:      0.3,
		TranslateDamp:    0,
		RotateDamp:       0,
		SafeThreshold:    0.02,
		ProblemTimeout:   3,
		LookUp: LookProbe{
			Offset:    math.Vec3{Y: 0.4, Z: 0.3},
			Direction: math.Forward,
			Radius:    0.05,
			MinDist:   0.1,
			MaxDist:   0.8,
		},
		LookDown: LookProbe{
			Offset:    math.Vec3{Y: 0.2, Z: 0.3},
			Direction: math.Vec3{Y: -0.5, Z: 1},
			Radius:    0.05,
			MinDist:   0.1,
			MaxDist:   0.8,
		},
		LookDamp: 0.2,
	}
}

// Validate checks that the configuration can drive the controller.
func (c Config) Validate() error {
	var errs []error
	if c.CastRadius <= c.CheckMoveMargin {
		errs = append(errs, fmt.Errorf("cast_radius %v must exceed check_move_margin %v", c.CastRadius, c.CheckMoveMargin))
	}
	if c.CastRadiusSides <= 0 {
		errs = append(errs, errors.New("cast_radius_sides must be positive"))
	}
	if c.MaxDistance <= 0 {
		errs = append(errs, errors.New("max_distance must be positive"))
	}
	if c.FrontDistance <= 0 {
		errs = append(errs, errors.New("front_distance must be positive"))
	}
	if c.ProblemTimeout <= 0 {
		errs = append(errs, errors.New("problem_timeout must be positive"))
	}
	if c.TranslateDamp < 0 || c.RotateDamp < 0 || c.LookDamp < 0 {
		errs = append(errs, errors.New("damping times must not be negative"))
	}
	if c.Anchors.FrontLeft == c.Anchors.BackLeft || c.Anchors.FrontLeft == c.Anchors.FrontRight {
		errs = append(errs, errors.New("foot anchors must be distinct"))
	}
	return errors.Join(errs...)
}
