package locomotion

import (
	"go.uber.org/zap"

	"github.com/Faultbox/hamsterrun/internal/logger"
	"github.com/Faultbox/hamsterrun/internal/spatial"
)

// PoseSink receives the committed pose every tick.
type PoseSink interface {
	SetPose(p Pose)
}

// SignalSink receives the locomotion signal every tick.
type SignalSink interface {
	SetLocomotion(s Signal)
}

// Controller owns the locomotion state of one body and feeds its sinks.
type Controller struct {
	rig    *Rig
	state  State
	status Status

	poseSink   PoseSink
	signalSink SignalSink
}

// NewController creates a controller standing at start.
func NewController(cfg Config, query spatial.Query, start Pose) *Controller {
	return &Controller{
		rig:   NewRig(cfg, query, nil),
		state: NewState(start),
	}
}

// SetCooldown sets the eat cooldown source.
func (c *Controller) SetCooldown(eat Cooldown) {
	c.rig.eat = eat
}

// SetPoseSink sets the receiver of committed poses.
func (c *Controller) SetPoseSink(s PoseSink) {
	c.poseSink = s
}

// SetSignalSink sets the receiver of locomotion signals.
func (c *Controller) SetSignalSink(s SignalSink) {
	c.signalSink = s
}

// Tick advances the controller by one frame.
func (c *Controller) Tick(in Input) Output {
	var out Output
	c.state, out = c.rig.Step(c.state, in)

	if out.Status != c.status {
		switch out.Status {
		case StatusRolledBack:
			logger.Debug("Move rolled back",
				zap.Float32("problemTime", c.state.ProblemTime),
				zap.Bool("canForward", out.CanForward),
				zap.Bool("canBackward", out.CanBackward))
		case StatusRestored:
			logger.Warn("Restored to safe pose",
				zap.Float32("x", out.Pose.Position.X),
				zap.Float32("y", out.Pose.Position.Y),
				zap.Float32("z", out.Pose.Position.Z))
		}
	}
	c.status = out.Status

	if c.poseSink != nil {
		c.poseSink.SetPose(out.Pose)
	}
	if c.signalSink != nil {
		c.signalSink.SetLocomotion(out.Signal)
	}
	return out
}

// Pose returns the committed pose.
func (c *Controller) Pose() Pose {
	return c.state.Pose
}

// State returns a copy of the carried state.
func (c *Controller) State() State {
	return c.state
}

// Status returns the outcome of the last tick.
func (c *Controller) Status() Status {
	return c.status
}

// Teleport places the body at p and makes it the safe pose.
func (c *Controller) Teleport(p Pose) {
	c.state = NewState(p)
	c.status = StatusOK
	logger.Info("Teleported",
		zap.Float32("x", p.Position.X),
		zap.Float32("y", p.Position.Y),
		zap.Float32("z", p.Position.Z))
}
