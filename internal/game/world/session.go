// Package world runs a level: the hamster, its nuts and the goal.
package world

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/hamsterrun/internal/anim"
	"github.com/Faultbox/hamsterrun/internal/camera"
	"github.com/Faultbox/hamsterrun/internal/config"
	"github.com/Faultbox/hamsterrun/internal/game/entity"
	"github.com/Faultbox/hamsterrun/internal/level"
	"github.com/Faultbox/hamsterrun/internal/locomotion"
	"github.com/Faultbox/hamsterrun/internal/logger"
	"github.com/Faultbox/hamsterrun/internal/pouch"
	"github.com/Faultbox/hamsterrun/internal/sound"
	"github.com/Faultbox/hamsterrun/internal/spatial"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

const (
	// anchorLeash bounds how far the camera anchor may trail the hamster.
	anchorLeash = 0.4
	// propSpacing is the vertical gap between stacked nut props.
	propSpacing = 0.12
)

// Session is one run through a level: the hamster, the nuts, the goal and
// everything that reacts to them. It does not touch SDL or audio devices.
type Session struct {
	level *level.Level
	scene *spatial.Scene
	spawn locomotion.Pose

	controller *locomotion.Controller
	pouch      *pouch.Manager
	params     *anim.Params
	bridge     *anim.Bridge
	effects    []*sound.Effect

	camera *camera.FollowCamera
	anchor math.Vec3

	entities *entity.Manager
	goal     *entity.Entity
	stack    []*entity.Entity
	revealed int

	playing bool
	now     float32
	last    locomotion.Output
}

// NewSession builds a session for lvl. voices may be nil for a silent run.
func NewSession(cfg *config.Config, lvl *level.Level, rng *rand.Rand, voices sound.NewVoiceFunc) (*Session, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(cfg.Game.Seed, cfg.Game.Seed))
	}
	s := &Session{
		level:    lvl,
		scene:    lvl.Scene(),
		params:   anim.NewParams(),
		camera:   camera.NewFollowCamera(),
		entities: entity.NewManager(),
	}

	ground, ok := level.Ground(s.scene, lvl.Spawn.Position)
	if !ok {
		return nil, fmt.Errorf("spawn %v: no ground below", lvl.Spawn.Position)
	}
	yaw := lvl.Spawn.Yaw * math.Deg2Rad
	s.spawn = locomotion.Pose{
		Position: ground,
		Rotation: math.QuatFromAxisAngle(math.Up, yaw),
	}

	s.bridge = anim.NewBridge(s.params, cfg.Movement.MoveSpeed)

	collect := sound.NewEffect(cfg.Audio.Collect, rng, voices)
	drop := sound.NewEffect(cfg.Audio.Drop, rng, voices)
	s.effects = []*sound.Effect{collect, drop}
	s.SetMuted(cfg.Audio.Muted)

	s.pouch = pouch.New(cfg.Pouch, s.Now)
	s.pouch.SetAnimator(s.bridge)
	s.pouch.SetSounds(collect, drop)

	s.controller = locomotion.NewController(cfg.Movement, s.scene, s.spawn)
	s.controller.SetCooldown(s.pouch)
	s.controller.SetSignalSink(s.bridge)

	if err := s.spawnEntities(); err != nil {
		return nil, err
	}

	s.anchor = ground
	s.camera.Yaw = yaw
	s.camera.Place(s.camera.Offset(ground), ground)

	logger.Info("Session ready",
		zap.String("level", lvl.Name),
		zap.Int("nuts", s.pouch.Available()),
		zap.Int("stack", len(s.stack)))
	return s, nil
}

func (s *Session) spawnEntities() error {
	for i, xz := range s.level.Nuts {
		p, ok := level.Ground(s.scene, xz)
		if !ok {
			logger.Warn("Nut has no ground, skipped", zap.Int("index", i))
			continue
		}
		s.entities.Add(entity.NewEntity(entity.TypeNut, p, s.level.NutRadius))
		s.pouch.Spawned()
	}

	g := s.level.Goal
	p, ok := level.Ground(s.scene, g.Position)
	if !ok {
		return fmt.Errorf("goal %v: no ground below", g.Position)
	}
	s.goal = entity.NewEntity(entity.TypeGoal, p, g.Radius)
	s.entities.Add(s.goal)

	for i := range g.Stack {
		prop := entity.NewEntity(entity.TypeProp, p.Add(math.Up.Scale(propSpacing*float32(i+1))), 0)
		prop.IsVisible = false
		s.entities.Add(prop)
		s.stack = append(s.stack, prop)
	}
	return nil
}

// Step advances the session by dt seconds with the given movement intents.
func (s *Session) Step(dt, forward, turn float32) locomotion.Output {
	s.now += dt

	out := s.controller.Tick(locomotion.Input{
		DeltaTime: dt,
		Now:       s.now,
		Forward:   forward,
		Turn:      turn,
		Running:   s.playing,
	})
	s.last = out

	pos := out.Pose.Position
	s.touch(pos)

	s.anchor = camera.Leash(s.anchor, pos, anchorLeash)
	s.camera.Update(s.anchor, out.Pose.Forward(), dt)

	for _, e := range s.effects {
		e.Update(s.now)
	}
	s.bridge.Flush()
	return out
}

// touch fires trigger entries for a hamster at p.
func (s *Session) touch(p math.Vec3) {
	for _, nut := range s.entities.GetByType(entity.TypeNut) {
		if nut.Track(p) && s.pouch.Collect() {
			s.entities.Remove(nut.ID)
		}
	}
	if s.goal.Track(p) {
		s.reveal(s.pouch.TakeOut())
	}
}

func (s *Session) reveal(amount int) {
	for range amount {
		if s.revealed >= len(s.stack) {
			return
		}
		s.stack[s.revealed].IsVisible = true
		s.revealed++
	}
}

// SetPlaying switches between menu and play. Playing enables the follow
// camera and lets the hamster move.
func (s *Session) SetPlaying(playing bool) {
	if s.playing == playing {
		return
	}
	s.playing = playing
	s.camera.Enabled = playing
	logger.Info("Play mode", zap.Bool("playing", playing))
}

// TogglePlay flips between menu and play.
func (s *Session) TogglePlay() {
	s.SetPlaying(!s.playing)
}

// Playing reports whether the hamster is under player control.
func (s *Session) Playing() bool {
	return s.playing
}

// Respawn puts the hamster back at the level spawn.
func (s *Session) Respawn() {
	s.controller.Teleport(s.spawn)
	s.anchor = s.spawn.Position
}

// SetMuted silences every sound effect.
func (s *Session) SetMuted(muted bool) {
	for _, e := range s.effects {
		e.SetMuted(muted)
	}
}

// Score returns the goal message text.
func (s *Session) Score() string {
	return ScoreText(s.pouch.Found(), s.pouch.Available())
}

// ScoreText formats the goal message for found of available nuts.
func ScoreText(found, available int) string {
	switch {
	case found == 0:
		return ""
	case found >= available:
		return fmt.Sprintf("%d / %d <Amazing!>", available, available)
	default:
		return fmt.Sprintf("%d / %d", found, available)
	}
}

// MessageRotation returns the goal message orientation, facing the camera.
func (s *Session) MessageRotation() math.Quat {
	return camera.FaceCamera(s.camera.Forward())
}

// MarkerRotation returns the hamster marker orientation, standing on the
// hamster's up axis and facing the camera.
func (s *Session) MarkerRotation() math.Quat {
	return camera.AlignToPlayer(s.controller.Pose().Up(), s.camera.Forward())
}

// Now returns seconds since the session started.
func (s *Session) Now() float32 {
	return s.now
}

// Level returns the level being played.
func (s *Session) Level() *level.Level {
	return s.level
}

// Pose returns the hamster pose.
func (s *Session) Pose() locomotion.Pose {
	return s.controller.Pose()
}

// Last returns the output of the last Step.
func (s *Session) Last() locomotion.Output {
	return s.last
}

// Pouch returns the pouch manager.
func (s *Session) Pouch() *pouch.Manager {
	return s.pouch
}

// Params returns the animator parameters.
func (s *Session) Params() *anim.Params {
	return s.params
}

// Camera returns the follow camera.
func (s *Session) Camera() *camera.FollowCamera {
	return s.camera
}

// Entities returns the level objects.
func (s *Session) Entities() *entity.Manager {
	return s.entities
}

// Revealed returns how many stacked nut props are showing.
func (s *Session) Revealed() int {
	return s.revealed
}
