package world

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hamsterrun/internal/anim"
	"github.com/Faultbox/hamsterrun/internal/config"
	"github.com/Faultbox/hamsterrun/internal/game/entity"
	"github.com/Faultbox/hamsterrun/internal/level"
	"github.com/Faultbox/hamsterrun/internal/sound"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

type recorder struct {
	played []string
}

func (r *recorder) voices() sound.NewVoiceFunc {
	return func(string) sound.Voice { return r }
}

func (r *recorder) Play(clip string, _, _ float32, _ bool) {
	r.played = append(r.played, clip)
}

func flatLevel(nuts []math.Vec2, goalZ float32, stack int) *level.Level {
	return &level.Level{
		Name:      "test",
		Floors:    []level.FloorDef{{Y: 0}},
		Nuts:      nuts,
		NutRadius: 0.35,
		Goal: level.Goal{
			Position: math.Vec2{Y: goalZ},
			Radius:   0.5,
			Stack:    stack,
		},
	}
}

func newTestSession(t *testing.T, cfg *config.Config, lvl *level.Level, voices sound.NewVoiceFunc) *Session {
	t.Helper()
	s, err := NewSession(cfg, lvl, rand.New(rand.NewPCG(1, 2)), voices)
	require.NoError(t, err)
	return s
}

func run(s *Session, frames int) {
	for range frames {
		s.Step(0.05, 1, 0)
	}
}

func TestScoreText(t *testing.T) {
	tests := []struct {
		found, available int
		want             string
	}{
		{0, 5, ""},
		{2, 5, "2 / 5"},
		{5, 5, "5 / 5 <Amazing!>"},
		{6, 5, "5 / 5 <Amazing!>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreText(tt.found, tt.available))
	}
}

func TestMenuHoldsHamster(t *testing.T) {
	s := newTestSession(t, config.Default(), flatLevel(nil, 5, 1), nil)
	camPos := s.Camera().Position()

	run(s, 20)

	assert.False(t, s.Playing())
	assert.InDelta(t, 0, s.Pose().Position.Z, 1e-4)
	assert.Equal(t, camPos, s.Camera().Position(), "camera holds while in menu")
	assert.Zero(t, s.Params().Float(anim.ParamRunSpeed))
}

func TestTogglePlay(t *testing.T) {
	s := newTestSession(t, config.Default(), flatLevel(nil, 5, 1), nil)

	s.TogglePlay()
	assert.True(t, s.Playing())
	assert.True(t, s.Camera().Enabled)

	s.TogglePlay()
	assert.False(t, s.Playing())
	assert.False(t, s.Camera().Enabled)
}

func TestCollectAndDeposit(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, config.Default(), flatLevel([]math.Vec2{{Y: 0.6}}, 2, 3), rec.voices())
	require.Equal(t, 1, s.Pouch().Available())
	assert.Equal(t, "", s.Score())

	s.SetPlaying(true)
	for s.Entities().CountByType(entity.TypeNut) > 0 {
		s.Step(0.05, 1, 0)
		require.Less(t, s.Now(), float32(2))
	}
	left, right := s.Pouch().Counts()
	assert.Equal(t, 1, left)
	assert.Zero(t, right)
	assert.InDelta(t, 0.7, s.Params().Float(anim.ParamPouchL), 1e-5)

	for s.Pouch().Found() == 0 {
		s.Step(0.05, 1, 0)
		require.Less(t, s.Now(), float32(5))
	}

	assert.Equal(t, 1, s.Pouch().Found())
	assert.Zero(t, s.Entities().CountByType(entity.TypeNut))
	assert.Equal(t, 1, s.Revealed())
	assert.Equal(t, "1 / 1 <Amazing!>", s.Score())
	assert.True(t, s.Params().ConsumeTrigger(anim.TriggerEat))

	require.NotEmpty(t, rec.played)
	assert.True(t, strings.HasPrefix(rec.played[0], "sounds/collect"), rec.played[0])
	assert.Contains(t, rec.played, "sounds/drop.wav")
}

func TestFullPouchLeavesNut(t *testing.T) {
	cfg := config.Default()
	cfg.Pouch.MaxPouch = 1
	nuts := []math.Vec2{{Y: 0.6}, {Y: 1.6}, {Y: 2.6}}
	s := newTestSession(t, cfg, flatLevel(nuts, 4, 1), nil)
	s.SetPlaying(true)

	run(s, 120)

	require.Greater(t, s.Pose().Position.Z, float32(4.5))
	assert.Equal(t, 3, s.Pouch().Available())
	assert.Equal(t, 2, s.Pouch().Found())
	assert.Equal(t, 1, s.Entities().CountByType(entity.TypeNut), "third nut stays")
	assert.Equal(t, 1, s.Revealed(), "reveal is bounded by the stack")
	assert.Equal(t, "2 / 3", s.Score())
}

func TestEatPausesForwardMotion(t *testing.T) {
	s := newTestSession(t, config.Default(), flatLevel([]math.Vec2{{Y: 0.3}}, 10, 1), nil)
	s.SetPlaying(true)

	for s.Entities().CountByType(entity.TypeNut) > 0 {
		s.Step(0.05, 1, 0)
		require.Less(t, s.Now(), float32(2))
	}
	z := s.Pose().Position.Z
	s.Step(0.05, 1, 0)
	assert.InDelta(t, z, s.Pose().Position.Z, 1e-4, "no forward motion during the eat cooldown")
	assert.Zero(t, s.Params().Float(anim.ParamRunSpeed))
}

func TestRespawn(t *testing.T) {
	s := newTestSession(t, config.Default(), flatLevel(nil, 10, 1), nil)
	s.SetPlaying(true)
	run(s, 20)
	require.Greater(t, s.Pose().Position.Z, float32(0.5))

	s.Respawn()
	assert.InDelta(t, 0, s.Pose().Position.Z, 1e-6)
}

func TestNewSessionNeedsGround(t *testing.T) {
	lvl := &level.Level{
		Name:      "island",
		Boxes:     []level.BoxDef{{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Z: 1}}},
		NutRadius: 0.35,
		Spawn:     level.Spawn{Position: math.Vec2{X: 5, Y: 5}},
		Goal:      level.Goal{Radius: 0.5},
	}
	_, err := NewSession(config.Default(), lvl, nil, nil)
	assert.ErrorContains(t, err, "spawn")

	lvl.Spawn.Position = math.Vec2{}
	lvl.Goal.Position = math.Vec2{X: 9}
	_, err = NewSession(config.Default(), lvl, nil, nil)
	assert.ErrorContains(t, err, "goal")
}

func TestDefaultLevelSession(t *testing.T) {
	lvl, err := level.Default()
	require.NoError(t, err)

	s := newTestSession(t, config.Default(), lvl, nil)
	assert.Equal(t, len(lvl.Nuts), s.Pouch().Available())
	assert.Equal(t, lvl.Goal.Stack, len(s.Entities().GetByType(entity.TypeProp)))

	start := s.Pose().Position
	s.SetPlaying(true)
	for range 200 {
		s.Step(1.0/60, 1, 0.3)
	}
	assert.Greater(t, s.Pose().Position.Distance(start), float32(0.5))
}

func TestBillboardRotations(t *testing.T) {
	s := newTestSession(t, config.Default(), flatLevel(nil, 20, 1), nil)
	s.SetPlaying(true)
	for range 60 {
		s.Step(1.0/60, 1, 0.5)
	}

	away := s.Camera().Forward().Neg()
	msg := s.MessageRotation()
	assert.InDelta(t, 1, msg.Forward().Dot(away), 1e-4)
	assert.Greater(t, msg.Up().Y, float32(0))

	marker := s.MarkerRotation()
	assert.InDelta(t, 1, marker.Forward().Dot(s.Pose().Up()), 1e-4)
	// The marker face points back toward the camera as far as its up
	// axis allows.
	assert.GreaterOrEqual(t, marker.Up().Dot(away), float32(0))
}
