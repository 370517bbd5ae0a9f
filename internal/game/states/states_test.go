package states

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/hamsterrun/internal/config"
	"github.com/Faultbox/hamsterrun/internal/engine/input"
	"github.com/Faultbox/hamsterrun/internal/engine/window"
	"github.com/Faultbox/hamsterrun/internal/game/world"
	"github.com/Faultbox/hamsterrun/internal/level"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

type screen struct {
	color window.Color
	title string
}

func (s *screen) Clear(c window.Color)  { s.color = c }
func (s *screen) SetTitle(title string) { s.title = title }

func newModes(t *testing.T) (*Manager, *Modes, *world.Session) {
	t.Helper()
	lvl, err := level.Default()
	require.NoError(t, err)
	session, err := world.NewSession(config.Default(), lvl, nil, nil)
	require.NoError(t, err)

	m := NewManager()
	modes := New(m, session, func() (float32, float32) { return 1, 0 })
	m.Change(modes.Menu)
	return m, modes, session
}

func press(key sdl.Scancode) input.Event {
	return input.Event{Type: input.EventKeyDown, Key: key}
}

func TestSpaceTogglesPlay(t *testing.T) {
	m, modes, session := newModes(t)

	require.NoError(t, m.Update(1.0/60))
	assert.Same(t, modes.Menu, m.Current())
	assert.False(t, session.Playing())

	require.NoError(t, m.HandleInput(press(sdl.SCANCODE_SPACE)))
	require.NoError(t, m.Update(1.0/60))
	assert.Same(t, modes.Play, m.Current())
	assert.True(t, session.Playing())
	assert.True(t, session.Camera().Enabled)

	require.NoError(t, m.HandleInput(press(sdl.SCANCODE_SPACE)))
	require.NoError(t, m.Update(1.0/60))
	assert.Same(t, modes.Menu, m.Current())
	assert.False(t, session.Playing())
}

func TestPlayMovesHamster(t *testing.T) {
	m, modes, session := newModes(t)
	m.Change(modes.Play)
	start := session.Pose().Position

	for range 30 {
		require.NoError(t, m.Update(1.0/60))
	}
	assert.Greater(t, session.Pose().Position.Distance(start), float32(0.2))

	require.NoError(t, m.HandleInput(press(sdl.SCANCODE_R)))
	assert.InDelta(t, 0, session.Pose().Position.Distance(start), 1e-5)
}

func TestRenderColors(t *testing.T) {
	m, modes, _ := newModes(t)
	var sc screen

	require.NoError(t, m.Update(1.0/60))
	require.NoError(t, m.Render(&sc))
	assert.Equal(t, menuColor, sc.color)
	assert.Contains(t, sc.title, "Space")

	m.Change(modes.Play)
	require.NoError(t, m.Update(1.0/60))
	require.NoError(t, m.Render(&sc))
	assert.Equal(t, playColor, sc.color)
	assert.Equal(t, title, sc.title)
}

func TestTitleShowsFullPouches(t *testing.T) {
	cfg := config.Default()
	cfg.Pouch.MaxPouch = 1
	lvl := &level.Level{
		Name:      "test",
		Floors:    []level.FloorDef{{Y: 0}},
		Nuts:      []math.Vec2{{Y: 0.6}, {Y: 1.6}},
		NutRadius: 0.35,
		Goal:      level.Goal{Position: math.Vec2{Y: 20}, Radius: 0.5, Stack: 1},
	}
	session, err := world.NewSession(cfg, lvl, nil, nil)
	require.NoError(t, err)

	m := NewManager()
	modes := New(m, session, func() (float32, float32) { return 1, 0 })
	m.Change(modes.Play)

	var sc screen
	require.NoError(t, m.Render(&sc))
	assert.NotContains(t, sc.title, "full")

	for range 120 {
		require.NoError(t, m.Update(0.05))
	}
	require.True(t, session.Pouch().Full())
	require.NoError(t, m.Render(&sc))
	assert.Equal(t, title+" - pouches full", sc.title)
}

func TestManagerWithoutState(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.Update(1))
	assert.NoError(t, m.Render(&screen{}))
	assert.NoError(t, m.HandleInput(press(sdl.SCANCODE_SPACE)))
	assert.Nil(t, m.Current())
}
