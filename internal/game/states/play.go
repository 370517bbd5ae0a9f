package states

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/hamsterrun/internal/engine/input"
	"github.com/Faultbox/hamsterrun/internal/engine/window"
	"github.com/Faultbox/hamsterrun/internal/game/world"
	"github.com/Faultbox/hamsterrun/internal/locomotion"
)

const title = "Hamster Run"

// Clear colors per state.
var (
	menuColor     = window.Color{R: 0.18, G: 0.16, B: 0.22}
	playColor     = window.Color{R: 0.55, G: 0.78, B: 0.95}
	rollbackColor = window.Color{R: 0.85, G: 0.55, B: 0.45}
)

// Intent returns the current forward and turn intents in [-1, 1].
type Intent func() (forward, turn float32)

// Modes holds the pair of states that share one session. Space flips
// between them.
type Modes struct {
	Menu *MenuState
	Play *PlayState
}

// New creates the menu and play states for session.
func New(m *Manager, session *world.Session, intent Intent) *Modes {
	g := &Modes{}
	g.Menu = &MenuState{manager: m, session: session}
	g.Play = &PlayState{manager: m, session: session, intent: intent}
	g.Menu.play = g.Play
	g.Play.menu = g.Menu
	return g
}

// MenuState shows the level with the hamster idle.
type MenuState struct {
	manager *Manager
	session *world.Session
	play    *PlayState
}

// Enter implements State.
func (s *MenuState) Enter() error {
	s.session.SetPlaying(false)
	return nil
}

// Exit implements State.
func (s *MenuState) Exit() error { return nil }

// Update implements State. The hamster keeps settling.
func (s *MenuState) Update(dt float32) error {
	s.session.Step(dt, 0, 0)
	return nil
}

// Render implements State.
func (s *MenuState) Render(screen Screen) error {
	screen.Clear(menuColor)
	screen.SetTitle(title + " - press Space")
	return nil
}

// HandleInput implements State.
func (s *MenuState) HandleInput(event input.Event) error {
	if event.Type == input.EventKeyDown && event.Key == sdl.SCANCODE_SPACE {
		s.manager.Change(s.play)
	}
	return nil
}

// PlayState hands the hamster to the player.
type PlayState struct {
	manager *Manager
	session *world.Session
	intent  Intent
	menu    *MenuState
}

// Enter implements State.
func (s *PlayState) Enter() error {
	s.session.SetPlaying(true)
	return nil
}

// Exit implements State.
func (s *PlayState) Exit() error { return nil }

// Update implements State.
func (s *PlayState) Update(dt float32) error {
	var forward, turn float32
	if s.intent != nil {
		forward, turn = s.intent()
	}
	s.session.Step(dt, forward, turn)
	return nil
}

// Render implements State.
func (s *PlayState) Render(screen Screen) error {
	c := playColor
	if s.session.Last().Status != locomotion.StatusOK {
		c = rollbackColor
	}
	screen.Clear(c)

	t := title
	if score := s.session.Score(); score != "" {
		t += " - " + score
	}
	if s.session.Pouch().Full() {
		t += " - pouches full"
	}
	screen.SetTitle(t)
	return nil
}

// HandleInput implements State.
func (s *PlayState) HandleInput(event input.Event) error {
	if event.Type != input.EventKeyDown {
		return nil
	}
	switch event.Key {
	case sdl.SCANCODE_SPACE:
		s.manager.Change(s.menu)
	case sdl.SCANCODE_R:
		s.session.Respawn()
	}
	return nil
}
