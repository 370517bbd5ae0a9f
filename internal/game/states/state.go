// Package states implements game state management.
package states

import (
	"github.com/Faultbox/hamsterrun/internal/engine/input"
	"github.com/Faultbox/hamsterrun/internal/engine/window"
)

// State represents a game state (menu, playing).
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every simulation step.
	Update(dt float32) error

	// Render is called every frame to draw the state.
	Render(screen Screen) error

	// HandleInput processes input events.
	HandleInput(event input.Event) error
}

// Screen is what states draw to.
type Screen interface {
	Clear(c window.Color)
	SetTitle(title string)
}

// Manager manages game state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change.
func (m *Manager) Change(next State) {
	m.next = next
}

// HandleInput forwards an event to the current state.
func (m *Manager) HandleInput(event input.Event) error {
	if m.current != nil {
		return m.current.HandleInput(event)
	}
	return nil
}

// Update processes state changes and updates current state.
func (m *Manager) Update(dt float32) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// Render renders the current state.
func (m *Manager) Render(screen Screen) error {
	if m.current != nil {
		return m.current.Render(screen)
	}
	return nil
}
