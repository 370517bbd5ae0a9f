// Package input handles SDL2 input events and keyboard axes.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input handles all input processing.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool

	Vertical   Axis // W/S or Up/Down
	Horizontal Axis // D/A or Right/Left
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:     make([]Event, 0, 16),
		held:       make(map[sdl.Scancode]bool),
		Vertical:   NewAxis(),
		Horizontal: NewAxis(),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			i.handleKey(e.Type == sdl.KEYDOWN, e.Repeat != 0, e.Keysym.Scancode)
		}
	}

	return false
}

func (i *Input) handleKey(down, repeat bool, code sdl.Scancode) {
	if repeat {
		return
	}
	i.held[code] = down
	typ := EventKeyUp
	if down {
		typ = EventKeyDown
	}
	i.events = append(i.events, Event{Type: typ, Key: code})
}

// UpdateAxes advances the movement axes by dt seconds.
func (i *Input) UpdateAxes(dt float32) {
	i.Vertical.Update(
		i.Held(sdl.SCANCODE_W) || i.Held(sdl.SCANCODE_UP),
		i.Held(sdl.SCANCODE_S) || i.Held(sdl.SCANCODE_DOWN),
		dt)
	i.Horizontal.Update(
		i.Held(sdl.SCANCODE_D) || i.Held(sdl.SCANCODE_RIGHT),
		i.Held(sdl.SCANCODE_A) || i.Held(sdl.SCANCODE_LEFT),
		dt)
}

// Held reports whether a key is currently down.
func (i *Input) Held(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
