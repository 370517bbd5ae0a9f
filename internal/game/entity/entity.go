// Package entity implements level objects the hamster can touch.
package entity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/hamsterrun/pkg/math"
)

// Type represents the type of entity.
type Type uint8

const (
	TypeNut Type = iota
	TypeGoal
	TypeProp
)

func (t Type) String() string {
	switch t {
	case TypeNut:
		return "nut"
	case TypeGoal:
		return "goal"
	case TypeProp:
		return "prop"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// triggerHeight is the vertical half-extent of every trigger.
const triggerHeight = 1

// Entity is a placed object. Entities with a positive Radius act as
// triggers.
type Entity struct {
	ID        uuid.UUID
	Type      Type
	Position  math.Vec3
	Radius    float32
	IsVisible bool

	inside bool
}

// NewEntity creates a visible entity with a fresh ID.
func NewEntity(entityType Type, position math.Vec3, radius float32) *Entity {
	return &Entity{
		ID:        uuid.New(),
		Type:      entityType,
		Position:  position,
		Radius:    radius,
		IsVisible: true,
	}
}

// Overlaps reports whether p is inside the trigger volume, a vertical
// cylinder around Position.
func (e *Entity) Overlaps(p math.Vec3) bool {
	if e.Radius <= 0 {
		return false
	}
	if math.Abs(p.Y-e.Position.Y) > triggerHeight {
		return false
	}
	return p.XZ().Sub(e.Position.XZ()).Length() < e.Radius
}

// Track updates the overlap state for a body at p and reports whether the
// body just entered.
func (e *Entity) Track(p math.Vec3) bool {
	was := e.inside
	e.inside = e.Overlaps(p)
	return e.inside && !was
}

// Inside reports the overlap state from the last Track.
func (e *Entity) Inside() bool {
	return e.inside
}

// Manager manages all entities of a level. Iteration follows insertion
// order.
type Manager struct {
	entities map[uuid.UUID]*Entity
	order    []uuid.UUID
}

// NewManager creates a new entity manager.
func NewManager() *Manager {
	return &Manager{
		entities: make(map[uuid.UUID]*Entity),
	}
}

// Add adds an entity.
func (m *Manager) Add(e *Entity) {
	if _, ok := m.entities[e.ID]; !ok {
		m.order = append(m.order, e.ID)
	}
	m.entities[e.ID] = e
}

// Remove removes an entity.
func (m *Manager) Remove(id uuid.UUID) {
	if _, ok := m.entities[id]; !ok {
		return
	}
	delete(m.entities, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// All returns all entities.
func (m *Manager) All() []*Entity {
	result := make([]*Entity, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.entities[id])
	}
	return result
}

// AllVisible returns all visible entities.
func (m *Manager) AllVisible() []*Entity {
	result := make([]*Entity, 0, len(m.order))
	for _, id := range m.order {
		if e := m.entities[id]; e.IsVisible {
			result = append(result, e)
		}
	}
	return result
}

// GetByType returns all entities of a specific type.
func (m *Manager) GetByType(entityType Type) []*Entity {
	result := make([]*Entity, 0)
	for _, id := range m.order {
		if e := m.entities[id]; e.Type == entityType {
			result = append(result, e)
		}
	}
	return result
}

// Count returns the total number of entities.
func (m *Manager) Count() int {
	return len(m.entities)
}

// CountByType returns the number of entities of a specific type.
func (m *Manager) CountByType(entityType Type) int {
	count := 0
	for _, e := range m.entities {
		if e.Type == entityType {
			count++
		}
	}
	return count
}

// Clear removes all entities.
func (m *Manager) Clear() {
	m.entities = make(map[uuid.UUID]*Entity)
	m.order = nil
}
