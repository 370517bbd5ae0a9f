package anim

import (
	"maps"
	"slices"
)

// Params is an in-memory Animator. Triggers stay set until consumed.
type Params struct {
	floats   map[string]float32
	triggers map[string]int
}

// NewParams creates an empty parameter store.
func NewParams() *Params {
	return &Params{
		floats:   make(map[string]float32),
		triggers: make(map[string]int),
	}
}

// SetFloat implements Animator.
func (p *Params) SetFloat(name string, value float32) {
	p.floats[name] = value
}

// SetTrigger implements Animator.
func (p *Params) SetTrigger(name string) {
	p.triggers[name]++
}

// Float returns a float parameter, zero if never set.
func (p *Params) Float(name string) float32 {
	return p.floats[name]
}

// ConsumeTrigger reports whether name was triggered since the last call and
// clears it.
func (p *Params) ConsumeTrigger(name string) bool {
	if p.triggers[name] == 0 {
		return false
	}
	delete(p.triggers, name)
	return true
}

// Names returns the float parameter names in sorted order.
func (p *Params) Names() []string {
	return slices.Sorted(maps.Keys(p.floats))
}
