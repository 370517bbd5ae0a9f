// Package anim maps locomotion and pouch state onto named animator
// parameters.
package anim

import (
	"github.com/Faultbox/hamsterrun/internal/locomotion"
)

// Animator parameter names.
const (
	ParamRunSpeed  = "RunSpeed"
	ParamLookUp    = "Look_Up"
	ParamLookRight = "Look_Right"
	ParamPouchL    = "Pouch_L"
	ParamPouchR    = "Pouch_R"
	TriggerEat     = "Eat"
)

// Animator is an external animation state machine driven by parameters.
type Animator interface {
	SetFloat(name string, value float32)
	SetTrigger(name string)
}

// Bridge collects locomotion and pouch state and pushes it to an Animator.
// It implements locomotion.SignalSink and pouch.Animator.
type Bridge struct {
	animator  Animator
	moveSpeed float32

	runSpeed  float32
	lookUp    float32
	lookRight float32
	pouchL    float32
	pouchR    float32
}

// NewBridge creates a bridge. moveSpeed scales forward intent into RunSpeed.
func NewBridge(animator Animator, moveSpeed float32) *Bridge {
	return &Bridge{animator: animator, moveSpeed: moveSpeed}
}

// SetLocomotion implements locomotion.SignalSink.
func (b *Bridge) SetLocomotion(s locomotion.Signal) {
	b.runSpeed = s.Forward * b.moveSpeed
	b.lookRight = s.Turn
	b.lookUp = s.LookPitch
}

// SetPouches sets the pouch fill parameters.
func (b *Bridge) SetPouches(left, right float32) {
	b.pouchL = left
	b.pouchR = right
}

// TriggerEat fires the eat gesture immediately.
func (b *Bridge) TriggerEat() {
	b.animator.SetTrigger(TriggerEat)
}

// Flush writes every float parameter. Call once per frame.
func (b *Bridge) Flush() {
	b.animator.SetFloat(ParamRunSpeed, b.runSpeed)
	b.animator.SetFloat(ParamLookUp, b.lookUp)
	b.animator.SetFloat(ParamLookRight, b.lookRight)
	b.animator.SetFloat(ParamPouchL, b.pouchL)
	b.animator.SetFloat(ParamPouchR, b.pouchR)
}
