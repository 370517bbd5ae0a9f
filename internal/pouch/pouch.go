// Package pouch tracks the nuts carried in the hamster's cheek pouches.
package pouch

import (
	"go.uber.org/zap"

	"github.com/Faultbox/hamsterrun/internal/logger"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

// neverTriggered keeps the eat cooldown inactive until the first trigger.
const neverTriggered = -1000

// Animator receives pouch visuals.
type Animator interface {
	TriggerEat()
	SetPouches(left, right float32)
}

// Sound is a one-shot effect.
type Sound interface {
	Trigger()
}

// Clock returns seconds since the level started.
type Clock func() float32

// Config holds pouch settings.
type Config struct {
	MaxPouch int        `yaml:"max_pouch"`
	Fill     math.Curve `yaml:"fill"` // Maps count/MaxPouch to the fill parameter
}

// DefaultConfig returns two nuts per pouch with a puffy fill curve.
func DefaultConfig() Config {
	return Config{
		MaxPouch: 2,
		Fill: math.NewCurve(
			math.Keyframe{Time: 0, Value: 0},
			math.Keyframe{Time: 0.5, Value: 0.7},
			math.Keyframe{Time: 1, Value: 1},
		),
	}
}

// Manager fills the left pouch, then the right, and empties both at once.
type Manager struct {
	cfg   Config
	clock Clock

	left  int
	right int
	full  bool

	found     int
	available int

	lastTriggered float32

	anim    Animator
	collect Sound
	drop    Sound
}

// New creates an empty pouch manager.
func New(cfg Config, clock Clock) *Manager {
	if cfg.MaxPouch <= 0 {
		cfg.MaxPouch = DefaultConfig().MaxPouch
	}
	if clock == nil {
		clock = func() float32 { return 0 }
	}
	return &Manager{
		cfg:           cfg,
		clock:         clock,
		lastTriggered: neverTriggered,
	}
}

// SetAnimator sets the receiver of eat triggers and fill levels.
func (m *Manager) SetAnimator(a Animator) {
	m.anim = a
	m.updateFill()
}

// SetSounds sets the collect and drop effects. Either may be nil.
func (m *Manager) SetSounds(collect, drop Sound) {
	m.collect = collect
	m.drop = drop
}

// Collect stores one nut. It returns false when both pouches are full.
func (m *Manager) Collect() bool {
	switch {
	case m.left < m.cfg.MaxPouch:
		m.left++
	case m.right < m.cfg.MaxPouch:
		m.right++
		if m.right == m.cfg.MaxPouch {
			m.full = true
		}
	default:
		return false
	}

	m.trigger(m.collect)
	m.updateFill()
	logger.Debug("Nut collected",
		zap.Int("left", m.left),
		zap.Int("right", m.right),
		zap.Bool("full", m.full))
	return true
}

// TakeOut empties both pouches and returns how many nuts they held.
func (m *Manager) TakeOut() int {
	amount := m.left + m.right
	if amount == 0 {
		return 0
	}

	m.found += amount
	m.left, m.right = 0, 0
	m.full = false
	m.trigger(m.drop)
	m.updateFill()
	logger.Info("Nuts deposited",
		zap.Int("amount", amount),
		zap.Int("found", m.found),
		zap.Int("available", m.available))
	return amount
}

// Spawned registers a nut placed in the level.
func (m *Manager) Spawned() {
	m.available++
}

// LastTriggered returns when the last eat gesture started.
func (m *Manager) LastTriggered() float32 {
	return m.lastTriggered
}

// Full reports whether both pouches are at capacity.
func (m *Manager) Full() bool {
	return m.full
}

// Found returns the total number of nuts deposited.
func (m *Manager) Found() int {
	return m.found
}

// Available returns the number of nuts spawned in the level.
func (m *Manager) Available() int {
	return m.available
}

// Counts returns the nuts held in the left and right pouch.
func (m *Manager) Counts() (left, right int) {
	return m.left, m.right
}

func (m *Manager) trigger(s Sound) {
	m.lastTriggered = m.clock()
	if m.anim != nil {
		m.anim.TriggerEat()
	}
	if s != nil {
		s.Trigger()
	}
}

func (m *Manager) updateFill() {
	if m.anim == nil {
		return
	}
	capacity := float32(m.cfg.MaxPouch)
	m.anim.SetPouches(
		m.cfg.Fill.Evaluate(float32(m.left)/capacity),
		m.cfg.Fill.Evaluate(float32(m.right)/capacity),
	)
}
