package sound

import (
	"math/rand/v2"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/hamsterrun/internal/logger"
)

// Voice plays clips for a single layer.
type Voice interface {
	// Play starts clip. With stop set, whatever the voice is playing is cut.
	Play(clip string, pitch, volume float32, stop bool)
}

// NewVoiceFunc creates the voice for a layer.
type NewVoiceFunc func(layer string) Voice

// EffectConfig describes an effect.
type EffectConfig struct {
	Name   string  `yaml:"name"`
	Mode   Mode    `yaml:"mode"`
	Layers []Layer `yaml:"layers"`
}

type layerState struct {
	Layer
	voice Voice
	last  int
}

type pending struct {
	at    float32
	layer int
	mode  Mode
}

// Effect is a triggerable layered sound. Delayed plays wait for Update.
type Effect struct {
	name   string
	mode   Mode
	rng    *rand.Rand
	layers []*layerState
	muted  bool

	now     float32
	pending []pending
}

// NewEffect creates an effect. newVoice is called once per layer.
func NewEffect(cfg EffectConfig, rng *rand.Rand, newVoice NewVoiceFunc) *Effect {
	e := &Effect{
		name: cfg.Name,
		mode: cfg.Mode,
		rng:  rng,
	}
	for _, l := range cfg.Layers {
		l.SafeReset()
		st := &layerState{Layer: l, last: -1}
		if newVoice != nil {
			st.voice = newVoice(l.Name)
		}
		e.layers = append(e.layers, st)
	}
	return e
}

// Name returns the effect name.
func (e *Effect) Name() string {
	return e.name
}

// SetMuted silences every layer.
func (e *Effect) SetMuted(muted bool) {
	e.muted = muted
}

// Trigger plays every layer that passes its probability roll. Effects with
// more than one layer always play one-shot.
func (e *Effect) Trigger() {
	mode := e.mode
	if len(e.layers) != 1 {
		mode = OneShot
	}

	for i, l := range e.layers {
		if e.rng.Float32() > l.Probability {
			continue
		}
		delay := between(e.rng, l.MinDelay, l.MaxDelay)
		if delay > 0 {
			e.pending = append(e.pending, pending{at: e.now + delay, layer: i, mode: mode})
			continue
		}
		e.playNow(l, mode)
	}
}

// Update advances the effect clock and fires due delayed plays in order.
func (e *Effect) Update(now float32) {
	e.now = now
	if len(e.pending) == 0 {
		return
	}

	sort.SliceStable(e.pending, func(i, j int) bool { return e.pending[i].at < e.pending[j].at })
	n := 0
	for n < len(e.pending) && e.pending[n].at <= now {
		p := e.pending[n]
		e.playNow(e.layers[p.layer], p.mode)
		n++
	}
	e.pending = e.pending[n:]
}

// Pending returns the number of delayed plays waiting.
func (e *Effect) Pending() int {
	return len(e.pending)
}

func (e *Effect) playNow(l *layerState, mode Mode) {
	if l.voice == nil || l.Mute || e.muted {
		return
	}

	pitch := between(e.rng, l.PitchMin, l.PitchMax)
	volume := between(e.rng, l.VolumeMin, l.VolumeMax)

	idx := NextIndex(e.rng, len(l.Clips), l.last)
	if idx < 0 {
		return
	}
	l.last = idx

	logger.Debug("Sound",
		zap.String("effect", e.name),
		zap.String("layer", l.Name),
		zap.String("clip", l.Clips[idx]))
	l.voice.Play(l.Clips[idx], pitch, volume, mode == StopAndPlay)
}
