// Package sound plays layered, randomized one-shot effects.
//
// An Effect owns one or more layers. Each trigger rolls every layer's
// probability, picks a clip that differs from the one played last, varies
// pitch and volume, and plays it on the layer's voice after an optional
// delay.
package sound

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects how a layer treats a sound that is still playing.
type Mode int

const (
	// StopAndPlay cuts the previous sound on the layer's voice.
	StopAndPlay Mode = iota
	// OneShot lets sounds overlap.
	OneShot
)

func (m Mode) String() string {
	switch m {
	case StopAndPlay:
		return "stop_and_play"
	case OneShot:
		return "one_shot"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// UnmarshalText parses a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "stop_and_play", "stopandplay":
		*m = StopAndPlay
	case "one_shot", "oneshot":
		*m = OneShot
	default:
		return fmt.Errorf("unknown sound mode %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Layer describes one randomized sound.
type Layer struct {
	Name        string   `yaml:"name"`
	Clips       []string `yaml:"clips"`
	PitchMin    float32  `yaml:"pitch_min"`
	PitchMax    float32  `yaml:"pitch_max"`
	VolumeMin   float32  `yaml:"volume_min"`
	VolumeMax   float32  `yaml:"volume_max"`
	Probability float32  `yaml:"probability"`
	MinDelay    float32  `yaml:"min_delay"`
	MaxDelay    float32  `yaml:"max_delay"`
	Mute        bool     `yaml:"mute"`
}

// NewLayer creates a layer that always plays one of clips unchanged.
func NewLayer(name string, clips ...string) Layer {
	l := Layer{Name: name, Clips: clips}
	l.SafeReset()
	return l
}

// UnmarshalYAML decodes a layer, leaving omitted pitch, volume and
// probability at 1 so a partial layer still plays.
func (l *Layer) UnmarshalYAML(value *yaml.Node) error {
	type plain Layer
	p := plain{
		PitchMin: 1, PitchMax: 1,
		VolumeMin: 1, VolumeMax: 1,
		Probability: 1,
	}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*l = Layer(p)
	return nil
}

// SafeReset restores neutral settings on a layer whose ranges were all left
// at zero.
func (l *Layer) SafeReset() {
	if l.PitchMin != 0 || l.PitchMax != 0 || l.VolumeMin != 0 || l.VolumeMax != 0 {
		return
	}
	l.PitchMin, l.PitchMax = 1, 1
	l.VolumeMin, l.VolumeMax = 1, 1
	l.Probability = 1
	l.MinDelay, l.MaxDelay = 0, 0
	l.Mute = false
}

// NextIndex picks a clip index in [0, n) other than last. last < 0 means
// nothing was played yet. It returns -1 when there are no clips.
func NextIndex(rng *rand.Rand, n, last int) int {
	switch {
	case n <= 0:
		return -1
	case n == 1:
		return 0
	}

	available := n
	if last >= 0 {
		available--
	}
	i := rng.IntN(available)
	if last >= 0 && i >= last {
		i++
	}
	return i
}

// between returns a uniform value in [lo, hi].
func between(rng *rand.Rand, lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*rng.Float32()
}
