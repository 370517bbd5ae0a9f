package audio

import (
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/Faultbox/hamsterrun/internal/logger"
)

// Voice plays clips for one sound layer. The last clip it started can be cut
// by the next stopping play.
type Voice struct {
	m     *Manager
	layer string
	ctrl  *beep.Ctrl
}

// NewVoice creates a voice for a sound layer.
func (m *Manager) NewVoice(layer string) *Voice {
	return &Voice{m: m, layer: layer}
}

// Play starts clip at pitch (playback rate) and volume (0-1). Unknown clips
// and calls before Init are dropped.
func (v *Voice) Play(clip string, pitch, volume float32, stop bool) {
	m := v.m
	m.mu.RLock()
	buf, ok := m.clips[clip]
	initialized := m.initialized
	sfxVol := m.masterVolume * m.sfxVolLevel * float64(volume)
	m.mu.RUnlock()

	if !initialized {
		return
	}
	if !ok {
		logger.Warn("Unknown clip", zap.String("layer", v.layer), zap.String("clip", clip))
		return
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if pitch > 0 && pitch != 1 {
		s = beep.ResampleRatio(4, float64(pitch), s)
	}
	ctrl := &beep.Ctrl{Streamer: &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToDb(sfxVol),
		Silent:   sfxVol <= 0,
	}}

	speaker.Lock()
	if stop && v.ctrl != nil {
		v.ctrl.Streamer = nil
	}
	v.ctrl = ctrl
	m.sfxMixer.Add(ctrl)
	speaker.Unlock()
}
