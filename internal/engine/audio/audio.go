// Package audio plays level music and sound effect clips through beep.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/hamsterrun/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playback is requested before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager owns the speaker, the decoded clip bank and the music stream.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate

	// Decoded clips by name
	clips map[string]*beep.Buffer

	// Music
	musicCtrl   *beep.Ctrl
	musicVolume *effects.Volume
	musicName   string

	// Volume settings (0.0 to 1.0)
	masterVolume  float64
	musicVolLevel float64
	sfxVolLevel   float64

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:    DefaultSampleRate,
		clips:         make(map[string]*beep.Buffer),
		masterVolume:  1.0,
		musicVolLevel: 0.7,
		sfxVolLevel:   1.0,
		sfxMixer:      &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close stops all playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.stopMusicLocked()
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateMusicVolume()
}

// SetMusicVolume sets the music volume (0.0 to 1.0).
func (m *Manager) SetMusicVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicVolLevel = clamp(vol, 0, 1)
	m.updateMusicVolume()
}

// SetSFXVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// MusicVolume returns the music volume.
func (m *Manager) MusicVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.musicVolLevel
}

// SFXVolume returns the effect volume.
func (m *Manager) SFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

func (m *Manager) updateMusicVolume() {
	if m.musicVolume == nil {
		return
	}
	vol := m.masterVolume * m.musicVolLevel
	m.musicVolume.Silent = vol <= 0
	m.musicVolume.Volume = volumeToDb(vol)
}

// volumeToDb converts a 0-1 volume to the base-2 exponent used by
// effects.Volume.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Load decodes WAV data into the clip bank under name.
func (m *Manager) Load(name string, data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	defer streamer.Close()

	src := m.resample(format.SampleRate, streamer)
	format.SampleRate = m.sampleRate
	buf := beep.NewBuffer(format)
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	m.mu.Lock()
	m.clips[name] = buf
	m.mu.Unlock()
	return nil
}

// LoadFile reads a WAV file into the clip bank under its path.
func (m *Manager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read clip: %w", err)
	}
	return m.Load(path, data)
}

// HasClip reports whether name was loaded.
func (m *Manager) HasClip(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clips[name]
	return ok
}

func (m *Manager) resample(from beep.SampleRate, s beep.Streamer) beep.Streamer {
	if from == m.sampleRate {
		return s
	}
	return beep.Resample(4, from, m.sampleRate, s)
}

// PlayMusic loops WAV data as background music.
func (m *Manager) PlayMusic(data []byte, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	m.stopMusicLocked()

	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode music: %w", err)
	}
	looped := beep.Loop(-1, streamer)

	m.musicCtrl = &beep.Ctrl{Streamer: m.resample(format.SampleRate, looped)}
	m.musicVolume = &effects.Volume{Streamer: m.musicCtrl, Base: 2}
	m.updateMusicVolume()
	m.musicName = name

	speaker.Play(m.musicVolume)
	logger.Info("Music started", zap.String("name", name))
	return nil
}

// PlayMusicFile loops a WAV file as background music.
func (m *Manager) PlayMusicFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read music: %w", err)
	}
	return m.PlayMusic(data, path)
}

// StopMusic stops the background music.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusicLocked()
}

func (m *Manager) stopMusicLocked() {
	if m.musicCtrl != nil {
		speaker.Lock()
		m.musicCtrl.Streamer = nil
		speaker.Unlock()
	}
	m.musicCtrl = nil
	m.musicVolume = nil
	m.musicName = ""
}

// SetMusicPaused pauses or resumes the music.
func (m *Manager) SetMusicPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.musicCtrl == nil {
		return
	}
	speaker.Lock()
	m.musicCtrl.Paused = paused
	speaker.Unlock()
}

// MusicName returns the name of the playing music, if any.
func (m *Manager) MusicName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.musicName
}
