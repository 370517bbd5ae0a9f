// Package config handles game configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/hamsterrun/internal/locomotion"
	"github.com/Faultbox/hamsterrun/internal/pouch"
	"github.com/Faultbox/hamsterrun/internal/sound"
)

// Config holds all game settings.
type Config struct {
	Window   WindowConfig      `yaml:"window"`
	Audio    AudioConfig       `yaml:"audio"`
	Game     GameConfig        `yaml:"game"`
	Movement locomotion.Config `yaml:"movement"`
	Pouch    pouch.Config      `yaml:"pouch"`
	Logging  LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// AudioConfig holds audio settings and the effect definitions.
type AudioConfig struct {
	MasterVolume float32            `yaml:"master_volume"`
	MusicVolume  float32            `yaml:"music_volume"`
	SFXVolume    float32            `yaml:"sfx_volume"`
	Muted        bool               `yaml:"muted"`
	Collect      sound.EffectConfig `yaml:"collect"`
	Drop         sound.EffectConfig `yaml:"drop"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	Level     string  `yaml:"level"`      // Level file, empty for the built-in one
	FixedStep float32 `yaml:"fixed_step"` // Simulation step in seconds, 0 follows the frame
	Seed      uint64  `yaml:"seed"`       // Sound randomness, 0 picks one
	ShowFPS   bool    `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			MusicVolume:  0.7,
			SFXVolume:    0.8,
			Muted:        false,
			Collect: sound.EffectConfig{
				Name: "collect",
				Mode: sound.StopAndPlay,
				Layers: []sound.Layer{{
					Name:        "crunch",
					Clips:       []string{"sounds/collect1.wav", "sounds/collect2.wav", "sounds/collect3.wav"},
					PitchMin:    0.9,
					PitchMax:    1.15,
					VolumeMin:   0.8,
					VolumeMax:   1,
					Probability: 1,
				}},
			},
			Drop: sound.EffectConfig{
				Name: "drop",
				Mode: sound.OneShot,
				Layers: []sound.Layer{
					sound.NewLayer("plop", "sounds/drop.wav"),
					{
						Name:        "cheer",
						Clips:       []string{"sounds/cheer.wav"},
						PitchMin:    1,
						PitchMax:    1,
						VolumeMin:   0.6,
						VolumeMax:   0.8,
						Probability: 0.5,
						MinDelay:    0.2,
						MaxDelay:    0.4,
					},
				},
			},
		},
		Game: GameConfig{
			FixedStep: 1.0 / 60,
		},
		Movement: locomotion.DefaultConfig(),
		Pouch:    pouch.DefaultConfig(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would break the game.
func (c *Config) Validate() error {
	if err := c.Movement.Validate(); err != nil {
		return fmt.Errorf("movement: %w", err)
	}
	if c.Pouch.MaxPouch <= 0 {
		return fmt.Errorf("pouch: max_pouch must be positive, got %d", c.Pouch.MaxPouch)
	}
	if c.Game.FixedStep < 0 {
		return fmt.Errorf("game: fixed_step must not be negative, got %v", c.Game.FixedStep)
	}
	return nil
}
