// Package game implements the main game loop and state management.
package game

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/hamsterrun/internal/config"
	"github.com/Faultbox/hamsterrun/internal/engine/audio"
	"github.com/Faultbox/hamsterrun/internal/engine/input"
	"github.com/Faultbox/hamsterrun/internal/engine/window"
	"github.com/Faultbox/hamsterrun/internal/game/states"
	"github.com/Faultbox/hamsterrun/internal/game/world"
	"github.com/Faultbox/hamsterrun/internal/level"
	"github.com/Faultbox/hamsterrun/internal/logger"
	"github.com/Faultbox/hamsterrun/internal/sound"
)

// maxFrameTime caps the simulated time per frame after a stall.
const maxFrameTime = 0.25

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool
	window  *window.Window
	input   *input.Input
	audio   *audio.Manager
	session *world.Session
	states  *states.Manager
	level   *level.Level

	musicPaused bool
}

// New creates a new game instance.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("level", cfg.Game.Level),
	)

	lvl, err := loadLevel(cfg.Game.Level)
	if err != nil {
		return nil, err
	}

	g := &Game{config: cfg, level: lvl}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      "Hamster Run",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	g.audio = audio.New()
	if err := g.audio.Init(); err != nil {
		// The game is playable without sound
		logger.Warn("audio disabled", zap.Error(err))
	} else {
		g.setupAudio(lvl)
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1))
	logger.Debug("sound seed", zap.Uint64("seed", seed))

	voices := func(layer string) sound.Voice { return g.audio.NewVoice(layer) }
	g.session, err = world.NewSession(cfg, lvl, rng, voices)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to start level: %w", err)
	}

	g.input = input.New()
	g.states = states.NewManager()
	modes := states.New(g.states, g.session, g.intent)
	g.states.Change(modes.Menu)
	g.syncMusic()

	logger.Info("game initialized successfully")
	return g, nil
}

func loadLevel(path string) (*level.Level, error) {
	if path == "" {
		return level.Default()
	}
	return level.Load(path)
}

// setupAudio loads the effect clips and starts the level music. Missing
// files are logged and skipped.
func (g *Game) setupAudio(lvl *level.Level) {
	a := g.config.Audio
	g.audio.SetMasterVolume(float64(a.MasterVolume))
	g.audio.SetMusicVolume(float64(a.MusicVolume))
	g.audio.SetSFXVolume(float64(a.SFXVolume))

	for _, effect := range []sound.EffectConfig{a.Collect, a.Drop} {
		for _, layer := range effect.Layers {
			for _, clip := range layer.Clips {
				if g.audio.HasClip(clip) {
					continue
				}
				if err := g.audio.LoadFile(clip); err != nil {
					logger.Warn("failed to load clip", zap.String("clip", clip), zap.Error(err))
				}
			}
		}
	}

	if !a.Muted {
		g.startMusic()
	}
}

func (g *Game) startMusic() {
	if g.level.Music == "" || !g.audio.IsInitialized() {
		return
	}
	if err := g.audio.PlayMusicFile(g.level.Music); err != nil {
		logger.Warn("failed to play music", zap.String("music", filepath.Base(g.level.Music)), zap.Error(err))
		return
	}
	g.musicPaused = false
}

// syncMusic pauses the music while the menu is up.
func (g *Game) syncMusic() {
	paused := !g.session.Playing()
	if paused == g.musicPaused {
		return
	}
	g.musicPaused = paused
	g.audio.SetMusicPaused(paused)
}

func (g *Game) toggleMute() {
	g.config.Audio.Muted = !g.config.Audio.Muted
	g.session.SetMuted(g.config.Audio.Muted)
	if g.config.Audio.Muted {
		g.audio.StopMusic()
	} else {
		g.startMusic()
		g.musicPaused = false
		g.syncMusic()
	}
	logger.Info("sound toggled", zap.Bool("muted", g.config.Audio.Muted))
}

// resize keeps the viewport in step with the window.
func (g *Game) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.window.UpdateViewport()
	logger.Debug("window resized", zap.Int("width", width), zap.Int("height", height))
}

// intent reads the keyboard axes.
func (g *Game) intent() (forward, turn float32) {
	return g.input.Vertical.Value(), g.input.Horizontal.Value()
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	// Timing
	step := g.config.Game.FixedStep
	var acc float32
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop", zap.Float32("fixedStep", step))

	for g.running {
		now := time.Now()
		dt := min(float32(now.Sub(lastTime).Seconds()), maxFrameTime)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}

		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				g.resize(event.Width, event.Height)
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					g.running = false
				case sdl.SCANCODE_F3:
					g.toggleDebugLog()
				case sdl.SCANCODE_M:
					g.toggleMute()
				}
			}
			if err := g.states.HandleInput(event); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
		}

		// 2. Update game state
		if step <= 0 {
			if err := g.update(dt); err != nil {
				return err
			}
		} else {
			for acc += dt; acc >= step; acc -= step {
				if err := g.update(step); err != nil {
					return err
				}
			}
		}

		// 3. Render
		if err := g.states.Render(g.window); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		if limit := g.config.Window.FPSLimit; limit > 0 {
			if rest := time.Second/time.Duration(limit) - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Game.ShowFPS {
				logger.Info("fps", zap.Int("count", frameCount))
			} else {
				logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt", dt))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) toggleDebugLog() {
	lvl := "debug"
	if logger.Level() == zapcore.DebugLevel {
		lvl = g.config.Logging.Level
	}
	if err := logger.SetLevel(lvl); err != nil {
		logger.Warn("failed to change log level", zap.Error(err))
		return
	}
	logger.Info("log level changed", zap.Stringer("level", logger.Level()))
}

func (g *Game) update(dt float32) error {
	g.input.UpdateAxes(dt)
	if err := g.states.Update(dt); err != nil {
		return fmt.Errorf("update error: %w", err)
	}
	g.syncMusic()
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.audio != nil {
		g.audio.StopMusic()
		g.audio.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
