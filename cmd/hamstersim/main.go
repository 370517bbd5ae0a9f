// hamstersim runs a level without a window and reports how the hamster's
// footing held up.
package main

import (
	"flag"
	"fmt"
	stdmath "math"
	"math/rand/v2"
	"os"

	"github.com/Faultbox/hamsterrun/internal/config"
	"github.com/Faultbox/hamsterrun/internal/game/entity"
	"github.com/Faultbox/hamsterrun/internal/game/world"
	"github.com/Faultbox/hamsterrun/internal/level"
	"github.com/Faultbox/hamsterrun/internal/locomotion"
	"github.com/Faultbox/hamsterrun/internal/logger"
	"github.com/Faultbox/hamsterrun/internal/spatial"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "level", "info":
		cmdLevel(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hamstersim - headless Hamster Run simulator

Usage:
  hamstersim <command> [options]

Commands:
  run   [options]        Walk the hamster through a level and report
  level [file.yaml]      Show level information

Run options:
  -level <file>          Level file (default: built-in)
  -config <file>         Config file (default: built-in settings)
  -seconds <n>           Simulated time (default 30)
  -forward <f>           Forward intent in [-1, 1] (default 1)
  -turn <f>              Turn intent in [-1, 1] (default 0)
  -wander                Pick a new random turn every second
  -seed <n>              Random seed (default 1)
  -v                     Debug logging to stderr

Examples:
  hamstersim run -seconds 60 -wander
  hamstersim run -level meadow.yaml -turn 0.4
  hamstersim level meadow.yaml`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func loadLevel(path string) *level.Level {
	var (
		lvl *level.Level
		err error
	)
	if path == "" {
		lvl, err = level.Default()
	} else {
		lvl, err = level.Load(path)
	}
	if err != nil {
		fail(err)
	}
	return lvl
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	levelPath := fs.String("level", "", "Level file")
	configPath := fs.String("config", "", "Config file")
	seconds := fs.Float64("seconds", 30, "Simulated seconds")
	forward := fs.Float64("forward", 1, "Forward intent")
	turn := fs.Float64("turn", 0, "Turn intent")
	wander := fs.Bool("wander", false, "Random turn every second")
	seed := fs.Uint64("seed", 1, "Random seed")
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Parse(args)

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fail(err)
		}
		defer logger.Sync()
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			fail(err)
		}
	}
	step := cfg.Game.FixedStep
	if step <= 0 {
		step = 1.0 / 60
	}

	lvl := loadLevel(*levelPath)
	rng := rand.New(rand.NewPCG(*seed, *seed))
	s, err := world.NewSession(cfg, lvl, rng, nil)
	if err != nil {
		fail(err)
	}
	s.SetPlaying(true)

	r := report{Level: lvl.Name, Available: s.Pouch().Available()}
	fwd := math.Clamp(float32(*forward), -1, 1)
	tn := math.Clamp(float32(*turn), -1, 1)
	prev := s.Pose().Position
	nextWander := float32(0)

	for s.Now() < float32(*seconds) {
		if *wander && s.Now() >= nextWander {
			tn = rng.Float32()*2 - 1
			nextWander += 1
		}
		out := s.Step(step, fwd, tn)
		r.add(out, step)
		r.Distance += out.Pose.Position.Distance(prev)
		prev = out.Pose.Position
	}

	r.Seconds = s.Now()
	r.Found = s.Pouch().Found()
	r.Left = s.Entities().CountByType(entity.TypeNut)
	r.Revealed = s.Revealed()
	r.Objects = s.Entities().Count()
	r.Visible = len(s.Entities().AllVisible())
	r.Score = s.Score()
	r.Final = s.Pose().Position
	r.MarkerTilt = angleDeg(s.MarkerRotation().Forward(), math.Up)
	r.MessageTurn = angleDeg(s.MessageRotation().Forward(), s.Camera().Forward().Neg())

	fmt.Println(r.View())
}

func cmdLevel(args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	lvl := loadLevel(path)
	scene := lvl.Scene()

	fmt.Println(titleStyle.Render(lvl.Name))
	printRow("Height fields", fmt.Sprint(len(lvl.HeightFields)))
	printRow("Floors", fmt.Sprint(len(lvl.Floors)))
	printRow("Boxes", fmt.Sprint(len(lvl.Boxes)))
	printRow("Colliders", fmt.Sprint(scene.Len()))
	printRow("Spawn", groundText(scene, lvl.Spawn.Position))
	printRow("Goal", fmt.Sprintf("%s r=%.2f stack=%d", groundText(scene, lvl.Goal.Position), lvl.Goal.Radius, lvl.Goal.Stack))
	printRow("Nuts", fmt.Sprint(len(lvl.Nuts)))
	for i, n := range lvl.Nuts {
		printRow(fmt.Sprintf("  #%d", i+1), groundText(scene, n))
	}
	if lvl.Music != "" {
		printRow("Music", lvl.Music)
	}
}

func groundText(scene spatial.Query, xz math.Vec2) string {
	p, ok := level.Ground(scene, xz)
	if !ok {
		return warnStyle.Render(fmt.Sprintf("(%.2f, -, %.2f) no ground", xz.X, xz.Y))
	}
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
}

// angleDeg returns the angle between two unit vectors in degrees.
func angleDeg(a, b math.Vec3) float32 {
	cos := math.Clamp(a.Dot(b), -1, 1)
	return float32(stdmath.Acos(float64(cos)) * 180 / stdmath.Pi)
}

// report accumulates run statistics.
type report struct {
	Level     string
	Seconds   float32
	Steps     int
	Distance  float32
	Final     math.Vec3
	Statuses  [3]int
	Unstable  float32
	Available int
	Found     int
	Left      int
	Revealed  int
	Objects   int
	Visible   int
	Score     string

	// Billboard checks: how far the hamster marker leans off world up,
	// and how far the goal message is from facing the camera.
	MarkerTilt  float32
	MessageTurn float32
}

func (r *report) add(out locomotion.Output, dt float32) {
	r.Steps++
	if int(out.Status) < len(r.Statuses) {
		r.Statuses[out.Status]++
	}
	if !out.Stable {
		r.Unstable += dt
	}
}
