// Package level loads level descriptions and builds their collision scene.
package level

import (
	_ "embed"
	"errors"
	"fmt"
	gomath "math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hamsterrun/internal/spatial"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

//go:embed default.yaml
var defaultLevel []byte

// Validation errors.
var (
	ErrNoTerrain = errors.New("level has no terrain")
	ErrBadGrid   = errors.New("height field grid is malformed")
)

// dropHeight is where ground lookups start their downward cast.
const dropHeight = 100

// Level is a playable level.
type Level struct {
	Name         string           `yaml:"name"`
	Spawn        Spawn            `yaml:"spawn"`
	HeightFields []HeightFieldDef `yaml:"height_fields"`
	Floors       []FloorDef       `yaml:"floors"`
	Boxes        []BoxDef         `yaml:"boxes"`
	Nuts         []math.Vec2      `yaml:"nuts"` // XZ; dropped onto the ground
	NutRadius    float32          `yaml:"nut_radius"`
	Goal         Goal             `yaml:"goal"`
	Music        string           `yaml:"music"`
}

// Spawn is the hamster start.
type Spawn struct {
	Position math.Vec2 `yaml:"position"` // XZ; dropped onto the ground
	Yaw      float32   `yaml:"yaw"`      // Degrees
}

// Goal is the deposit point.
type Goal struct {
	Position math.Vec2 `yaml:"position"`
	Radius   float32   `yaml:"radius"`
	Stack    int       `yaml:"stack"` // Nut props that can be revealed
}

// HeightFieldDef describes terrain either by explicit samples or by a
// sine wave generator.
type HeightFieldDef struct {
	Origin   math.Vec2   `yaml:"origin"`
	CellSize float32     `yaml:"cell_size"`
	Heights  [][]float32 `yaml:"heights"` // [x][z]
	Wave     *Wave       `yaml:"wave"`
}

// Wave generates rolling hills.
type Wave struct {
	SizeX      int     `yaml:"size_x"`
	SizeZ      int     `yaml:"size_z"`
	Base       float32 `yaml:"base"`
	Amplitude  float32 `yaml:"amplitude"`
	Wavelength float32 `yaml:"wavelength"`
}

// FloorDef is an infinite plane.
type FloorDef struct {
	Y float32 `yaml:"y"`
}

// BoxDef is an axis-aligned block.
type BoxDef struct {
	Min math.Vec3 `yaml:"min"`
	Max math.Vec3 `yaml:"max"`
}

// Default returns the built-in level.
func Default() (*Level, error) {
	return Parse(defaultLevel)
}

// Load reads a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a level.
func Parse(data []byte) (*Level, error) {
	l := &Level{NutRadius: 0.35}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	for i := range l.HeightFields {
		l.HeightFields[i].generate()
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks the level can be played.
func (l *Level) Validate() error {
	if len(l.HeightFields)+len(l.Floors)+len(l.Boxes) == 0 {
		return ErrNoTerrain
	}
	for i, hf := range l.HeightFields {
		if hf.CellSize <= 0 {
			return fmt.Errorf("height field %d: cell size %v: %w", i, hf.CellSize, ErrBadGrid)
		}
		if len(hf.Heights) < 2 {
			return fmt.Errorf("height field %d: need at least 2x2 samples: %w", i, ErrBadGrid)
		}
		for x, row := range hf.Heights {
			if len(row) != len(hf.Heights[0]) || len(row) < 2 {
				return fmt.Errorf("height field %d: row %d has %d samples: %w", i, x, len(row), ErrBadGrid)
			}
		}
	}
	if l.Goal.Radius <= 0 {
		return fmt.Errorf("goal radius must be positive, got %v", l.Goal.Radius)
	}
	if l.NutRadius <= 0 {
		return fmt.Errorf("nut radius must be positive, got %v", l.NutRadius)
	}
	return nil
}

func (d *HeightFieldDef) generate() {
	w := d.Wave
	if w == nil || len(d.Heights) > 0 || w.SizeX < 2 || w.SizeZ < 2 {
		return
	}
	k := 2 * gomath.Pi / float64(max(w.Wavelength, 1e-3))
	d.Heights = make([][]float32, w.SizeX)
	for x := range d.Heights {
		d.Heights[x] = make([]float32, w.SizeZ)
		for z := range d.Heights[x] {
			wx := float64(d.Origin.X + float32(x)*d.CellSize)
			wz := float64(d.Origin.Y + float32(z)*d.CellSize)
			d.Heights[x][z] = w.Base + w.Amplitude*float32(gomath.Sin(k*wx)*gomath.Cos(k*wz))
		}
	}
}

// Scene builds the collision scene.
func (l *Level) Scene() *spatial.Scene {
	s := spatial.NewScene()
	for _, hf := range l.HeightFields {
		s.Add(spatial.NewHeightField(hf.Origin, hf.CellSize, hf.Heights))
	}
	for _, f := range l.Floors {
		s.Add(spatial.Floor{Y: f.Y})
	}
	for _, b := range l.Boxes {
		s.Add(spatial.NewBox(b.Min, b.Max))
	}
	return s
}

// Ground returns the surface point below an XZ position, and false when
// there is nothing there.
func Ground(q spatial.Query, xz math.Vec2) (math.Vec3, bool) {
	origin := math.Vec3{X: xz.X, Y: dropHeight, Z: xz.Y}
	hit, ok := q.SphereCast(origin, 0, math.Up.Neg(), 2*dropHeight)
	if !ok {
		return math.Vec3{}, false
	}
	return math.Vec3{X: xz.X, Y: dropHeight - hit.Distance, Z: xz.Y}, true
}
