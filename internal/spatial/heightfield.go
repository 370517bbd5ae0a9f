package spatial

import (
	"github.com/Faultbox/hamsterrun/pkg/math"
)

const (
	marchSteps  = 4  // samples per radius when marching a cast
	refineSteps = 12 // bisection iterations once a crossing is found
)

// HeightField is a regular grid of ground heights, solid below the surface.
// Outside the grid there is no ground.
type HeightField struct {
	Origin   math.Vec2   // World XZ of sample [0][0]
	CellSize float32     // Spacing between samples in world units
	Heights  [][]float32 // Heights[x][z]
}

// NewHeightField creates a height field. heights is indexed [x][z].
func NewHeightField(origin math.Vec2, cellSize float32, heights [][]float32) *HeightField {
	return &HeightField{Origin: origin, CellSize: cellSize, Heights: heights}
}

// SizeX returns the number of samples along X.
func (h *HeightField) SizeX() int {
	return len(h.Heights)
}

// SizeZ returns the number of samples along Z.
func (h *HeightField) SizeZ() int {
	if len(h.Heights) == 0 {
		return 0
	}
	return len(h.Heights[0])
}

// HeightAt returns the bilinearly interpolated ground height at a world
// XZ position, and false when the position is outside the grid.
func (h *HeightField) HeightAt(worldX, worldZ float32) (float32, bool) {
	sx, sz := h.SizeX(), h.SizeZ()
	if sx < 2 || sz < 2 || h.CellSize <= 0 {
		return 0, false
	}

	fx := (worldX - h.Origin.X) / h.CellSize
	fz := (worldZ - h.Origin.Y) / h.CellSize
	if fx < 0 || fz < 0 || fx > float32(sx-1) || fz > float32(sz-1) {
		return 0, false
	}

	cellX := int(fx)
	cellZ := int(fz)
	if cellX >= sx-1 {
		cellX = sx - 2
	}
	if cellZ >= sz-1 {
		cellZ = sz - 2
	}

	// Fractional position within cell (0-1)
	fracX := math.Clamp01(fx - float32(cellX))
	fracZ := math.Clamp01(fz - float32(cellZ))

	h00 := h.Heights[cellX][cellZ]
	h10 := h.Heights[cellX+1][cellZ]
	h01 := h.Heights[cellX][cellZ+1]
	h11 := h.Heights[cellX+1][cellZ+1]

	// Bilinear interpolation: lerp along X on both Z edges, then along Z
	south := h00*(1-fracX) + h10*fracX
	north := h01*(1-fracX) + h11*fracX
	return south*(1-fracZ) + north*fracZ, true
}

// NormalAt returns the surface normal at a world XZ position.
func (h *HeightField) NormalAt(worldX, worldZ float32) math.Vec3 {
	e := h.CellSize * 0.5
	hl, okl := h.HeightAt(worldX-e, worldZ)
	hr, okr := h.HeightAt(worldX+e, worldZ)
	hd, okd := h.HeightAt(worldX, worldZ-e)
	hu, oku := h.HeightAt(worldX, worldZ+e)
	if !okl || !okr || !okd || !oku {
		return math.Up
	}
	return math.Vec3{X: hl - hr, Y: 2 * e, Z: hd - hu}.Normalize()
}

// penetrates reports whether a sphere at center touches the ground.
// The sphere is approximated by its lowest point.
func (h *HeightField) penetrates(center math.Vec3, radius float32) bool {
	ground, ok := h.HeightAt(center.X, center.Z)
	if !ok {
		return false
	}
	return center.Y-radius <= ground
}

// SphereCast marches the sphere along the direction and refines the first
// crossing by bisection.
func (h *HeightField) SphereCast(origin math.Vec3, radius float32, direction math.Vec3, maxDistance float32) (Hit, bool) {
	dir := direction.Normalize()
	if h.penetrates(origin, radius) {
		return Hit{}, false // Already overlapping
	}

	step := radius / marchSteps
	if limit := h.CellSize / marchSteps; step <= 0 || step > limit {
		step = limit
	}
	if step <= 0 {
		return Hit{}, false
	}

	free := float32(0)
	for t := step; ; t += step {
		if t > maxDistance {
			t = maxDistance
		}
		if h.penetrates(origin.Add(dir.Scale(t)), radius) {
			return h.refine(origin, radius, dir, free, t), true
		}
		if t >= maxDistance {
			return Hit{}, false
		}
		free = t
	}
}

func (h *HeightField) refine(origin math.Vec3, radius float32, dir math.Vec3, free, solid float32) Hit {
	for i := 0; i < refineSteps; i++ {
		mid := (free + solid) / 2
		if h.penetrates(origin.Add(dir.Scale(mid)), radius) {
			solid = mid
		} else {
			free = mid
		}
	}
	center := origin.Add(dir.Scale(solid))
	ground, _ := h.HeightAt(center.X, center.Z)
	return Hit{
		Distance: solid,
		Point:    math.Vec3{X: center.X, Y: ground, Z: center.Z},
		Normal:   h.NormalAt(center.X, center.Z),
	}
}
