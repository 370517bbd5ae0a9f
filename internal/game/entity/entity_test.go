package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hamsterrun/pkg/math"
)

func TestTrackReportsEntryOnce(t *testing.T) {
	e := NewEntity(TypeNut, math.Vec3{}, 0.5)

	assert.False(t, e.Track(math.Vec3{X: 2}))
	assert.True(t, e.Track(math.Vec3{X: 0.2}))
	assert.False(t, e.Track(math.Vec3{X: 0.1}), "still inside")
	assert.True(t, e.Inside())
	assert.False(t, e.Track(math.Vec3{X: 1}))
	assert.True(t, e.Track(math.Vec3{Z: -0.3}), "re-entry")
}

func TestOverlapsIgnoresFarHeights(t *testing.T) {
	e := NewEntity(TypeGoal, math.Vec3{Y: 1}, 0.5)

	assert.True(t, e.Overlaps(math.Vec3{Y: 1.8}))
	assert.False(t, e.Overlaps(math.Vec3{Y: 2.5}))
	assert.False(t, NewEntity(TypeProp, math.Vec3{}, 0).Overlaps(math.Vec3{}))
}

func TestManagerKeepsInsertionOrder(t *testing.T) {
	m := NewManager()
	a := NewEntity(TypeNut, math.Vec3{X: 1}, 0.3)
	b := NewEntity(TypeGoal, math.Vec3{X: 2}, 0.8)
	c := NewEntity(TypeNut, math.Vec3{X: 3}, 0.3)
	m.Add(a)
	m.Add(b)
	m.Add(c)
	m.Add(a)

	require.Equal(t, 3, m.Count())
	assert.Equal(t, []*Entity{a, b, c}, m.All())
	assert.Equal(t, []*Entity{a, c}, m.GetByType(TypeNut))
	assert.Equal(t, 2, m.CountByType(TypeNut))

	m.Remove(a.ID)
	m.Remove(a.ID)
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, []*Entity{b, c}, m.All())

	c.IsVisible = false
	assert.Equal(t, []*Entity{b}, m.AllVisible())

	m.Clear()
	assert.Zero(t, m.Count())
}

func TestIDsAreUnique(t *testing.T) {
	a := NewEntity(TypeNut, math.Vec3{}, 0.3)
	b := NewEntity(TypeNut, math.Vec3{}, 0.3)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "nut", a.Type.String())
}
