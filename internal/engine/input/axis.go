package input

// Axis turns a pair of keys into a value in [-1, 1] that ramps toward the
// pressed direction and falls back to zero when released.
type Axis struct {
	Sensitivity float32 // Units per second toward a pressed direction
	Gravity     float32 // Units per second back to zero
	Snap        bool    // Reversing jumps through zero

	value float32
}

// NewAxis creates an axis with the usual keyboard feel.
func NewAxis() Axis {
	return Axis{Sensitivity: 3, Gravity: 3, Snap: true}
}

// Value returns the current axis value.
func (a *Axis) Value() float32 {
	return a.value
}

// Reset zeroes the axis.
func (a *Axis) Reset() {
	a.value = 0
}

// Update advances the axis by dt seconds.
func (a *Axis) Update(positive, negative bool, dt float32) float32 {
	var target float32
	switch {
	case positive && !negative:
		target = 1
	case negative && !positive:
		target = -1
	}

	if target == 0 {
		a.value = approach(a.value, 0, a.Gravity*dt)
		return a.value
	}
	if a.Snap && a.value*target < 0 {
		a.value = 0
	}
	a.value = approach(a.value, target, a.Sensitivity*dt)
	return a.value
}

func approach(v, target, step float32) float32 {
	if v < target {
		return min(v+step, target)
	}
	return max(v-step, target)
}
