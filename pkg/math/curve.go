package math

import "sort"

// Keyframe is a single point on a Curve.
type Keyframe struct {
	Time  float32 `yaml:"time"`
	Value float32 `yaml:"value"`
}

// Curve is a piecewise-linear function defined by keyframes.
// An empty curve is the identity.
type Curve struct {
	Keys []Keyframe `yaml:"keys"`
}

// NewCurve creates a curve from keyframes, sorting them by time.
func NewCurve(keys ...Keyframe) Curve {
	sorted := append([]Keyframe(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return Curve{Keys: sorted}
}

// Evaluate returns the curve value at t. Values outside the key range
// are held at the first/last key.
func (c Curve) Evaluate(t float32) float32 {
	n := len(c.Keys)
	if n == 0 {
		return t
	}
	if t <= c.Keys[0].Time {
		return c.Keys[0].Value
	}
	if t >= c.Keys[n-1].Time {
		return c.Keys[n-1].Value
	}
	i := sort.Search(n, func(i int) bool { return c.Keys[i].Time >= t })
	a, b := c.Keys[i-1], c.Keys[i]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Value
	}
	return a.Value + (b.Value-a.Value)*(t-a.Time)/span
}
