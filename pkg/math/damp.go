package math

import "math"

// Deg2Rad converts degrees to radians.
const Deg2Rad = float32(math.Pi / 180)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates from a to b by t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp01(t)
}

// Abs returns |v|.
func Abs(v float32) float32 {
	return abs(v)
}

// ExpBlend returns the blend factor that moves a value toward its target
// with time constant tau over dt. tau <= 0 snaps.
func ExpBlend(dt, tau float32) float32 {
	if tau <= 0 {
		return 1
	}
	return 1 - float32(math.Exp(float64(-dt/tau)))
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity is the accumulator carried between calls; the updated value is
// returned alongside the new position. The result never overshoots target.
func SmoothDamp(current, target, velocity, smoothTime, dt float32) (float32, float32) {
	if dt <= 0 {
		return current, velocity
	}
	if smoothTime < 0.0001 {
		smoothTime = 0.0001
	}
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * decay
	out := target + (change+temp)*decay

	// Prevent overshooting
	if (target-current > 0) == (out > target) {
		out = target
		velocity = 0
	}
	return out, velocity
}

// SmoothDampVec3 applies SmoothDamp per axis.
func SmoothDampVec3(current, target, velocity Vec3, smoothTime, dt float32) (Vec3, Vec3) {
	var out, vel Vec3
	out.X, vel.X = SmoothDamp(current.X, target.X, velocity.X, smoothTime, dt)
	out.Y, vel.Y = SmoothDamp(current.Y, target.Y, velocity.Y, smoothTime, dt)
	out.Z, vel.Z = SmoothDamp(current.Z, target.Z, velocity.Z, smoothTime, dt)
	return out, vel
}
