package locomotion

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/hamsterrun/internal/spatial"
	"github.com/Faultbox/hamsterrun/pkg/math"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

func flatScene() *spatial.Scene {
	return spatial.NewScene(spatial.Floor{Y: 0})
}

// ledgeScene is a platform with its top at y=0 that ends at z=1.
func ledgeScene() *spatial.Scene {
	return spatial.NewScene(spatial.NewBox(
		math.Vec3{X: -5, Y: -1, Z: -5},
		math.Vec3{X: 5, Y: 0, Z: 1},
	))
}

func hillScene() *spatial.Scene {
	const size = 41
	heights := make([][]float32, size)
	for x := range heights {
		heights[x] = make([]float32, size)
		for z := range heights[x] {
			fx, fz := float32(x)/size, float32(z)/size
			heights[x][z] = 0.4 * fx * (1 - fx) * (1 + fz)
		}
	}
	return spatial.NewScene(spatial.NewHeightField(math.Vec2{X: -20, Y: -20}, 1, heights))
}

func walk(forward, turn float32) Input {
	return Input{DeltaTime: 0.1, Forward: forward, Turn: turn, Running: true}
}

type fixedCooldown float32

func (c fixedCooldown) LastTriggered() float32 { return float32(c) }

func TestStraightWalk(t *testing.T) {
	c := NewController(DefaultConfig(), flatScene(), NewPose(math.Vec3{}))

	for i := 0; i < 10; i++ {
		out := c.Tick(walk(1, 0))
		if out.Status != StatusOK {
			t.Fatalf("tick %d: status %v", i, out.Status)
		}
	}

	want := NewPose(math.Vec3{Z: 1})
	if diff := cmp.Diff(want.Position, c.Pose().Position, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
	if a := c.Pose().Rotation.Angle(math.QuatIdentity()); a > 1e-3 {
		t.Errorf("rotation drifted by %v rad", a)
	}
}

func TestBlockedForwardHoldsPosition(t *testing.T) {
	// Low ceiling over the front feet only
	scene := spatial.NewScene(
		spatial.Floor{Y: 0},
		spatial.NewBox(math.Vec3{X: -1, Y: 0.6, Z: 0.1}, math.Vec3{X: 1, Y: 1, Z: 0.6}),
	)
	c := NewController(DefaultConfig(), scene, NewPose(math.Vec3{}))

	out := c.Tick(walk(1, 0))

	if out.CanForward {
		t.Fatal("expected forward to be blocked")
	}
	if !out.CanBackward {
		t.Error("expected backward to be free")
	}
	if out.Signal.Forward != 0 {
		t.Errorf("forward intent = %v, want 0", out.Signal.Forward)
	}
	if diff := cmp.Diff(math.Vec3{}, out.Pose.Position, approx); diff != "" {
		t.Errorf("position moved (-want +got):\n%s", diff)
	}

	// Reversing stays allowed
	out = c.Tick(walk(-1, 0))
	if out.Signal.Forward != -1 {
		t.Errorf("reverse intent = %v, want -1", out.Signal.Forward)
	}
}

func TestNotRunningZeroesIntent(t *testing.T) {
	start := NewPose(math.Vec3{Y: 0.2})
	c := NewController(DefaultConfig(), flatScene(), start)

	out := c.Tick(Input{DeltaTime: 0.1, Forward: 1, Turn: 1, Running: false})

	if diff := cmp.Diff(Signal{LookPitch: out.Signal.LookPitch}, out.Signal); diff != "" {
		t.Errorf("intents not zeroed (-want +got):\n%s", diff)
	}
	got := out.Pose.Position
	if got.Y >= start.Position.Y {
		t.Errorf("body did not settle: y=%v", got.Y)
	}
	if diff := cmp.Diff(start.Position.XZ(), got.XZ(), approx); diff != "" {
		t.Errorf("body moved horizontally (-want +got):\n%s", diff)
	}
}

func TestRollbackAtLedge(t *testing.T) {
	start := NewPose(math.Vec3{Z: 0.8})
	c := NewController(DefaultConfig(), ledgeScene(), start)

	out := c.Tick(walk(1, 0))

	if out.Status != StatusRolledBack {
		t.Fatalf("status = %v, want %v", out.Status, StatusRolledBack)
	}
	if diff := cmp.Diff(start, out.Pose, approx); diff != "" {
		t.Errorf("pose not restored (-want +got):\n%s", diff)
	}
	if got := c.State().ProblemTime; got != 0.1 {
		t.Errorf("problem time = %v, want 0.1", got)
	}

	// Backing off clears the problem timer
	out = c.Tick(walk(-1, 0))
	if out.Status != StatusOK {
		t.Fatalf("status = %v, want %v", out.Status, StatusOK)
	}
	if got := c.State().ProblemTime; got != 0 {
		t.Errorf("problem time = %v, want 0", got)
	}
}

func TestEscalatesToSafePose(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SafeThreshold = 0 // keep the seeded safe pose
	rig := NewRig(cfg, ledgeScene(), nil)

	safe := NewPose(math.Vec3{X: 1, Z: -2})
	s := NewState(NewPose(math.Vec3{Z: 0.8}))
	s.Safe = safe

	const dt = 0.1
	minTicks := int(cfg.ProblemTimeout / dt)
	restoredAt := -1
	for i := 1; i <= minTicks+2; i++ {
		var out Output
		s, out = rig.Step(s, walk(1, 0))
		if out.Status == StatusRestored {
			restoredAt = i
			break
		}
		if out.Status != StatusRolledBack {
			t.Fatalf("tick %d: status %v", i, out.Status)
		}
	}

	if restoredAt < minTicks {
		t.Fatalf("restored after %d ticks, want at least %d", restoredAt, minTicks)
	}
	if diff := cmp.Diff(safe, s.Pose, approx); diff != "" {
		t.Errorf("pose is not the safe pose (-want +got):\n%s", diff)
	}
	if s.ProblemTime != 0 {
		t.Errorf("problem time = %v, want 0", s.ProblemTime)
	}
}

func TestNoEscalationOnContinuousFooting(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	cfg := DefaultConfig()
	cfg.TranslateDamp = 0.05
	cfg.RotateDamp = 0.05
	c := NewController(cfg, hillScene(), NewPose(math.Vec3{Y: 0.1}))

	for i := 0; i < 300; i++ {
		in := Input{
			DeltaTime: 0.02 + 0.03*rng.Float32(),
			Forward:   rng.Float32()*2 - 1,
			Turn:      rng.Float32()*2 - 1,
			Running:   true,
		}
		out := c.Tick(in)
		for j, h := range out.Recheck {
			if !h.Hit {
				t.Fatalf("tick %d: %v foot lost the ground", i, Corners[j])
			}
		}
		if out.Status == StatusRestored {
			t.Fatalf("tick %d: restored with valid footing", i)
		}
	}
}

func TestNoEscalationUnderOverhang(t *testing.T) {
	// Overhang starting just ahead; the feet stay on the floor throughout
	scene := spatial.NewScene(
		spatial.Floor{Y: 0},
		spatial.NewBox(math.Vec3{X: -5, Y: 0.6, Z: 1}, math.Vec3{X: 5, Y: 1, Z: 5}),
	)
	c := NewController(DefaultConfig(), scene, NewPose(math.Vec3{}))

	counts := map[Status]int{}
	for i := 0; i < 200; i++ {
		out := c.Tick(walk(1, 0))
		counts[out.Status]++
		for j, h := range out.Recheck {
			if !h.Hit {
				t.Fatalf("tick %d: %v foot lost the ground", i, Corners[j])
			}
		}
		if out.Status == StatusRestored {
			t.Fatalf("tick %d: restored while held under the overhang", i)
		}
		if pt := c.State().ProblemTime; pt != 0 {
			t.Fatalf("tick %d: problem time = %v, want 0", i, pt)
		}
	}
	if counts[StatusRolledBack] == 0 {
		t.Error("expected the overhang to stop the hamster at least once")
	}
	if z := c.Pose().Position.Z; z > 1 {
		t.Errorf("walked under the overhang to z=%v", z)
	}
}

func TestCorrectionIsRateLimited(t *testing.T) {
	cfg := DefaultConfig()
	scene := spatial.NewScene(
		spatial.Floor{Y: 0},
		spatial.NewBox(math.Vec3{X: -1, Y: 0, Z: 0.4}, math.Vec3{X: 1, Y: 0.5, Z: 2}),
	)
	poses := []Pose{
		NewPose(math.Vec3{Y: 1.2}),
		NewPose(math.Vec3{Y: -0.25}),
		NewPose(math.Vec3{Z: 0.2}),
		{Position: math.Vec3{Y: 0.4}, Rotation: math.QuatFromAxisAngle(math.Right, 0.4)},
	}

	for _, dt := range []float32{0.01, 0.1, 0.5} {
		step := cfg.MaxShiftSpeed * dt
		for _, p := range poses {
			for _, margin := range []float32{0, cfg.CheckMoveMargin} {
				f := probeFeet(scene, cfg, p, margin, step)
				for i, h := range f.Holds {
					if math.Abs(h.Dist) > step+1e-6 {
						t.Errorf("dt=%v pose=%v %v: |%v| exceeds %v", dt, p.Position, Corners[i], h.Dist, step)
					}
				}
			}
		}
	}
}

func TestLookPitchBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LookDamp = 0
	scenes := map[string]*spatial.Scene{
		"nothing": spatial.NewScene(),
		"floor":   flatScene(),
		"wall": spatial.NewScene(
			spatial.Floor{Y: 0},
			spatial.NewBox(math.Vec3{X: -1, Y: 0, Z: 0.5}, math.Vec3{X: 1, Y: 2, Z: 1}),
		),
		"near wall": spatial.NewScene(
			spatial.NewBox(math.Vec3{X: -1, Y: 0, Z: 0.36}, math.Vec3{X: 1, Y: 2, Z: 1}),
		),
		"pit": spatial.NewScene(spatial.Floor{Y: -0.6}),
	}

	for name, scene := range scenes {
		t.Run(name, func(t *testing.T) {
			raw := lookRaw(scene, cfg, NewPose(math.Vec3{}))
			if raw < -1 || raw > 1 {
				t.Errorf("raw pitch %v out of range", raw)
			}
			s := smoothLook(cfg, NewState(NewPose(math.Vec3{})), raw, 0.1)
			if s.LookPitch < -1 || s.LookPitch > 1 {
				t.Errorf("pitch %v out of range", s.LookPitch)
			}
		})
	}

	if got := lookRaw(scenes["nothing"], cfg, NewPose(math.Vec3{})); got != -1 {
		t.Errorf("empty scene pitch = %v, want -1", got)
	}
	if got := lookRaw(scenes["wall"], cfg, NewPose(math.Vec3{})); got <= 0 {
		t.Errorf("wall ahead pitch = %v, want > 0", got)
	}
}

func TestLookPitchSmoothing(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(NewPose(math.Vec3{}))
	s.LookPitch = 1
	s.LookVelocity = 50

	for i := 0; i < 20; i++ {
		s = smoothLook(cfg, s, -1, 0.05)
		if s.LookPitch < -1 || s.LookPitch > 1 {
			t.Fatalf("step %d: pitch %v out of range", i, s.LookPitch)
		}
	}
	if s.LookPitch > -0.9 {
		t.Errorf("pitch %v did not approach -1", s.LookPitch)
	}
}

func TestMoveRequest(t *testing.T) {
	cfg := DefaultConfig()
	free := Footing{CanForward: true, CanBackward: true}

	tests := []struct {
		name    string
		in      Input
		footing Footing
		eat     Cooldown
		want    request
	}{
		{
			name:    "straight",
			in:      Input{Forward: 1, Running: true},
			footing: free,
			want:    request{Forward: 1, Speed: cfg.MoveSpeed},
		},
		{
			name:    "full turn uses turning speed",
			in:      Input{Forward: 0.5, Turn: -1, Running: true},
			footing: free,
			want:    request{Forward: 0.5, Turn: -1, Speed: cfg.MoveSpeedTurning},
		},
		{
			name:    "forward blocked",
			in:      Input{Forward: 1, Running: true},
			footing: Footing{CanBackward: true},
			want:    request{Speed: cfg.MoveSpeed},
		},
		{
			name:    "backward blocked",
			in:      Input{Forward: -1, Running: true},
			footing: Footing{CanForward: true},
			want:    request{Speed: cfg.MoveSpeed},
		},
		{
			name:    "eating",
			in:      Input{Forward: 1, Turn: 1, Now: 10.1, Running: true},
			footing: free,
			eat:     fixedCooldown(10),
			want:    request{Turn: 1, Speed: cfg.MoveSpeedTurning},
		},
		{
			name:    "eat cooldown over",
			in:      Input{Forward: 1, Now: 11, Running: true},
			footing: free,
			eat:     fixedCooldown(10),
			want:    request{Forward: 1, Speed: cfg.MoveSpeed},
		},
		{
			name:    "not running",
			in:      Input{Forward: 1, Turn: 1},
			footing: free,
			want:    request{Speed: cfg.MoveSpeed},
		},
		{
			name:    "axes clamped",
			in:      Input{Forward: 3, Running: true},
			footing: free,
			want:    request{Forward: 1, Speed: cfg.MoveSpeed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moveRequest(cfg, tt.in, tt.footing, tt.eat)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNoTurningInPlace(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPose(math.Vec3{})

	got := applyMove(cfg, p, request{Turn: 1, Speed: cfg.MoveSpeedTurning}, 0.1)
	if diff := cmp.Diff(p, got, approx); diff != "" {
		t.Errorf("turned in place (-want +got):\n%s", diff)
	}

	got = applyMove(cfg, p, request{Forward: 1, Turn: 1, Speed: 1}, 0.1)
	wantYaw := cfg.TurnRate * 0.1 * math.Deg2Rad
	if a := got.Rotation.Angle(p.Rotation); math.Abs(a-wantYaw) > 1e-4 {
		t.Errorf("yaw = %v, want %v", a, wantYaw)
	}
	if got.Forward().X <= 0 {
		t.Errorf("positive turn should yaw right, forward = %v", got.Forward())
	}
}

func TestDerivePlaneOnSlope(t *testing.T) {
	// Feet on a plane rising 0.5 per unit of z
	var f Footing
	for i, c := range Corners {
		a := DefaultConfig().Anchors.At(c)
		f.Holds[i] = FootHold{Hit: true, Position: math.Vec3{X: a.X, Y: a.Z * 0.5, Z: a.Z}}
	}

	pl := derivePlane(f)

	wantFwd := math.Vec3{Y: 0.5, Z: 1}.Normalize()
	wantUp := math.Vec3{Y: 1, Z: -0.5}.Normalize()
	if diff := cmp.Diff(wantFwd, pl.Forward, approx); diff != "" {
		t.Errorf("forward mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantUp, pl.Up, approx); diff != "" {
		t.Errorf("up mismatch (-want +got):\n%s", diff)
	}
}

func TestSafePoseTracksStableGround(t *testing.T) {
	c := NewController(DefaultConfig(), flatScene(), NewPose(math.Vec3{}))

	for i := 0; i < 5; i++ {
		out := c.Tick(walk(1, 0))
		if !out.Stable {
			t.Fatalf("tick %d: flat ground reported unstable", i)
		}
	}
	if diff := cmp.Diff(c.Pose(), c.State().Safe, approx); diff != "" {
		t.Errorf("safe pose lags committed pose (-want +got):\n%s", diff)
	}
}

type recorder struct {
	poses   []Pose
	signals []Signal
}

func (r *recorder) SetPose(p Pose)         { r.poses = append(r.poses, p) }
func (r *recorder) SetLocomotion(s Signal) { r.signals = append(r.signals, s) }

func TestControllerFeedsSinks(t *testing.T) {
	c := NewController(DefaultConfig(), flatScene(), NewPose(math.Vec3{}))
	rec := &recorder{}
	c.SetPoseSink(rec)
	c.SetSignalSink(rec)
	c.SetCooldown(fixedCooldown(-1000))

	out := c.Tick(walk(0.5, 0.25))

	if len(rec.poses) != 1 || len(rec.signals) != 1 {
		t.Fatalf("sinks called %d/%d times, want 1/1", len(rec.poses), len(rec.signals))
	}
	if diff := cmp.Diff(out.Signal, rec.signals[0]); diff != "" {
		t.Errorf("signal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(out.Pose, rec.poses[0]); diff != "" {
		t.Errorf("pose mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.CheckMoveMargin = cfg.CastRadius
	cfg.ProblemTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error")
	}
}
