package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/input"
)

func newTestWalker() *FirstPersonController {
	return NewFirstPersonController(config.Default().Camera.FirstPerson, alwaysActive)
}

func TestWalkerStartsAtEyeHeight(t *testing.T) {
	f := newTestWalker()
	if f.Position.Y != f.EyeHeight {
		t.Errorf("start height = %v, want %v", f.Position.Y, f.EyeHeight)
	}
	if !f.AtRest() {
		t.Error("walker should start at rest")
	}
}

func TestWalkerNeverSinks(t *testing.T) {
	f := newTestWalker()
	in := input.New()
	in.KeyDown(input.KeyW)
	in.KeyDown(input.KeySpace)
	f.HandleInput(in)

	for i := 0; i < 600; i++ {
		f.update(1.0 / 60)
		if f.Position.Y < f.EyeHeight {
			t.Fatalf("frame %d: height %v below eye height %v", i, f.Position.Y, f.EyeHeight)
		}
	}
}

func TestWalkerJump(t *testing.T) {
	f := newTestWalker()
	in := input.New()
	in.KeyDown(input.KeySpace)
	f.HandleInput(in)

	f.update(1.0 / 60)
	if !f.Jumping {
		t.Fatal("expected jump to start")
	}
	if f.Position.Y <= f.EyeHeight {
		t.Fatalf("height %v after jump, want above %v", f.Position.Y, f.EyeHeight)
	}
	vy := f.VelocityY

	// Space is still held while airborne: no second kick.
	f.update(1.0 / 60)
	if f.VelocityY >= vy {
		t.Errorf("vertical velocity grew from %v to %v in the air", vy, f.VelocityY)
	}

	in.KeyUp(input.KeySpace)
	f.HandleInput(in)
	for i := 0; i < 300 && f.Jumping; i++ {
		f.update(1.0 / 60)
	}
	if f.Jumping {
		t.Fatal("walker never landed")
	}
	if f.Position.Y != f.EyeHeight || f.VelocityY != 0 {
		t.Errorf("landed at %v with velocity %v, want %v and 0", f.Position.Y, f.VelocityY, f.EyeHeight)
	}
}

func TestWalkerAirborneJumpIgnored(t *testing.T) {
	f := newTestWalker()
	f.Position.Y = 10
	f.grounded = false

	in := input.New()
	in.KeyDown(input.KeySpace)
	f.HandleInput(in)
	f.update(1.0 / 60)

	if f.Jumping || f.VelocityY > 0 {
		t.Errorf("jump started while falling: jumping=%v vy=%v", f.Jumping, f.VelocityY)
	}
}

func TestWalkerMovementIgnoresPitch(t *testing.T) {
	f := newTestWalker()
	f.Pitch = -1.2
	in := input.New()
	in.KeyDown(input.KeyW)
	in.KeyDown(input.KeyA)
	f.HandleInput(in)

	start := f.Position
	f.update(1)
	moved := f.Position.Sub(start).Flatten().Length()
	if !approx(moved, f.WalkSpeed, 1e-4) {
		t.Errorf("moved %v in one second, want %v", moved, f.WalkSpeed)
	}
}

func TestWalkerFollowsGround(t *testing.T) {
	f := newTestWalker()
	f.SetGround(func(x, z float32) float32 {
		return float32(gomath.Sin(float64(x) * 0.1))
	})

	in := input.New()
	in.KeyDown(input.KeyD)
	f.HandleInput(in)

	for i := 0; i < 120; i++ {
		f.update(1.0 / 60)
		if rest := f.GroundHeight() + f.EyeHeight; f.Position.Y < rest {
			t.Fatalf("frame %d: height %v below %v", i, f.Position.Y, rest)
		}
	}
	if !f.AtRest() {
		t.Error("walker on gentle ground should stay at rest")
	}

	f.SetGround(nil)
	if f.GroundHeight() != 0 {
		t.Error("nil ground should restore flat ground")
	}
}

func TestWalkerLookNeedsPointerLock(t *testing.T) {
	f := newTestWalker()
	in := input.New()
	in.SetButton(input.ButtonRight, true)
	in.MoveMouse(50, 0)
	f.HandleInput(in)
	if f.Yaw != 0 {
		t.Error("look without pointer lock should be ignored")
	}

	in.PointerLocked = true
	f.HandleInput(in)
	if f.Yaw == 0 {
		t.Error("pointer-locked look should turn the walker")
	}
}

func TestStrafe(t *testing.T) {
	tests := []struct {
		name                     string
		forward, back, left, rgt bool
		wantX, wantY             float32
	}{
		{"idle", false, false, false, false, 0, 0},
		{"forward", true, false, false, false, 0, 1},
		{"opposing cancel", true, true, false, false, 0, 0},
		{"left", false, false, true, false, -1, 0},
		{"diagonal", true, false, false, true, float32(gomath.Sqrt2 / 2), float32(gomath.Sqrt2 / 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strafe(tt.forward, tt.back, tt.left, tt.rgt)
			if gomath.Abs(float64(got.X-tt.wantX)) > 1e-6 || gomath.Abs(float64(got.Y-tt.wantY)) > 1e-6 {
				t.Errorf("strafe() = %+v, want {%v %v}", got, tt.wantX, tt.wantY)
			}
		})
	}
}
