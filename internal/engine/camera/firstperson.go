package camera

import (
	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/input"
	"github.com/Faultbox/skyrig/pkg/math"
)

// restEps is the tolerance for "standing at eye height with no vertical speed".
const restEps = 1e-3

// GroundFunc returns the ground height under a horizontal position.
type GroundFunc func(x, z float32) float32

func flatGround(x, z float32) float32 { return 0 }

type walkKeys struct {
	forward, back, left, right bool
	jump                       bool
}

// strafe returns the unit movement axis for the held keys: Y forward, X right.
// Opposing keys cancel.
func strafe(forward, back, left, right bool) math.Vec2 {
	var v math.Vec2
	if forward {
		v.Y++
	}
	if back {
		v.Y--
	}
	if right {
		v.X++
	}
	if left {
		v.X--
	}
	return v.Normalize()
}

// FirstPersonController walks on the ground at a fixed eye height and can jump.
type FirstPersonController struct {
	Position  math.Vec3
	Yaw       float32
	Pitch     float32
	VelocityY float32
	Jumping   bool

	EyeHeight       float32
	WalkSpeed       float32
	JumpSpeed       float32
	Gravity         float32
	LookSensitivity float32

	grounded bool
	ground   GroundFunc
	keys     walkKeys
	active   Gate
	camera   *Camera
}

// NewFirstPersonController creates a walking controller on flat ground at height 0.
func NewFirstPersonController(cfg config.FirstPersonConfig, active Gate) *FirstPersonController {
	f := &FirstPersonController{
		Position:        math.Vec3{X: cfg.Position[0], Y: cfg.Position[1], Z: cfg.Position[2]},
		Yaw:             cfg.Yaw,
		EyeHeight:       cfg.EyeHeight,
		WalkSpeed:       cfg.WalkSpeed,
		JumpSpeed:       cfg.JumpSpeed,
		Gravity:         cfg.Gravity,
		LookSensitivity: cfg.LookSensitivity,
		ground:          flatGround,
		active:          active,
		camera:          newCamera(),
	}
	if rest := f.restHeight(); f.Position.Y <= rest {
		f.Position.Y = rest
		f.grounded = true
	}
	f.syncCamera()
	return f
}

// Camera returns the camera driven by this controller.
func (f *FirstPersonController) Camera() *Camera {
	return f.camera
}

// SetGround replaces the ground height query. nil restores flat ground.
func (f *FirstPersonController) SetGround(fn GroundFunc) {
	if fn == nil {
		fn = flatGround
	}
	f.ground = fn
}

// GroundHeight returns the ground height under the walker.
func (f *FirstPersonController) GroundHeight() float32 {
	return f.ground(f.Position.X, f.Position.Z)
}

func (f *FirstPersonController) restHeight() float32 {
	return f.GroundHeight() + f.EyeHeight
}

// AtRest reports whether the walker stands at eye height with no vertical speed.
func (f *FirstPersonController) AtRest() bool {
	return abs32(f.Position.Y-f.restHeight()) < restEps && abs32(f.VelocityY) < restEps
}

// HandleInput samples walk keys and applies pointer-lock mouse-look while active.
func (f *FirstPersonController) HandleInput(in *input.State) {
	if !f.active() {
		return
	}
	f.keys = walkKeys{
		forward: in.Held(input.KeyW),
		back:    in.Held(input.KeyS),
		left:    in.Held(input.KeyA),
		right:   in.Held(input.KeyD),
		jump:    in.Held(input.KeySpace),
	}
	if in.PointerLocked {
		f.Yaw -= in.MouseDX * f.LookSensitivity
		f.Pitch = clampPitch(f.Pitch - in.MouseDY*f.LookSensitivity)
	}
}

// Forward returns the look direction including pitch.
func (f *FirstPersonController) Forward() math.Vec3 {
	return lookDirection(f.Yaw, f.Pitch)
}

func (f *FirstPersonController) update(dt float32) {
	if move := strafe(f.keys.forward, f.keys.back, f.keys.left, f.keys.right); !move.IsZero() {
		move = move.Scale(f.WalkSpeed * dt)
		forward, right := horizontalBasis(f.Yaw)
		f.Position = f.Position.
			Add(forward.Scale(move.Y)).
			Add(right.Scale(move.X))
	}

	// Follow the terrain while standing so the rest check holds on slopes.
	if f.grounded {
		f.Position.Y = f.restHeight()
	}

	if f.keys.jump && f.AtRest() {
		f.VelocityY = f.JumpSpeed
		f.Jumping = true
		f.grounded = false
	}

	f.VelocityY -= f.Gravity * dt
	f.Position.Y += f.VelocityY * dt

	if rest := f.restHeight(); f.Position.Y <= rest {
		f.Position.Y = rest
		f.VelocityY = 0
		f.Jumping = false
		f.grounded = true
	}

	f.syncCamera()
}

func (f *FirstPersonController) syncCamera() {
	f.camera.Position = f.Position
	f.camera.Target = f.Position.Add(f.Forward())
}
