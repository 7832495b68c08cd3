package camera

import (
	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/input"
	"github.com/Faultbox/skyrig/pkg/math"
)

// flyKeys is the held-key state sampled from the last active input frame.
type flyKeys struct {
	forward, back, left, right bool
	up, down                   bool
	turbo                      bool
}

func sampleFlyKeys(in *input.State) flyKeys {
	return flyKeys{
		forward: in.Held(input.KeyW),
		back:    in.Held(input.KeyS),
		left:    in.Held(input.KeyA),
		right:   in.Held(input.KeyD),
		up:      in.Held(input.KeyE),
		down:    in.Held(input.KeyQ),
		turbo:   in.Held(input.KeyShift),
	}
}

// DroneController is a free-fly camera with an altitude band.
type DroneController struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	FlySpeed        float32 // Units per second
	Turbo           float32 // Speed multiplier while Shift is held
	LookSensitivity float32 // Radians per pixel

	minHeight   float32
	maxHeight   float32
	startHeight float32

	keys   flyKeys
	active Gate
	camera *Camera
}

// NewDroneController creates a drone controller. active gates input and updates.
func NewDroneController(cfg config.DroneConfig, active Gate) *DroneController {
	d := &DroneController{
		Position:        math.Vec3{X: cfg.Position[0], Y: cfg.Position[1], Z: cfg.Position[2]},
		Yaw:             cfg.Yaw,
		Pitch:           clampPitch(cfg.Pitch),
		FlySpeed:        cfg.FlySpeed,
		Turbo:           cfg.Turbo,
		LookSensitivity: cfg.LookSensitivity,
		startHeight:     cfg.Position[1],
		active:          active,
		camera:          newCamera(),
	}
	d.SetAltitudeBounds(cfg.MinHeight, cfg.MaxHeight)
	d.syncCamera()
	return d
}

// Camera returns the camera driven by this controller.
func (d *DroneController) Camera() *Camera {
	return d.camera
}

// AltitudeBounds returns the allowed altitude band.
func (d *DroneController) AltitudeBounds() (lo, hi float32) {
	return d.minHeight, d.maxHeight
}

// SetAltitudeBounds changes the altitude band and clamps the drone into it immediately.
func (d *DroneController) SetAltitudeBounds(lo, hi float32) {
	if lo > hi {
		lo, hi = hi, lo
	}
	d.minHeight, d.maxHeight = lo, hi
	if d.ClampAltitude() {
		d.syncCamera()
	}
}

// ClampAltitude forces the altitude into the band. Reports whether it moved.
func (d *DroneController) ClampAltitude() bool {
	y := math.Clampf(d.Position.Y, d.minHeight, d.maxHeight)
	if y == d.Position.Y {
		return false
	}
	d.Position.Y = y
	return true
}

// ResetAltitude returns the drone to its starting height.
func (d *DroneController) ResetAltitude() {
	d.Position.Y = math.Clampf(d.startHeight, d.minHeight, d.maxHeight)
	d.syncCamera()
}

// HandleInput samples movement keys and applies mouse-look while the controller is active.
// Look is applied while the right button is held or the pointer is locked.
func (d *DroneController) HandleInput(in *input.State) {
	if !d.active() {
		return
	}
	d.keys = sampleFlyKeys(in)
	if in.PointerLocked || in.Button(input.ButtonRight) {
		d.Yaw -= in.MouseDX * d.LookSensitivity
		d.Pitch = clampPitch(d.Pitch - in.MouseDY*d.LookSensitivity)
	}
}

// Forward returns the look direction.
func (d *DroneController) Forward() math.Vec3 {
	return lookDirection(d.Yaw, d.Pitch)
}

func (d *DroneController) update(dt float32) {
	step := d.FlySpeed * dt
	if d.keys.turbo {
		step *= d.Turbo
	}

	forward := d.Forward().Flatten().Normalize()
	right := forward.Cross(math.Up).Normalize()

	if move := strafe(d.keys.forward, d.keys.back, d.keys.left, d.keys.right); !move.IsZero() {
		d.Position = d.Position.
			Add(forward.Scale(move.Y * step)).
			Add(right.Scale(move.X * step))
	}

	if d.keys.up {
		d.Position.Y += step
	}
	if d.keys.down {
		d.Position.Y -= step
	}

	d.ClampAltitude()
	d.syncCamera()
}

func (d *DroneController) syncCamera() {
	d.camera.Position = d.Position
	d.camera.Target = d.Position.Add(d.Forward())
}
