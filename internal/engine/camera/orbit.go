package camera

import (
	gomath "math"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/input"
	"github.com/Faultbox/skyrig/pkg/math"
)

const (
	minDamping    = 0.01
	minZoomFactor = 0.05
	pendingEps    = 1e-6
)

// OrbitController rotates and zooms around a look-at target in spherical coordinates.
type OrbitController struct {
	Target  math.Vec3
	Radius  float32
	Polar   float32 // Angle from the up axis, radians
	Azimuth float32 // Angle around the up axis, radians

	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	damping      float32
	pendingAz    float32
	pendingPolar float32

	active Gate
	camera *Camera
}

// NewOrbitController creates an orbit controller. active gates input and updates.
func NewOrbitController(cfg config.OrbitConfig, active Gate) *OrbitController {
	o := &OrbitController{
		Target:      math.Vec3{X: cfg.Target[0], Y: cfg.Target[1], Z: cfg.Target[2]},
		Radius:      cfg.Distance,
		Polar:       cfg.Polar,
		Azimuth:     cfg.Azimuth,
		MinDistance: cfg.MinDistance,
		MaxDistance: cfg.MaxDistance,
		MinPolar:    cfg.MinPolar,
		MaxPolar:    cfg.MaxPolar,
		RotateSpeed: cfg.RotateSpeed,
		ZoomSpeed:   cfg.ZoomSpeed,
		PanSpeed:    cfg.PanSpeed,
		active:      active,
		camera:      newCamera(),
	}
	o.SetDampingFactor(cfg.DampingFactor)
	o.SetDistanceBounds(cfg.MinDistance, cfg.MaxDistance)
	o.SetPolarBounds(cfg.MinPolar, cfg.MaxPolar)
	o.syncCamera()
	return o
}

// Camera returns the camera driven by this controller.
func (o *OrbitController) Camera() *Camera {
	return o.camera
}

// DampingFactor returns the fraction of the pending rotation committed per update.
func (o *OrbitController) DampingFactor() float32 {
	return o.damping
}

// SetDampingFactor sets the damping factor, clamped to (0,1].
func (o *OrbitController) SetDampingFactor(f float32) {
	o.damping = math.Clampf(f, minDamping, 1)
}

// SetDistanceBounds sets the zoom range and re-clamps the radius.
func (o *OrbitController) SetDistanceBounds(lo, hi float32) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo <= 0 {
		lo = 0.01
	}
	if hi < lo {
		hi = lo
	}
	o.MinDistance, o.MaxDistance = lo, hi
	o.Radius = math.Clampf(o.Radius, lo, hi)
}

// SetPolarBounds sets the polar range and re-clamps the polar angle.
func (o *OrbitController) SetPolarBounds(lo, hi float32) {
	if lo > hi {
		lo, hi = hi, lo
	}
	o.MinPolar = math.Clampf(lo, 0, gomath.Pi)
	o.MaxPolar = math.Clampf(hi, 0, gomath.Pi)
	o.Polar = math.Clampf(o.Polar, o.MinPolar, o.MaxPolar)
}

// Pending returns the rotation not yet committed by damping.
func (o *OrbitController) Pending() (azimuth, polar float32) {
	return o.pendingAz, o.pendingPolar
}

// HandleInput consumes drag and wheel input while the controller is active.
func (o *OrbitController) HandleInput(in *input.State) {
	if !o.active() {
		return
	}
	if in.Button(input.ButtonLeft) {
		o.Rotate(in.MouseDX, in.MouseDY)
	}
	if in.Button(input.ButtonRight) {
		o.Pan(in.MouseDX, in.MouseDY)
	}
	if in.Wheel != 0 {
		o.Zoom(in.Wheel)
	}
}

// Rotate queues a drag delta in pixels. Dragging down raises the camera.
func (o *OrbitController) Rotate(dx, dy float32) {
	o.pendingAz -= dx * o.RotateSpeed
	o.pendingPolar -= dy * o.RotateSpeed
}

// Zoom scales the radius by wheel steps; positive steps move closer.
func (o *OrbitController) Zoom(steps float32) {
	factor := 1 - steps*o.ZoomSpeed
	if factor < minZoomFactor {
		factor = minZoomFactor
	}
	o.Radius = math.Clampf(o.Radius*factor, o.MinDistance, o.MaxDistance)
}

// Pan slides the target on the horizontal plane. Speed scales with the radius.
func (o *OrbitController) Pan(dx, dy float32) {
	forward, right := horizontalBasis(o.Azimuth)
	speed := o.PanSpeed * o.Radius
	o.Target = o.Target.
		Add(right.Scale(-dx * speed)).
		Add(forward.Scale(dy * speed))
}

func (o *OrbitController) update() {
	dAz := o.pendingAz * o.damping
	dPolar := o.pendingPolar * o.damping
	o.Azimuth += dAz
	o.pendingAz -= dAz
	o.Polar += dPolar
	o.pendingPolar -= dPolar

	if o.Polar <= o.MinPolar || o.Polar >= o.MaxPolar {
		o.Polar = math.Clampf(o.Polar, o.MinPolar, o.MaxPolar)
		o.pendingPolar = 0
	}
	if abs32(o.pendingAz) < pendingEps {
		o.pendingAz = 0
	}
	if abs32(o.pendingPolar) < pendingEps {
		o.pendingPolar = 0
	}
	o.syncCamera()
}

// Position returns the camera position implied by the spherical coordinates.
func (o *OrbitController) Position() math.Vec3 {
	sp, cp := gomath.Sincos(float64(o.Polar))
	sa, ca := gomath.Sincos(float64(o.Azimuth))
	offset := math.Vec3{
		X: o.Radius * float32(sp*sa),
		Y: o.Radius * float32(cp),
		Z: o.Radius * float32(sp*ca),
	}
	return o.Target.Add(offset)
}

func (o *OrbitController) syncCamera() {
	o.camera.Position = o.Position()
	o.camera.Target = o.Target
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
