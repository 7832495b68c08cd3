package camera

import (
	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/input"
	"github.com/Faultbox/skyrig/internal/logger"
)

// Rig owns the three controllers and the active mode. Every controller sees
// every input frame but only the active one reacts, and only the active one
// is advanced by Update.
type Rig struct {
	mode Mode

	orbit       *OrbitController
	drone       *DroneController
	firstPerson *FirstPersonController
}

// NewRig builds the rig from cfg. An unknown cfg.Mode falls back to orbit.
func NewRig(cfg config.CameraConfig) *Rig {
	r := &Rig{}
	r.orbit = NewOrbitController(cfg.Orbit, r.gate(ModeOrbit))
	r.drone = NewDroneController(cfg.Drone, r.gate(ModeDrone))
	r.firstPerson = NewFirstPersonController(cfg.FirstPerson, r.gate(ModeFirstPerson))

	if cfg.Mode != "" {
		m, err := ParseMode(cfg.Mode)
		if err != nil {
			logger.Named("camera").Warn("ignoring camera mode", zap.Error(err))
		}
		r.mode = m
	}
	return r
}

func (r *Rig) gate(m Mode) Gate {
	return func() bool { return r.mode == m }
}

// Mode returns the active mode.
func (r *Rig) Mode() Mode {
	return r.mode
}

// SetMode switches the active controller. Unknown modes and the current mode are ignored.
func (r *Rig) SetMode(m Mode) {
	if !m.Valid() || m == r.mode {
		return
	}
	logger.Named("camera").Debug("camera mode changed",
		zap.Stringer("from", r.mode),
		zap.Stringer("to", m))
	r.mode = m
}

// CycleMode switches to the next mode.
func (r *Rig) CycleMode() {
	r.SetMode(r.mode.Next())
}

// HandleInput forwards the frame's input to all controllers; each gates itself.
func (r *Rig) HandleInput(in *input.State) {
	r.orbit.HandleInput(in)
	r.drone.HandleInput(in)
	r.firstPerson.HandleInput(in)
}

// Update advances the active controller by dt seconds. A non-positive dt
// only enforces the drone altitude band, which is applied on every call
// whatever the mode.
func (r *Rig) Update(dt float64) {
	if r.drone.ClampAltitude() {
		r.drone.syncCamera()
	}
	if !(dt > 0) {
		return
	}

	switch r.mode {
	case ModeOrbit:
		r.updateOrbit()
	case ModeDrone:
		r.updateDrone(float32(dt))
	case ModeFirstPerson:
		r.updateFirstPerson(float32(dt))
	}
}

func (r *Rig) updateOrbit()                 { r.orbit.update() }
func (r *Rig) updateDrone(dt float32)       { r.drone.update(dt) }
func (r *Rig) updateFirstPerson(dt float32) { r.firstPerson.update(dt) }

// ActiveCamera returns the camera of the active controller. Never nil.
func (r *Rig) ActiveCamera() *Camera {
	switch r.mode {
	case ModeDrone:
		return r.drone.Camera()
	case ModeFirstPerson:
		return r.firstPerson.Camera()
	default:
		return r.orbit.Camera()
	}
}

// SetFieldOfView sets the vertical FOV in degrees on all three cameras.
func (r *Rig) SetFieldOfView(deg float32) {
	if deg <= 0 || deg >= 180 {
		return
	}
	r.orbit.camera.FOV = deg
	r.drone.camera.FOV = deg
	r.firstPerson.camera.FOV = deg
}

// ResetDroneAltitude puts the drone back at its starting height.
func (r *Rig) ResetDroneAltitude() {
	r.drone.ResetAltitude()
}

// Orbit returns the orbit controller.
func (r *Rig) Orbit() *OrbitController { return r.orbit }

// Drone returns the drone controller.
func (r *Rig) Drone() *DroneController { return r.drone }

// FirstPerson returns the first-person controller.
func (r *Rig) FirstPerson() *FirstPersonController { return r.firstPerson }
