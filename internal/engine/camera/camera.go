// Package camera provides the camera rig: orbit, drone and first-person
// controllers sharing one active-mode selector.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skyrig/pkg/math"
)

const (
	defaultFOV  = 60
	defaultNear = 0.1
	defaultFar  = 2000

	// maxPitch keeps look directions away from the poles (±89°).
	maxPitch = 89 * gomath.Pi / 180
)

// Camera is a positioned perspective camera. Controllers own one each and
// update it in place.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3 // Look-at point
	Up       math.Vec3

	FOV  float32 // Vertical field of view in degrees
	Near float32
	Far  float32
}

func newCamera() *Camera {
	return &Camera{
		Up:   math.Up,
		FOV:  defaultFOV,
		Near: defaultNear,
		Far:  defaultFar,
	}
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(
		mgl32.Vec3(c.Position.Array()),
		mgl32.Vec3(c.Target.Array()),
		mgl32.Vec3(c.Up.Array()),
	)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

// Gate reports whether a controller may react to input and advance.
type Gate func() bool

// lookDirection converts yaw (around +Y, 0 looks down -Z) and pitch
// (positive looks up) to a unit direction through a quaternion.
func lookDirection(yaw, pitch float32) math.Vec3 {
	q := mgl32.AnglesToQuat(yaw, pitch, 0, mgl32.YXZ)
	f := q.Rotate(mgl32.Vec3{0, 0, -1})
	return math.Vec3{X: f.X(), Y: f.Y(), Z: f.Z()}
}

// horizontalBasis returns the forward and right vectors of a yaw angle on the XZ plane.
func horizontalBasis(yaw float32) (forward, right math.Vec3) {
	s, c := gomath.Sincos(float64(yaw))
	forward = math.Vec3{X: float32(-s), Z: float32(-c)}
	right = math.Vec3{X: float32(c), Z: float32(-s)}
	return forward, right
}

func clampPitch(p float32) float32 {
	return math.Clampf(p, -maxPitch, maxPitch)
}
