// Package shadow renders a depth map from the key light and computes the
// light-space projection used to sample it.
package shadow

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned box around the shadowed geometry.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// BoundsOf returns the box enclosing points. An empty slice gives a zero box.
func BoundsOf(points [][3]float32) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], p[i])
			b.Max[i] = max(b.Max[i], p[i])
		}
	}
	return b
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the half-diagonal of the box.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// LightMatrix returns an orthographic view-projection looking along -dir at
// the box, sized so the whole box fits. dir points towards the light.
func LightMatrix(dir [3]float32, b Bounds) mgl32.Mat4 {
	l := mgl32.Vec3(dir)
	if l.Len() == 0 {
		l = mgl32.Vec3{0, 1, 0}
	}
	l = l.Normalize()

	center := b.Center()
	radius := max(b.Radius(), 1)
	distance := radius * 2
	eye := center.Add(l.Mul(distance))

	up := mgl32.Vec3{0, 1, 0}
	if gomath.Abs(float64(l.Y())) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(eye, center, up)

	half := radius * 1.1
	proj := mgl32.Ortho(-half, half, -half, half, 0.1, distance+half)
	return proj.Mul4(view)
}
