package shadow

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([][3]float32{{1, 2, 3}, {-4, 5, 0}, {2, -1, 9}})
	if b.Min != (mgl32.Vec3{-4, -1, 0}) || b.Max != (mgl32.Vec3{2, 5, 9}) {
		t.Errorf("BoundsOf() = %v", b)
	}
	if c := b.Center(); c != (mgl32.Vec3{-1, 2, 4.5}) {
		t.Errorf("Center() = %v", c)
	}
	if empty := BoundsOf(nil); empty != (Bounds{}) {
		t.Errorf("BoundsOf(nil) = %v, want zero", empty)
	}
}

func TestLightMatrixContainsBounds(t *testing.T) {
	b := Bounds{Min: mgl32.Vec3{-100, -3, -100}, Max: mgl32.Vec3{100, 8, 100}}

	tests := []struct {
		name string
		dir  [3]float32
	}{
		{"noon", [3]float32{0, 1, 0}},
		{"morning", [3]float32{0.8, 0.3, 0.1}},
		{"low moon", [3]float32{-0.5, 0.05, -0.86}},
		{"zero", [3]float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LightMatrix(tt.dir, b)
			for i := 0; i < 8; i++ {
				corner := mgl32.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
				if i&1 != 0 {
					corner[0] = b.Max.X()
				}
				if i&2 != 0 {
					corner[1] = b.Max.Y()
				}
				if i&4 != 0 {
					corner[2] = b.Max.Z()
				}
				p := m.Mul4x1(corner.Vec4(1))
				for axis := 0; axis < 3; axis++ {
					v := float64(p[axis] / p[3])
					if gomath.IsNaN(v) || v < -1 || v > 1 {
						t.Fatalf("corner %v maps to %v, outside clip space", corner, p)
					}
				}
			}
		})
	}
}

func TestLightMatrixFacesLight(t *testing.T) {
	b := Bounds{Min: mgl32.Vec3{-10, 0, -10}, Max: mgl32.Vec3{10, 0, 10}}
	m := LightMatrix([3]float32{0, 1, 0}, b)

	// Points closer to the light get smaller depth.
	high := m.Mul4x1(mgl32.Vec4{0, 5, 0, 1})
	low := m.Mul4x1(mgl32.Vec4{0, -5, 0, 1})
	if high.Z() >= low.Z() {
		t.Errorf("depth high=%v low=%v, want high nearer", high.Z(), low.Z())
	}
}
