package camera

import (
	"testing"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/input"
	"github.com/Faultbox/skyrig/pkg/math"
)

func alwaysActive() bool { return true }

func newTestOrbit() *OrbitController {
	return NewOrbitController(config.Default().Camera.Orbit, alwaysActive)
}

func TestOrbitZoomStaysInBounds(t *testing.T) {
	tests := []struct {
		name  string
		steps []float32
		want  float32
	}{
		{"zoom in hard", []float32{100, 100, 100}, 5},
		{"zoom out hard", []float32{-100, -100, -100}, 400},
		{"many small in", repeat(0.5, 500), 5},
		{"many small out", repeat(-0.5, 500), 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrbit()
			for _, s := range tt.steps {
				o.Zoom(s)
				if o.Radius < o.MinDistance || o.Radius > o.MaxDistance {
					t.Fatalf("radius %v outside [%v, %v]", o.Radius, o.MinDistance, o.MaxDistance)
				}
			}
			if o.Radius != tt.want {
				t.Errorf("radius = %v, want %v", o.Radius, tt.want)
			}
		})
	}
}

func repeat(v float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestOrbitZoomIsMultiplicative(t *testing.T) {
	o := newTestOrbit()
	o.Zoom(1)
	if want := float32(60 * 0.9); !approx(o.Radius, want, 1e-4) {
		t.Errorf("radius = %v, want %v", o.Radius, want)
	}
}

func TestOrbitDamping(t *testing.T) {
	o := newTestOrbit()
	start := o.Azimuth

	o.Rotate(100, 0)
	total := -100 * o.RotateSpeed

	o.update()
	first := o.Azimuth - start
	if want := total * o.DampingFactor(); !approx(first, want, 1e-5) {
		t.Errorf("first step = %v, want %v", first, want)
	}

	pending, _ := o.Pending()
	if !approx(pending, total-first, 1e-5) {
		t.Errorf("pending = %v, want %v", pending, total-first)
	}

	for i := 0; i < 500; i++ {
		o.update()
	}
	if !approx(o.Azimuth-start, total, 1e-4) {
		t.Errorf("converged rotation = %v, want %v", o.Azimuth-start, total)
	}
	if pending, _ := o.Pending(); pending != 0 {
		t.Errorf("pending after convergence = %v, want 0", pending)
	}
}

func TestOrbitPolarClamped(t *testing.T) {
	o := newTestOrbit()
	o.Rotate(0, -10000)
	for i := 0; i < 50; i++ {
		o.update()
		if o.Polar < o.MinPolar || o.Polar > o.MaxPolar {
			t.Fatalf("polar %v outside [%v, %v]", o.Polar, o.MinPolar, o.MaxPolar)
		}
	}
	if o.Polar != o.MaxPolar {
		t.Errorf("polar = %v, want %v", o.Polar, o.MaxPolar)
	}
	if _, p := o.Pending(); p != 0 {
		t.Errorf("pending polar at the bound = %v, want 0", p)
	}
}

func TestOrbitDampingFactorClamped(t *testing.T) {
	o := newTestOrbit()
	for _, tt := range []struct{ in, want float32 }{
		{-1, minDamping},
		{0, minDamping},
		{0.5, 0.5},
		{3, 1},
	} {
		o.SetDampingFactor(tt.in)
		if got := o.DampingFactor(); got != tt.want {
			t.Errorf("SetDampingFactor(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrbitCameraLooksAtTarget(t *testing.T) {
	o := newTestOrbit()
	o.Target = math.Vec3{X: 3, Y: 1, Z: -2}
	o.update()

	cam := o.Camera()
	if cam.Target != o.Target {
		t.Errorf("camera target = %+v, want %+v", cam.Target, o.Target)
	}
	if d := cam.Position.Distance(o.Target); !approx(d, o.Radius, 1e-3) {
		t.Errorf("camera distance = %v, want %v", d, o.Radius)
	}
}

func TestOrbitPanStaysHorizontal(t *testing.T) {
	o := newTestOrbit()
	in := input.New()
	in.SetButton(input.ButtonRight, true)
	in.MoveMouse(30, 12)
	o.HandleInput(in)

	if o.Target.Y != 0 {
		t.Errorf("pan changed target height to %v", o.Target.Y)
	}
	if o.Target.X == 0 && o.Target.Z == 0 {
		t.Error("pan did not move the target")
	}
}

func TestOrbitGated(t *testing.T) {
	o := NewOrbitController(config.Default().Camera.Orbit, func() bool { return false })
	in := input.New()
	in.SetButton(input.ButtonLeft, true)
	in.MoveMouse(50, 50)
	in.Scroll(3)
	o.HandleInput(in)

	if az, p := o.Pending(); az != 0 || p != 0 {
		t.Errorf("gated controller queued rotation (%v, %v)", az, p)
	}
	if o.Radius != 60 {
		t.Errorf("gated controller zoomed to %v", o.Radius)
	}
}
