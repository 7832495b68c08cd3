package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	l := Vec2{3, 4}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec2{}).Normalize(); !got.IsZero() {
		t.Errorf("zero vector should stay zero, got %v", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Flatten(t *testing.T) {
	got := Vec3{1, 7, -2}.Flatten()
	want := Vec3{1, 0, -2}
	if got != want {
		t.Errorf("Vec3.Flatten() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{}.Lerp(Vec3{10, 20, 30}, 0.5)
	want := Vec3{5, 10, 15}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name         string
		edge0, edge1 float64
		x            float64
		want         float64
	}{
		{"below", 0, 1, -1, 0},
		{"at edge0", 0, 1, 0, 0},
		{"middle", 0, 1, 0.5, 0.5},
		{"at edge1", 0, 1, 1, 1},
		{"above", 0, 1, 2, 1},
		{"reversed above", -2, -12, 0, 0},
		{"reversed below", -2, -12, -20, 1},
		{"degenerate low", 1, 1, 0, 0},
		{"degenerate high", 1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Smoothstep(tt.edge0, tt.edge1, tt.x); got != tt.want {
				t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v", tt.edge0, tt.edge1, tt.x, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp high = %v, want 1", got)
	}
	if got := Clampf(-5, 0, 1); got != 0 {
		t.Errorf("Clampf low = %v, want 0", got)
	}
}
