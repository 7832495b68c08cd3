package terrain

import (
	"math"
	"testing"

	"github.com/Faultbox/skyrig/internal/config"
)

func testGround() config.GroundConfig {
	cfg := config.Default().Ground
	cfg.Size = 40
	cfg.Segments = 16
	return cfg
}

func approx(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestBuildGroundCounts(t *testing.T) {
	tests := []struct {
		segments  int
		vertices  int
		indices   int
		wantSegms int
	}{
		{1, 4, 6, 1},
		{4, 25, 96, 4},
		{16, 289, 1536, 16},
		{0, 4, 6, 1},
	}
	for _, tt := range tests {
		cfg := testGround()
		cfg.Segments = tt.segments
		mesh := BuildGround(cfg)
		if len(mesh.Vertices) != tt.vertices {
			t.Errorf("segments %d: %d vertices, want %d", tt.segments, len(mesh.Vertices), tt.vertices)
		}
		if len(mesh.Indices) != tt.indices {
			t.Errorf("segments %d: %d indices, want %d", tt.segments, len(mesh.Indices), tt.indices)
		}
		if mesh.Segments != tt.wantSegms {
			t.Errorf("segments %d: mesh.Segments = %d", tt.segments, mesh.Segments)
		}
		for _, idx := range mesh.Indices {
			if int(idx) >= len(mesh.Vertices) {
				t.Fatalf("index %d out of range", idx)
			}
		}
	}
}

func TestBuildGroundHeights(t *testing.T) {
	cfg := testGround()
	mesh := BuildGround(cfg)
	for _, v := range mesh.Vertices {
		want := Height(cfg, v.Position[0], v.Position[2])
		if v.Position[1] != want {
			t.Fatalf("vertex %v height %v, want %v", v.Position, v.Position[1], want)
		}
	}

	b := mesh.Bounds
	if b.Min[0] != -20 || b.Max[0] != 20 || b.Min[2] != -20 || b.Max[2] != 20 {
		t.Errorf("bounds = %+v, want ±20 on X and Z", b)
	}
	if limit := cfg.Amplitude1 + cfg.Amplitude2; b.Max[1] > limit || b.Min[1] < -limit {
		t.Errorf("height range [%v, %v] exceeds amplitude %v", b.Min[1], b.Max[1], limit)
	}
}

func TestBuildGroundWindingFacesUp(t *testing.T) {
	mesh := BuildGround(testGround())
	for i := 0; i < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]].Position
		b := mesh.Vertices[mesh.Indices[i+1]].Position
		c := mesh.Vertices[mesh.Indices[i+2]].Position
		n := cross(
			[3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]},
			[3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]},
		)
		if n[1] <= 0 {
			t.Fatalf("triangle %d faces down: %v", i/3, n)
		}
	}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func TestBuildGroundNormals(t *testing.T) {
	mesh := BuildGround(testGround())
	for _, v := range mesh.Vertices {
		n := v.Normal
		l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
		if !approx(l, 1, 1e-5) || n[1] <= 0 {
			t.Fatalf("bad normal %v at %v", n, v.Position)
		}
	}

	flat := testGround()
	flat.Amplitude1, flat.Amplitude2 = 0, 0
	for _, v := range BuildGround(flat).Vertices {
		if v.Normal != [3]float32{0, 1, 0} {
			t.Fatalf("flat ground normal %v, want up", v.Normal)
		}
	}
}

func TestBuildGroundUVs(t *testing.T) {
	cfg := testGround()
	mesh := BuildGround(cfg)
	first := mesh.Vertices[0].TexCoord
	last := mesh.Vertices[len(mesh.Vertices)-1].TexCoord
	if first != [2]float32{0, 0} {
		t.Errorf("first UV = %v, want (0,0)", first)
	}
	if !approx(last[0], cfg.UVRepeat, 1e-4) || !approx(last[1], cfg.UVRepeat, 1e-4) {
		t.Errorf("last UV = %v, want (%v,%v)", last, cfg.UVRepeat, cfg.UVRepeat)
	}
}

func TestHeightFormula(t *testing.T) {
	cfg := config.GroundConfig{Amplitude1: 2, Frequency1: 1, Amplitude2: 0.5, Frequency2: 2}
	x, z := float32(0.3), float32(-1.1)
	want := 2*math.Sin(0.3)*math.Cos(-1.1) + 0.5*math.Sin(2*(0.3-1.1))
	if got := Height(cfg, x, z); !approx(got, float32(want), 1e-5) {
		t.Errorf("Height = %v, want %v", got, want)
	}
	if Height(cfg, 0, 0) != 0 {
		t.Error("height at origin should be 0")
	}
}

func TestHeightmapMatchesGrid(t *testing.T) {
	cfg := testGround()
	mesh := BuildGround(cfg)
	hm := BuildHeightmap(mesh)

	for _, v := range mesh.Vertices {
		got := hm.HeightAt(v.Position[0], v.Position[2])
		if !approx(got, v.Position[1], 1e-4) {
			t.Fatalf("HeightAt(%v, %v) = %v, want %v", v.Position[0], v.Position[2], got, v.Position[1])
		}
	}

	// Between samples the lookup stays close to the analytic surface.
	for _, p := range [][2]float32{{0.7, -3.2}, {10.1, 5.5}, {-18.3, 17.9}} {
		got := hm.HeightAt(p[0], p[1])
		want := Height(cfg, p[0], p[1])
		if !approx(got, want, 0.2) {
			t.Errorf("HeightAt(%v) = %v, analytic %v", p, got, want)
		}
	}
}

func TestHeightmapEdges(t *testing.T) {
	mesh := BuildGround(testGround())
	hm := BuildHeightmap(mesh)

	corner := mesh.Vertices[0].Position
	if got := hm.HeightAt(-1000, -1000); !approx(got, corner[1], 1e-5) {
		t.Errorf("far outside = %v, want corner height %v", got, corner[1])
	}
	if hm.Contains(-1000, 0) || !hm.Contains(0, 0) {
		t.Error("Contains gave the wrong answer")
	}

	var nilMap *Heightmap
	if nilMap.HeightAt(1, 1) != 0 || nilMap.Contains(0, 0) {
		t.Error("nil heightmap should be flat and empty")
	}
	if BuildHeightmap(nil) != nil {
		t.Error("BuildHeightmap(nil) should be nil")
	}
}
