package terrain

import (
	"math"

	"github.com/Faultbox/skyrig/internal/config"
)

// Height returns the analytic ground height at a world position:
// A1·sin(F1·x)·cos(F1·z) + A2·sin(F2·(x+z)).
func Height(cfg config.GroundConfig, x, z float32) float32 {
	fx, fz := float64(x), float64(z)
	h := float64(cfg.Amplitude1)*math.Sin(float64(cfg.Frequency1)*fx)*math.Cos(float64(cfg.Frequency1)*fz) +
		float64(cfg.Amplitude2)*math.Sin(float64(cfg.Frequency2)*(fx+fz))
	return float32(h)
}

// Normal returns the unit surface normal at a world position from central differences.
func Normal(cfg config.GroundConfig, x, z, eps float32) [3]float32 {
	if eps <= 0 {
		eps = 0.01
	}
	dx := (Height(cfg, x+eps, z) - Height(cfg, x-eps, z)) / (2 * eps)
	dz := (Height(cfg, x, z+eps) - Height(cfg, x, z-eps)) / (2 * eps)
	return normalize([3]float32{-dx, 1, -dz})
}

// BuildGround creates a Segments×Segments grid of quads covering Size×Size,
// centred on the origin, displaced by Height.
func BuildGround(cfg config.GroundConfig) *Mesh {
	segs := cfg.Segments
	if segs < 1 {
		segs = 1
	}
	size := cfg.Size
	if size <= 0 {
		size = 1
	}

	step := size / float32(segs)
	half := size / 2
	eps := step / 2
	row := segs + 1

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, row*row),
		Indices:  make([]uint32, 0, segs*segs*6),
		Bounds: Bounds{
			Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
			Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
		},
		Segments: segs,
		Size:     size,
	}

	for j := 0; j < row; j++ {
		z := -half + float32(j)*step
		v := float32(j) / float32(segs) * cfg.UVRepeat
		for i := 0; i < row; i++ {
			x := -half + float32(i)*step
			u := float32(i) / float32(segs) * cfg.UVRepeat

			y := Height(cfg, x, z)
			dx := (Height(cfg, x+eps, z) - Height(cfg, x-eps, z)) / (2 * eps)

			pos := [3]float32{x, y, z}
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				Normal:   Normal(cfg, x, z, eps),
				Tangent:  normalize([3]float32{1, dx, 0}),
				TexCoord: [2]float32{u, v},
			})
			updateBounds(&mesh.Bounds, pos)
		}
	}

	// Counter-clockwise seen from above.
	for j := 0; j < segs; j++ {
		for i := 0; i < segs; i++ {
			a := uint32(j*row + i)
			b := a + 1
			c := a + uint32(row)
			d := c + 1
			mesh.Indices = append(mesh.Indices, a, c, b, b, c, d)
		}
	}

	return mesh
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
