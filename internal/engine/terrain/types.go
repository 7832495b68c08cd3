// Package terrain builds the procedural ground mesh and answers height queries on it.
package terrain

// Vertex represents a ground mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Tangent  [3]float32 // Along +U, for normal mapping
	TexCoord [2]float32
}

// Mesh holds the complete ground mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
	Segments int
	Size     float32
}

// Bounds holds the axis-aligned bounding box of the ground.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Heightmap is a regular grid of ground heights for bilinear lookup.
type Heightmap struct {
	Heights  []float32 // Row-major, (Segments+1)^2 samples, rows along Z
	Segments int
	Size     float32 // World extent, centred on the origin
}
