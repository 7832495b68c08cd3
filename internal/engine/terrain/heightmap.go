package terrain

// BuildHeightmap samples the mesh grid heights for lookups that match the rendered surface.
func BuildHeightmap(mesh *Mesh) *Heightmap {
	if mesh == nil {
		return nil
	}
	heights := make([]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		heights[i] = v.Position[1]
	}
	return &Heightmap{
		Heights:  heights,
		Segments: mesh.Segments,
		Size:     mesh.Size,
	}
}

// HeightAt returns the bilinearly interpolated height at a world position.
// Positions outside the grid use the nearest edge.
func (h *Heightmap) HeightAt(worldX, worldZ float32) float32 {
	if h == nil || h.Segments < 1 || len(h.Heights) == 0 {
		return 0
	}

	step := h.Size / float32(h.Segments)
	half := h.Size / 2
	cellFX := (worldX + half) / step
	cellFZ := (worldZ + half) / step

	cellX := int(cellFX)
	cellZ := int(cellFZ)

	// Clamp to valid range
	if cellX < 0 {
		cellX = 0
	}
	if cellZ < 0 {
		cellZ = 0
	}
	if cellX > h.Segments-1 {
		cellX = h.Segments - 1
	}
	if cellZ > h.Segments-1 {
		cellZ = h.Segments - 1
	}

	fracX := clampf(cellFX-float32(cellX), 0, 1)
	fracZ := clampf(cellFZ-float32(cellZ), 0, 1)

	row := h.Segments + 1
	h00 := h.Heights[cellZ*row+cellX]
	h10 := h.Heights[cellZ*row+cellX+1]
	h01 := h.Heights[(cellZ+1)*row+cellX]
	h11 := h.Heights[(cellZ+1)*row+cellX+1]

	south := h00*(1-fracX) + h10*fracX
	north := h01*(1-fracX) + h11*fracX
	return south*(1-fracZ) + north*fracZ
}

// Contains reports whether a world position lies over the grid.
func (h *Heightmap) Contains(worldX, worldZ float32) bool {
	if h == nil {
		return false
	}
	half := h.Size / 2
	return worldX >= -half && worldX <= half && worldZ >= -half && worldZ <= half
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
