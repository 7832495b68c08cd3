package texture

import (
	"image"
	"math"
)

// NormalFromDisplacement builds a tangent-space normal map from the luminance of a
// height map using a Sobel operator. Edges wrap so tileable input stays tileable.
// strength scales the slopes; 0 gives a flat map.
func NormalFromDisplacement(disp image.Image, strength float32) *image.RGBA {
	src := ToRGBA(disp)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}

	lum := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lum[y*w+x] = Luminance(src, x, y)
		}
	}
	at := func(x, y int) float32 {
		x = (x%w + w) % w
		y = (y%h + h) % h
		return lum[y*w+x]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tl, t, tr := at(x-1, y-1), at(x, y-1), at(x+1, y-1)
			l, r := at(x-1, y), at(x+1, y)
			bl, b, br := at(x-1, y+1), at(x, y+1), at(x+1, y+1)

			dx := (tr + 2*r + br) - (tl + 2*l + bl)
			dy := (bl + 2*b + br) - (tl + 2*t + tr)

			nx, ny, nz := -dx*strength, -dy*strength, float32(1)
			inv := 1 / float32(math.Sqrt(float64(nx*nx+ny*ny+nz*nz)))

			i := out.PixOffset(x, y)
			out.Pix[i] = encodeUnit(nx * inv)
			out.Pix[i+1] = encodeUnit(ny * inv)
			out.Pix[i+2] = encodeUnit(nz * inv)
			out.Pix[i+3] = 255
		}
	}
	return out
}

// encodeUnit maps [-1,1] to [0,255], 0 to 128.
func encodeUnit(v float32) uint8 {
	return uint8(clamp01(v*0.5+0.5)*255 + 0.5)
}
