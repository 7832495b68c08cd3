package texture

import (
	"image"
	"math"
)

// Sand palette, linear-ish sRGB bytes.
var (
	sandLight = [3]float32{222, 196, 150}
	sandDark  = [3]float32{176, 146, 102}
)

const (
	noiseSeed    = 0x5eed
	noisePeriod  = 8 // Lattice cells across one tile at the first octave
	noiseOctaves = 4
	rippleWaves  = 12 // Ripple crests across one tile
)

// ProceduralSand returns a deterministic, tileable size×size sand colour texture.
func ProceduralSand(size int) *image.RGBA {
	size = max(size, 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			h := sandHeight(x, y, size)
			grain := hash2(x, y, noiseSeed+1)*0.08 - 0.04
			t := clamp01(h + grain)

			i := img.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				img.Pix[i+c] = uint8(sandDark[c] + (sandLight[c]-sandDark[c])*t + 0.5)
			}
			img.Pix[i+3] = 255
		}
	}
	return img
}

// ProceduralDisplacement returns a deterministic, tileable size×size grey height map
// matching ProceduralSand.
func ProceduralDisplacement(size int) *image.RGBA {
	size = max(size, 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(clamp01(sandHeight(x, y, size))*255 + 0.5)
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
		}
	}
	return img
}

// sandHeight combines wind ripples, bent by low-frequency noise, with fbm dunes. Range ~[0,1].
func sandHeight(x, y, size int) float32 {
	u := float32(x) / float32(size)
	v := float32(y) / float32(size)

	n := fbm(u*noisePeriod, v*noisePeriod, noisePeriod, noiseOctaves, noiseSeed)
	phase := 2 * math.Pi * (float64(u+0.15*v)*rippleWaves + float64(n)*1.5)
	ripple := float32(math.Sin(phase))*0.5 + 0.5

	return 0.55*ripple + 0.45*n
}

// fbm sums octaves of tileable value noise. u and v are in lattice units of the first octave.
func fbm(u, v float32, period, octaves int, seed uint32) float32 {
	var sum, norm float32
	amp := float32(1)
	for o := 0; o < octaves; o++ {
		sum += amp * valueNoise(u, v, period, seed+uint32(o))
		norm += amp
		u, v = u*2, v*2
		period *= 2
		amp *= 0.5
	}
	return sum / norm
}

// valueNoise is smooth lattice noise that repeats every period cells.
func valueNoise(u, v float32, period int, seed uint32) float32 {
	x0 := int(math.Floor(float64(u)))
	y0 := int(math.Floor(float64(v)))
	fx := smooth(u - float32(x0))
	fy := smooth(v - float32(y0))

	wrap := func(i int) int { return ((i % period) + period) % period }
	a := hash2(wrap(x0), wrap(y0), seed)
	b := hash2(wrap(x0+1), wrap(y0), seed)
	c := hash2(wrap(x0), wrap(y0+1), seed)
	d := hash2(wrap(x0+1), wrap(y0+1), seed)

	top := a + (b-a)*fx
	bottom := c + (d-c)*fx
	return top + (bottom-top)*fy
}

// hash2 maps lattice coordinates to [0,1].
func hash2(x, y int, seed uint32) float32 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + seed*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float32(h&0xffffff) / float32(0xffffff)
}

func smooth(t float32) float32 {
	return t * t * (3 - 2*t)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
