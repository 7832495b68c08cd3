package sky

import "math"

// Color is linear RGB in [0,1].
type Color [3]float32

// Lerp blends c towards other by t.
func (c Color) Lerp(other Color, t float64) Color {
	f := float32(t)
	return Color{
		c[0] + (other[0]-c[0])*f,
		c[1] + (other[1]-c[1])*f,
		c[2] + (other[2]-c[2])*f,
	}
}

// KelvinToRGB approximates the colour of a black body at the given temperature
// (Tanner Helland's fit, valid for roughly 1000K-40000K).
func KelvinToRGB(kelvin float64) Color {
	temp := math.Max(1000, math.Min(40000, kelvin)) / 100

	var r, g, b float64
	if temp <= 66 {
		r = 255
		g = 99.4708025861*math.Log(temp) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(temp-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(temp-60, -0.0755148492)
	}

	switch {
	case temp >= 66:
		b = 255
	case temp <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(temp-10) - 305.0447927307
	}

	return Color{channel(r), channel(g), channel(b)}
}

func channel(v float64) float32 {
	return float32(math.Max(0, math.Min(255, v)) / 255)
}
