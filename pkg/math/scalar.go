package math

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clampf is Clamp for float32.
func Clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b. It returns exactly a at t=0 and b at t=1.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Smoothstep is the cubic Hermite ramp 3t²-2t³ of x over [edge0, edge1].
// It returns exactly 0 at or before edge0 and exactly 1 at or after edge1.
// edge0 may be greater than edge1, which reverses the ramp direction.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
