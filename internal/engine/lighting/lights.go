package lighting

// DirectionalLight is a light at infinity, such as the sun or moon.
type DirectionalLight struct {
	Direction [3]float32 // Unit vector towards the light
	Color     [3]float32 // Linear RGB (0-1 range)
	Intensity float32
}

// Radiance returns Color scaled by Intensity.
func (l DirectionalLight) Radiance() [3]float32 {
	return [3]float32{l.Color[0] * l.Intensity, l.Color[1] * l.Intensity, l.Color[2] * l.Intensity}
}

// HemisphereLight is an ambient term blending a sky colour from above and a
// ground colour from below.
type HemisphereLight struct {
	Sky       [3]float32
	Ground    [3]float32
	Intensity float32
}

// Irradiance returns the ambient colour for a surface normal's up component ny in [-1,1].
func (h HemisphereLight) Irradiance(ny float32) [3]float32 {
	t := (ny + 1) * 0.5
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	var out [3]float32
	for i := range out {
		out[i] = (h.Ground[i] + (h.Sky[i]-h.Ground[i])*t) * h.Intensity
	}
	return out
}

// Environment is the full light set the renderer uploads each frame.
type Environment struct {
	Sun        DirectionalLight
	Moon       DirectionalLight
	Hemisphere HemisphereLight
	Background [3]float32
}

// Key returns the stronger of sun and moon, used for the single shadow-casting light.
func (e Environment) Key() DirectionalLight {
	if e.Moon.Intensity > e.Sun.Intensity {
		return e.Moon
	}
	return e.Sun
}
