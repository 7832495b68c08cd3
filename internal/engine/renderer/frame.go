package renderer

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/camera"
	"github.com/Faultbox/skyrig/internal/engine/shadow"
	"github.com/Faultbox/skyrig/internal/engine/sky"
)

const (
	minExposure   = 0.05
	maxExposure   = 8
	minPixelRatio = 0.25
	maxPixelRatio = 4
)

// Settings are the user-tunable renderer knobs. The debug panel edits them
// in place; Render sanitizes them every frame.
type Settings struct {
	PixelRatioCap float32 // Upper bound on drawable/window scale for the scene target
	Shadows       bool    // Shadow map from the key light
	Exposure      float32
	NormalScale   float32 // Multiplier on top of the strength baked into derived normal maps
}

// SettingsFrom builds Settings from config.
func SettingsFrom(g config.GraphicsConfig) Settings {
	return Settings{
		PixelRatioCap: g.PixelRatioCap,
		Shadows:       g.Shadows,
		Exposure:      g.Exposure,
		NormalScale:   1,
	}
}

func (s *Settings) sanitize() {
	if gomath.IsNaN(float64(s.Exposure)) {
		s.Exposure = 1
	}
	s.Exposure = mgl32.Clamp(s.Exposure, minExposure, maxExposure)
	if gomath.IsNaN(float64(s.PixelRatioCap)) {
		s.PixelRatioCap = 1
	}
	s.PixelRatioCap = mgl32.Clamp(s.PixelRatioCap, minPixelRatio, maxPixelRatio)
	if s.NormalScale < 0 {
		s.NormalScale = 0
	}
}

// TargetSize returns the scene target size for a window of winW×winH
// coordinates whose drawable is drawW×drawH pixels, with the pixel ratio
// capped at ratioCap. A non-positive cap disables capping.
func TargetSize(winW, winH, drawW, drawH int, ratioCap float32) (int32, int32) {
	if winW <= 0 || winH <= 0 {
		return int32(max(drawW, 1)), int32(max(drawH, 1))
	}
	ratio := float32(drawW) / float32(winW)
	if ratioCap > 0 && ratio > ratioCap {
		ratio = ratioCap
	}
	w := int32(gomath.Round(float64(float32(winW) * ratio)))
	h := int32(gomath.Round(float64(float32(winH) * ratio)))
	return max(w, 1), max(h, 1)
}

// frameUniforms is everything both passes read for one frame.
type frameUniforms struct {
	ViewProj    mgl32.Mat4
	InvViewProj mgl32.Mat4
	CameraPos   [3]float32

	SunDir       [3]float32
	SunRadiance  [3]float32
	MoonDir      [3]float32
	MoonRadiance [3]float32

	HemiSky       [3]float32
	HemiGround    [3]float32
	HemiIntensity float32
	Background    [3]float32

	Stars     float32
	Rayleigh  float32
	Mie       float32
	MieG      float32
	Turbidity float32

	Exposure    float32
	NormalScale float32

	// Shadow map from the key light; at most one of the casters is 1.
	ShadowPass    bool
	LightViewProj mgl32.Mat4
	SunShadow     float32
	MoonShadow    float32
}

// keyLight picks the light that casts shadows: the sun while it is lit,
// otherwise the moon. ok is false when neither is above the horizon.
func keyLight(st sky.State) (dir [3]float32, sun, ok bool) {
	switch {
	case st.Sun.Intensity > 0 && st.Sun.Direction[1] > 0:
		return st.Sun.Direction, true, true
	case st.Moon.Intensity > 0 && st.Moon.Direction[1] > 0:
		return st.Moon.Direction, false, true
	}
	return [3]float32{}, false, false
}

func buildFrame(st sky.State, cam *camera.Camera, aspect float32, set Settings, bounds shadow.Bounds) frameUniforms {
	vp := cam.ViewProjection(aspect)
	f := frameUniforms{
		ViewProj:    vp,
		InvViewProj: vp.Inv(),
		CameraPos:   cam.Position.Array(),

		SunDir:       st.Sun.Direction,
		SunRadiance:  st.Sun.Radiance(),
		MoonDir:      st.Moon.Direction,
		MoonRadiance: st.Moon.Radiance(),

		HemiSky:       st.Hemisphere.Sky,
		HemiGround:    st.Hemisphere.Ground,
		HemiIntensity: st.Hemisphere.Intensity,
		Background:    st.Background,

		Stars:     float32(st.StarOpacity),
		Rayleigh:  float32(st.Atmosphere.Rayleigh),
		Mie:       float32(st.Atmosphere.MieCoefficient),
		MieG:      float32(st.Atmosphere.MieDirectionalG),
		Turbidity: float32(st.Atmosphere.Turbidity),

		Exposure:    set.Exposure,
		NormalScale: set.NormalScale,
	}

	if !set.Shadows {
		return f
	}
	dir, sun, ok := keyLight(st)
	if !ok {
		return f
	}
	f.ShadowPass = true
	f.LightViewProj = shadow.LightMatrix(dir, bounds)
	if sun {
		f.SunShadow = 1
	} else {
		f.MoonShadow = 1
	}
	return f
}
