package sky

import (
	"math"

	"github.com/Faultbox/skyrig/internal/engine/lighting"
	mathx "github.com/Faultbox/skyrig/pkg/math"
)

// Atmosphere holds the scattering coefficients fed to the sky shader.
type Atmosphere struct {
	Rayleigh        float64
	MieCoefficient  float64
	MieDirectionalG float64
	Turbidity       float64
}

func (a Atmosphere) lerp(b Atmosphere, t float64) Atmosphere {
	return Atmosphere{
		Rayleigh:        mathx.Lerp(a.Rayleigh, b.Rayleigh, t),
		MieCoefficient:  mathx.Lerp(a.MieCoefficient, b.MieCoefficient, t),
		MieDirectionalG: mathx.Lerp(a.MieDirectionalG, b.MieDirectionalG, t),
		Turbidity:       mathx.Lerp(a.Turbidity, b.Turbidity, t),
	}
}

var (
	dayAtmosphere   = Atmosphere{Rayleigh: 2, MieCoefficient: 0.005, MieDirectionalG: 0.8, Turbidity: 8}
	nightAtmosphere = Atmosphere{Rayleigh: 0.05, MieCoefficient: 0.0001, MieDirectionalG: 0.7, Turbidity: 0.5}

	daySkyColor      = Color{0.62, 0.76, 1.0}
	dayGroundColor   = Color{0.56, 0.46, 0.34}
	nightSkyColor    = Color{0.08, 0.1, 0.22}
	nightGroundColor = Color{0.03, 0.03, 0.05}
	dayBackground    = Color{0.53, 0.71, 0.92}
	nightBackground  = Color{0.01, 0.015, 0.04}
	moonColor        = Color{0.62, 0.7, 1.0}
)

const (
	dayHemisphereIntensity   = 0.9
	nightHemisphereIntensity = 0.2

	// Sun colour temperature runs from sunrise to full daylight over this elevation band.
	sunriseKelvin  = 2000.0
	daylightKelvin = 6500.0
	warmBandTop    = 30.0

	// Direct sunlight fades in between the upper twilight edge and this elevation.
	sunFadeTop = 10.0

	moonFadeBottom = -5.0
	moonFadeTop    = 15.0
)

// State is everything derived from the hour of day.
type State struct {
	Hour float64

	SunElevation  float64 // Degrees above the horizon
	SunAzimuth    float64 // Degrees from north through east
	MoonElevation float64
	MoonAzimuth   float64

	SunPosition  [3]float32 // On the shared orbit radius
	MoonPosition [3]float32

	NightBlend  float64 // 0 day, 1 night
	IsDay       bool
	StarOpacity float64

	Sun        lighting.DirectionalLight
	Moon       lighting.DirectionalLight
	Hemisphere lighting.HemisphereLight
	Background Color

	Atmosphere     Atmosphere
	SunTemperature float64 // Kelvin
}

// Environment converts the state to the renderer's light set.
func (s State) Environment() lighting.Environment {
	return lighting.Environment{
		Sun:        s.Sun,
		Moon:       s.Moon,
		Hemisphere: s.Hemisphere,
		Background: s.Background,
	}
}

// NightBlend maps a sun elevation in degrees to the day/night factor: exactly 0
// at or above the upper twilight edge, exactly 1 at or below the lower edge.
func NightBlend(elevation float64, cfg Config) float64 {
	return mathx.Smoothstep(cfg.TwilightUpper, cfg.TwilightLower, elevation)
}

// HourAngle converts an hour of day to the sun's hour angle in degrees (0 at noon).
func HourAngle(hour float64) float64 {
	return (hour - 12) / 24 * 360
}

// Derive computes the sky state for an hour. It is pure and periodic in 24 hours.
func Derive(hour float64, cfg Config) State {
	hour = normalizeHour(hour)
	ha := HourAngle(hour)

	s := State{Hour: hour}
	s.SunElevation, s.SunAzimuth = lighting.Horizontal(ha, cfg.Declination, cfg.Latitude)
	s.MoonElevation, s.MoonAzimuth = lighting.Horizontal(
		ha+cfg.MoonPhaseOffset, cfg.Declination+cfg.MoonTiltDelta, cfg.Latitude)

	sunDir := lighting.Direction(s.SunAzimuth, s.SunElevation)
	moonDir := lighting.Direction(s.MoonAzimuth, s.MoonElevation)
	s.SunPosition = lighting.OrbitPosition(sunDir, cfg.OrbitRadius)
	s.MoonPosition = lighting.OrbitPosition(moonDir, cfg.OrbitRadius)

	blend := NightBlend(s.SunElevation, cfg)
	s.NightBlend = blend
	s.IsDay = blend < 0.5
	s.StarOpacity = mathx.Smoothstep(cfg.StarThreshold, 1, blend)

	s.SunTemperature = mathx.Lerp(sunriseKelvin, daylightKelvin,
		mathx.Smoothstep(0, warmBandTop, s.SunElevation))
	sunFade := mathx.Smoothstep(cfg.TwilightUpper, sunFadeTop, s.SunElevation)
	s.Sun = lighting.DirectionalLight{
		Direction: sunDir,
		Color:     KelvinToRGB(s.SunTemperature),
		Intensity: float32(cfg.SunIntensity * (1 - blend) * sunFade),
	}

	moonFade := 0.25 + 0.75*mathx.Smoothstep(moonFadeBottom, moonFadeTop, s.MoonElevation)
	s.Moon = lighting.DirectionalLight{
		Direction: moonDir,
		Color:     moonColor,
		Intensity: float32(cfg.MoonIntensity * blend * moonFade),
	}

	s.Hemisphere = lighting.HemisphereLight{
		Sky:       daySkyColor.Lerp(nightSkyColor, blend),
		Ground:    dayGroundColor.Lerp(nightGroundColor, blend),
		Intensity: float32(mathx.Lerp(dayHemisphereIntensity, nightHemisphereIntensity, blend)),
	}
	s.Background = dayBackground.Lerp(nightBackground, blend)
	s.Atmosphere = dayAtmosphere.lerp(nightAtmosphere, blend)

	return s
}

// normalizeHour wraps h into [0,24). Non-finite input maps to 0.
func normalizeHour(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	if h >= 24 || h == 0 {
		h = 0
	}
	return h
}
