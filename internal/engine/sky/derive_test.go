package sky

import (
	"testing"
)

func TestDerivePeriodic(t *testing.T) {
	cfg := DefaultConfig()
	for _, h := range []float64{0, 3.3, 6, 11.75, 12, 18.5, 23.9} {
		a := Derive(h, cfg)
		for _, shift := range []float64{24, -24, 48} {
			b := Derive(h+shift, cfg)
			if !approx(a.SunElevation, b.SunElevation, 1e-6) ||
				!approx(a.MoonElevation, b.MoonElevation, 1e-6) ||
				!approx(a.NightBlend, b.NightBlend, 1e-6) ||
				a.IsDay != b.IsDay {
				t.Errorf("Derive(%v) and Derive(%v) differ", h, h+shift)
			}
		}
	}
}

func TestNightBlendBand(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		elevation float64
		want      float64
	}{
		{60, 0},
		{0, 0},
		{-2, 0},
		{-12, 1},
		{-30, 1},
		{-7, 0.5},
	}
	for _, tt := range tests {
		if got := NightBlend(tt.elevation, cfg); !approx(got, tt.want, 1e-12) {
			t.Errorf("NightBlend(%v) = %v, want %v", tt.elevation, got, tt.want)
		}
	}
}

func TestNightBlendMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	prev := NightBlend(5, cfg)
	for e := 5.0; e >= -20; e -= 0.05 {
		b := NightBlend(e, cfg)
		if b < prev {
			t.Fatalf("blend decreased from %v to %v at elevation %v", prev, b, e)
		}
		if b < 0 || b > 1 {
			t.Fatalf("blend %v outside [0,1]", b)
		}
		prev = b
	}
}

func TestDeriveAfternoon(t *testing.T) {
	s := Derive(13, DefaultConfig())
	if s.SunElevation <= 0 {
		t.Errorf("sun elevation = %v, want above the horizon", s.SunElevation)
	}
	if !s.IsDay {
		t.Error("13:00 should be day")
	}
	if s.StarOpacity != 0 {
		t.Errorf("star opacity = %v, want 0", s.StarOpacity)
	}
	if s.Sun.Intensity <= s.Moon.Intensity {
		t.Errorf("sun %v should outshine moon %v", s.Sun.Intensity, s.Moon.Intensity)
	}
	if s.Atmosphere != dayAtmosphere {
		t.Errorf("atmosphere = %+v, want day values", s.Atmosphere)
	}
	if s.SunAzimuth <= 180 {
		t.Errorf("afternoon sun azimuth = %v, want west of the meridian", s.SunAzimuth)
	}
}

func TestDeriveNight(t *testing.T) {
	s := Derive(1, DefaultConfig())
	if s.SunElevation >= -12 {
		t.Errorf("sun elevation = %v, want below -12", s.SunElevation)
	}
	if s.IsDay {
		t.Error("01:00 should be night")
	}
	if s.NightBlend != 1 {
		t.Errorf("night blend = %v, want 1", s.NightBlend)
	}
	if s.StarOpacity != 1 {
		t.Errorf("star opacity = %v, want 1", s.StarOpacity)
	}
	if s.Sun.Intensity != 0 {
		t.Errorf("sun intensity = %v, want 0", s.Sun.Intensity)
	}
	if s.Moon.Intensity <= 0 {
		t.Errorf("moon intensity = %v, want > 0", s.Moon.Intensity)
	}
	if s.MoonElevation <= 0 {
		t.Errorf("moon elevation = %v, want above the horizon opposite the sun", s.MoonElevation)
	}
	if s.Atmosphere != nightAtmosphere {
		t.Errorf("atmosphere = %+v, want night values", s.Atmosphere)
	}
}

func TestStarThreshold(t *testing.T) {
	cfg := DefaultConfig()
	// Find an hour in evening twilight whose blend is below the threshold.
	for h := 17.0; h < 21; h += 0.01 {
		s := Derive(h, cfg)
		if s.NightBlend > 0 && s.NightBlend <= cfg.StarThreshold && s.StarOpacity != 0 {
			t.Fatalf("hour %v: blend %v below threshold but stars at %v", h, s.NightBlend, s.StarOpacity)
		}
		if s.NightBlend > cfg.StarThreshold && s.StarOpacity <= 0 {
			t.Fatalf("hour %v: blend %v above threshold but no stars", h, s.NightBlend)
		}
	}
}

func TestPositionsOnOrbitRadius(t *testing.T) {
	cfg := DefaultConfig()
	s := Derive(8, cfg)
	for _, p := range [][3]float32{s.SunPosition, s.MoonPosition} {
		r := float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
		if !approx(r, cfg.OrbitRadius*cfg.OrbitRadius, 1) {
			t.Errorf("position %v not on radius %v", p, cfg.OrbitRadius)
		}
	}
	if (s.SunPosition[1] > 0) != (s.SunElevation > 0) {
		t.Error("sun position height disagrees with elevation")
	}
}

func TestSunColorWarmsNearHorizon(t *testing.T) {
	cfg := DefaultConfig()
	noon := Derive(12, cfg)
	var low State
	for h := 12.0; h < 20; h += 0.01 {
		low = Derive(h, cfg)
		if low.SunElevation < 3 {
			break
		}
	}
	if low.SunTemperature >= noon.SunTemperature {
		t.Errorf("low sun %vK should be warmer than noon %vK", low.SunTemperature, noon.SunTemperature)
	}
	if low.Sun.Color[2] >= noon.Sun.Color[2] {
		t.Errorf("low sun blue %v should be below noon blue %v", low.Sun.Color[2], noon.Sun.Color[2])
	}
}

func TestKelvinToRGB(t *testing.T) {
	tests := []struct {
		kelvin float64
		check  func(Color) bool
		desc   string
	}{
		{1000, func(c Color) bool { return c[0] == 1 && c[2] == 0 }, "deep red, no blue"},
		{2000, func(c Color) bool { return c[0] == 1 && c[1] < 0.7 && c[2] < 0.2 }, "orange"},
		{6600, func(c Color) bool { return c[0] > 0.95 && c[1] > 0.95 && c[2] == 1 }, "near white"},
		{15000, func(c Color) bool { return c[2] == 1 && c[0] < c[2] }, "blue tint"},
	}
	for _, tt := range tests {
		got := KelvinToRGB(tt.kelvin)
		if !tt.check(got) {
			t.Errorf("KelvinToRGB(%v) = %v, want %s", tt.kelvin, got, tt.desc)
		}
		for _, ch := range got {
			if ch < 0 || ch > 1 {
				t.Errorf("KelvinToRGB(%v) channel %v outside [0,1]", tt.kelvin, ch)
			}
		}
	}
}
