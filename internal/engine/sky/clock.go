// Package sky implements the time-of-day clock and the lighting derived from it.
package sky

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/logger"
)

// Config holds the latitude model and lighting constants.
type Config = config.SkyConfig

// DefaultConfig returns the default sky settings.
func DefaultConfig() Config {
	return config.Default().Sky
}

// ClockMode is the clock's advance mode.
type ClockMode int

const (
	Manual ClockMode = iota
	Auto
)

func (m ClockMode) String() string {
	if m == Auto {
		return "auto"
	}
	return "manual"
}

// Target receives the derived state after every recompute.
type Target interface {
	ApplySky(State)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(State)

// ApplySky calls f(s).
func (f TargetFunc) ApplySky(s State) { f(s) }

// Clock owns the hour of day and keeps the derived state in sync with it.
type Clock struct {
	cfg     Config
	hour    float64
	auto    bool
	speed   float64
	state   State
	targets []Target
}

// NewClock creates a clock from cfg and derives the initial state.
func NewClock(cfg Config) *Clock {
	c := &Clock{
		cfg:   cfg,
		hour:  normalizeHour(cfg.Hour),
		auto:  cfg.AutoAdvance,
		speed: sanitizeSpeed(cfg.Speed),
	}
	c.recompute()
	return c
}

// Hour returns the current hour in [0,24).
func (c *Clock) Hour() float64 { return c.hour }

// AutoAdvance reports whether Tick advances the hour.
func (c *Clock) AutoAdvance() bool { return c.auto }

// Speed returns the advance speed in hours per second.
func (c *Clock) Speed() float64 { return c.speed }

// State returns the last derived state.
func (c *Clock) State() State { return c.state }

// Config returns the constants the clock derives with.
func (c *Clock) Config() Config { return c.cfg }

// Mode returns Auto or Manual.
func (c *Clock) Mode() ClockMode {
	if c.auto {
		return Auto
	}
	return Manual
}

// Bind registers t and immediately applies the current state to it.
func (c *Clock) Bind(t Target) {
	if t == nil {
		return
	}
	c.targets = append(c.targets, t)
	t.ApplySky(c.state)
}

// SetHour wraps h into [0,24) and recomputes.
func (c *Clock) SetHour(h float64) {
	c.hour = normalizeHour(h)
	logger.Named("sky").Debug("hour set", zap.Float64("hour", c.hour))
	c.recompute()
}

// NudgeHour shifts the hour by delta.
func (c *Clock) NudgeHour(delta float64) {
	c.SetHour(c.hour + delta)
}

// ToggleDayNight jumps to midnight during the day and to noon at night.
func (c *Clock) ToggleDayNight() {
	if c.state.IsDay {
		c.SetHour(0)
	} else {
		c.SetHour(12)
	}
}

// Tick advances the hour by speed*dt when auto-advance is on. In manual mode it does nothing.
func (c *Clock) Tick(dt float64) {
	if !c.auto || dt <= 0 || c.speed == 0 {
		return
	}
	c.hour = normalizeHour(c.hour + c.speed*dt)
	c.recompute()
}

// SetAutoAdvance switches between Manual and Auto.
func (c *Clock) SetAutoAdvance(on bool) {
	if on == c.auto {
		return
	}
	c.auto = on
	logger.Named("sky").Debug("clock mode changed", zap.Stringer("mode", c.Mode()))
}

// ToggleAutoAdvance flips the advance mode.
func (c *Clock) ToggleAutoAdvance() {
	c.SetAutoAdvance(!c.auto)
}

// SetSpeed sets hours per second. Negative values clamp to 0.
func (c *Clock) SetSpeed(hoursPerSecond float64) {
	c.speed = sanitizeSpeed(hoursPerSecond)
}

func (c *Clock) recompute() {
	c.state = Derive(c.hour, c.cfg)
	for _, t := range c.targets {
		t.ApplySky(c.state)
	}
}

func sanitizeSpeed(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
