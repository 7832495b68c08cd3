package camera

import (
	"fmt"
	"strings"
)

// Mode selects the active controller.
type Mode int

const (
	ModeOrbit Mode = iota
	ModeDrone
	ModeFirstPerson
	modeCount
)

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= ModeOrbit && m < modeCount
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	if !m.Valid() {
		return ModeOrbit
	}
	return (m + 1) % modeCount
}

func (m Mode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModeDrone:
		return "drone"
	case ModeFirstPerson:
		return "first_person"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as used in config files and flags.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orbit":
		return ModeOrbit, nil
	case "drone", "fly":
		return ModeDrone, nil
	case "first_person", "first-person", "firstperson", "fps", "walk":
		return ModeFirstPerson, nil
	}
	return ModeOrbit, fmt.Errorf("unknown camera mode %q", s)
}
