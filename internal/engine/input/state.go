// Package input holds a backend-neutral snapshot of one frame of keyboard and mouse input.
package input

import "strings"

// Key identifies a key the demo reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyShift
	KeySpace
	KeyC
	KeyN
	KeyG
	KeyR
	KeyT
	KeyPlus
	KeyMinus
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF12
	KeyEscape
	keyCount
)

var keyNames = [keyCount]string{
	"none", "W", "A", "S", "D", "Q", "E", "Shift", "Space", "C", "N", "G", "R", "T",
	"+", "-", "Up", "Down", "Left", "Right", "F12", "Escape",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// ParseKey looks a key up by its String name, ignoring case.
func ParseKey(name string) (Key, bool) {
	for k := KeyW; k < keyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, true
		}
	}
	return KeyNone, false
}

// Mouse buttons tracked by State.
const (
	ButtonLeft = iota
	ButtonRight
	buttonCount
)

// State is the input for one frame. Held keys persist across frames;
// pressed edges, mouse motion and wheel are cleared by BeginFrame.
type State struct {
	held    [keyCount]bool
	pressed [keyCount]bool
	buttons [buttonCount]bool

	// MouseDX and MouseDY accumulate relative mouse motion in pixels.
	MouseDX, MouseDY float32
	// Wheel accumulates vertical scroll steps, positive away from the user.
	Wheel float32
	// PointerLocked is true while the mouse is captured for look controls.
	PointerLocked bool
	// Quit is set when the window asked to close.
	Quit bool
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// BeginFrame clears per-frame edges and deltas.
func (s *State) BeginFrame() {
	s.pressed = [keyCount]bool{}
	s.MouseDX, s.MouseDY = 0, 0
	s.Wheel = 0
}

// KeyDown records a key press. Repeats of an already held key do not produce a new edge.
func (s *State) KeyDown(k Key) {
	if k <= KeyNone || k >= keyCount {
		return
	}
	if !s.held[k] {
		s.pressed[k] = true
	}
	s.held[k] = true
}

// KeyUp records a key release.
func (s *State) KeyUp(k Key) {
	if k <= KeyNone || k >= keyCount {
		return
	}
	s.held[k] = false
}

// Held reports whether k is currently down.
func (s *State) Held(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return s.held[k]
}

// Pressed reports whether k went down during this frame.
func (s *State) Pressed(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return s.pressed[k]
}

// SetButton records a mouse button transition.
func (s *State) SetButton(button int, down bool) {
	if button < 0 || button >= buttonCount {
		return
	}
	s.buttons[button] = down
}

// Button reports whether a mouse button is held.
func (s *State) Button(button int) bool {
	if button < 0 || button >= buttonCount {
		return false
	}
	return s.buttons[button]
}

// MoveMouse accumulates relative motion.
func (s *State) MoveMouse(dx, dy float32) {
	s.MouseDX += dx
	s.MouseDY += dy
}

// Scroll accumulates wheel steps.
func (s *State) Scroll(dy float32) {
	s.Wheel += dy
}

// ReleaseAll drops held keys and buttons, e.g. when the window loses focus.
func (s *State) ReleaseAll() {
	s.held = [keyCount]bool{}
	s.buttons = [buttonCount]bool{}
}
