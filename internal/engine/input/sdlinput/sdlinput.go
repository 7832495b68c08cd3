// Package sdlinput feeds SDL2 events into an input.State.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/skyrig/internal/engine/input"
)

// Event types surfaced to the host besides key and mouse state.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusLost
)

// Event is a window-level event the host must react to.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Poller drains the SDL queue once per frame.
type Poller struct {
	state  *input.State
	events []Event
}

// New creates a poller writing into state.
func New(state *input.State) *Poller {
	return &Poller{
		state:  state,
		events: make([]Event, 0, 4),
	}
}

// State returns the input snapshot the poller writes into.
func (p *Poller) State() *input.State {
	return p.state
}

// Update starts a new input frame and polls all pending SDL events.
// Returns true if the window asked to quit.
func (p *Poller) Update() bool {
	p.events = p.events[:0]
	p.state.BeginFrame()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			p.events = append(p.events, Event{Type: EventQuit})
			p.state.Quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				p.events = append(p.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				p.state.ReleaseAll()
				p.events = append(p.events, Event{Type: EventFocusLost})
			}

		case *sdl.KeyboardEvent:
			k := mapScancode(e.Keysym.Scancode)
			if e.Type == sdl.KEYDOWN {
				p.state.KeyDown(k)
			} else if e.Type == sdl.KEYUP {
				p.state.KeyUp(k)
			}

		case *sdl.MouseMotionEvent:
			p.state.MoveMouse(float32(e.XRel), float32(e.YRel))

		case *sdl.MouseButtonEvent:
			if b, ok := mapButton(e.Button); ok {
				p.state.SetButton(b, e.Type == sdl.MOUSEBUTTONDOWN)
			}

		case *sdl.MouseWheelEvent:
			p.state.Scroll(float32(e.Y))
		}
	}

	return p.state.Quit
}

// Events returns the window events from the last Update.
func (p *Poller) Events() []Event {
	return p.events
}

// SetPointerLock captures or releases the mouse for look controls.
func (p *Poller) SetPointerLock(locked bool) {
	sdl.SetRelativeMouseMode(locked)
	p.state.PointerLocked = locked
}

func mapScancode(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_W:
		return input.KeyW
	case sdl.SCANCODE_A:
		return input.KeyA
	case sdl.SCANCODE_S:
		return input.KeyS
	case sdl.SCANCODE_D:
		return input.KeyD
	case sdl.SCANCODE_Q:
		return input.KeyQ
	case sdl.SCANCODE_E:
		return input.KeyE
	case sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT:
		return input.KeyShift
	case sdl.SCANCODE_SPACE:
		return input.KeySpace
	case sdl.SCANCODE_C:
		return input.KeyC
	case sdl.SCANCODE_N:
		return input.KeyN
	case sdl.SCANCODE_G:
		return input.KeyG
	case sdl.SCANCODE_R:
		return input.KeyR
	case sdl.SCANCODE_T:
		return input.KeyT
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return input.KeyPlus
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return input.KeyMinus
	case sdl.SCANCODE_UP:
		return input.KeyUp
	case sdl.SCANCODE_DOWN:
		return input.KeyDown
	case sdl.SCANCODE_LEFT:
		return input.KeyLeft
	case sdl.SCANCODE_RIGHT:
		return input.KeyRight
	case sdl.SCANCODE_F12:
		return input.KeyF12
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	}
	return input.KeyNone
}

func mapButton(b uint8) (int, bool) {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft, true
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight, true
	}
	return 0, false
}
