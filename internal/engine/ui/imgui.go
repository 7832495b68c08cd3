// Package ui wraps the cimgui-go SDL backend and bridges imgui input into
// the engine's input.State.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/skyrig/internal/engine/input"
)

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]

	lastMouse imgui.Vec2
	haveMouse bool
}

// NewBackend creates the window, the imgui context and loads GL.
func NewBackend(title string, width, height int) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.05, 0.05, 0.08, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

// Run starts the main render loop. It returns when the window closes.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area.
func (b *Backend) Viewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// TextureRef wraps a GL texture name for imgui image widgets.
func TextureRef(id uint32) imgui.TextureRef {
	return *imgui.NewTextureRefTextureID(imgui.TextureID(id))
}

var keyMap = []struct {
	key  input.Key
	keys []imgui.Key
}{
	{input.KeyW, []imgui.Key{imgui.KeyW}},
	{input.KeyA, []imgui.Key{imgui.KeyA}},
	{input.KeyS, []imgui.Key{imgui.KeyS}},
	{input.KeyD, []imgui.Key{imgui.KeyD}},
	{input.KeyQ, []imgui.Key{imgui.KeyQ}},
	{input.KeyE, []imgui.Key{imgui.KeyE}},
	{input.KeyShift, []imgui.Key{imgui.KeyLeftShift, imgui.KeyRightShift}},
	{input.KeySpace, []imgui.Key{imgui.KeySpace}},
	{input.KeyC, []imgui.Key{imgui.KeyC}},
	{input.KeyN, []imgui.Key{imgui.KeyN}},
	{input.KeyG, []imgui.Key{imgui.KeyG}},
	{input.KeyR, []imgui.Key{imgui.KeyR}},
	{input.KeyT, []imgui.Key{imgui.KeyT}},
	{input.KeyPlus, []imgui.Key{imgui.KeyEqual, imgui.KeyKeypadAdd}},
	{input.KeyMinus, []imgui.Key{imgui.KeyMinus, imgui.KeyKeypadSubtract}},
	{input.KeyUp, []imgui.Key{imgui.KeyUpArrow}},
	{input.KeyDown, []imgui.Key{imgui.KeyDownArrow}},
	{input.KeyLeft, []imgui.Key{imgui.KeyLeftArrow}},
	{input.KeyRight, []imgui.Key{imgui.KeyRightArrow}},
	{input.KeyF12, []imgui.Key{imgui.KeyF12}},
	{input.KeyEscape, []imgui.Key{imgui.KeyEscape}},
}

// ReadInput starts a new input frame in in and fills it from imgui. When
// mouse is false (a panel is hovered) the scene gets no mouse input; when
// keys is false (a widget is being edited) all keys read as released.
func (b *Backend) ReadInput(in *input.State, mouse, keys bool) {
	in.BeginFrame()

	for _, m := range keyMap {
		down := false
		if keys {
			for _, k := range m.keys {
				if imgui.IsKeyDown(k) {
					down = true
					break
				}
			}
		}
		if down {
			in.KeyDown(m.key)
		} else {
			in.KeyUp(m.key)
		}
	}

	pos := imgui.MousePos()
	if b.haveMouse && mouse {
		in.MoveMouse(pos.X-b.lastMouse.X, pos.Y-b.lastMouse.Y)
	}
	b.lastMouse, b.haveMouse = pos, true

	if mouse {
		in.SetButton(input.ButtonLeft, imgui.IsMouseDown(imgui.MouseButtonLeft))
		in.SetButton(input.ButtonRight, imgui.IsMouseDown(imgui.MouseButtonRight))
		in.Scroll(imgui.CurrentIO().MouseWheel())
	} else {
		in.SetButton(input.ButtonLeft, false)
		in.SetButton(input.ButtonRight, false)
	}
}
