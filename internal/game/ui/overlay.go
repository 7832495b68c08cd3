package ui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/skyrig/internal/engine/debug"
	engineui "github.com/Faultbox/skyrig/internal/engine/ui"
)

const messageDuration = 3 * time.Second

// Overlay draws the scene background, the FPS counter and transient messages.
type Overlay struct {
	message   string
	messageAt time.Time
}

// DrawScene fills the work area with the scene texture. GL textures are
// bottom-up, so V is flipped.
func (o *Overlay) DrawScene(textureID uint32) {
	if textureID == 0 {
		return
	}
	posX, posY, w, h := viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		imgui.ImageV(engineui.TextureRef(textureID),
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}

// DrawFPS renders the counter in the top-right corner, coloured by rate.
func (o *Overlay) DrawFPS(c *debug.FPSCounter) {
	posX, posY, w, _ := viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(posX+w-150, posY+10))
	imgui.SetNextWindowBgAlpha(0.5)
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings

	if imgui.BeginV("##FPS", nil, flags) {
		fps := c.FPS()
		color := imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
		if fps < 30 {
			color = imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
		} else if fps < 60 {
			color = imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
		}
		imgui.TextColored(color, fmt.Sprintf("FPS: %.1f", fps))
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", float64(c.FrameTime().Microseconds())/1000))
	}
	imgui.End()
}

// Notify shows msg at the bottom of the screen for a few seconds.
func (o *Overlay) Notify(msg string) {
	o.message = msg
	o.messageAt = time.Now()
}

// DrawMessage renders the current notification, if any.
func (o *Overlay) DrawMessage() {
	if o.message == "" {
		return
	}
	if time.Since(o.messageAt) > messageDuration {
		o.message = ""
		return
	}
	posX, posY, w, h := viewport()
	msgWidth := float32(360)
	imgui.SetNextWindowPos(imgui.NewVec2(posX+(w-msgWidth)/2, posY+h-60))
	imgui.SetNextWindowSize(imgui.NewVec2(msgWidth, 0))
	imgui.SetNextWindowBgAlpha(0.8)
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("##Message", nil, flags) {
		imgui.TextColored(imgui.NewVec4(0.2, 1.0, 0.2, 1.0), o.message)
	}
	imgui.End()
}
