// Package ui draws the imgui debug panel and overlays for the sky viewer.
package ui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/skyrig/internal/engine/camera"
	"github.com/Faultbox/skyrig/internal/engine/renderer"
	"github.com/Faultbox/skyrig/internal/engine/texture"
	engineui "github.com/Faultbox/skyrig/internal/engine/ui"
	"github.com/Faultbox/skyrig/internal/game"
	"github.com/Faultbox/skyrig/internal/logger"
)

const (
	panelWidth   = 320
	previewSize  = 72
	maxClockRate = 6 // Hours per second on the speed slider
)

// RenderControls is the renderer surface the panel edits.
type RenderControls interface {
	Settings() *renderer.Settings
	TextureID(slot texture.Slot) uint32
}

// Panel is the debug window bound to the game and renderer.
type Panel struct {
	ctx      context.Context
	game     *game.Game
	render   RenderControls
	dialogs  *DialogQueue
	hovered  bool
	editing  bool
	lastLoad string

	assetSlot texture.Slot // Target slot for the asset browser
}

// NewPanel creates a panel. Texture reloads are bound to ctx.
func NewPanel(ctx context.Context, g *game.Game, rc RenderControls) *Panel {
	return &Panel{
		ctx:     ctx,
		game:    g,
		render:  rc,
		dialogs: NewDialogQueue(),
	}
}

// Hovered reports whether the mouse was over the panel last frame.
func (p *Panel) Hovered() bool { return p.hovered }

// Editing reports whether a widget had keyboard or mouse focus last frame.
func (p *Panel) Editing() bool { return p.editing }

// Draw renders the panel when the game says it is visible and applies any
// finished file dialogs.
func (p *Panel) Draw() {
	p.applyDialogs()

	p.hovered, p.editing = false, false
	if !p.game.PanelVisible() {
		return
	}

	posX, posY, _, height := viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(posX+10, posY+10))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, height-20))
	imgui.SetNextWindowBgAlpha(0.85)

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Sky Rig", nil, flags) {
		p.drawCamera()
		p.drawClock()
		p.drawRenderer()
		p.drawTextures()
		imgui.Spacing()
		imgui.TextDisabled("C camera  N day/night  G panel  T auto  F12 shot")
		p.hovered = imgui.IsWindowHovered()
	}
	imgui.End()
	p.editing = imgui.IsAnyItemActive()
}

func (p *Panel) drawCamera() {
	rig := p.game.Rig()
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}

	for m := camera.ModeOrbit; m.Valid(); m++ {
		if imgui.SelectableBoolV(m.String(), rig.Mode() == m, 0, imgui.NewVec2(0, 0)) {
			rig.SetMode(m)
		}
	}

	drone := rig.Drone()
	imgui.Separator()
	imgui.Text("Drone")
	imgui.SliderFloatV("Speed##drone", &drone.FlySpeed, 1, 100, "%.1f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Turbo", &drone.Turbo, 1, 10, "%.1fx", imgui.SliderFlagsNone)

	lo, hi := drone.AltitudeBounds()
	changed := imgui.SliderFloatV("Min height", &lo, 0, 200, "%.1f", imgui.SliderFlagsNone)
	changed = imgui.SliderFloatV("Max height", &hi, 0, 400, "%.1f", imgui.SliderFlagsNone) || changed
	if changed {
		drone.SetAltitudeBounds(lo, hi)
	}
	if imgui.Button("Reset altitude") {
		rig.ResetDroneAltitude()
	}

	cam := rig.ActiveCamera()
	imgui.TextDisabled(fmt.Sprintf("pos %.1f, %.1f, %.1f", cam.Position.X, cam.Position.Y, cam.Position.Z))
	switch rig.Mode() {
	case camera.ModeOrbit:
		az, polar := rig.Orbit().Pending()
		imgui.TextDisabled(fmt.Sprintf("pending %.3f, %.3f rad", az, polar))
	case camera.ModeFirstPerson:
		if pos := rig.FirstPerson().Position; !p.game.Heightmap().Contains(pos.X, pos.Z) {
			imgui.TextDisabled("off the ground grid")
		}
	}
}

func (p *Panel) drawClock() {
	clock := p.game.Clock()
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Sky", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}

	hour := float32(clock.Hour())
	if imgui.SliderFloatV("Hour", &hour, 0, 23.99, "%.2f", imgui.SliderFlagsNone) {
		clock.SetHour(float64(hour))
	}

	auto := clock.AutoAdvance()
	if imgui.Checkbox("Auto advance", &auto) {
		clock.SetAutoAdvance(auto)
	}

	speed := float32(clock.Speed())
	if imgui.SliderFloatV("Speed (h/s)", &speed, 0, maxClockRate, "%.2f", imgui.SliderFlagsNone) {
		clock.SetSpeed(float64(speed))
	}

	if imgui.Button("Day / night") {
		clock.ToggleDayNight()
	}

	st := clock.State()
	phase := "night"
	if st.IsDay {
		phase = "day"
	}
	imgui.TextDisabled(fmt.Sprintf("%s  sun %.1f°  blend %.2f  %.0fK", phase, st.SunElevation, st.NightBlend, st.SunTemperature))
}

func (p *Panel) drawRenderer() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Renderer", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	s := p.render.Settings()
	imgui.SliderFloatV("Pixel ratio cap", &s.PixelRatioCap, 0.25, 4, "%.2f", imgui.SliderFlagsNone)
	imgui.Checkbox("Shadows", &s.Shadows)
	imgui.SliderFloatV("Exposure", &s.Exposure, 0.05, 8, "%.2f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Normal scale", &s.NormalScale, 0, 8, "%.2f", imgui.SliderFlagsNone)

	verbose := logger.Level() == "debug"
	if imgui.Checkbox("Debug logging", &verbose) {
		if verbose {
			logger.SetLevel("debug")
		} else {
			logger.SetLevel("info")
		}
	}
}

func (p *Panel) drawTextures() {
	loader := p.game.Loader()
	if loader == nil || !imgui.CollapsingHeaderTreeNodeFlagsV("Textures", imgui.TreeNodeFlagsNone) {
		return
	}

	for slot := texture.Slot(0); slot < texture.SlotCount; slot++ {
		imgui.ImageWithBgV(
			engineui.TextureRef(p.render.TextureID(slot)),
			imgui.NewVec2(previewSize, previewSize),
			imgui.NewVec2(0, 0),
			imgui.NewVec2(1, 1),
			imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
			imgui.NewVec4(1, 1, 1, 1),
		)
		imgui.SameLine()

		imgui.BeginGroup()
		imgui.Text(slot.String())
		if img := loader.Get(slot); img != nil {
			imgui.TextDisabled(describe(img))
		} else {
			imgui.TextDisabled("loading...")
		}
		imgui.BeginDisabledV(p.dialogs.Busy())
		if imgui.Button(fmt.Sprintf("Load texture...##%d", slot)) {
			p.dialogs.Open(slot)
		}
		imgui.EndDisabled()
		imgui.EndGroup()
	}

	p.drawAssets(loader)

	if p.lastLoad != "" {
		imgui.TextWrapped(p.lastLoad)
	}
}

// drawAssets lists the files under the asset roots; clicking one loads it
// into the selected slot.
func (p *Panel) drawAssets(loader *texture.Loader) {
	mgr := loader.Assets()
	if !imgui.TreeNodeExStrV("Asset files", imgui.TreeNodeFlagsNone) {
		return
	}
	defer imgui.TreePop()

	for _, root := range mgr.Roots() {
		imgui.TextDisabled(root)
	}
	hits, misses := mgr.Cache().Stats()
	imgui.TextDisabled(fmt.Sprintf("cache %d hits / %d misses", hits, misses))

	for slot := texture.Slot(0); slot < texture.SlotCount; slot++ {
		if slot > 0 {
			imgui.SameLine()
		}
		if imgui.SelectableBoolV(slot.String(), p.assetSlot == slot, 0, imgui.NewVec2(previewSize, 0)) {
			p.assetSlot = slot
		}
	}
	imgui.Separator()

	files := mgr.List()
	if len(files) == 0 {
		imgui.TextDisabled("no files")
		return
	}
	for _, f := range files {
		if imgui.SelectableBoolV(filepath.Base(f), false, 0, imgui.NewVec2(0, 0)) {
			loader.Reload(p.ctx, p.assetSlot, f)
			p.lastLoad = fmt.Sprintf("Loading %s into %s", filepath.Base(f), p.assetSlot)
		}
	}
}

func (p *Panel) applyDialogs() {
	loader := p.game.Loader()
	for _, r := range p.dialogs.Drain() {
		if loader == nil {
			continue
		}
		loader.Reload(p.ctx, r.Slot, r.Path)
		p.lastLoad = fmt.Sprintf("Loading %s into %s", filepath.Base(r.Path), r.Slot)
	}
}

func describe(img *texture.Image) string {
	b := img.RGBA.Bounds()
	if img.Source == "" {
		return fmt.Sprintf("%s %dx%d", img.Origin, b.Dx(), b.Dy())
	}
	return fmt.Sprintf("%s %dx%d %s", img.Origin, b.Dx(), b.Dy(), filepath.Base(img.Source))
}

func viewport() (posX, posY, width, height float32) {
	vp := imgui.MainViewport()
	pos, size := vp.WorkPos(), vp.WorkSize()
	return pos.X, pos.Y, size.X, size.Y
}
