package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/debug"
	"github.com/Faultbox/skyrig/internal/engine/input"
	"github.com/Faultbox/skyrig/internal/engine/renderer"
	engineui "github.com/Faultbox/skyrig/internal/engine/ui"
	"github.com/Faultbox/skyrig/internal/game"
	"github.com/Faultbox/skyrig/internal/game/ui"
	"github.com/Faultbox/skyrig/internal/logger"
)

const windowTitle = "Sky Rig Viewer"

// Viewer hosts the game inside the imgui backend.
type Viewer struct {
	log *zap.Logger

	backend  *engineui.Backend
	input    *input.State
	renderer *renderer.Renderer
	game     *game.Game
	panel    *ui.Panel
	overlay  ui.Overlay
	shots    *debug.Screenshotter

	cancel context.CancelFunc
	last   time.Time
}

func newViewer(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	v := &Viewer{log: logger.Named("viewer"), input: input.New()}

	var err error
	v.backend, err = engineui.NewBackend(windowTitle, cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return nil, err
	}

	loader := game.NewLoader(cfg)
	v.game = game.New(cfg, loader)

	v.renderer, err = renderer.New(renderer.SettingsFrom(cfg.Graphics), v.game.Ground(), loader)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	v.game.Clock().Bind(v.renderer)

	assetCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.game.StartAssets(assetCtx)

	v.panel = ui.NewPanel(assetCtx, v.game, v.renderer)
	v.shots = debug.NewScreenshotter(cfg.Graphics.ScreenshotDir, "skyviewer")
	return v, nil
}

// Run hands control to the backend loop. It returns when the window closes.
func (v *Viewer) Run() {
	v.last = time.Now()
	v.log.Info("starting frame loop", zap.Stringer("mode", v.game.Rig().Mode()))
	v.backend.Run(v.frame)
}

func (v *Viewer) frame() {
	now := time.Now()
	dt := now.Sub(v.last).Seconds()
	v.last = now

	// The imgui backend has no relative mouse mode, so pointer lock is
	// emulated: mouse deltas drive the look controls while it is held.
	v.backend.ReadInput(v.input, !v.panel.Hovered(), !v.panel.Editing())

	req := v.game.Frame(v.input, dt)
	v.input.PointerLocked = req.PointerLock

	_, _, w, h := v.backend.Viewport()
	v.renderer.Render(v.game.Rig().ActiveCamera(), int(w), int(h), int(w), int(h))

	v.overlay.DrawScene(v.renderer.Target().ColorTexture())
	v.panel.Draw()
	v.overlay.DrawFPS(v.game.FPS())
	v.overlay.DrawMessage()

	if req.Screenshot {
		v.screenshot()
	}
	if v.game.Frames()%120 == 0 {
		v.backend.SetWindowTitle(fmt.Sprintf("%s | %s | %05.2fh",
			windowTitle, v.game.Rig().Mode(), v.game.Clock().Hour()))
	}

	if req.Quit {
		v.log.Info("quit requested")
		v.Close()
		logger.Sync()
		os.Exit(0)
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		v.overlay.Notify("Screenshot failed")
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
	v.overlay.Notify("Saved " + path)
}

// Close stops background loads and releases GPU resources.
func (v *Viewer) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.renderer != nil {
		v.renderer.Close()
		v.renderer = nil
	}
	if v.game != nil {
		v.game.Close()
	}
}
