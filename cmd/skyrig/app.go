package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/debug"
	"github.com/Faultbox/skyrig/internal/engine/input"
	"github.com/Faultbox/skyrig/internal/engine/input/sdlinput"
	"github.com/Faultbox/skyrig/internal/engine/renderer"
	"github.com/Faultbox/skyrig/internal/engine/texture"
	"github.com/Faultbox/skyrig/internal/engine/window"
	"github.com/Faultbox/skyrig/internal/game"
	"github.com/Faultbox/skyrig/internal/logger"
)

const windowTitle = "Sky Rig"

// App owns the SDL window and runs the frame loop.
type App struct {
	log *zap.Logger

	window   *window.Window
	poller   *sdlinput.Poller
	input    *input.State
	renderer *renderer.Renderer
	game     *game.Game
	loader   *texture.Loader
	shots    *debug.Screenshotter

	cancel    context.CancelFunc
	showPanel bool
}

func newApp(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{log: logger.Named("app")}

	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	a.window = win

	a.loader = game.NewLoader(cfg)
	a.game = game.New(cfg, a.loader)
	a.showPanel = a.game.PanelVisible()

	a.renderer, err = renderer.New(renderer.SettingsFrom(cfg.Graphics), a.game.Ground(), a.loader)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	a.game.Clock().Bind(a.renderer)

	assetCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.game.StartAssets(assetCtx)

	a.input = input.New()
	a.poller = sdlinput.New(a.input)
	a.shots = debug.NewScreenshotter(cfg.Graphics.ScreenshotDir, "skyrig")
	return a, nil
}

// Run drives frames until the window closes, Esc quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting frame loop", zap.Stringer("mode", a.game.Rig().Mode()))

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			a.log.Info("interrupted")
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		a.poller.Update()
		for _, ev := range a.poller.Events() {
			switch ev.Type {
			case sdlinput.EventWindowResize:
				a.log.Debug("window resized", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
			case sdlinput.EventFocusLost:
				if a.input.PointerLocked {
					a.poller.SetPointerLock(false)
				}
			}
		}

		req := a.game.Frame(a.input, dt)
		if req.PointerLock != a.input.PointerLocked {
			a.poller.SetPointerLock(req.PointerLock)
		}
		if v := a.game.PanelVisible(); v != a.showPanel {
			// This host has no panel; the toggle only matters to the viewer.
			a.showPanel = v
			a.log.Info("debug panel is only available in skyviewer", zap.Bool("visible", v))
		}

		winW, winH := a.window.Size()
		drawW, drawH := a.window.DrawableSize()
		a.renderer.Render(a.game.Rig().ActiveCamera(), winW, winH, drawW, drawH)
		a.renderer.Present(drawW, drawH)

		if req.Screenshot {
			a.screenshot()
		}
		a.window.SwapBuffers()

		if a.game.Frames()%120 == 0 {
			a.window.SetTitle(a.title())
		}
		if req.Quit {
			return nil
		}
	}
}

func (a *App) title() string {
	clock := a.game.Clock()
	return fmt.Sprintf("%s | %s | %05.2fh | %.0f fps",
		windowTitle, a.game.Rig().Mode(), clock.Hour(), a.game.FPS().FPS())
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	a.log.Info("closing")
	if a.cancel != nil {
		a.cancel()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.game != nil {
		a.game.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
