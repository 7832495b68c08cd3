// Package game drives one frame of the demo: hotkeys, the camera rig and the
// sky clock. Hosts own the window and renderer and act on the returned Requests.
package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/assets"
	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/engine/camera"
	"github.com/Faultbox/skyrig/internal/engine/debug"
	"github.com/Faultbox/skyrig/internal/engine/input"
	"github.com/Faultbox/skyrig/internal/engine/sky"
	"github.com/Faultbox/skyrig/internal/engine/terrain"
	"github.com/Faultbox/skyrig/internal/engine/texture"
	"github.com/Faultbox/skyrig/internal/logger"
)

const (
	hourStep  = 0.25 // Arrow keys, hours
	speedStep = 0.25 // +/- keys, hours per second

	// Long stalls (window drag, breakpoint) are not replayed as one huge step.
	maxFrameDelta = 0.25
)

// Requests are the side effects a frame asks the host to perform.
type Requests struct {
	Quit        bool
	Screenshot  bool
	PointerLock bool // Desired pointer lock state
}

// Game is the per-frame coordinator shared by both hosts.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	rig       *camera.Rig
	clock     *sky.Clock
	loader    *texture.Loader
	ground    *terrain.Mesh
	heightmap *terrain.Heightmap

	showPanel bool
	wantLock  bool

	fps    debug.FPSCounter
	frames uint64
}

// New builds the rig, clock and ground from cfg. loader may be nil for
// headless use.
func New(cfg *config.Config, loader *texture.Loader) *Game {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Game{
		cfg:       cfg,
		log:       logger.Named("game"),
		rig:       camera.NewRig(cfg.Camera),
		clock:     sky.NewClock(cfg.Sky),
		loader:    loader,
		showPanel: true,
	}

	g.ground = terrain.BuildGround(cfg.Ground)
	g.heightmap = terrain.BuildHeightmap(g.ground)
	g.rig.FirstPerson().SetGround(g.heightmap.HeightAt)
	g.rig.SetFieldOfView(cfg.Graphics.FieldOfView)

	g.log.Info("game initialized",
		zap.Stringer("mode", g.rig.Mode()),
		zap.Float64("hour", g.clock.Hour()),
		zap.Int("ground_vertices", len(g.ground.Vertices)),
	)
	return g
}

// Sources returns the texture sources configured for the ground.
func (g *Game) Sources() texture.Sources {
	return texture.Sources{
		Color:        g.cfg.Ground.ColorMap,
		Displacement: g.cfg.Ground.DisplaceMap,
		Normal:       g.cfg.Ground.NormalMap,
	}
}

// StartAssets kicks off the background texture loads and file watching.
func (g *Game) StartAssets(ctx context.Context) {
	if g.loader == nil {
		return
	}
	src := g.Sources()
	g.loader.Start(ctx, src)
	if err := g.loader.Watch(ctx, src); err != nil {
		g.log.Warn("texture hot reload disabled", zap.Error(err))
	}
}

// Frame runs one frame: hotkeys first, then controller input, the rig update
// and finally the clock tick. dt is in seconds.
func (g *Game) Frame(in *input.State, dt float64) Requests {
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	req := g.applyHotkeys(in)
	g.updatePointerLock(in)
	req.PointerLock = g.wantLock

	g.rig.HandleInput(in)
	g.rig.Update(dt)
	g.clock.Tick(dt)

	g.frames++
	if g.fps.Frame(time.Duration(dt * float64(time.Second))) {
		g.log.Debug("fps",
			zap.Float64("fps", g.fps.FPS()),
			zap.Duration("frame_time", g.fps.FrameTime()),
		)
	}
	return req
}

func (g *Game) applyHotkeys(in *input.State) Requests {
	var req Requests

	if in.Quit {
		req.Quit = true
	}
	if in.Pressed(input.KeyEscape) {
		if in.PointerLocked || g.wantLock {
			g.wantLock = false
		} else {
			req.Quit = true
		}
	}

	if in.Pressed(input.KeyC) {
		g.rig.CycleMode()
	}
	if in.Pressed(input.KeyN) {
		g.clock.ToggleDayNight()
	}
	if in.Pressed(input.KeyG) {
		g.showPanel = !g.showPanel
	}
	if in.Pressed(input.KeyR) {
		g.rig.ResetDroneAltitude()
	}
	if in.Pressed(input.KeyT) {
		g.clock.ToggleAutoAdvance()
	}

	if in.Pressed(input.KeyUp) || in.Pressed(input.KeyRight) {
		g.clock.NudgeHour(hourStep)
	}
	if in.Pressed(input.KeyDown) || in.Pressed(input.KeyLeft) {
		g.clock.NudgeHour(-hourStep)
	}

	if in.Pressed(input.KeyPlus) {
		g.clock.SetSpeed(g.clock.Speed() + speedStep)
	}
	if in.Pressed(input.KeyMinus) {
		g.clock.SetSpeed(max(g.clock.Speed()-speedStep, 0))
	}

	if in.Pressed(input.KeyF12) {
		req.Screenshot = true
	}
	return req
}

// updatePointerLock captures the mouse on a left click in first-person mode
// and releases it in every other mode.
func (g *Game) updatePointerLock(in *input.State) {
	if g.rig.Mode() != camera.ModeFirstPerson {
		g.wantLock = false
		return
	}
	if !in.PointerLocked && in.Button(input.ButtonLeft) {
		g.wantLock = true
	}
}

// Close drops cached asset bytes. The loader's goroutines stop with the
// context passed to StartAssets.
func (g *Game) Close() {
	if g.loader != nil {
		g.loader.Assets().Close()
	}
}

// Rig returns the camera rig.
func (g *Game) Rig() *camera.Rig { return g.rig }

// Clock returns the sky clock.
func (g *Game) Clock() *sky.Clock { return g.clock }

// Loader returns the texture loader, which may be nil.
func (g *Game) Loader() *texture.Loader { return g.loader }

// Ground returns the ground mesh.
func (g *Game) Ground() *terrain.Mesh { return g.ground }

// Heightmap returns the ground height lookup.
func (g *Game) Heightmap() *terrain.Heightmap { return g.heightmap }

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// PanelVisible reports whether the debug panel should be drawn.
func (g *Game) PanelVisible() bool { return g.showPanel }

// FPS returns the frame counter.
func (g *Game) FPS() *debug.FPSCounter { return &g.fps }

// Frames returns the number of frames run.
func (g *Game) Frames() uint64 { return g.frames }

// NewLoader creates the ground texture loader for cfg, searching the
// configured asset roots.
func NewLoader(cfg *config.Config) *texture.Loader {
	mgr := assets.NewManager(cfg.Assets.Roots...)
	return texture.NewLoader(mgr, cfg.Ground.TextureSize, cfg.Ground.NormalScale)
}
