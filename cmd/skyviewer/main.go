// Package main is the imgui host for the sky rig demo. It renders the scene
// into a texture behind the debug panel.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/config"
	"github.com/Faultbox/skyrig/internal/logger"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Sky Rig Viewer ===")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v, err := newViewer(ctx, cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	v.Run()
}
