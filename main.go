package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"galaxygenerator/config"
	"galaxygenerator/logging"
	"galaxygenerator/rendering/opengl"
	"galaxygenerator/viewer"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "Settings file (YAML)")
		width      = flag.Int("width", 0, "Window width (overrides settings)")
		height     = flag.Int("height", 0, "Window height (overrides settings)")
		workers    = flag.Int("workers", -1, "Generator goroutines (overrides settings)")
		seed       = flag.Uint64("seed", 0, "Fixed random seed, 0 reseeds on every regenerate")
		serve      = flag.Bool("serve", false, "Enable the remote control panel server")
		watch      = flag.Bool("watch", true, "Reload the galaxy when the settings file changes")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load settings", "error", err)
		os.Exit(1)
	}
	applyFlags(settings, *width, *height, *workers, *seed, *serve)
	if err := settings.Validate(); err != nil {
		slog.Error("Invalid flags", "error", err)
		os.Exit(1)
	}

	logging.Init(settings.Logging)
	logger := slog.Default()

	renderer, err := opengl.NewGalaxyRenderer(settings.Window, logger)
	if err != nil {
		logger.Error("Failed to create renderer", "error", err)
		os.Exit(1)
	}
	defer renderer.Terminate()

	v, err := viewer.New(renderer, settings, logger)
	if err != nil {
		logger.Error("Failed to start viewer", "error", err)
		os.Exit(1)
	}

	logger.Info("Controls: Up/Down select, Left/Right adjust (shift x10), release to apply, R reset, H hide panel, mouse drag orbit, scroll zoom, Esc quit")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload := ""
	if *watch {
		reload = *configPath
	}
	if err := v.Run(ctx, reload); err != nil {
		logger.Error("Viewer stopped", "error", err)
	}
}

// applyFlags lets explicitly passed flags win over the settings file
func applyFlags(s *config.Settings, width, height, workers int, seed uint64, serve bool) {
	if width > 0 {
		s.Window.Width = width
	}
	if height > 0 {
		s.Window.Height = height
	}
	if workers >= 0 {
		s.Generation.Workers = workers
	}
	if seed != 0 {
		s.Generation.Seed = seed
	}
	if serve {
		s.Server.Enabled = true
	}
}
