// Command galaxy-raylib shows the galaxy in a raylib window instead of the
// OpenGL 4.1 renderer.
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
	"galaxygenerator/rendering/raylib"
	"galaxygenerator/viewer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "Settings file (YAML)")
		count      = flag.Int("count", 0, "Starting point count (overrides settings)")
		serve      = flag.Bool("serve", false, "Enable the remote control panel server")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load settings", "error", err)
		os.Exit(1)
	}
	if *count > 0 {
		settings.Galaxy.Count = *count
	}
	if *serve {
		settings.Server.Enabled = true
	}
	if err := settings.Validate(); err != nil {
		slog.Error("Invalid flags", "error", err)
		os.Exit(1)
	}

	logging.Init(settings.Logging)
	logger := slog.Default()

	renderer := raylib.NewGalaxyRenderer(settings.Window, logger)
	defer renderer.Terminate()

	v, err := viewer.New(renderer, settings, logger)
	if err != nil {
		logger.Error("Failed to start viewer", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := v.Run(ctx, *configPath); err != nil {
		logger.Error("Viewer stopped", "error", err)
	}
}
