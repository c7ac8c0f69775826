// Package viewer runs the interactive galaxy: it owns the panel, the
// lifecycle manager and the optional remote panel server, and drives them
// from the frame loop of whichever renderer it is given.
package viewer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"galaxygenerator/config"
	"galaxygenerator/core"
	"galaxygenerator/panel"
	"galaxygenerator/scene"
	"galaxygenerator/server"
)

// fpsInterval is how often the frame rate is logged
const fpsInterval = 5 * time.Second

// queueSize bounds edits waiting for the next frame
const queueSize = 64

// Renderer is a window that can host the galaxy. All methods are called
// from the goroutine running Run.
type Renderer interface {
	scene.Backend
	SetController(c *panel.Controller)
	PollEvents()
	ShouldClose() bool
	Render()
}

type Viewer struct {
	renderer   Renderer
	manager    *scene.Manager
	panel      *panel.Panel
	controller *panel.Controller
	queue      *panel.Queue
	server     *server.Server
	logger     *slog.Logger

	frames  int
	fpsFrom time.Time
}

// New wires a viewer around renderer. Nothing is generated until Run.
func New(renderer Renderer, settings *config.Settings, logger *slog.Logger) (*Viewer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	params, err := settings.Galaxy.Params()
	if err != nil {
		return nil, err
	}

	generator := core.Generator{Workers: settings.Generation.Workers, Seed: settings.Generation.Seed}
	v := &Viewer{
		renderer: renderer,
		manager:  scene.NewManager(renderer, generator, logger),
		panel:    panel.New(params),
		queue:    panel.NewQueue(queueSize),
		logger:   logger.With("component", "viewer"),
	}
	v.controller = panel.NewController(v.panel)
	renderer.SetController(v.controller)

	if settings.Server.Enabled {
		v.server = server.New(settings.Server, v.queue, logger)
	}

	v.panel.OnChange(func(field string, params core.ParameterSet) {
		v.logger.Debug("Panel edit", "field", field)
	})
	v.panel.OnCommit(v.regenerate)
	return v, nil
}

// Queue accepts edits from other goroutines
func (v *Viewer) Queue() *panel.Queue {
	return v.queue
}

// regenerate is the commit handler. Colors are passed from the committed
// set itself so a color change regenerates with the new color.
func (v *Viewer) regenerate(params core.ParameterSet) {
	_, err := v.manager.Regenerate(params, params.InsideColor, params.OutsideColor)
	if v.server != nil {
		v.server.Publish(v.status(params, err))
	}
}

func (v *Viewer) status(params core.ParameterSet, err error) server.Status {
	status := server.Status{Params: params, State: v.manager.State().String()}
	if live := v.manager.Live(); live != nil {
		status.Points = live.Geometry.PointCount()
	}
	if err != nil {
		status.Error = err.Error()
		status.Field, _ = core.InvalidField(err)
	}
	return status
}

// Run generates the starting galaxy and renders until the window closes or
// ctx is cancelled. configPath, when not empty, is watched for galaxy
// changes.
func (v *Viewer) Run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if v.server != nil {
		go func() {
			if err := v.server.ListenAndServe(ctx); err != nil {
				v.logger.Error("Panel server stopped", "error", err)
			}
		}()
	}

	if configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, func(params core.ParameterSet) {
				if !v.queue.Submit(panel.Edit{Params: &params, Commit: true}) {
					v.logger.Warn("Dropped settings reload, edit queue full")
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				v.logger.Warn("Settings hot reload disabled", "error", err)
			}
		}()
	}

	v.regenerate(v.panel.Params())
	defer v.manager.Close()

	start := time.Now()
	v.fpsFrom = start
	for !v.renderer.ShouldClose() && ctx.Err() == nil {
		v.Frame(time.Since(start))
	}

	v.logger.Info("Shutting down")
	return nil
}

// Frame runs one iteration of the loop: input, queued edits, animation,
// drawing. Committed edits regenerate inside the drain, before drawing.
func (v *Viewer) Frame(elapsed time.Duration) {
	v.renderer.PollEvents()

	v.queue.Drain(v.panel, func(e panel.Edit, err error) {
		v.logger.Warn("Rejected panel edit", "field", e.Field, "error", err)
	})

	v.manager.Animate(elapsed)
	v.renderer.Render()

	v.frames++
	if now := time.Now(); now.Sub(v.fpsFrom) >= fpsInterval {
		fps := float64(v.frames) / now.Sub(v.fpsFrom).Seconds()
		v.logger.Debug("Frame rate", "fps", fps, "state", v.manager.State())
		v.frames = 0
		v.fpsFrom = now
	}
}
