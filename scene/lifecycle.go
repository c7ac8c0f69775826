package scene

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"galaxygenerator/core"
)

// rotationRate is the galaxy's spin in radians per second of elapsed time
const rotationRate = 0.01

// Generator produces the point cloud for a parameter set
type Generator interface {
	Generate(ctx context.Context, params core.ParameterSet, inside, outside core.RGB) (*core.PointCloud, error)
}

// GeneratorFunc adapts a plain function to Generator
type GeneratorFunc func(params core.ParameterSet, inside, outside core.RGB) (*core.PointCloud, error)

func (f GeneratorFunc) Generate(_ context.Context, params core.ParameterSet, inside, outside core.RGB) (*core.PointCloud, error) {
	return f(params, inside, outside)
}

// LiveGalaxy is the galaxy currently attached to the scene
type LiveGalaxy struct {
	Params   core.ParameterSet
	Geometry Geometry
	Material Material
	Node     Node

	remove   func(Node)
	released bool
}

// Release disposes the GPU buffers and detaches the node. Calling it
// again does nothing.
func (g *LiveGalaxy) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	g.Geometry.Dispose()
	g.Material.Dispose()
	g.remove(g.Node)
}

// Released reports whether Release has run
func (g *LiveGalaxy) Released() bool {
	return g.released
}

// State is the manager's lifecycle state
type State int

const (
	Empty State = iota
	Live
)

func (s State) String() string {
	if s == Live {
		return "live"
	}
	return "empty"
}

// Manager owns the single live galaxy. It is not safe for concurrent
// use; call it from the render thread only.
type Manager struct {
	backend   Backend
	generator Generator
	logger    *slog.Logger

	live *LiveGalaxy
}

// NewManager creates a manager in the Empty state
func NewManager(backend Backend, generator Generator, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		backend:   backend,
		generator: generator,
		logger:    logger.With("component", "galaxy_lifecycle"),
	}
}

// State reports Empty or Live
func (m *Manager) State() State {
	if m.live == nil {
		return Empty
	}
	return Live
}

// Live returns the attached galaxy, or nil
func (m *Manager) Live() *LiveGalaxy {
	return m.live
}

// Regenerate releases the current galaxy, generates a new one and attaches
// it. On any failure the manager is left Empty; the released galaxy is not
// restored.
func (m *Manager) Regenerate(params core.ParameterSet, inside, outside core.RGB) (*LiveGalaxy, error) {
	logger := m.logger.With("operation", "regenerate", "count", params.Count, "branches", params.Branches)

	if m.live != nil {
		m.live.Release()
		m.live = nil
		logger.Debug("Released previous galaxy")
	}

	if params.Randomness != 0 {
		logger.Debug("Randomness has no effect on the distribution", "randomness", params.Randomness)
	}

	start := time.Now()
	pc, err := m.generator.Generate(context.Background(), params, inside, outside)
	if err != nil {
		logger.Warn("Galaxy generation failed", "error", err)
		return nil, err
	}

	geometry, err := m.backend.NewGeometry(pc)
	if err != nil {
		logger.Error("Failed to create geometry", "error", err)
		return nil, fmt.Errorf("create geometry: %w", err)
	}

	material, err := m.backend.NewPointsMaterial(GalaxyMaterial(params.Size))
	if err != nil {
		geometry.Dispose()
		logger.Error("Failed to create material", "error", err)
		return nil, fmt.Errorf("create material: %w", err)
	}

	m.live = &LiveGalaxy{
		Params:   params,
		Geometry: geometry,
		Material: material,
		Node:     m.backend.Add(geometry, material),
		remove:   m.backend.Remove,
	}

	logger.Info("Galaxy generated", "points", pc.Len(), "elapsed", time.Since(start))
	return m.live, nil
}

// Animate applies the slow constant spin for the given time since start
func (m *Manager) Animate(elapsed time.Duration) {
	if m.live == nil {
		return
	}
	m.live.Node.SetRotationY(float32(elapsed.Seconds() * rotationRate))
}

// Close releases the live galaxy at shutdown
func (m *Manager) Close() {
	if m.live != nil {
		m.live.Release()
		m.live = nil
	}
}
