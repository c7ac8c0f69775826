// Package raylib is the alternative galaxy viewer on raylib. It keeps the
// cloud in memory and draws it point by point inside raylib's batcher, so
// it suits machines without a 4.1 core context better than large counts.
package raylib

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"galaxygenerator/config"
	"galaxygenerator/core"
	"galaxygenerator/panel"
	"galaxygenerator/rendering/camera"
	"galaxygenerator/rendering/hud"
	"galaxygenerator/scene"
)

var (
	colBackground = rl.NewColor(0, 0, 0, 255)
	colText       = rl.NewColor(200, 200, 200, 255)
	colTextDim    = rl.NewColor(90, 90, 90, 255)
)

// GalaxyRenderer implements scene.Backend on a raylib window
type GalaxyRenderer struct {
	logger *slog.Logger
	orbit  *camera.Orbit
	camera rl.Camera3D

	nodes []*pointsNode

	controller *panel.Controller
	showPanel  bool
}

// NewGalaxyRenderer opens the raylib window
func NewGalaxyRenderer(settings config.WindowSettings, logger *slog.Logger) *GalaxyRenderer {
	if logger == nil {
		logger = slog.Default()
	}

	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if settings.VSync {
		flags |= rl.FlagVsyncHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(settings.Width), int32(settings.Height), settings.Title)
	rl.SetExitKey(rl.KeyEscape)

	orbit := camera.NewOrbit(mgl32.Vec3{3, 3, 3})
	r := &GalaxyRenderer{
		logger:    logger.With("component", "renderer", "backend", "raylib"),
		orbit:     orbit,
		showPanel: true,
		camera: rl.NewCamera3D(
			vector3(orbit.Position()),
			vector3(orbit.Target),
			rl.NewVector3(0, 1, 0),
			orbit.Fov,
			rl.CameraPerspective,
		),
	}
	r.logger.Info("Window opened", "width", settings.Width, "height", settings.Height)
	return r
}

func vector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func color(v mgl32.Vec3) rl.Color {
	channel := func(f float32) uint8 {
		return uint8(mgl32.Clamp(f, 0, 1)*255 + 0.5)
	}
	return rl.NewColor(channel(v[0]), channel(v[1]), channel(v[2]), 255)
}

func (r *GalaxyRenderer) SetController(c *panel.Controller) {
	r.controller = c
}

type pointsGeometry struct {
	positions []rl.Vector3
	colors    []rl.Color
}

func (g *pointsGeometry) PointCount() int {
	return len(g.positions)
}

func (g *pointsGeometry) Dispose() {
	g.positions = nil
	g.colors = nil
}

// NewGeometry converts the cloud into raylib vectors and colors
func (r *GalaxyRenderer) NewGeometry(pc *core.PointCloud) (scene.Geometry, error) {
	if len(pc.Positions) != len(pc.Colors) {
		return nil, fmt.Errorf("point cloud has %d positions but %d colors", len(pc.Positions), len(pc.Colors))
	}
	g := &pointsGeometry{
		positions: make([]rl.Vector3, pc.Len()),
		colors:    make([]rl.Color, pc.Len()),
	}
	for i := range pc.Positions {
		g.positions[i] = vector3(pc.Positions[i])
		g.colors[i] = color(pc.Colors[i])
	}
	return g, nil
}

type pointsMaterial struct {
	opts scene.MaterialOptions
}

func (m *pointsMaterial) Options() scene.MaterialOptions {
	return m.opts
}

func (m *pointsMaterial) Dispose() {}

// NewPointsMaterial records opts. raylib points are one pixel, so Size
// and SizeAttenuation have no effect here.
func (r *GalaxyRenderer) NewPointsMaterial(opts scene.MaterialOptions) (scene.Material, error) {
	return &pointsMaterial{opts: opts}, nil
}

type pointsNode struct {
	geometry  *pointsGeometry
	material  *pointsMaterial
	rotationY float32
}

func (n *pointsNode) SetRotationY(radians float32) {
	n.rotationY = radians
}

func (r *GalaxyRenderer) Add(g scene.Geometry, m scene.Material) scene.Node {
	n := &pointsNode{geometry: g.(*pointsGeometry), material: m.(*pointsMaterial)}
	r.nodes = append(r.nodes, n)
	return n
}

func (r *GalaxyRenderer) Remove(n scene.Node) {
	for i, node := range r.nodes {
		if node == n {
			r.nodes = append(r.nodes[:i], r.nodes[i+1:]...)
			return
		}
	}
}

// adjustKeys are held to change the selected binding
var adjustKeys = []struct {
	key    int32
	action panel.Action
}{
	{rl.KeyRight, panel.Increase},
	{rl.KeyEqual, panel.Increase},
	{rl.KeyLeft, panel.Decrease},
	{rl.KeyMinus, panel.Decrease},
}

// PollEvents reads input gathered by the last EndDrawing
func (r *GalaxyRenderer) PollEvents() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		r.orbit.Rotate(float64(d.X), float64(d.Y), int(rl.GetScreenHeight()))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		r.orbit.Scroll(float64(wheel))
	}

	if rl.IsKeyPressed(rl.KeyH) {
		r.showPanel = !r.showPanel
	}
	if r.controller == nil {
		return
	}

	steps := 1
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		steps = 10
	}
	for _, k := range adjustKeys {
		if rl.IsKeyPressed(k.key) || rl.IsKeyPressedRepeat(k.key) {
			r.controller.Handle(k.action, steps)
		}
		if rl.IsKeyReleased(k.key) {
			r.controller.Handle(panel.Release, 1)
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyDown):
		r.controller.Handle(panel.SelectNext, 1)
	case rl.IsKeyPressed(rl.KeyUp):
		r.controller.Handle(panel.SelectPrev, 1)
	case rl.IsKeyPressed(rl.KeyTab):
		if steps > 1 {
			r.controller.Handle(panel.SelectPrev, 1)
		} else {
			r.controller.Handle(panel.SelectNext, 1)
		}
	case rl.IsKeyPressed(rl.KeyR):
		r.controller.Handle(panel.ResetAll, 1)
	}
}

func (r *GalaxyRenderer) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Render draws one frame
func (r *GalaxyRenderer) Render() {
	r.orbit.Update()
	r.camera.Position = vector3(r.orbit.Position())
	r.camera.Target = vector3(r.orbit.Target)
	r.camera.Fovy = r.orbit.Fov

	rl.BeginDrawing()
	rl.ClearBackground(colBackground)

	rl.BeginMode3D(r.camera)
	for _, n := range r.nodes {
		drawNode(n)
	}
	rl.EndMode3D()

	if r.showPanel && r.controller != nil {
		r.drawPanel()
	}
	rl.DrawText("[ARROWS] EDIT  [R] RESET  [H] PANEL  [ESC] QUIT", 10, int32(rl.GetScreenHeight()-24), 10, colTextDim)
	rl.DrawFPS(int32(rl.GetScreenWidth()-90), 10)

	rl.EndDrawing()
}

func drawNode(n *pointsNode) {
	opts := n.material.opts

	rl.PushMatrix()
	rl.Rotatef(mgl32.RadToDeg(n.rotationY), 0, 1, 0)
	if opts.AdditiveBlending {
		rl.BeginBlendMode(rl.BlendAdditive)
	}
	if !opts.DepthWrite {
		rl.DisableDepthMask()
	}

	white := rl.NewColor(255, 255, 255, 255)
	for i, p := range n.geometry.positions {
		c := white
		if opts.VertexColors {
			c = n.geometry.colors[i]
		}
		rl.DrawPoint3D(p, c)
	}

	if !opts.DepthWrite {
		rl.EnableDepthMask()
	}
	if opts.AdditiveBlending {
		rl.EndBlendMode()
	}
	rl.PopMatrix()
}

func (r *GalaxyRenderer) drawPanel() {
	rows := r.controller.Rows()
	for _, q := range hud.Layout(rows) {
		c := rl.NewColor(
			uint8(q.Color[0]*255), uint8(q.Color[1]*255),
			uint8(q.Color[2]*255), uint8(q.Color[3]*255),
		)
		rl.DrawRectangle(int32(q.X), int32(q.Y), int32(q.W), int32(q.H), c)
	}
	for i, row := range rows {
		x, y := hud.TextOrigin(i)
		c := colTextDim
		if row.Selected {
			c = colText
		}
		rl.DrawText(row.Text, int32(x), int32(y), 10, c)
	}
}

// Terminate closes the window
func (r *GalaxyRenderer) Terminate() {
	if len(r.nodes) > 0 {
		r.logger.Warn("Terminating with nodes still attached", "nodes", len(r.nodes))
	}
	rl.CloseWindow()
}
