package opengl

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"galaxygenerator/config"
	"galaxygenerator/core"
	"galaxygenerator/panel"
	"galaxygenerator/rendering/camera"
	"galaxygenerator/rendering/opengl/overlay"
	"galaxygenerator/rendering/opengl/shaders"
	"galaxygenerator/scene"
)

// GalaxyRenderer is a GLFW window drawing point clouds. It implements
// scene.Backend; every method must be called from the thread that created it.
type GalaxyRenderer struct {
	window *glfw.Window
	logger *slog.Logger
	camera *camera.Orbit

	// framebuffer size
	width, height int

	nodes []*pointsNode

	panelOverlay *overlay.PanelOverlay
	controller   *panel.Controller
	showPanel    bool
	title        string
	label        string

	// Mouse state for camera control
	mouseDown  bool
	lastMouseX float64
	lastMouseY float64
}

// NewGalaxyRenderer opens the window and initializes OpenGL
func NewGalaxyRenderer(settings config.WindowSettings, logger *slog.Logger) (*GalaxyRenderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "renderer")

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(settings.Width, settings.Height, settings.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	if settings.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}
	logger.Info("OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	width, height := window.GetFramebufferSize()
	r := &GalaxyRenderer{
		window:    window,
		logger:    logger,
		camera:    camera.NewOrbit(mgl32.Vec3{3, 3, 3}),
		width:     width,
		height:    height,
		showPanel: true,
		title:     settings.Title,
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0, 0, 0, 1)
	gl.Viewport(0, 0, int32(width), int32(height))

	panelOverlay, err := overlay.NewPanelOverlay(width, height)
	if err != nil {
		logger.Warn("Panel overlay unavailable", "error", err)
	} else {
		r.panelOverlay = panelOverlay
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.onResize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		r.onKey(key, action, mods)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		r.camera.Scroll(yoff)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		r.onMouseButton(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		r.onMouseMove(xpos, ypos)
	})

	return r, nil
}

// SetController routes keyboard input to c and draws its rows
func (r *GalaxyRenderer) SetController(c *panel.Controller) {
	r.controller = c
}

// pointsGeometry holds one cloud in a VAO with position and color buffers
type pointsGeometry struct {
	vao       uint32
	positions uint32
	colors    uint32
	count     int32
}

func (g *pointsGeometry) PointCount() int {
	return int(g.count)
}

func (g *pointsGeometry) Dispose() {
	if g.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &g.positions)
	gl.DeleteBuffers(1, &g.colors)
	gl.DeleteVertexArrays(1, &g.vao)
	g.vao, g.positions, g.colors = 0, 0, 0
}

// NewGeometry uploads pc into GPU buffers
func (r *GalaxyRenderer) NewGeometry(pc *core.PointCloud) (scene.Geometry, error) {
	if len(pc.Positions) != len(pc.Colors) {
		return nil, fmt.Errorf("point cloud has %d positions but %d colors", len(pc.Positions), len(pc.Colors))
	}

	g := &pointsGeometry{count: int32(pc.Len())}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	upload := func(buffer *uint32, location uint32, data []mgl32.Vec3) {
		gl.GenBuffers(1, buffer)
		gl.BindBuffer(gl.ARRAY_BUFFER, *buffer)
		if len(data) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(data)*3*4, gl.Ptr(&data[0][0]), gl.STATIC_DRAW)
		}
		gl.VertexAttribPointer(location, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(location)
	}
	upload(&g.positions, 0, pc.Positions)
	upload(&g.colors, 1, pc.Colors)

	gl.BindVertexArray(0)

	if err := gl.GetError(); err != gl.NO_ERROR {
		g.Dispose()
		return nil, fmt.Errorf("uploading %d points: GL error 0x%x", g.count, err)
	}
	return g, nil
}

// pointsMaterial is a compiled points program plus its draw state
type pointsMaterial struct {
	program uint32
	opts    scene.MaterialOptions

	model, view, projection  int32
	pointSize, viewportScale int32
	sizeAttenuation          int32
	vertexColors             int32
}

func (m *pointsMaterial) Options() scene.MaterialOptions {
	return m.opts
}

func (m *pointsMaterial) Dispose() {
	if m.program != 0 {
		gl.DeleteProgram(m.program)
		m.program = 0
	}
}

// NewPointsMaterial compiles a points program configured by opts
func (r *GalaxyRenderer) NewPointsMaterial(opts scene.MaterialOptions) (scene.Material, error) {
	program, err := shaders.CompilePointsProgram()
	if err != nil {
		return nil, fmt.Errorf("points material: %w", err)
	}
	return &pointsMaterial{
		program:         program,
		opts:            opts,
		model:           shaders.Uniform(program, "model"),
		view:            shaders.Uniform(program, "view"),
		projection:      shaders.Uniform(program, "projection"),
		pointSize:       shaders.Uniform(program, "pointSize"),
		viewportScale:   shaders.Uniform(program, "viewportScale"),
		sizeAttenuation: shaders.Uniform(program, "sizeAttenuation"),
		vertexColors:    shaders.Uniform(program, "vertexColors"),
	}, nil
}

type pointsNode struct {
	geometry  *pointsGeometry
	material  *pointsMaterial
	rotationY float32
}

func (n *pointsNode) SetRotationY(radians float32) {
	n.rotationY = radians
}

// Add attaches a geometry/material pair created by this renderer
func (r *GalaxyRenderer) Add(g scene.Geometry, m scene.Material) scene.Node {
	n := &pointsNode{geometry: g.(*pointsGeometry), material: m.(*pointsMaterial)}
	r.nodes = append(r.nodes, n)
	return n
}

// Remove detaches n; unknown nodes are ignored
func (r *GalaxyRenderer) Remove(n scene.Node) {
	for i, node := range r.nodes {
		if node == n {
			r.nodes = append(r.nodes[:i], r.nodes[i+1:]...)
			return
		}
	}
}

// Render draws one frame and swaps buffers
func (r *GalaxyRenderer) Render() {
	r.camera.Update()

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(r.width) / float32(max(r.height, 1))
	view := r.camera.View()
	projection := r.camera.Projection(aspect)

	for _, n := range r.nodes {
		r.drawNode(n, view, projection)
	}

	if r.showPanel && r.panelOverlay != nil && r.controller != nil {
		r.panelOverlay.Render(r.controller.Rows())
	}
	r.updateTitle()

	r.window.SwapBuffers()
}

func (r *GalaxyRenderer) drawNode(n *pointsNode, view, projection mgl32.Mat4) {
	m := n.material
	if m.program == 0 || n.geometry.vao == 0 || n.geometry.count == 0 {
		return
	}
	opts := m.opts

	gl.UseProgram(m.program)
	model := mgl32.HomogRotate3DY(n.rotationY)
	gl.UniformMatrix4fv(m.model, 1, false, &model[0])
	gl.UniformMatrix4fv(m.view, 1, false, &view[0])
	gl.UniformMatrix4fv(m.projection, 1, false, &projection[0])
	gl.Uniform1f(m.pointSize, opts.Size)
	gl.Uniform1f(m.viewportScale, float32(r.height)/2)
	gl.Uniform1i(m.sizeAttenuation, boolUniform(opts.SizeAttenuation))
	gl.Uniform1i(m.vertexColors, boolUniform(opts.VertexColors))

	if opts.AdditiveBlending {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	}
	gl.DepthMask(opts.DepthWrite)

	gl.BindVertexArray(n.geometry.vao)
	gl.DrawArrays(gl.POINTS, 0, n.geometry.count)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func boolUniform(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// updateTitle shows the selected binding in the title bar, since the
// overlay draws bars but no text
func (r *GalaxyRenderer) updateTitle() {
	if r.controller == nil {
		return
	}
	label := r.controller.Label()
	if label == r.label {
		return
	}
	r.label = label
	r.window.SetTitle(fmt.Sprintf("%s | %s", r.title, label))
}

func (r *GalaxyRenderer) onResize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	if r.panelOverlay != nil {
		r.panelOverlay.UpdateSize(width, height)
	}
}

func (r *GalaxyRenderer) onKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press {
		switch key {
		case glfw.KeyEscape:
			r.window.SetShouldClose(true)
			return
		case glfw.KeyH:
			r.showPanel = !r.showPanel
			return
		}
	}

	if r.controller == nil {
		return
	}
	if a, ok := panelAction(key, action, mods); ok {
		r.controller.Handle(a, holdSteps(mods))
	}
}

func (r *GalaxyRenderer) onMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		r.mouseDown = true
		r.lastMouseX, r.lastMouseY = r.window.GetCursorPos()
	case glfw.Release:
		r.mouseDown = false
	}
}

func (r *GalaxyRenderer) onMouseMove(xpos, ypos float64) {
	if !r.mouseDown {
		return
	}
	_, height := r.window.GetSize()
	r.camera.Rotate(xpos-r.lastMouseX, ypos-r.lastMouseY, height)
	r.lastMouseX = xpos
	r.lastMouseY = ypos
}

// Time returns seconds since the window opened
func (r *GalaxyRenderer) Time() float64 {
	return glfw.GetTime()
}

// ShouldClose returns true if the window should close
func (r *GalaxyRenderer) ShouldClose() bool {
	return r.window.ShouldClose()
}

// PollEvents processes window events
func (r *GalaxyRenderer) PollEvents() {
	glfw.PollEvents()
}

// Terminate releases the overlay and closes the window. Nodes still in
// the scene are expected to have been released by their owner.
func (r *GalaxyRenderer) Terminate() {
	if r.panelOverlay != nil {
		r.panelOverlay.Release()
	}
	if len(r.nodes) > 0 {
		r.logger.Warn("Terminating with nodes still attached", "nodes", len(r.nodes))
	}
	r.window.Destroy()
	glfw.Terminate()
}
