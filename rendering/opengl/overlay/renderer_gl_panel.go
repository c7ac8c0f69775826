package overlay

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"galaxygenerator/panel"
	"galaxygenerator/rendering/hud"
	"galaxygenerator/rendering/opengl/shaders"
)

const panelVertexShader = `
#version 410 core

layout (location = 0) in vec2 position;
layout (location = 1) in vec4 color;

out vec4 fragColor;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(position, 0.0, 1.0);
    fragColor = color;
}
`

const panelFragmentShader = `
#version 410 core

in vec4 fragColor;
out vec4 outColor;

void main() {
    outColor = fragColor;
}
`

// PanelOverlay draws the control panel rows over the scene
type PanelOverlay struct {
	program    uint32
	projection int32
	vao        uint32
	vbo        uint32

	width  float32
	height float32
}

// NewPanelOverlay creates the overlay for a viewport of the given size
func NewPanelOverlay(width, height int) (*PanelOverlay, error) {
	program, err := shaders.NewProgram(panelVertexShader, panelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("panel overlay shader: %w", err)
	}

	po := &PanelOverlay{
		program:    program,
		projection: shaders.Uniform(program, "projection"),
		width:      float32(width),
		height:     float32(height),
	}

	gl.GenVertexArrays(1, &po.vao)
	gl.GenBuffers(1, &po.vbo)

	gl.BindVertexArray(po.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, po.vbo)

	// Each vertex has 6 floats: 2 for position, 4 for color
	stride := int32(6 * 4)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return po, nil
}

// Render draws rows on top of whatever is in the framebuffer
func (po *PanelOverlay) Render(rows []panel.Row) {
	data := vertices(hud.Layout(rows))
	if len(data) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(po.program)
	projection := mgl32.Ortho2D(0, po.width, po.height, 0)
	gl.UniformMatrix4fv(po.projection, 1, false, &projection[0])

	gl.BindVertexArray(po.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, po.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(data)/6))

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// UpdateSize updates viewport size
func (po *PanelOverlay) UpdateSize(width, height int) {
	po.width = float32(width)
	po.height = float32(height)
}

// Release cleans up resources
func (po *PanelOverlay) Release() {
	if po.program != 0 {
		gl.DeleteProgram(po.program)
	}
	if po.vao != 0 {
		gl.DeleteVertexArrays(1, &po.vao)
	}
	if po.vbo != 0 {
		gl.DeleteBuffers(1, &po.vbo)
	}
}
