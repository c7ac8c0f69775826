package shaders

// Point sprites for the galaxy. Sizes are in world units; with attenuation
// on they shrink with distance the way a perspective points material does,
// scaled by half the viewport height.
const pointsVertexShader = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 1) in vec3 color;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
uniform float pointSize;
uniform float viewportScale;
uniform bool sizeAttenuation;
uniform bool vertexColors;

out vec3 fragColor;

void main() {
    vec4 viewPos = view * model * vec4(position, 1.0);
    gl_Position = projection * viewPos;

    float size = pointSize;
    if (sizeAttenuation) {
        size *= viewportScale / -viewPos.z;
    }
    gl_PointSize = max(size, 1.0);

    fragColor = vertexColors ? color : vec3(1.0);
}
`

const pointsFragmentShader = `
#version 410 core

in vec3 fragColor;
out vec4 outColor;

void main() {
    outColor = vec4(fragColor, 1.0);
}
`

// CompilePointsProgram builds the program used by points materials
func CompilePointsProgram() (uint32, error) {
	return NewProgram(pointsVertexShader, pointsFragmentShader)
}
