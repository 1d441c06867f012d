package engine

import (
	"quickfx/pkg/effects"
)

// Shader sources for the mesh renderer. Every program shares the vertex
// layout: position, normal, smoothed normal (UV channel 3).

// Basic vertex shader for lit geometry and the effect overlays
const meshVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aSmoothNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
    vec4 world = model * vec4(aPos, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(transpose(inverse(model))) * aNormal;
    gl_Position = projection * view * world;
}
`

// Vertex shader for the outline fill, extruding along the (smoothed) normal
// in view space
const outlineFillVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aSmoothNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
uniform float outlineWidth;
uniform float outlineUseSmoothedNormal;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
    vec3 n = aNormal;
    if (outlineUseSmoothedNormal > 0.5 && dot(aSmoothNormal, aSmoothNormal) > 0.0) {
        n = aSmoothNormal;
    }

    mat4 modelView = view * model;
    vec4 viewPos = modelView * vec4(aPos, 1.0);
    vec3 viewNormal = normalize(mat3(modelView) * n);
    viewPos.xyz += viewNormal * -viewPos.z * outlineWidth / 1000.0;

    vWorldPos = (model * vec4(aPos, 1.0)).xyz;
    vNormal = n;
    gl_Position = projection * viewPos;
}
`

const standardFragmentShaderSource = `
#version 410 core
in vec3 vWorldPos;
in vec3 vNormal;
out vec4 FragColor;

uniform vec4 color;

void main() {
    vec3 light = normalize(vec3(0.4, 1.0, 0.6));
    float diffuse = max(dot(normalize(vNormal), light), 0.0);
    FragColor = vec4(color.rgb * (0.25 + 0.75 * diffuse), color.a);
}
`

// The mask pass only writes stencil, color writes are disabled
const outlineMaskFragmentShaderSource = `
#version 410 core
out vec4 FragColor;

void main() {
    FragColor = vec4(0.0);
}
`

const outlineFillFragmentShaderSource = `
#version 410 core
out vec4 FragColor;

uniform vec4 outlineColor;
uniform float outlineShow;

void main() {
    if (outlineShow < 0.5) {
        discard;
    }
    FragColor = outlineColor;
}
`

// Fragment shader for the blinker, a band moving from blinkStart to
// blinkEnd once per period with a fading tail
const blinkerFragmentShaderSource = `
#version 410 core
in vec3 vWorldPos;
out vec4 FragColor;

uniform float time;
uniform vec4 color;
uniform float show;
uniform float blinkBand;
uniform float blinkFalloff;
uniform float blinkSpeed;
uniform float blinkPeriod;
uniform vec4 blinkStart;
uniform vec4 blinkEnd;

void main() {
    vec3 axis = blinkEnd.xyz - blinkStart.xyz;
    float len = max(length(axis), 1e-5);
    float s = dot(vWorldPos - blinkStart.xyz, axis / len);

    float period = max(blinkPeriod, 1e-3);
    float phase = mod(time * blinkSpeed, period) / period;
    float head = phase * (len + blinkBand + blinkFalloff);

    float d = head - s;
    float a = 0.0;
    if (d >= 0.0 && d <= blinkBand) {
        a = 1.0;
    } else if (d > blinkBand) {
        a = 1.0 - smoothstep(blinkBand, blinkBand + blinkFalloff, d);
    }
    FragColor = vec4(color.rgb, color.a * a * show);
}
`

const overlayFragmentShaderSource = `
#version 410 core
out vec4 FragColor;

uniform vec4 color;

void main() {
    FragColor = color;
}
`

// shaderSource pairs the vertex and fragment stage of a program.
type shaderSource struct {
	vertex   string
	fragment string
}

// shaderSources maps material shader names to their programs. The empty
// placeholder shader has no program, its slots are never drawn.
var shaderSources = map[string]shaderSource{
	effects.ShaderStandard:    {meshVertexShaderSource, standardFragmentShaderSource},
	effects.ShaderOutlineMask: {meshVertexShaderSource, outlineMaskFragmentShaderSource},
	effects.ShaderOutlineFill: {outlineFillVertexShaderSource, outlineFillFragmentShaderSource},
	effects.ShaderBlinker:     {meshVertexShaderSource, blinkerFragmentShaderSource},
	effects.ShaderOverlay:     {meshVertexShaderSource, overlayFragmentShaderSource},
}
