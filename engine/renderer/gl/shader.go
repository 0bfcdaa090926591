package gl

import (
	"github.com/spaghettifunk/kinema/engine/core"
)

// ShaderVersion keys the shader variant table. It is picked once during
// the capability probe from the context version.
type ShaderVersion uint8

const (
	GLSL120 ShaderVersion = iota
	GLSL130
	GLSL300ES
	GLSL440
)

func (v ShaderVersion) String() string {
	switch v {
	case GLSL120:
		return "#version 120"
	case GLSL130:
		return "#version 130"
	case GLSL300ES:
		return "#version 300 es"
	case GLSL440:
		return "#version 440"
	}
	return "unknown"
}

func pickShaderVersion(c Caps) ShaderVersion {
	if c.ES {
		if c.Major >= 3 {
			return GLSL300ES
		}
		return GLSL120
	}
	if c.Major > 4 || (c.Major == 4 && c.Minor >= 4) {
		return GLSL440
	}
	if c.Major >= 3 {
		return GLSL130
	}
	return GLSL120
}

type shaderPair struct {
	vertex   string
	fragment string
}

// One textured-quad pipeline per supported GLSL dialect. Attribute
// order is fixed (position, uv, color) so layers can share one vertex
// layout.
var texturedShaders = map[ShaderVersion]shaderPair{
	GLSL120: {
		vertex: `uniform mat4 ProjMtx;
attribute vec2 Position;
attribute vec2 UV;
attribute vec4 Color;
varying vec2 Frag_UV;
varying vec4 Frag_Color;
void main()
{
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`,
		fragment: `#ifdef GL_ES
    precision mediump float;
#endif
uniform sampler2D Texture;
varying vec2 Frag_UV;
varying vec4 Frag_Color;
void main()
{
    gl_FragColor = Frag_Color * texture2D(Texture, Frag_UV.st);
}
`,
	},
	GLSL130: {
		vertex: `#version 130
uniform mat4 ProjMtx;
in vec2 Position;
in vec2 UV;
in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main()
{
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`,
		fragment: `#version 130
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main()
{
    Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
`,
	},
	GLSL300ES: {
		vertex: `#version 300 es
precision mediump float;
layout(location=0) in vec2 Position;
layout(location=1) in vec2 UV;
layout(location=2) in vec4 Color;
uniform mat4 ProjMtx;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main()
{
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`,
		fragment: `#version 300 es
precision mediump float;
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
layout(location=0) out vec4 Out_Color;
void main()
{
    Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
`,
	},
	GLSL440: {
		vertex: `#version 440
layout(location=0) in vec2 Position;
layout(location=1) in vec2 UV;
layout(location=2) in vec4 Color;
uniform mat4 ProjMtx;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main()
{
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
`,
		fragment: `#version 440
in vec2 Frag_UV;
in vec4 Frag_Color;
uniform sampler2D Texture;
layout(location=0) out vec4 Out_Color;
void main()
{
    Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
`,
	},
}

func compileShader(ctx *Context, xtype Enum, source, desc string) (uint32, bool) {
	handle := ctx.CreateShader(xtype)
	ctx.ShaderSource(handle, source)
	ctx.CompileShader(handle)

	ok := ctx.GetShaderi(handle, COMPILE_STATUS) != 0
	if !ok {
		core.LogError("gl: failed to compile %s", desc)
	}
	if log := ctx.GetShaderInfoLog(handle); log != "" {
		core.LogWarn("gl: %s: %s", desc, log)
	}
	return handle, ok
}

func linkProgram(ctx *Context, vert, frag uint32, desc string, glsl ShaderVersion) (uint32, bool) {
	program := ctx.CreateProgram()
	ctx.AttachShader(program, vert)
	ctx.AttachShader(program, frag)
	ctx.LinkProgram(program)

	ok := ctx.GetProgrami(program, LINK_STATUS) != 0
	if !ok {
		core.LogError("gl: failed to link %s (with GLSL '%s')", desc, glsl)
	}
	if log := ctx.GetProgramInfoLog(program); log != "" {
		core.LogWarn("gl: %s: %s", desc, log)
	}
	return program, ok
}

// BuildTexturedProgram compiles and links the shader variant matching
// the probed GLSL dialect. The shaders themselves stay attached; the
// program owns them for its lifetime.
func BuildTexturedProgram(ctx *Context, desc string) (uint32, bool) {
	pair, found := texturedShaders[ctx.Caps.GLSL]
	if !found {
		core.LogFatal("gl: no shader variant for %s", ctx.Caps.GLSL)
	}

	vert, okV := compileShader(ctx, VERTEX_SHADER, pair.vertex, desc+" vertex shader")
	frag, okF := compileShader(ctx, FRAGMENT_SHADER, pair.fragment, desc+" fragment shader")
	program, okL := linkProgram(ctx, vert, frag, desc, ctx.Caps.GLSL)
	return program, okV && okF && okL
}
