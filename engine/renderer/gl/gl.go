// Package gl is the upload/draw core of the renderer. It talks to a
// single stateful graphics context through the GL interface, so every
// component here can run against a recording double in tests and
// against the real driver in the player.
package gl

type Enum uint32

// GL is the subset of the graphics API this core issues. It is modeled
// as an explicit handle rather than package-level calls; all components
// take it (wrapped in Context) as a parameter and never reach for a
// singleton.
type GL interface {
	ActiveTexture(unit Enum)
	AttachShader(program, shader uint32)
	BindBuffer(target Enum, buffer uint32)
	BindFramebuffer(target Enum, fbo uint32)
	BindTexture(target Enum, texture uint32)
	BindVertexArray(array uint32)
	BlendEquation(mode Enum)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFunc(sfactor, dfactor Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BufferData(target Enum, data []uint8, usage Enum)
	CompileShader(shader uint32)
	CreateProgram() uint32
	CreateShader(xtype Enum) uint32
	DeleteBuffer(buffer uint32)
	DeleteProgram(program uint32)
	DeleteShader(shader uint32)
	DeleteTexture(texture uint32)
	DeleteVertexArray(array uint32)
	Disable(capability Enum)
	DisableVertexAttribArray(index int)
	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, xtype Enum, offset int)
	Enable(capability Enum)
	EnableVertexAttribArray(index int)
	GenBuffer() uint32
	GenTexture() uint32
	GenVertexArray() uint32
	GetAttribLocation(program uint32, name string) int32
	GetError() Enum
	GetInteger(pname Enum) int
	GetInteger4(pname Enum) [4]int32
	GetProgramInfoLog(program uint32) string
	GetProgrami(program uint32, pname Enum) int
	GetShaderInfoLog(shader uint32) string
	GetShaderi(shader uint32, pname Enum) int
	GetString(pname Enum) string
	GetUniformLocation(program uint32, name string) int32
	IsEnabled(capability Enum) bool
	LinkProgram(program uint32)
	PixelStorei(pname Enum, param int)
	ReadBuffer(src Enum)
	ReadPixels(x, y, width, height int, format, xtype Enum, dst []uint8)
	Scissor(x, y, width, height int)
	ShaderSource(shader uint32, source string)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, xtype Enum, pixels []uint8)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, xtype Enum, pixels []uint8)
	Uniform1i(location int32, v int)
	UniformMatrix4fv(location int32, values []float32)
	UseProgram(program uint32)
	VertexAttribPointer(index, size int, xtype Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)

	// DebugMessageCallback installs the driver debug channel sink and
	// reports whether the context actually exposes one. Messages may
	// arrive asynchronously with respect to the triggering call.
	DebugMessageCallback(fn DebugProc) bool
}

// DebugProc receives driver debug messages.
type DebugProc func(source, xtype Enum, id uint32, severity Enum, message string)

// Context bundles the GL entry points with the capability bits probed
// once at construction. It never owns the underlying context.
type Context struct {
	GL
	Caps Caps
}

// NewContext probes g and wraps it. Call once per graphics context, on
// the thread that owns it.
func NewContext(g GL) *Context {
	return &Context{GL: g, Caps: ProbeCaps(g)}
}

const (
	TEXTURE_2D        Enum = 0x0DE1
	UNPACK_ALIGNMENT  Enum = 0x0CF5
	UNPACK_ROW_LENGTH Enum = 0x0CF2
	PACK_ALIGNMENT    Enum = 0x0D05

	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STREAM_DRAW          Enum = 0x88E0

	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005

	INT            Enum = 0x1404
	UNSIGNED_INT   Enum = 0x1405
	FLOAT          Enum = 0x1406
	UNSIGNED_BYTE  Enum = 0x1401
	UNSIGNED_SHORT Enum = 0x1403

	UNSIGNED_SHORT_5_6_5   Enum = 0x8363
	UNSIGNED_SHORT_4_4_4_4 Enum = 0x8033
	UNSIGNED_SHORT_5_5_5_1 Enum = 0x8034

	RED       Enum = 0x1903
	RG        Enum = 0x8227
	RGB       Enum = 0x1907
	RGBA      Enum = 0x1908
	BGRA      Enum = 0x80E1
	LUMINANCE Enum = 0x1909
	ALPHA     Enum = 0x1906

	FRAMEBUFFER       Enum = 0x8D40
	COLOR_ATTACHMENT0 Enum = 0x8CE0
	FRONT             Enum = 0x0404

	BLEND        Enum = 0x0BE2
	CULL_FACE    Enum = 0x0B44
	DEPTH_TEST   Enum = 0x0B71
	SCISSOR_TEST Enum = 0x0C11

	FUNC_ADD            Enum = 0x8006
	SRC_ALPHA           Enum = 0x0302
	ONE_MINUS_SRC_ALPHA Enum = 0x0303

	TEXTURE0             Enum = 0x84C0
	ACTIVE_TEXTURE       Enum = 0x84E0
	CURRENT_PROGRAM      Enum = 0x8B8D
	TEXTURE_BINDING_2D   Enum = 0x8069
	ARRAY_BUFFER_BINDING         Enum = 0x8894
	ELEMENT_ARRAY_BUFFER_BINDING Enum = 0x8895
	VERTEX_ARRAY_BINDING         Enum = 0x85B5
	VIEWPORT             Enum = 0x0BA2
	SCISSOR_BOX          Enum = 0x0C10

	BLEND_SRC_RGB        Enum = 0x80C9
	BLEND_DST_RGB        Enum = 0x80C8
	BLEND_SRC_ALPHA      Enum = 0x80CB
	BLEND_DST_ALPHA      Enum = 0x80CA
	BLEND_EQUATION_RGB   Enum = 0x8009
	BLEND_EQUATION_ALPHA Enum = 0x883D

	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82
	VERTEX_SHADER   Enum = 0x8B31
	FRAGMENT_SHADER Enum = 0x8B30

	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803
	LINEAR             Enum = 0x2601
	CLAMP_TO_EDGE      Enum = 0x812F

	NO_ERROR                      Enum = 0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506

	VERSION    Enum = 0x1F02
	EXTENSIONS Enum = 0x1F03

	DEBUG_SEVERITY_HIGH         Enum = 0x9146
	DEBUG_SEVERITY_MEDIUM       Enum = 0x9147
	DEBUG_SEVERITY_LOW          Enum = 0x9148
	DEBUG_SEVERITY_NOTIFICATION Enum = 0x826B
)
