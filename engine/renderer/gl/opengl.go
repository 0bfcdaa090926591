package gl

import (
	"unsafe"

	ogl "github.com/go-gl/gl/v3.3-core/gl"
)

// openGL is the production GL implementation over the loaded OpenGL
// 3.3 core function pointers. Everything is a thin forwarding call; all
// policy lives in the callers.
type openGL struct{}

// NewOpenGL loads the function pointers for the current context. The
// context must already be current on this thread.
func NewOpenGL() (GL, error) {
	if err := ogl.Init(); err != nil {
		return nil, err
	}
	return &openGL{}, nil
}

func (*openGL) ActiveTexture(unit Enum) { ogl.ActiveTexture(uint32(unit)) }

func (*openGL) AttachShader(program, shader uint32) { ogl.AttachShader(program, shader) }

func (*openGL) BindBuffer(target Enum, buffer uint32) { ogl.BindBuffer(uint32(target), buffer) }

func (*openGL) BindFramebuffer(target Enum, fbo uint32) { ogl.BindFramebuffer(uint32(target), fbo) }

func (*openGL) BindTexture(target Enum, texture uint32) { ogl.BindTexture(uint32(target), texture) }

func (*openGL) BindVertexArray(array uint32) { ogl.BindVertexArray(array) }

func (*openGL) BlendEquation(mode Enum) { ogl.BlendEquation(uint32(mode)) }

func (*openGL) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	ogl.BlendEquationSeparate(uint32(modeRGB), uint32(modeAlpha))
}

func (*openGL) BlendFunc(sfactor, dfactor Enum) {
	ogl.BlendFunc(uint32(sfactor), uint32(dfactor))
}

func (*openGL) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	ogl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

func (*openGL) BufferData(target Enum, data []uint8, usage Enum) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = ogl.Ptr(&data[0])
	}
	ogl.BufferData(uint32(target), len(data), ptr, uint32(usage))
}

func (*openGL) CompileShader(shader uint32) { ogl.CompileShader(shader) }

func (*openGL) CreateProgram() uint32 { return ogl.CreateProgram() }

func (*openGL) CreateShader(xtype Enum) uint32 { return ogl.CreateShader(uint32(xtype)) }

func (*openGL) DeleteBuffer(buffer uint32) { ogl.DeleteBuffers(1, &buffer) }

func (*openGL) DeleteProgram(program uint32) { ogl.DeleteProgram(program) }

func (*openGL) DeleteShader(shader uint32) { ogl.DeleteShader(shader) }

func (*openGL) DeleteTexture(texture uint32) { ogl.DeleteTextures(1, &texture) }

func (*openGL) DeleteVertexArray(array uint32) { ogl.DeleteVertexArrays(1, &array) }

func (*openGL) Disable(capability Enum) { ogl.Disable(uint32(capability)) }

func (*openGL) DisableVertexAttribArray(index int) {
	ogl.DisableVertexAttribArray(uint32(index))
}

func (*openGL) DrawArrays(mode Enum, first, count int) {
	ogl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (*openGL) DrawElements(mode Enum, count int, xtype Enum, offset int) {
	ogl.DrawElementsWithOffset(uint32(mode), int32(count), uint32(xtype), uintptr(offset))
}

func (*openGL) Enable(capability Enum) { ogl.Enable(uint32(capability)) }

func (*openGL) EnableVertexAttribArray(index int) {
	ogl.EnableVertexAttribArray(uint32(index))
}

func (*openGL) GenBuffer() uint32 {
	var b uint32
	ogl.GenBuffers(1, &b)
	return b
}

func (*openGL) GenTexture() uint32 {
	var t uint32
	ogl.GenTextures(1, &t)
	return t
}

func (*openGL) GenVertexArray() uint32 {
	var a uint32
	ogl.GenVertexArrays(1, &a)
	return a
}

func (*openGL) GetAttribLocation(program uint32, name string) int32 {
	return ogl.GetAttribLocation(program, ogl.Str(name+"\x00"))
}

func (*openGL) GetError() Enum { return Enum(ogl.GetError()) }

func (*openGL) GetInteger(pname Enum) int {
	var v int32
	ogl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (*openGL) GetInteger4(pname Enum) [4]int32 {
	var v [4]int32
	ogl.GetIntegerv(uint32(pname), &v[0])
	return v
}

func (*openGL) GetProgramInfoLog(program uint32) string {
	var length int32
	ogl.GetProgramiv(program, ogl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return ""
	}
	buf := make([]uint8, length+1)
	ogl.GetProgramInfoLog(program, length, nil, &buf[0])
	return string(buf[:length])
}

func (*openGL) GetProgrami(program uint32, pname Enum) int {
	var v int32
	ogl.GetProgramiv(program, uint32(pname), &v)
	return int(v)
}

func (*openGL) GetShaderInfoLog(shader uint32) string {
	var length int32
	ogl.GetShaderiv(shader, ogl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return ""
	}
	buf := make([]uint8, length+1)
	ogl.GetShaderInfoLog(shader, length, nil, &buf[0])
	return string(buf[:length])
}

func (*openGL) GetShaderi(shader uint32, pname Enum) int {
	var v int32
	ogl.GetShaderiv(shader, uint32(pname), &v)
	return int(v)
}

func (*openGL) GetString(pname Enum) string {
	if pname == EXTENSIONS {
		// core profiles dropped the combined extension string; rebuild
		// it so the word-search probe works everywhere
		var n int32
		ogl.GetIntegerv(ogl.NUM_EXTENSIONS, &n)
		out := ""
		for i := int32(0); i < n; i++ {
			if i > 0 {
				out += " "
			}
			out += ogl.GoStr(ogl.GetStringi(ogl.EXTENSIONS, uint32(i)))
		}
		return out
	}
	ptr := ogl.GetString(uint32(pname))
	if ptr == nil {
		return ""
	}
	return ogl.GoStr(ptr)
}

func (*openGL) GetUniformLocation(program uint32, name string) int32 {
	return ogl.GetUniformLocation(program, ogl.Str(name+"\x00"))
}

func (*openGL) IsEnabled(capability Enum) bool { return ogl.IsEnabled(uint32(capability)) }

func (*openGL) LinkProgram(program uint32) { ogl.LinkProgram(program) }

func (*openGL) PixelStorei(pname Enum, param int) {
	ogl.PixelStorei(uint32(pname), int32(param))
}

func (*openGL) ReadBuffer(src Enum) { ogl.ReadBuffer(uint32(src)) }

func (*openGL) ReadPixels(x, y, width, height int, format, xtype Enum, dst []uint8) {
	ogl.ReadPixels(int32(x), int32(y), int32(width), int32(height),
		uint32(format), uint32(xtype), ogl.Ptr(&dst[0]))
}

func (*openGL) Scissor(x, y, width, height int) {
	ogl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (*openGL) ShaderSource(shader uint32, source string) {
	src, free := ogl.Strs(source + "\x00")
	defer free()
	ogl.ShaderSource(shader, 1, src, nil)
}

func (*openGL) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, xtype Enum, pixels []uint8) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = ogl.Ptr(&pixels[0])
	}
	ogl.TexImage2D(uint32(target), int32(level), int32(internalFormat),
		int32(width), int32(height), 0, uint32(format), uint32(xtype), ptr)
}

func (*openGL) TexParameteri(target, pname Enum, param int) {
	ogl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (*openGL) TexSubImage2D(target Enum, level, x, y, width, height int, format, xtype Enum, pixels []uint8) {
	ogl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y),
		int32(width), int32(height), uint32(format), uint32(xtype), ogl.Ptr(&pixels[0]))
}

func (*openGL) Uniform1i(location int32, v int) { ogl.Uniform1i(location, int32(v)) }

func (*openGL) UniformMatrix4fv(location int32, values []float32) {
	ogl.UniformMatrix4fv(location, 1, false, &values[0])
}

func (*openGL) UseProgram(program uint32) { ogl.UseProgram(program) }

func (*openGL) VertexAttribPointer(index, size int, xtype Enum, normalized bool, stride, offset int) {
	ogl.VertexAttribPointerWithOffset(uint32(index), int32(size), uint32(xtype),
		normalized, int32(stride), uintptr(offset))
}

func (*openGL) Viewport(x, y, width, height int) {
	ogl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// DebugMessageCallback reports false: the 3.3 core loader does not
// carry the KHR_debug entry points.
func (*openGL) DebugMessageCallback(fn DebugProc) bool {
	return false
}
