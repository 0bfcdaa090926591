package gl

import (
	"fmt"
	"strings"
)

// fakeGL records every call and keeps just enough state behind the
// queries for snapshot/restore round trips to be meaningful.
type fakeGL struct {
	calls []string

	version    string
	extensions string

	nextHandle uint32

	activeTexture Enum
	program       uint32
	texture2D     uint32
	arrayBuffer   uint32
	elementBuffer uint32
	vertexArray   uint32
	viewport      [4]int32
	scissor       [4]int32

	blendSrcRGB   Enum
	blendDstRGB   Enum
	blendSrcAlpha Enum
	blendDstAlpha Enum
	blendEqRGB    Enum
	blendEqAlpha  Enum

	enabled       map[Enum]bool
	attribEnabled map[int]bool
	pixelStore    map[Enum]int

	errorQueue []Enum
	debugSink  DebugProc
	readCount  int
}

func newFakeGL(version, extensions string) *fakeGL {
	return &fakeGL{
		version:       version,
		extensions:    extensions,
		activeTexture: TEXTURE0,
		blendSrcRGB:   SRC_ALPHA,
		blendDstRGB:   ONE_MINUS_SRC_ALPHA,
		blendSrcAlpha: SRC_ALPHA,
		blendDstAlpha: ONE_MINUS_SRC_ALPHA,
		blendEqRGB:    FUNC_ADD,
		blendEqAlpha:  FUNC_ADD,
		viewport:      [4]int32{0, 0, 1280, 720},
		scissor:       [4]int32{0, 0, 1280, 720},
		enabled:       map[Enum]bool{},
		attribEnabled: map[int]bool{},
		pixelStore:    map[Enum]int{UNPACK_ALIGNMENT: 4, PACK_ALIGNMENT: 4},
	}
}

func (f *fakeGL) logf(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeGL) reset() {
	f.calls = nil
}

func (f *fakeGL) callsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeGL) genHandle() uint32 {
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeGL) ActiveTexture(unit Enum) {
	f.logf("ActiveTexture(%d)", unit)
	f.activeTexture = unit
}

func (f *fakeGL) AttachShader(program, shader uint32) {
	f.logf("AttachShader(%d, %d)", program, shader)
}

func (f *fakeGL) BindBuffer(target Enum, buffer uint32) {
	f.logf("BindBuffer(%#x, %d)", uint32(target), buffer)
	switch target {
	case ARRAY_BUFFER:
		f.arrayBuffer = buffer
	case ELEMENT_ARRAY_BUFFER:
		f.elementBuffer = buffer
	}
}

func (f *fakeGL) BindFramebuffer(target Enum, fbo uint32) {
	f.logf("BindFramebuffer(%#x, %d)", uint32(target), fbo)
}

func (f *fakeGL) BindTexture(target Enum, texture uint32) {
	f.logf("BindTexture(%#x, %d)", uint32(target), texture)
	if target == TEXTURE_2D {
		f.texture2D = texture
	}
}

func (f *fakeGL) BindVertexArray(array uint32) {
	f.logf("BindVertexArray(%d)", array)
	f.vertexArray = array
}

func (f *fakeGL) BlendEquation(mode Enum) {
	f.logf("BlendEquation(%#x)", uint32(mode))
	f.blendEqRGB = mode
	f.blendEqAlpha = mode
}

func (f *fakeGL) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	f.logf("BlendEquationSeparate(%#x, %#x)", uint32(modeRGB), uint32(modeAlpha))
	f.blendEqRGB = modeRGB
	f.blendEqAlpha = modeAlpha
}

func (f *fakeGL) BlendFunc(sfactor, dfactor Enum) {
	f.logf("BlendFunc(%#x, %#x)", uint32(sfactor), uint32(dfactor))
	f.blendSrcRGB, f.blendSrcAlpha = sfactor, sfactor
	f.blendDstRGB, f.blendDstAlpha = dfactor, dfactor
}

func (f *fakeGL) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	f.logf("BlendFuncSeparate(%#x, %#x, %#x, %#x)",
		uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
	f.blendSrcRGB, f.blendDstRGB = srcRGB, dstRGB
	f.blendSrcAlpha, f.blendDstAlpha = srcAlpha, dstAlpha
}

func (f *fakeGL) BufferData(target Enum, data []uint8, usage Enum) {
	f.logf("BufferData(%#x, len=%d)", uint32(target), len(data))
}

func (f *fakeGL) CompileShader(shader uint32) {
	f.logf("CompileShader(%d)", shader)
}

func (f *fakeGL) CreateProgram() uint32 {
	h := f.genHandle()
	f.logf("CreateProgram() = %d", h)
	return h
}

func (f *fakeGL) CreateShader(xtype Enum) uint32 {
	h := f.genHandle()
	f.logf("CreateShader(%#x) = %d", uint32(xtype), h)
	return h
}

func (f *fakeGL) DeleteBuffer(buffer uint32) {
	f.logf("DeleteBuffer(%d)", buffer)
}

func (f *fakeGL) DeleteProgram(program uint32) {
	f.logf("DeleteProgram(%d)", program)
}

func (f *fakeGL) DeleteShader(shader uint32) {
	f.logf("DeleteShader(%d)", shader)
}

func (f *fakeGL) DeleteTexture(texture uint32) {
	f.logf("DeleteTexture(%d)", texture)
}

func (f *fakeGL) DeleteVertexArray(array uint32) {
	f.logf("DeleteVertexArray(%d)", array)
}

func (f *fakeGL) Disable(capability Enum) {
	f.logf("Disable(%#x)", uint32(capability))
	f.enabled[capability] = false
}

func (f *fakeGL) DisableVertexAttribArray(index int) {
	f.logf("DisableVertexAttribArray(%d)", index)
	f.attribEnabled[index] = false
}

func (f *fakeGL) DrawArrays(mode Enum, first, count int) {
	f.logf("DrawArrays(%#x, %d, %d)", uint32(mode), first, count)
}

func (f *fakeGL) DrawElements(mode Enum, count int, xtype Enum, offset int) {
	f.logf("DrawElements(%#x, count=%d, offset=%d)", uint32(mode), count, offset)
}

func (f *fakeGL) Enable(capability Enum) {
	f.logf("Enable(%#x)", uint32(capability))
	f.enabled[capability] = true
}

func (f *fakeGL) EnableVertexAttribArray(index int) {
	f.logf("EnableVertexAttribArray(%d)", index)
	f.attribEnabled[index] = true
}

func (f *fakeGL) GenBuffer() uint32 {
	h := f.genHandle()
	f.logf("GenBuffer() = %d", h)
	return h
}

func (f *fakeGL) GenTexture() uint32 {
	h := f.genHandle()
	f.logf("GenTexture() = %d", h)
	return h
}

func (f *fakeGL) GenVertexArray() uint32 {
	h := f.genHandle()
	f.logf("GenVertexArray() = %d", h)
	return h
}

func (f *fakeGL) GetAttribLocation(program uint32, name string) int32 {
	switch name {
	case "Position":
		return 0
	case "UV":
		return 1
	case "Color":
		return 2
	}
	return -1
}

func (f *fakeGL) GetError() Enum {
	if len(f.errorQueue) == 0 {
		return NO_ERROR
	}
	err := f.errorQueue[0]
	f.errorQueue = f.errorQueue[1:]
	return err
}

func (f *fakeGL) GetInteger(pname Enum) int {
	switch pname {
	case ACTIVE_TEXTURE:
		return int(f.activeTexture)
	case CURRENT_PROGRAM:
		return int(f.program)
	case TEXTURE_BINDING_2D:
		return int(f.texture2D)
	case ARRAY_BUFFER_BINDING:
		return int(f.arrayBuffer)
	case ELEMENT_ARRAY_BUFFER_BINDING:
		return int(f.elementBuffer)
	case VERTEX_ARRAY_BINDING:
		return int(f.vertexArray)
	case BLEND_SRC_RGB:
		return int(f.blendSrcRGB)
	case BLEND_DST_RGB:
		return int(f.blendDstRGB)
	case BLEND_SRC_ALPHA:
		return int(f.blendSrcAlpha)
	case BLEND_DST_ALPHA:
		return int(f.blendDstAlpha)
	case BLEND_EQUATION_RGB:
		return int(f.blendEqRGB)
	case BLEND_EQUATION_ALPHA:
		return int(f.blendEqAlpha)
	}
	return 0
}

func (f *fakeGL) GetInteger4(pname Enum) [4]int32 {
	switch pname {
	case VIEWPORT:
		return f.viewport
	case SCISSOR_BOX:
		return f.scissor
	}
	return [4]int32{}
}

func (f *fakeGL) GetProgramInfoLog(program uint32) string { return "" }

func (f *fakeGL) GetProgrami(program uint32, pname Enum) int { return 1 }

func (f *fakeGL) GetShaderInfoLog(shader uint32) string { return "" }

func (f *fakeGL) GetShaderi(shader uint32, pname Enum) int { return 1 }

func (f *fakeGL) GetString(pname Enum) string {
	switch pname {
	case VERSION:
		return f.version
	case EXTENSIONS:
		return f.extensions
	}
	return ""
}

func (f *fakeGL) GetUniformLocation(program uint32, name string) int32 {
	switch name {
	case "Texture":
		return 0
	case "ProjMtx":
		return 1
	}
	return -1
}

func (f *fakeGL) IsEnabled(capability Enum) bool {
	return f.enabled[capability]
}

func (f *fakeGL) LinkProgram(program uint32) {
	f.logf("LinkProgram(%d)", program)
}

func (f *fakeGL) PixelStorei(pname Enum, param int) {
	f.logf("PixelStorei(%#x, %d)", uint32(pname), param)
	f.pixelStore[pname] = param
}

func (f *fakeGL) ReadBuffer(src Enum) {
	f.logf("ReadBuffer(%#x)", uint32(src))
}

// ReadPixels fills the destination row with a per-call counter so
// tests can see which source line landed where.
func (f *fakeGL) ReadPixels(x, y, width, height int, format, xtype Enum, dst []uint8) {
	f.logf("ReadPixels(%d, %d, %d, %d)", x, y, width, height)
	bpp := BytesPerPixel(format, xtype)
	for i := 0; i < width*height*bpp && i < len(dst); i++ {
		dst[i] = uint8(f.readCount)
	}
	f.readCount++
}

func (f *fakeGL) Scissor(x, y, width, height int) {
	f.logf("Scissor(%d, %d, %d, %d)", x, y, width, height)
	f.scissor = [4]int32{int32(x), int32(y), int32(width), int32(height)}
}

func (f *fakeGL) ShaderSource(shader uint32, source string) {
	f.logf("ShaderSource(%d)", shader)
}

func (f *fakeGL) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, xtype Enum, pixels []uint8) {
	f.logf("TexImage2D(%#x, %d, %dx%d)", uint32(target), level, width, height)
}

func (f *fakeGL) TexParameteri(target, pname Enum, param int) {
	f.logf("TexParameteri(%#x, %#x, %d)", uint32(target), uint32(pname), param)
}

func (f *fakeGL) TexSubImage2D(target Enum, level, x, y, width, height int, format, xtype Enum, pixels []uint8) {
	f.logf("TexSubImage2D(x=%d, y=%d, w=%d, h=%d, len=%d)", x, y, width, height, len(pixels))
}

func (f *fakeGL) Uniform1i(location int32, v int) {
	f.logf("Uniform1i(%d, %d)", location, v)
}

func (f *fakeGL) UniformMatrix4fv(location int32, values []float32) {
	f.logf("UniformMatrix4fv(%d)", location)
}

func (f *fakeGL) UseProgram(program uint32) {
	f.logf("UseProgram(%d)", program)
	f.program = program
}

func (f *fakeGL) VertexAttribPointer(index, size int, xtype Enum, normalized bool, stride, offset int) {
	f.logf("VertexAttribPointer(%d, %d, stride=%d, offset=%d)", index, size, stride, offset)
}

func (f *fakeGL) Viewport(x, y, width, height int) {
	f.logf("Viewport(%d, %d, %d, %d)", x, y, width, height)
	f.viewport = [4]int32{int32(x), int32(y), int32(width), int32(height)}
}

func (f *fakeGL) DebugMessageCallback(fn DebugProc) bool {
	f.debugSink = fn
	return true
}

// fakeState is every piece of fake-side state the overlay driver is
// supposed to leave untouched. Comparable, so tests can diff it with ==.
type fakeState struct {
	activeTexture Enum
	program       uint32
	texture2D     uint32
	arrayBuffer   uint32
	elementBuffer uint32
	vertexArray   uint32
	viewport      [4]int32
	scissor       [4]int32

	blendSrcRGB, blendDstRGB     Enum
	blendSrcAlpha, blendDstAlpha Enum
	blendEqRGB, blendEqAlpha     Enum

	blend, cullFace, depthTest, scissorTest bool
}

func (f *fakeGL) snapshotState() fakeState {
	return fakeState{
		activeTexture: f.activeTexture,
		program:       f.program,
		texture2D:     f.texture2D,
		arrayBuffer:   f.arrayBuffer,
		elementBuffer: f.elementBuffer,
		vertexArray:   f.vertexArray,
		viewport:      f.viewport,
		scissor:       f.scissor,
		blendSrcRGB:   f.blendSrcRGB,
		blendDstRGB:   f.blendDstRGB,
		blendSrcAlpha: f.blendSrcAlpha,
		blendDstAlpha: f.blendDstAlpha,
		blendEqRGB:    f.blendEqRGB,
		blendEqAlpha:  f.blendEqAlpha,
		blend:         f.enabled[BLEND],
		cullFace:      f.enabled[CULL_FACE],
		depthTest:     f.enabled[DEPTH_TEST],
		scissorTest:   f.enabled[SCISSOR_TEST],
	}
}

// newTestContext probes a fresh fake and clears the probe's calls so
// tests only see what they trigger themselves.
func newTestContext(version, extensions string) (*Context, *fakeGL) {
	f := newFakeGL(version, extensions)
	ctx := NewContext(f)
	f.reset()
	return ctx, f
}

const (
	fakeDesktop33 = "3.3.0 fake driver"
	fakeDesktop21 = "2.1.0 fake driver"
	fakeDesktop46 = "4.6.0 fake driver"
	fakeES2       = "OpenGL ES 2.0 fake driver"
	fakeES3       = "OpenGL ES 3.0 fake driver"
)
