package renderer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spaghettifunk/kinema/engine/core"
	"github.com/spaghettifunk/kinema/engine/renderer/gl"
	"github.com/spaghettifunk/kinema/engine/video"
)

// stubGL is a recording double for the orchestration tests: it logs the
// calls the pipeline is asserted on and keeps just the texture binding
// as state. Fine-grained GL behavior is covered in the gl package.
type stubGL struct {
	calls      []string
	nextHandle uint32
	texture2D  uint32
}

func (s *stubGL) logf(format string, args ...interface{}) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *stubGL) callsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range s.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (s *stubGL) genHandle() uint32 {
	s.nextHandle++
	return s.nextHandle
}

func (s *stubGL) ActiveTexture(unit gl.Enum)            {}
func (s *stubGL) AttachShader(program, shader uint32)   {}
func (s *stubGL) BindBuffer(target gl.Enum, buffer uint32) {
	s.logf("BindBuffer(%#x, %d)", uint32(target), buffer)
}
func (s *stubGL) BindFramebuffer(target gl.Enum, fbo uint32) {}
func (s *stubGL) BindTexture(target gl.Enum, texture uint32) {
	s.logf("BindTexture(%#x, %d)", uint32(target), texture)
	if target == gl.TEXTURE_2D {
		s.texture2D = texture
	}
}
func (s *stubGL) BindVertexArray(array uint32)                             {}
func (s *stubGL) BlendEquation(mode gl.Enum)                               {}
func (s *stubGL) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum)         {}
func (s *stubGL) BlendFunc(sfactor, dfactor gl.Enum)                       {}
func (s *stubGL) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum)     {}
func (s *stubGL) BufferData(target gl.Enum, data []uint8, usage gl.Enum) {
	s.logf("BufferData(%#x, len=%d)", uint32(target), len(data))
}
func (s *stubGL) CompileShader(shader uint32)       {}
func (s *stubGL) CreateProgram() uint32             { return s.genHandle() }
func (s *stubGL) CreateShader(xtype gl.Enum) uint32 { return s.genHandle() }
func (s *stubGL) DeleteBuffer(buffer uint32)        {}
func (s *stubGL) DeleteProgram(program uint32)      {}
func (s *stubGL) DeleteShader(shader uint32)        {}
func (s *stubGL) DeleteTexture(texture uint32) {
	s.logf("DeleteTexture(%d)", texture)
}
func (s *stubGL) DeleteVertexArray(array uint32)    {}
func (s *stubGL) Disable(capability gl.Enum)        {}
func (s *stubGL) DisableVertexAttribArray(index int) {}
func (s *stubGL) DrawArrays(mode gl.Enum, first, count int) {
	s.logf("DrawArrays(%#x, %d, %d)", uint32(mode), first, count)
}
func (s *stubGL) DrawElements(mode gl.Enum, count int, xtype gl.Enum, offset int) {
	s.logf("DrawElements(count=%d, offset=%d)", count, offset)
}
func (s *stubGL) Enable(capability gl.Enum)         {}
func (s *stubGL) EnableVertexAttribArray(index int) {}
func (s *stubGL) GenBuffer() uint32                 { return s.genHandle() }
func (s *stubGL) GenTexture() uint32                { return s.genHandle() }
func (s *stubGL) GenVertexArray() uint32            { return s.genHandle() }
func (s *stubGL) GetAttribLocation(program uint32, name string) int32 { return 0 }
func (s *stubGL) GetError() gl.Enum                 { return gl.NO_ERROR }
func (s *stubGL) GetInteger(pname gl.Enum) int {
	if pname == gl.TEXTURE_BINDING_2D {
		return int(s.texture2D)
	}
	return 0
}
func (s *stubGL) GetInteger4(pname gl.Enum) [4]int32            { return [4]int32{} }
func (s *stubGL) GetProgramInfoLog(program uint32) string       { return "" }
func (s *stubGL) GetProgrami(program uint32, pname gl.Enum) int { return 1 }
func (s *stubGL) GetShaderInfoLog(shader uint32) string         { return "" }
func (s *stubGL) GetShaderi(shader uint32, pname gl.Enum) int   { return 1 }
func (s *stubGL) GetString(pname gl.Enum) string {
	if pname == gl.VERSION {
		return "3.3.0 stub"
	}
	return ""
}
func (s *stubGL) GetUniformLocation(program uint32, name string) int32 { return 0 }
func (s *stubGL) IsEnabled(capability gl.Enum) bool                    { return false }
func (s *stubGL) LinkProgram(program uint32)                           {}
func (s *stubGL) PixelStorei(pname gl.Enum, param int)                 {}
func (s *stubGL) ReadBuffer(src gl.Enum)                               {}
func (s *stubGL) ReadPixels(x, y, width, height int, format, xtype gl.Enum, dst []uint8) {
}
func (s *stubGL) Scissor(x, y, width, height int)      {}
func (s *stubGL) ShaderSource(shader uint32, source string) {}
func (s *stubGL) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, xtype gl.Enum, pixels []uint8) {
	s.logf("TexImage2D(%dx%d)", width, height)
}
func (s *stubGL) TexParameteri(target, pname gl.Enum, param int) {}
func (s *stubGL) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, xtype gl.Enum, pixels []uint8) {
	s.logf("TexSubImage2D(%dx%d)", width, height)
}
func (s *stubGL) Uniform1i(location int32, v int)                  {}
func (s *stubGL) UniformMatrix4fv(location int32, values []float32) {}
func (s *stubGL) UseProgram(program uint32)                        {}
func (s *stubGL) VertexAttribPointer(index, size int, xtype gl.Enum, normalized bool, stride, offset int) {
}
func (s *stubGL) Viewport(x, y, width, height int)           {}
func (s *stubGL) DebugMessageCallback(fn gl.DebugProc) bool { return true }

func newTestRenderer(t *testing.T, queueSize int) (*Renderer, *stubGL) {
	t.Helper()
	if err := core.MetricsInitialize(); err != nil {
		t.Fatal(err)
	}
	s := &stubGL{}
	r, err := New(s, 640, 360, queueSize, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.calls = nil
	return r, s
}

func paddedFrame(w, h int) *video.Frame {
	stride := w*4 + 16
	return &video.Frame{
		Pixels: make([]uint8, stride*h),
		Stride: stride,
		Format: video.FormatRGBA,
		Width:  w,
		Height: h,
	}
}

func TestDrawFrameUploadsQueuedFrame(t *testing.T) {
	r, s := newTestRenderer(t, 4)

	s.texture2D = 77
	if err := r.QueueFrame(paddedFrame(4, 4)); err != nil {
		t.Fatalf("QueueFrame: %v", err)
	}
	if err := r.DrawFrame(nil); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	// first frame allocates the video texture and uploads the padded
	// buffer in one row-length call
	if got := s.callsWithPrefix("TexImage2D"); len(got) != 1 || got[0] != "TexImage2D(4x4)" {
		t.Errorf("allocations = %v, want one 4x4", got)
	}
	if got := s.callsWithPrefix("TexSubImage2D"); len(got) != 1 || got[0] != "TexSubImage2D(4x4)" {
		t.Errorf("uploads = %v, want one 4x4", got)
	}
	if got := s.callsWithPrefix("DrawArrays"); len(got) != 1 {
		t.Errorf("got %d quad draws, want 1", len(got))
	}

	// the upload rebinds whatever texture the caller had bound
	rebinds := 0
	for _, c := range s.callsWithPrefix("BindTexture") {
		if c == "BindTexture(0xde1, 77)" {
			rebinds++
		}
	}
	if rebinds == 0 {
		t.Error("upload never rebound the previous texture")
	}
}

func TestDrawFrameReusesMatchingTexture(t *testing.T) {
	r, s := newTestRenderer(t, 4)

	r.QueueFrame(paddedFrame(4, 4))
	r.DrawFrame(nil)
	s.calls = nil

	r.QueueFrame(paddedFrame(4, 4))
	if err := r.DrawFrame(nil); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	if got := s.callsWithPrefix("TexImage2D"); len(got) != 0 {
		t.Errorf("same-size frame reallocated the texture: %v", got)
	}
	if got := s.callsWithPrefix("TexSubImage2D"); len(got) != 1 {
		t.Errorf("got %d uploads, want 1", len(got))
	}
}

func TestDrawFrameReallocatesOnSizeChange(t *testing.T) {
	r, s := newTestRenderer(t, 4)

	r.QueueFrame(paddedFrame(4, 4))
	r.DrawFrame(nil)
	old := r.videoTex.Handle
	s.calls = nil

	r.QueueFrame(paddedFrame(8, 2))
	if err := r.DrawFrame(nil); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	if got := s.callsWithPrefix("TexImage2D"); len(got) != 1 || got[0] != "TexImage2D(8x2)" {
		t.Errorf("allocations = %v, want one 8x2", got)
	}
	want := fmt.Sprintf("DeleteTexture(%d)", old)
	if got := s.callsWithPrefix("DeleteTexture"); len(got) != 1 || got[0] != want {
		t.Errorf("deletions = %v, want %q", got, want)
	}
}

func TestDrawFrameEmptyQueue(t *testing.T) {
	r, s := newTestRenderer(t, 4)

	if err := r.DrawFrame(nil); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	// no frame has ever arrived: no upload, no video quad
	if len(s.callsWithPrefix("TexSubImage2D")) != 0 || len(s.callsWithPrefix("DrawArrays")) != 0 {
		t.Errorf("empty renderer issued draws: %v", s.calls)
	}
}

func TestQueueFrameDropsWhenFull(t *testing.T) {
	r, _ := newTestRenderer(t, 1)

	if err := r.QueueFrame(paddedFrame(4, 4)); err != nil {
		t.Fatalf("QueueFrame: %v", err)
	}
	_, droppedBefore := core.MetricsCounters()
	if err := r.QueueFrame(paddedFrame(4, 4)); !errors.Is(err, core.ErrFrameQueueFull) {
		t.Errorf("QueueFrame on full queue = %v, want ErrFrameQueueFull", err)
	}
	if _, dropped := core.MetricsCounters(); dropped != droppedBefore+1 {
		t.Errorf("dropped counter = %d, want %d", dropped, droppedBefore+1)
	}
}

func TestReadBack(t *testing.T) {
	r, _ := newTestRenderer(t, 4)

	dst := r.ReadBack()
	if len(dst) != 640*360*4 {
		t.Errorf("ReadBack returned %d bytes, want %d", len(dst), 640*360*4)
	}
}
