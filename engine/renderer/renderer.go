package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/kinema/engine/containers"
	"github.com/spaghettifunk/kinema/engine/core"
	"github.com/spaghettifunk/kinema/engine/overlay"
	"github.com/spaghettifunk/kinema/engine/renderer/gl"
	"github.com/spaghettifunk/kinema/engine/video"
)

// Renderer composites decoded video frames onto the framebuffer and
// draws the overlay UI on top. It owns the video texture, a reusable
// quad binding and the overlay draw driver; the graphics context itself
// is external and shared.
type Renderer struct {
	ctx *gl.Context

	program uint32
	locProj int32
	locTex  int32

	quad     gl.VAO
	quadSize [2]int

	videoTex *Texture
	frames   *containers.RingQueue[*video.Frame]

	atlas   *overlay.FontAtlas
	overlay *gl.Driver

	width  uint32
	height uint32
}

// New wires the renderer against g. width/height is the initial
// framebuffer size; queueSize bounds how many decoded frames may wait
// for upload.
func New(g gl.GL, width, height uint32, queueSize int, glDebug bool) (*Renderer, error) {
	ctx := gl.NewContext(g)
	if glDebug {
		gl.SetDebugLogger(ctx)
	}

	r := &Renderer{
		ctx:    ctx,
		frames: containers.NewRingQueue[*video.Frame](queueSize),
		atlas:  overlay.BuildFontAtlas(),
		width:  width,
		height: height,
	}

	program, ok := gl.BuildTexturedProgram(ctx, "video program")
	if !ok {
		return nil, errors.New("renderer: video program failed to build")
	}
	r.program = program
	r.locProj = ctx.GetUniformLocation(program, "ProjMtx")
	r.locTex = ctx.GetUniformLocation(program, "Texture")

	r.quad.Init(ctx, overlay.DrawVertSize, []gl.VertexAttrib{
		{Type: gl.AttribFloat, Count: 2, Offset: 0},
		{Type: gl.AttribFloat, Count: 2, Offset: 8},
		{Type: gl.AttribByteNorm, Count: 4, Offset: 16},
	})

	driver, ok := gl.NewDriver(ctx, r.atlas)
	if !ok {
		return nil, errors.New("renderer: overlay driver failed to build")
	}
	r.overlay = driver

	gl.CheckError(ctx, "renderer init")
	return r, nil
}

// Shutdown releases everything the renderer created. The context stays
// untouched beyond deleting our own objects.
func (r *Renderer) Shutdown() {
	r.overlay.Destroy()
	r.quad.Destroy()
	r.videoTex.destroy(r.ctx)
	if r.program != 0 {
		r.ctx.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resized records the new framebuffer size for the next frame.
func (r *Renderer) Resized(width, height uint32) {
	r.width = width
	r.height = height
	r.quadSize = [2]int{}
}

// QueueFrame hands a decoded frame to the upload side. When the queue
// is full the frame is dropped and counted; playback never blocks on
// the GPU.
func (r *Renderer) QueueFrame(f *video.Frame) error {
	if err := r.frames.Enqueue(f); err != nil {
		core.MetricsFrameDropped()
		return err
	}
	return nil
}

// OverlayBuilder returns a fresh HUD builder targeting the current
// framebuffer size.
func (r *Renderer) OverlayBuilder() *overlay.Builder {
	return overlay.NewBuilder(r.atlas, float32(r.width), float32(r.height))
}

// DrawFrame uploads the next queued frame (if any) into the video
// texture, composites it across the framebuffer and replays the overlay
// draw data on top. dd may be nil.
func (r *Renderer) DrawFrame(dd *overlay.DrawData) error {
	ctx := r.ctx

	if frame, err := r.frames.Dequeue(); err == nil {
		r.uploadFrame(frame)
	}

	if r.videoTex != nil {
		r.drawVideoQuad()
	}

	r.overlay.Render(dd)

	gl.CheckError(ctx, "frame")
	return nil
}

func (r *Renderer) uploadFrame(f *video.Frame) {
	ctx := r.ctx

	if !r.videoTex.matches(f) {
		r.videoTex.destroy(ctx)
		r.videoTex = createTexture(ctx, f.Width, f.Height, f.Format)
	}

	glFormat, glType := glFormatFor(f.Format)
	last := uint32(ctx.GetInteger(gl.TEXTURE_BINDING_2D))
	ctx.BindTexture(gl.TEXTURE_2D, r.videoTex.Handle)
	gl.UploadTex(ctx, gl.TEXTURE_2D, glFormat, glType, f.Pixels, f.Stride,
		0, 0, f.Width, f.Height)
	ctx.BindTexture(gl.TEXTURE_2D, last)
	core.MetricsFrameUploaded()
}

func (r *Renderer) drawVideoQuad() {
	ctx := r.ctx
	w := float32(r.width)
	h := float32(r.height)

	proj := mgl32.Ortho2D(0, w, h, 0)
	ctx.UseProgram(r.program)
	ctx.Uniform1i(r.locTex, 0)
	ctx.UniformMatrix4fv(r.locProj, proj[:])
	ctx.Viewport(0, 0, int(r.width), int(r.height))
	ctx.BindTexture(gl.TEXTURE_2D, r.videoTex.Handle)

	// re-upload the quad only when the framebuffer size changed;
	// otherwise redraw the previous vertex data
	var data []uint8
	if r.quadSize != [2]int{int(r.width), int(r.height)} {
		white := [4]uint8{255, 255, 255, 255}
		verts := []overlay.DrawVert{
			{Pos: [2]float32{0, 0}, UV: [2]float32{0, 0}, Col: white},
			{Pos: [2]float32{w, 0}, UV: [2]float32{1, 0}, Col: white},
			{Pos: [2]float32{w, h}, UV: [2]float32{1, 1}, Col: white},
			{Pos: [2]float32{0, 0}, UV: [2]float32{0, 0}, Col: white},
			{Pos: [2]float32{w, h}, UV: [2]float32{1, 1}, Col: white},
			{Pos: [2]float32{0, h}, UV: [2]float32{0, 1}, Col: white},
		}
		data = unsafe.Slice((*uint8)(unsafe.Pointer(&verts[0])),
			len(verts)*overlay.DrawVertSize)
		r.quadSize = [2]int{int(r.width), int(r.height)}
	}
	r.quad.DrawData(gl.TRIANGLES, data, 6)

	ctx.UseProgram(0)
}

// ReadBack copies the current framebuffer contents into a top-down
// RGBA buffer, for screenshots. Returns nil when the context cannot
// read the default framebuffer.
func (r *Renderer) ReadBack() []uint8 {
	w, h := int(r.width), int(r.height)
	stride := w * 4
	dst := make([]uint8, stride*h)
	if !gl.ReadFBOContents(r.ctx, 0, -1, gl.RGBA, gl.UNSIGNED_BYTE, w, h, dst, stride) {
		return nil
	}
	return dst
}
