package gl

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/kinema/engine/overlay"
)

// Driver replays the overlay UI's per-frame draw-command lists against
// the context, bracketed by a state snapshot so the enclosing renderer
// finds every piece of state it cares about exactly as it left it.
type Driver struct {
	ctx     *Context
	program uint32

	locTex     int32
	locProjMtx int32
	locPos     int32
	locUV      int32
	locColor   int32

	vbo uint32
	ebo uint32

	fontTexture uint32
}

// NewDriver builds the overlay pipeline: program from the shader
// variant table, the shared vertex/index buffer pair and the font atlas
// texture. Bindings touched during setup are put back before returning.
func NewDriver(ctx *Context, atlas *overlay.FontAtlas) (*Driver, bool) {
	lastTexture := uint32(ctx.GetInteger(TEXTURE_BINDING_2D))
	lastArrayBuffer := uint32(ctx.GetInteger(ARRAY_BUFFER_BINDING))
	lastVertexArray := uint32(0)
	if ctx.Caps.VAO {
		lastVertexArray = uint32(ctx.GetInteger(VERTEX_ARRAY_BINDING))
	}

	d := &Driver{ctx: ctx}

	program, ok := BuildTexturedProgram(ctx, "overlay program")
	if !ok {
		return nil, false
	}
	d.program = program
	d.locTex = ctx.GetUniformLocation(program, "Texture")
	d.locProjMtx = ctx.GetUniformLocation(program, "ProjMtx")
	d.locPos = ctx.GetAttribLocation(program, "Position")
	d.locUV = ctx.GetAttribLocation(program, "UV")
	d.locColor = ctx.GetAttribLocation(program, "Color")

	d.vbo = ctx.GenBuffer()
	d.ebo = ctx.GenBuffer()

	d.createFontTexture(atlas)

	ctx.BindTexture(TEXTURE_2D, lastTexture)
	ctx.BindBuffer(ARRAY_BUFFER, lastArrayBuffer)
	if ctx.Caps.VAO {
		ctx.BindVertexArray(lastVertexArray)
	}
	return d, true
}

func (d *Driver) createFontTexture(atlas *overlay.FontAtlas) {
	ctx := d.ctx

	d.fontTexture = ctx.GenTexture()
	ctx.BindTexture(TEXTURE_2D, d.fontTexture)
	ctx.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, int(LINEAR))
	ctx.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, int(LINEAR))
	ctx.TexImage2D(TEXTURE_2D, 0, RGBA, atlas.Width, atlas.Height, RGBA, UNSIGNED_BYTE, nil)
	UploadTex(ctx, TEXTURE_2D, RGBA, UNSIGNED_BYTE, atlas.Pixels, atlas.Width*4,
		0, 0, atlas.Width, atlas.Height)

	atlas.TextureID = d.fontTexture
}

// Destroy releases the driver's GPU objects. Safe on a nil driver.
func (d *Driver) Destroy() {
	if d == nil || d.ctx == nil {
		return
	}
	ctx := d.ctx
	if d.fontTexture != 0 {
		ctx.DeleteTexture(d.fontTexture)
	}
	if d.vbo != 0 {
		ctx.DeleteBuffer(d.vbo)
	}
	if d.ebo != 0 {
		ctx.DeleteBuffer(d.ebo)
	}
	if d.program != 0 {
		ctx.DeleteProgram(d.program)
	}
	*d = Driver{}
}

func vertexBytes(v []overlay.DrawVert) []uint8 {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*uint8)(unsafe.Pointer(&v[0])), len(v)*overlay.DrawVertSize)
}

func indexBytes(v []overlay.DrawIdx) []uint8 {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*uint8)(unsafe.Pointer(&v[0])), len(v)*overlay.DrawIdxSize)
}

// Render replays dd. No-op when there is nothing to draw or the
// framebuffer size degenerates; otherwise render state is forced to a
// known 2D compositing setup (blending on, culling and depth off,
// scissor on) regardless of what the renderer left behind, and restored
// unconditionally afterwards. Always force, always restore: skipping
// the force would leak whatever state the enclosing renderer last set.
func (d *Driver) Render(dd *overlay.DrawData) {
	ctx := d.ctx

	if dd == nil || len(dd.Lists) == 0 {
		return
	}
	fbWidth := int(dd.DisplaySize[0] * dd.FramebufferScale[0])
	fbHeight := int(dd.DisplaySize[1] * dd.FramebufferScale[1])
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}

	state := Snapshot(ctx)

	ctx.Enable(BLEND)
	ctx.BlendEquation(FUNC_ADD)
	ctx.BlendFunc(SRC_ALPHA, ONE_MINUS_SRC_ALPHA)
	ctx.Disable(CULL_FACE)
	ctx.Disable(DEPTH_TEST)
	ctx.Enable(SCISSOR_TEST)
	ctx.Viewport(0, 0, fbWidth, fbHeight)

	// Pure 2D compositing projection from the overlay's display rect,
	// independent of any camera the surrounding renderer uses.
	l := dd.DisplayPos[0]
	r := dd.DisplayPos[0] + dd.DisplaySize[0]
	t := dd.DisplayPos[1]
	b := dd.DisplayPos[1] + dd.DisplaySize[1]
	proj := mgl32.Ortho2D(l, r, b, t)

	ctx.UseProgram(d.program)
	ctx.Uniform1i(d.locTex, 0)
	ctx.UniformMatrix4fv(d.locProjMtx, proj[:])

	var scratchVAO uint32
	if ctx.Caps.VAO {
		scratchVAO = ctx.GenVertexArray()
		ctx.BindVertexArray(scratchVAO)
	}
	ctx.BindBuffer(ARRAY_BUFFER, d.vbo)
	d.enableVertexAttribs()

	for _, list := range dd.Lists {
		ctx.BindBuffer(ARRAY_BUFFER, d.vbo)
		ctx.BufferData(ARRAY_BUFFER, vertexBytes(list.VtxBuffer), STREAM_DRAW)
		ctx.BindBuffer(ELEMENT_ARRAY_BUFFER, d.ebo)
		ctx.BufferData(ELEMENT_ARRAY_BUFFER, indexBytes(list.IdxBuffer), STREAM_DRAW)

		idxOffset := 0
		for i := range list.CmdBuffer {
			cmd := &list.CmdBuffer[i]
			if cmd.UserCallback != nil {
				// callbacks are the UI side's business
				idxOffset += cmd.ElemCount * overlay.DrawIdxSize
				continue
			}

			clip := [4]float32{
				cmd.ClipRect[0] - dd.DisplayPos[0],
				cmd.ClipRect[1] - dd.DisplayPos[1],
				cmd.ClipRect[2] - dd.DisplayPos[0],
				cmd.ClipRect[3] - dd.DisplayPos[1],
			}
			// inclusive boundary: a rect exactly touching the edge is
			// still drawn
			if clip[0] < float32(fbWidth) && clip[1] < float32(fbHeight) &&
				clip[2] >= 0.0 && clip[3] >= 0.0 {
				// overlay origin is top-left, viewport origin is
				// bottom-left; the flip must be exact
				ctx.Scissor(int(clip[0]), int(float32(fbHeight)-clip[3]),
					int(clip[2]-clip[0]), int(clip[3]-clip[1]))
				ctx.BindTexture(TEXTURE_2D, cmd.TextureID)
				ctx.DrawElements(TRIANGLES, cmd.ElemCount, UNSIGNED_SHORT, idxOffset)
			}
			idxOffset += cmd.ElemCount * overlay.DrawIdxSize
		}
	}

	if ctx.Caps.VAO {
		ctx.DeleteVertexArray(scratchVAO)
	} else {
		d.disableVertexAttribs()
	}

	state.Restore(ctx)
}

func (d *Driver) enableVertexAttribs() {
	ctx := d.ctx
	stride := overlay.DrawVertSize
	ctx.EnableVertexAttribArray(int(d.locPos))
	ctx.EnableVertexAttribArray(int(d.locUV))
	ctx.EnableVertexAttribArray(int(d.locColor))
	ctx.VertexAttribPointer(int(d.locPos), 2, FLOAT, false, stride, 0)
	ctx.VertexAttribPointer(int(d.locUV), 2, FLOAT, false, stride, 8)
	ctx.VertexAttribPointer(int(d.locColor), 4, UNSIGNED_BYTE, true, stride, 16)
}

func (d *Driver) disableVertexAttribs() {
	ctx := d.ctx
	ctx.DisableVertexAttribArray(int(d.locPos))
	ctx.DisableVertexAttribArray(int(d.locUV))
	ctx.DisableVertexAttribArray(int(d.locColor))
}

// FontTexture exposes the atlas texture handle for callers composing
// their own draw lists.
func (d *Driver) FontTexture() uint32 {
	return d.fontTexture
}
