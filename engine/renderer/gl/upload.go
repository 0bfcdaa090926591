package gl

import (
	"github.com/spaghettifunk/kinema/engine/core"
)

// GetAlignment returns the largest value in {8, 4, 2, 1} that evenly
// divides stride. Telling the driver the true alignment keeps it from
// assuming row padding that is not there.
func GetAlignment(stride int) int {
	if stride%8 == 0 {
		return 8
	}
	if stride%4 == 0 {
		return 4
	}
	if stride%2 == 0 {
		return 2
	}
	return 1
}

// UploadTex transfers a pixel buffer of arbitrary stride into the bound
// texture at (x, y) for width x height pixels.
//
// When the context can unpack with an explicit row length the whole
// region goes up in one call. Otherwise tightly packed buffers still
// upload in one call, and padded ones fall back to one call per row,
// which is slow but correct on every driver.
//
// Unpack state is reset to defaults before returning; a later upload by
// an unrelated caller must not inherit this region's stride.
func UploadTex(ctx *Context, target, format, xtype Enum, data []uint8, stride int, x, y, w, h int) {
	bpp := BytesPerPixel(format, xtype)
	if w <= 0 || h <= 0 || bpp == 0 {
		core.LogVerbose("gl: skipping upload of %dx%d region (bpp=%d)", w, h, bpp)
		return
	}
	if stride <= 0 {
		core.LogError("gl: upload with invalid stride %d dropped", stride)
		return
	}

	ctx.PixelStorei(UNPACK_ALIGNMENT, GetAlignment(stride))

	yMax := y + h
	slice := h
	if ctx.Caps.RowLength {
		ctx.PixelStorei(UNPACK_ROW_LENGTH, stride/bpp)
	} else if stride != bpp*w {
		// very inefficient, but at least it works
		slice = 1
	}

	offset := 0
	for ; y+slice <= yMax; y += slice {
		ctx.TexSubImage2D(target, 0, x, y, w, slice, format, xtype, data[offset:])
		offset += stride * slice
	}
	if y < yMax {
		ctx.TexSubImage2D(target, 0, x, y, w, yMax-y, format, xtype, data[offset:])
	}

	if ctx.Caps.RowLength {
		ctx.PixelStorei(UNPACK_ROW_LENGTH, 0)
	}
	ctx.PixelStorei(UNPACK_ALIGNMENT, 4)
}

// ReadFBOContents reads w x h pixels from fbo into dst. dir selects the
// vertical direction: 1 writes top row first, -1 flips. Reading happens
// line by line, which handles both the flip and any destination stride
// without relying on a bulk transfer the driver may not support.
//
// Returns false without touching state when asked to read the default
// framebuffer on a context that forbids it.
func ReadFBOContents(ctx *Context, fbo uint32, dir int, format, xtype Enum, w, h int, dst []uint8, dstStride int) bool {
	if dir != 1 && dir != -1 {
		core.LogFatal("gl: readback direction must be 1 or -1, got %d", dir)
	}
	if fbo == 0 && ctx.Caps.ES {
		// ES can't read from the front buffer
		return false
	}

	ctx.BindFramebuffer(FRAMEBUFFER, fbo)
	obj := FRONT
	if fbo != 0 {
		obj = COLOR_ATTACHMENT0
	}
	ctx.PixelStorei(PACK_ALIGNMENT, 1)
	ctx.ReadBuffer(obj)

	y1 := 0
	if dir < 0 {
		y1 = h - 1
	}
	for y := 0; y < h; y++ {
		row := (y1 + dir*y) * dstStride
		ctx.ReadPixels(0, y, w, 1, format, xtype, dst[row:])
	}

	ctx.PixelStorei(PACK_ALIGNMENT, 4)
	ctx.BindFramebuffer(FRAMEBUFFER, 0)
	return true
}
