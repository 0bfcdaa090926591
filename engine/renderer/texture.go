package renderer

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/kinema/engine/core"
	"github.com/spaghettifunk/kinema/engine/renderer/gl"
	"github.com/spaghettifunk/kinema/engine/video"
)

// Texture is a renderer-owned 2D texture sized to the incoming video
// frames.
type Texture struct {
	Name   string
	Handle uint32
	Width  int
	Height int
	Format video.PixelFormat
}

// glFormatFor maps a decoded pixel format onto an upload format/type
// pair. Unknown formats map to (0, 0), which the uploader rejects.
func glFormatFor(f video.PixelFormat) (gl.Enum, gl.Enum) {
	switch f {
	case video.FormatRGBA:
		return gl.RGBA, gl.UNSIGNED_BYTE
	case video.FormatBGRA:
		return gl.BGRA, gl.UNSIGNED_BYTE
	case video.FormatRGB:
		return gl.RGB, gl.UNSIGNED_BYTE
	case video.FormatGray:
		return gl.RED, gl.UNSIGNED_BYTE
	}
	return 0, 0
}

func createTexture(ctx *gl.Context, width, height int, format video.PixelFormat) *Texture {
	t := &Texture{
		Name:   uuid.New().String(),
		Width:  width,
		Height: height,
		Format: format,
	}

	last := uint32(ctx.GetInteger(gl.TEXTURE_BINDING_2D))
	t.Handle = ctx.GenTexture()
	ctx.BindTexture(gl.TEXTURE_2D, t.Handle)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int(gl.LINEAR))
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int(gl.LINEAR))
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int(gl.CLAMP_TO_EDGE))
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int(gl.CLAMP_TO_EDGE))

	glFormat, glType := glFormatFor(format)
	ctx.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, glFormat, glType, nil)
	ctx.BindTexture(gl.TEXTURE_2D, last)

	core.LogDebug("renderer: created video texture %s (%dx%d %s)",
		t.Name, width, height, format)
	return t
}

// matches reports whether the texture can take f's pixels without
// reallocation.
func (t *Texture) matches(f *video.Frame) bool {
	return t != nil && t.Width == f.Width && t.Height == f.Height && t.Format == f.Format
}

func (t *Texture) destroy(ctx *gl.Context) {
	if t == nil || t.Handle == 0 {
		return
	}
	ctx.DeleteTexture(t.Handle)
	t.Handle = 0
}
