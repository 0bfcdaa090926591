package gl

import (
	"github.com/spaghettifunk/kinema/engine/core"
)

// AttribType is the component type of one vertex attribute.
type AttribType uint8

const (
	AttribInt AttribType = iota
	AttribFloat
	AttribByteNorm
)

// VertexAttrib describes one attribute in an interleaved vertex:
// Count components of Type starting Offset bytes into the vertex.
type VertexAttrib struct {
	Type   AttribType
	Count  int
	Offset int
}

// VAO owns one reusable vertex buffer and its attribute layout.
// Whether a native vertex array object backs it is decided once at
// Init from the context caps and fixed for the binding's lifetime: on
// the native path attribute pointers are configured once and
// bind/unbind reduce to one call; on the emulated path pointers are
// re-issued on every bind and every enabled index is explicitly
// disabled on unbind, since nothing resets them implicitly.
type VAO struct {
	ctx     *Context
	stride  int
	entries []VertexAttrib
	buffer  uint32
	vao     uint32
}

// Init creates the buffer and, when supported, the vertex array object
// capturing the attribute pointers. Must only be called on a zero VAO.
func (v *VAO) Init(ctx *Context, stride int, entries []VertexAttrib) {
	if v.vao != 0 || v.buffer != 0 {
		core.LogFatal("gl: VAO initialized twice")
	}

	*v = VAO{
		ctx:     ctx,
		stride:  stride,
		entries: entries,
	}
	v.buffer = ctx.GenBuffer()

	if ctx.Caps.VAO {
		ctx.BindBuffer(ARRAY_BUFFER, v.buffer)

		v.vao = ctx.GenVertexArray()
		ctx.BindVertexArray(v.vao)
		v.enableAttribs()
		ctx.BindVertexArray(0)

		ctx.BindBuffer(ARRAY_BUFFER, 0)
	}
}

// Destroy releases the GPU objects. Safe to call on a VAO that was
// never initialized, and safe to call more than once.
func (v *VAO) Destroy() {
	ctx := v.ctx
	if ctx == nil {
		return
	}

	if v.vao != 0 {
		ctx.DeleteVertexArray(v.vao)
	}
	if v.buffer != 0 {
		ctx.DeleteBuffer(v.buffer)
	}
	*v = VAO{}
}

func (v *VAO) enableAttribs() {
	ctx := v.ctx
	for n, e := range v.entries {
		var xtype Enum
		normalized := false
		switch e.Type {
		case AttribInt:
			xtype = INT
		case AttribFloat:
			xtype = FLOAT
		case AttribByteNorm:
			xtype = UNSIGNED_BYTE
			normalized = true
		default:
			// a type this layer doesn't know is a programming error
			core.LogFatal("gl: unrecognized vertex attribute type %d", e.Type)
		}

		ctx.EnableVertexAttribArray(n)
		ctx.VertexAttribPointer(n, e.Count, xtype, normalized, v.stride, e.Offset)
	}
}

func (v *VAO) bind() {
	ctx := v.ctx
	if ctx.Caps.VAO {
		ctx.BindVertexArray(v.vao)
	} else {
		ctx.BindBuffer(ARRAY_BUFFER, v.buffer)
		v.enableAttribs()
		ctx.BindBuffer(ARRAY_BUFFER, 0)
	}
}

func (v *VAO) unbind() {
	ctx := v.ctx
	if ctx.Caps.VAO {
		ctx.BindVertexArray(0)
	} else {
		for n := range v.entries {
			ctx.DisableVertexAttribArray(n)
		}
	}
}

// DrawData draws count vertices. If data is non-nil it replaces the
// buffer contents first; if nil, the previously uploaded vertices are
// drawn again, so "upload once, draw many" needs no separate entry
// point.
func (v *VAO) DrawData(prim Enum, data []uint8, count int) {
	ctx := v.ctx

	if data != nil {
		ctx.BindBuffer(ARRAY_BUFFER, v.buffer)
		ctx.BufferData(ARRAY_BUFFER, data, STREAM_DRAW)
		ctx.BindBuffer(ARRAY_BUFFER, 0)
	}

	v.bind()
	ctx.DrawArrays(prim, 0, count)
	v.unbind()
}
