package gl

// StateSnapshot is a fixed-shape record of every piece of context state
// the overlay driver mutates, and nothing else. Adding a new mutation
// to the driver means adding its field here; capture, restore and the
// driver's mutation set must stay in lockstep.
//
// Snapshot and Restore cannot fail: they only read and write state that
// is already valid.
type StateSnapshot struct {
	ActiveTexture Enum
	Program       uint32
	Texture2D     uint32
	ArrayBuffer   uint32
	// ElementArrayBuffer is only tracked without vertex array support;
	// with it, the element binding is vertex-array state and comes back
	// with the rebound vertex array.
	ElementArrayBuffer uint32
	VertexArray        uint32
	Viewport           [4]int32
	ScissorBox         [4]int32
	BlendSrcRGB        Enum
	BlendDstRGB        Enum
	BlendSrcAlpha      Enum
	BlendDstAlpha      Enum
	BlendEquationRGB   Enum
	BlendEquationAlpha Enum
	Blend              bool
	CullFace           bool
	DepthTest          bool
	ScissorTest        bool
}

// Snapshot captures the driver-mutated state set. It leaves texture
// unit 0 active: the captured 2D binding is unit 0's, and Restore
// reinstates the captured active unit as its final texture step.
func Snapshot(ctx *Context) StateSnapshot {
	var s StateSnapshot
	s.ActiveTexture = Enum(ctx.GetInteger(ACTIVE_TEXTURE))
	ctx.ActiveTexture(TEXTURE0)
	s.Program = uint32(ctx.GetInteger(CURRENT_PROGRAM))
	s.Texture2D = uint32(ctx.GetInteger(TEXTURE_BINDING_2D))
	s.ArrayBuffer = uint32(ctx.GetInteger(ARRAY_BUFFER_BINDING))
	if ctx.Caps.VAO {
		s.VertexArray = uint32(ctx.GetInteger(VERTEX_ARRAY_BINDING))
	} else {
		s.ElementArrayBuffer = uint32(ctx.GetInteger(ELEMENT_ARRAY_BUFFER_BINDING))
	}
	s.Viewport = ctx.GetInteger4(VIEWPORT)
	s.ScissorBox = ctx.GetInteger4(SCISSOR_BOX)
	s.BlendSrcRGB = Enum(ctx.GetInteger(BLEND_SRC_RGB))
	s.BlendDstRGB = Enum(ctx.GetInteger(BLEND_DST_RGB))
	s.BlendSrcAlpha = Enum(ctx.GetInteger(BLEND_SRC_ALPHA))
	s.BlendDstAlpha = Enum(ctx.GetInteger(BLEND_DST_ALPHA))
	s.BlendEquationRGB = Enum(ctx.GetInteger(BLEND_EQUATION_RGB))
	s.BlendEquationAlpha = Enum(ctx.GetInteger(BLEND_EQUATION_ALPHA))
	s.Blend = ctx.IsEnabled(BLEND)
	s.CullFace = ctx.IsEnabled(CULL_FACE)
	s.DepthTest = ctx.IsEnabled(DEPTH_TEST)
	s.ScissorTest = ctx.IsEnabled(SCISSOR_TEST)
	return s
}

// Restore reinstates every captured field unconditionally. The order is
// fixed so interacting state (blend function vs. blend enable) lands
// the same way on every driver.
func (s StateSnapshot) Restore(ctx *Context) {
	ctx.UseProgram(s.Program)
	ctx.BindTexture(TEXTURE_2D, s.Texture2D)
	ctx.ActiveTexture(s.ActiveTexture)
	if ctx.Caps.VAO {
		ctx.BindVertexArray(s.VertexArray)
	} else {
		ctx.BindBuffer(ELEMENT_ARRAY_BUFFER, s.ElementArrayBuffer)
	}
	ctx.BindBuffer(ARRAY_BUFFER, s.ArrayBuffer)
	ctx.BlendEquationSeparate(s.BlendEquationRGB, s.BlendEquationAlpha)
	ctx.BlendFuncSeparate(s.BlendSrcRGB, s.BlendDstRGB, s.BlendSrcAlpha, s.BlendDstAlpha)
	setEnabled(ctx, BLEND, s.Blend)
	setEnabled(ctx, CULL_FACE, s.CullFace)
	setEnabled(ctx, DEPTH_TEST, s.DepthTest)
	setEnabled(ctx, SCISSOR_TEST, s.ScissorTest)
	ctx.Viewport(int(s.Viewport[0]), int(s.Viewport[1]), int(s.Viewport[2]), int(s.Viewport[3]))
	ctx.Scissor(int(s.ScissorBox[0]), int(s.ScissorBox[1]), int(s.ScissorBox[2]), int(s.ScissorBox[3]))
}

func setEnabled(ctx *Context, capability Enum, on bool) {
	if on {
		ctx.Enable(capability)
	} else {
		ctx.Disable(capability)
	}
}
