package overlay

// Builder accumulates HUD quads into a single DrawList. It is the
// in-tree stand-in for a full immediate-mode UI: good enough for the
// stats box, and it emits DrawData in exactly the external shape.
type Builder struct {
	atlas *FontAtlas
	list  *DrawList
	disp  [2]float32
}

func NewBuilder(atlas *FontAtlas, displayWidth, displayHeight float32) *Builder {
	return &Builder{
		atlas: atlas,
		list:  &DrawList{},
		disp:  [2]float32{displayWidth, displayHeight},
	}
}

func (b *Builder) quad(x0, y0, x1, y1, u0, v0, u1, v1 float32, col [4]uint8) {
	base := DrawIdx(len(b.list.VtxBuffer))
	b.list.VtxBuffer = append(b.list.VtxBuffer,
		DrawVert{Pos: [2]float32{x0, y0}, UV: [2]float32{u0, v0}, Col: col},
		DrawVert{Pos: [2]float32{x1, y0}, UV: [2]float32{u1, v0}, Col: col},
		DrawVert{Pos: [2]float32{x1, y1}, UV: [2]float32{u1, v1}, Col: col},
		DrawVert{Pos: [2]float32{x0, y1}, UV: [2]float32{u0, v1}, Col: col},
	)
	b.list.IdxBuffer = append(b.list.IdxBuffer,
		base, base+1, base+2, base, base+2, base+3)
}

// AddRect adds a filled rectangle sampling the atlas white block.
func (b *Builder) AddRect(x0, y0, x1, y1 float32, col [4]uint8) {
	u, v := b.atlas.WhiteUV[0], b.atlas.WhiteUV[1]
	b.quad(x0, y0, x1, y1, u, v, u, v, col)
}

// AddText adds one line of text with its top-left corner at (x, y).
func (b *Builder) AddText(x, y float32, col [4]uint8, text string) {
	for _, r := range text {
		g := b.atlas.GlyphFor(r)
		b.quad(x, y, x+g.Advance, y+b.atlas.LineHeight,
			g.U0, g.V0, g.U1, g.V1, col)
		x += g.Advance
	}
}

// Build wraps everything accumulated so far into DrawData with a single
// command clipped to the full display.
func (b *Builder) Build() *DrawData {
	if len(b.list.IdxBuffer) > 0 {
		b.list.CmdBuffer = []DrawCmd{{
			ClipRect:  [4]float32{0, 0, b.disp[0], b.disp[1]},
			TextureID: b.atlas.TextureID,
			ElemCount: len(b.list.IdxBuffer),
		}}
	}
	return &DrawData{
		Lists:            []*DrawList{b.list},
		DisplaySize:      b.disp,
		FramebufferScale: [2]float32{1, 1},
	}
}
