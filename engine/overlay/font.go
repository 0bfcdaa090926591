package overlay

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	glyphFirst = 0x20
	glyphLast  = 0x7e
	glyphCount = glyphLast - glyphFirst + 1
)

// Glyph is one packed character: its UV rectangle in the atlas and the
// horizontal advance in display pixels.
type Glyph struct {
	U0, V0, U1, V1 float32
	Advance        float32
}

// FontAtlas is the baked HUD font: a tightly packed RGBA pixel buffer
// plus per-glyph UV rectangles. The last column holds a solid white
// block so untextured quads can be drawn with the same texture bound.
type FontAtlas struct {
	Pixels        []uint8
	Width, Height int
	Glyphs        [glyphCount]Glyph
	LineHeight    float32
	// WhiteUV points at the middle of the solid block.
	WhiteUV [2]float32
	// TextureID is filled in by whoever uploads the atlas.
	TextureID uint32
}

// BuildFontAtlas rasterizes the printable ASCII range of the built-in
// 7x13 face into a single-row atlas.
func BuildFontAtlas() *FontAtlas {
	face := basicfont.Face7x13
	adv := face.Advance
	// one extra cell for the white block
	width := (glyphCount + 1) * adv
	height := face.Height

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for i := 0; i < glyphCount; i++ {
		d.Dot = fixed.P(i*adv, face.Ascent)
		d.DrawString(string(rune(glyphFirst + i)))
	}
	// solid block in the spare cell
	white := image.Rect(glyphCount*adv, 0, width, height)
	draw.Draw(img, white, image.White, image.Point{}, draw.Src)

	atlas := &FontAtlas{
		Pixels:     img.Pix,
		Width:      width,
		Height:     height,
		LineHeight: float32(height),
		WhiteUV: [2]float32{
			(float32(glyphCount*adv) + float32(adv)/2) / float32(width),
			0.5,
		},
	}
	for i := 0; i < glyphCount; i++ {
		atlas.Glyphs[i] = Glyph{
			U0:      float32(i*adv) / float32(width),
			V0:      0,
			U1:      float32((i+1)*adv) / float32(width),
			V1:      1,
			Advance: float32(adv),
		}
	}
	return atlas
}

// GlyphFor returns the glyph for r, substituting '?' for anything
// outside the packed range.
func (fa *FontAtlas) GlyphFor(r rune) Glyph {
	if r < glyphFirst || r > glyphLast {
		r = '?'
	}
	return fa.Glyphs[r-glyphFirst]
}
