// Package overlay defines the per-frame draw output of the on-screen
// UI: vertex/index/command lists in the shape immediate-mode libraries
// emit them. The renderer treats these as opaque input and never keeps
// a reference past the frame that produced them.
package overlay

import "unsafe"

// DrawVert is one interleaved overlay vertex: screen-space position,
// texture coordinate and a normalized RGBA byte color.
type DrawVert struct {
	Pos [2]float32
	UV  [2]float32
	Col [4]uint8
}

// DrawVertSize is the interleaved vertex stride in bytes.
const DrawVertSize = int(unsafe.Sizeof(DrawVert{}))

// DrawIdx is the overlay index type. 16 bits is enough for any sane
// per-frame HUD and keeps index uploads half the size.
type DrawIdx = uint16

const DrawIdxSize = 2

// DrawCmd is a single draw call: a clip rectangle in display space
// (x1,y1,x2,y2 with a top-left origin), the texture to sample and a
// range of indices in the owning list's index buffer.
//
// A command with a UserCallback set is application-driven and is
// skipped by the renderer; callbacks are the UI side's business.
type DrawCmd struct {
	ClipRect     [4]float32
	TextureID    uint32
	ElemCount    int
	UserCallback func()
}

// DrawList is one batch: a vertex array, an index array and the
// commands that consume them in order.
type DrawList struct {
	VtxBuffer []DrawVert
	IdxBuffer []DrawIdx
	CmdBuffer []DrawCmd
}

// DrawData is everything the UI produced for one frame.
type DrawData struct {
	Lists []*DrawList
	// DisplayPos is the top-left corner of the overlay viewport in
	// display coordinates, DisplaySize its extent.
	DisplayPos  [2]float32
	DisplaySize [2]float32
	// FramebufferScale maps display coordinates to framebuffer pixels
	// (>1 on hidpi surfaces).
	FramebufferScale [2]float32
}

// TotalVtxCount sums vertices across all lists.
func (dd *DrawData) TotalVtxCount() int {
	n := 0
	for _, l := range dd.Lists {
		n += len(l.VtxBuffer)
	}
	return n
}
