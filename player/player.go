// Package player wires a demo frame source into the engine: an
// animated test pattern standing in for a real decoder, with row
// padding on purpose so the upload path handles non-tight strides the
// way decoder output usually arrives.
package player

import (
	"math"

	"github.com/spaghettifunk/kinema/engine"
	"github.com/spaghettifunk/kinema/engine/overlay"
	"github.com/spaghettifunk/kinema/engine/video"
)

const (
	patternWidth  = 640
	patternHeight = 360
	// decoder-style row padding
	patternStride = patternWidth*4 + 16
)

type state struct {
	elapsed float64
	pixels  []uint8
}

func NewPlayer() *engine.Player {
	s := &state{
		pixels: make([]uint8, patternStride*patternHeight),
	}

	return &engine.Player{
		ApplicationConfig: &engine.ApplicationConfig{
			StartPosX:  40,
			StartPosY:  40,
			Name:       "kinema",
			ConfigPath: "kinema.toml",
		},
		State:       s,
		FnNextFrame: s.nextFrame,
		FnOverlay:   s.drawOverlay,
	}
}

// nextFrame renders moving color bars into the padded buffer.
func (s *state) nextFrame(deltaTime float64) (*video.Frame, error) {
	s.elapsed += deltaTime
	phase := s.elapsed * 60

	for y := 0; y < patternHeight; y++ {
		row := y * patternStride
		for x := 0; x < patternWidth; x++ {
			bar := ((x + int(phase)) / 80) % 8
			o := row + x*4
			s.pixels[o+0] = uint8(255 * (bar & 1))
			s.pixels[o+1] = uint8(127 * (bar & 2))
			s.pixels[o+2] = uint8(63 * (bar & 4))
			s.pixels[o+3] = 255
		}
	}

	return &video.Frame{
		Pixels: s.pixels,
		Stride: patternStride,
		Format: video.FormatRGBA,
		Width:  patternWidth,
		Height: patternHeight,
		PTS:    s.elapsed,
	}, nil
}

func (s *state) drawOverlay(b *overlay.Builder) error {
	pulse := uint8(127 + 127*math.Sin(s.elapsed*2))
	b.AddText(14, 44, [4]uint8{pulse, 255, pulse, 255}, "test pattern source")
	return nil
}
