// Package video holds the decode-side boundary: decoded frame buffers
// with metadata, codec parameter structs and the timestamp/timebase
// conversions needed to talk to a packet-based decoder. Nothing in here
// touches the GPU.
package video

type PixelFormat uint8

const (
	FormatRGBA PixelFormat = iota
	FormatBGRA
	FormatRGB
	FormatGray
)

// BytesPerPixel returns the per-pixel byte width, 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatRGBA, FormatBGRA:
		return 4
	case FormatRGB:
		return 3
	case FormatGray:
		return 1
	}
	return 0
}

func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA:
		return "rgba"
	case FormatBGRA:
		return "bgra"
	case FormatRGB:
		return "rgb"
	case FormatGray:
		return "gray"
	}
	return "unknown"
}

// Frame is one decoded picture. Pixels holds Height rows of
// Width*BytesPerPixel payload bytes each, rows separated by Stride
// bytes; Stride may exceed the payload width due to decoder padding.
type Frame struct {
	Pixels []uint8
	Stride int
	Format PixelFormat
	Width  int
	Height int
	// PTS is the presentation timestamp in seconds, NoPTS if unknown.
	PTS float64
}

// TightlyPacked reports whether rows have no padding between them.
func (f *Frame) TightlyPacked() bool {
	return f.Stride == f.Width*f.Format.BytesPerPixel()
}
