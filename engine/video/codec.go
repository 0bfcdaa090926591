package video

import "errors"

// InputBufferPadding is the number of zeroed bytes appended to
// extradata buffers handed to the decoder, which may over-read during
// bitstream parsing.
const InputBufferPadding = 64

// maxExtradataSize bounds codec header growth; anything larger is a
// corrupt stream, not a legitimate header.
const maxExtradataSize = 1 << 25

// ErrAlloc is the negative-result code of the codec glue: the requested
// buffer could not be acquired. The caller keeps ownership of whatever
// it passed in.
var ErrAlloc = errors.New("codec header buffer allocation refused")

type StreamType uint8

const (
	StreamVideo StreamType = iota
	StreamAudio
	StreamSub
	StreamUnknown
)

// MediaType is the decoder library's own stream classification.
type MediaType int8

const (
	MediaUnknown MediaType = iota - 1
	MediaVideo
	MediaAudio
	MediaSubtitle
)

// ToMediaType maps our stream type onto the decoder's.
func ToMediaType(t StreamType) MediaType {
	switch t {
	case StreamVideo:
		return MediaVideo
	case StreamAudio:
		return MediaAudio
	case StreamSub:
		return MediaSubtitle
	default:
		return MediaUnknown
	}
}

// CodecParams describes one elementary stream the demuxer found.
type CodecParams struct {
	Type               StreamType
	Codec              string
	CodecTag           uint32
	Extradata          []uint8
	BitsPerCodedSample int

	// Video only
	Width  int
	Height int

	// Audio only
	SampleRate int
	BitRate    int
	BlockAlign int
	Channels   int

	NativeTimebase Rational
	FPS            float64
	ReliableFPS    bool
}

// DecoderConfig mirrors the decoder context header fields this glue is
// allowed to fill in.
type DecoderConfig struct {
	Type               MediaType
	Codec              string
	CodecTag           uint32
	Extradata          []uint8
	BitsPerCodedSample int
	Width              int
	Height             int
	SampleRate         int
	BitRate            int
	BlockAlign         int
	Channels           int
}

// SetExtradata replaces dc's codec header bytes with a padded copy of
// data. On failure dc's extradata is cleared and the caller keeps
// ownership of data.
func (dc *DecoderConfig) SetExtradata(data []uint8) error {
	if len(data) == 0 {
		return nil
	}
	dc.Extradata = nil
	if len(data) > maxExtradataSize {
		return ErrAlloc
	}
	buf := make([]uint8, len(data)+InputBufferPadding)
	copy(buf, data)
	dc.Extradata = buf[:len(data)]
	return nil
}

// ApplyCodecHeaders fills dc for decoding from the demuxer-side params.
// Like the stream type and codec id, fields the decoder already
// resolved are preserved.
func ApplyCodecHeaders(dc *DecoderConfig, c *CodecParams) error {
	mediaType := dc.Type
	codec := dc.Codec

	dc.Type = ToMediaType(c.Type)
	dc.Codec = c.Codec
	dc.CodecTag = c.CodecTag
	if err := dc.SetExtradata(c.Extradata); err != nil {
		return err
	}
	dc.BitsPerCodedSample = c.BitsPerCodedSample

	dc.Width = c.Width
	dc.Height = c.Height

	dc.SampleRate = c.SampleRate
	dc.BitRate = c.BitRate
	dc.BlockAlign = c.BlockAlign
	dc.Channels = c.Channels

	if mediaType != MediaUnknown {
		dc.Type = mediaType
	}
	if codec != "" {
		dc.Codec = codec
	}
	return nil
}

// Packet is one demuxed access unit on its way into the decoder.
type Packet struct {
	Data     []uint8
	Keyframe bool
	PTS      float64
	DTS      float64
	Duration float64
}

// DecoderPacket is the tick-timestamped shape the decoder consumes.
type DecoderPacket struct {
	Data     []uint8
	Keyframe bool
	PTS      int64
	DTS      int64
	Duration int64
}

// ToDecoderPacket converts pkt's second timestamps into ticks of tb.
// pkt may be nil to generate an empty flush packet.
func ToDecoderPacket(pkt *Packet, tb Rational) DecoderPacket {
	dst := DecoderPacket{PTS: NoTicks, DTS: NoTicks}
	if pkt == nil {
		return dst
	}
	dst.Data = pkt.Data
	dst.Keyframe = pkt.Keyframe
	dst.PTS = PTSToTicks(pkt.PTS, tb)
	dst.DTS = PTSToTicks(pkt.DTS, tb)
	if tb.Valid() && pkt.Duration > 0 {
		dst.Duration = int64(pkt.Duration / tb.Float())
	}
	return dst
}
