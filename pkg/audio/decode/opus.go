// ABOUTME: Opus audio decoder
// ABOUTME: Decodes raw Opus packets to float32 samples
package decode

import (
	"fmt"

	"github.com/strata-audio/strata-go/pkg/audio"
	opus "gopkg.in/hraban/opus.v2"
)

// maxOpusFrame is the largest Opus frame: 120ms at 48kHz.
const maxOpusFrame = 5760

// OpusDecoder decodes raw Opus packets. Opus carries no container framing of
// its own, so this decoder is packet-based rather than stream-based and is
// not part of the extension registry.
type OpusDecoder struct {
	decoder *opus.Decoder
	format  audio.Format
	pcm     []float32
}

// NewOpus creates an Opus decoder for the given sample rate and channel
// count.
func NewOpus(format audio.Format) (*OpusDecoder, error) {
	dec, err := opus.NewDecoder(format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}
	format.Codec = "opus"
	return &OpusDecoder{
		decoder: dec,
		format:  format,
		pcm:     make([]float32, maxOpusFrame*format.Channels),
	}, nil
}

// DecodePacket decodes one Opus packet and returns the interleaved float32
// samples. The returned slice is valid until the next call.
func (d *OpusDecoder) DecodePacket(data []byte) ([]float32, error) {
	n, err := d.decoder.DecodeFloat32(data, d.pcm)
	if err != nil {
		return nil, fmt.Errorf("opus decode error: %w", err)
	}
	return d.pcm[:n*d.format.Channels], nil
}

// Format returns the decoder's output format.
func (d *OpusDecoder) Format() audio.Format {
	return d.format
}
