// ABOUTME: Ogg Vorbis audio decoder
// ABOUTME: Decodes Ogg Vorbis streams to float32 samples via oggvorbis
package decode

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
	"github.com/strata-audio/strata-go/pkg/audio"
)

// VorbisDecoder decodes Ogg Vorbis streams.
type VorbisDecoder struct{}

// NewVorbis creates an Ogg Vorbis decoder.
func NewVorbis() *VorbisDecoder {
	return &VorbisDecoder{}
}

// Decode reads a whole Ogg Vorbis stream. The library already produces
// interleaved float32, so no conversion is needed.
func (d *VorbisDecoder) Decode(r io.Reader) (*audio.PCM, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode vorbis stream: %w", err)
	}

	return &audio.PCM{
		Format: audio.Format{
			Codec:      "vorbis",
			SampleRate: format.SampleRate,
			Channels:   format.Channels,
			BitDepth:   32,
		},
		Samples: samples,
	}, nil
}
