// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC streams to float32 samples via mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/strata-audio/strata-go/pkg/audio"
)

// FLACDecoder decodes FLAC streams.
type FLACDecoder struct{}

// NewFLAC creates a FLAC decoder.
func NewFLAC() *FLACDecoder {
	return &FLACDecoder{}
}

// Decode reads a whole FLAC stream frame by frame and converts it to
// interleaved float32 samples.
func (d *FLACDecoder) Decode(r io.Reader) (*audio.PCM, error) {
	stream, err := flac.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse flac stream: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)
	samples := make([]float32, 0, int(info.NSamples)*channels)

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode flac frame: %w", err)
		}
		blockSize := len(frame.Subframes[0].Samples)
		for i := 0; i < blockSize; i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, audio.Float32FromInt(int64(frame.Subframes[ch].Samples[i]), bitDepth))
			}
		}
	}

	return &audio.PCM{
		Format: audio.Format{
			Codec:      "flac",
			SampleRate: int(info.SampleRate),
			Channels:   channels,
			BitDepth:   bitDepth,
		},
		Samples: samples,
	}, nil
}
