// ABOUTME: WAV audio decoder
// ABOUTME: Decodes RIFF/WAVE files to float32 samples via go-audio
package decode

import (
	"bytes"
	"fmt"
	"io"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/strata-audio/strata-go/pkg/audio"
)

// WAVDecoder decodes RIFF/WAVE files.
type WAVDecoder struct{}

// NewWAV creates a WAV decoder.
func NewWAV() *WAVDecoder {
	return &WAVDecoder{}
}

// Decode reads a whole WAV stream and converts it to float32 samples.
func (d *WAVDecoder) Decode(r io.Reader) (*audio.PCM, error) {
	// the wav package needs a seeker to walk the chunk list
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav stream: %w", err)
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode wav data: %w", err)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}

	return &audio.PCM{
		Format: audio.Format{
			Codec:      "wav",
			SampleRate: buf.Format.SampleRate,
			Channels:   buf.Format.NumChannels,
			BitDepth:   bitDepth,
		},
		Samples: intBufferSamples(buf, bitDepth),
	}, nil
}

// intBufferSamples converts a go-audio integer buffer to float32.
func intBufferSamples(buf *gaudio.IntBuffer, bitDepth int) []float32 {
	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = audio.Float32FromInt(int64(v), bitDepth)
	}
	return samples
}
