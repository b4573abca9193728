// ABOUTME: Raw PCM decoder
// ABOUTME: Decodes headerless 16-bit and 24-bit little-endian PCM to float32
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/strata-audio/strata-go/pkg/audio"
)

// PCMDecoder decodes headerless little-endian PCM with a caller-supplied
// format.
type PCMDecoder struct {
	format audio.Format
}

// NewPCM creates a raw PCM decoder for the given format. Bit depths 16 and 24
// are supported.
func NewPCM(format audio.Format) (*PCMDecoder, error) {
	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}
	return &PCMDecoder{format: format}, nil
}

// Decode converts the raw PCM stream to float32 samples.
func (d *PCMDecoder) Decode(r io.Reader) (*audio.PCM, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pcm stream: %w", err)
	}

	var samples []float32
	if d.format.BitDepth == 24 {
		n := len(data) / 3
		samples = make([]float32, n)
		for i := 0; i < n; i++ {
			samples[i] = audio.Float32From24Bit([3]byte{data[i*3], data[i*3+1], data[i*3+2]})
		}
	} else {
		n := len(data) / 2
		samples = make([]float32, n)
		for i := 0; i < n; i++ {
			samples[i] = audio.Float32FromInt16(int16(binary.LittleEndian.Uint16(data[i*2:])))
		}
	}

	format := d.format
	format.Codec = "pcm"
	return &audio.PCM{Format: format, Samples: samples}, nil
}
