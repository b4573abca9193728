// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 streams to float32 samples via go-mp3
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/strata-audio/strata-go/pkg/audio"
)

// MP3Decoder decodes MP3 streams.
type MP3Decoder struct{}

// NewMP3 creates an MP3 decoder.
func NewMP3() *MP3Decoder {
	return &MP3Decoder{}
}

// Decode reads a whole MP3 stream and converts it to float32 samples.
// go-mp3 always produces 16-bit stereo at the stream's sample rate.
func (d *MP3Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	n := len(raw) / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		samples[i] = audio.Float32FromInt16(int16(binary.LittleEndian.Uint16(raw[i*2:])))
	}

	return &audio.PCM{
		Format: audio.Format{
			Codec:      "mp3",
			SampleRate: dec.SampleRate(),
			Channels:   2,
			BitDepth:   16,
		},
		Samples: samples,
	}, nil
}
