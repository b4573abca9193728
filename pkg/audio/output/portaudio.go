//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform audio output pulling frames in the stream callback
package output

import (
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"
)

// PortAudio output implementation.
type PortAudio struct {
	stream *portaudio.Stream
	mix    MixFunc
}

// NewPortAudio creates a new PortAudio output.
func NewPortAudio() Output {
	return &PortAudio{}
}

// Open initializes PortAudio and starts a callback stream pulling from mix.
func (p *PortAudio) Open(sampleRate int, mix MixFunc) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.mix = mix
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(sampleRate), 0, func(out []float32) {
		p.mix(out, len(out)/2)
	})
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	p.stream = stream
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	log.Printf("Audio output initialized: %dHz, 2 channels (portaudio)", sampleRate)
	return nil
}

// Close stops the stream and shuts PortAudio down.
func (p *PortAudio) Close() error {
	if p.stream != nil {
		p.stream.Stop()
		p.stream.Close()
		p.stream = nil
	}
	return portaudio.Terminate()
}
