// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams float32 frames through an oto player reading from the mixer
package output

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"

	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using the oto library.
type Oto struct {
	otoCtx *oto.Context
	player *oto.Player
	ready  bool
}

// NewOto creates a new Oto output.
func NewOto() Output {
	return &Oto{}
}

// Open initializes the oto context and starts a player that pulls from mix.
// oto only allows one context per process; a second Open with a different
// rate fails.
func (o *Oto) Open(sampleRate int, mix MixFunc) error {
	if o.ready {
		return fmt.Errorf("output already open")
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.player = ctx.NewPlayer(&mixReader{mix: mix})
	o.player.Play()
	o.ready = true

	log.Printf("Audio output initialized: %dHz, 2 channels (oto)", sampleRate)
	return nil
}

// Close stops playback. The oto context itself cannot be torn down; it is
// suspended instead.
func (o *Oto) Close() error {
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
	}
	o.ready = false
	return nil
}

// mixReader adapts a MixFunc to the io.Reader oto pulls from. oto calls Read
// from its playback goroutine, which therefore acts as the audio thread.
type mixReader struct {
	mix     MixFunc
	scratch []float32
}

func (r *mixReader) Read(p []byte) (int, error) {
	frames := len(p) / 8 // 2 channels x 4 bytes
	if frames == 0 {
		return 0, nil
	}
	if cap(r.scratch) < frames*2 {
		r.scratch = make([]float32, frames*2)
	}
	buf := r.scratch[:frames*2]
	r.mix(buf, frames)
	for i, v := range buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return frames * 8, nil
}
