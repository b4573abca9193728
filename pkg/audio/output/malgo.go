// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses the miniaudio library via malgo to pull frames from the mixer callback
package output

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"

	"github.com/gen2brain/malgo"
)

// initialScratchFrames prewarms the callback scratch so steady-state
// callbacks do not allocate.
const initialScratchFrames = 4096

// Malgo output implementation using the malgo/miniaudio library.
type Malgo struct {
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	mix      MixFunc
	scratch  []float32
	ready    bool
}

// NewMalgo creates a new Malgo output.
func NewMalgo() Output {
	return &Malgo{}
}

// Open initializes the playback device and starts pulling from mix.
func (m *Malgo) Open(sampleRate int, mix MixFunc) error {
	if m.ready {
		return fmt.Errorf("output already open")
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = 2
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	m.mix = mix
	m.scratch = make([]float32, initialScratchFrames*2)

	onSamples := func(pOutputSamples, pInputSamples []byte, frameCount uint32) {
		m.dataCallback(pOutputSamples, int(frameCount))
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSamples,
	})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	m.malgoCtx = ctx
	m.device = device
	m.ready = true

	log.Printf("Audio output initialized: %dHz, 2 channels (malgo)", sampleRate)
	return nil
}

// dataCallback runs on the device's audio thread; it must not allocate in
// steady state or block.
func (m *Malgo) dataCallback(out []byte, frames int) {
	if cap(m.scratch) < frames*2 {
		m.scratch = make([]float32, frames*2)
	}
	buf := m.scratch[:frames*2]
	m.mix(buf, frames)
	for i, v := range buf {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
}

// Close stops the device and releases resources.
func (m *Malgo) Close() error {
	if m.device != nil {
		m.device.Uninit()
		m.device = nil
	}
	if m.malgoCtx != nil {
		_ = m.malgoCtx.Uninit()
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	m.ready = false
	return nil
}
