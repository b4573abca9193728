// ABOUTME: Mixer construction and control-thread operations
// ABOUTME: Claims layers, validates handles, and mutates playback state atomically
package mixer

import (
	"math"
	"sync/atomic"
)

// DefaultLayerBits sizes the default pool at 1<<8 = 256 layers.
const DefaultLayerBits = 8

// Config adjusts engine behavior at construction time.
type Config struct {
	// LayerBits sets the pool size to 1<<LayerBits layers. Zero means
	// DefaultLayerBits. The pool size must be a power of two so the low bits
	// of a handle select the slot.
	LayerBits int
	// NoClip disables the final clipping stage, for backends that clip on
	// their own.
	NoClip bool
	// Scalar disables the 4-frame block path. The scalar path mixes straight
	// into the caller's buffer one frame at a time and never uses the carry.
	Scalar bool
}

// Mixer is a fixed pool of mixing layers. All methods except Mix belong to
// the control goroutine; Mix belongs to the single audio goroutine.
type Mixer struct {
	nextID      uint32
	volume      atomic.Uint32 // float32 bits
	layers      []layer
	mask        uint32
	fadeDefault int32
	noClip      bool
	scalar      bool

	// audio-goroutine state for the block path
	scratch []float32 // accumulator, grown to the largest request seen
	rem     int32     // carried frames from the previous Mix call, 0..3
	carry   [6]float32
}

// New returns a mixer with the default configuration, the given global volume
// and the given default fade length in frames.
func New(volume float32, fade int32) *Mixer {
	return NewWithConfig(volume, fade, Config{})
}

// NewWithConfig returns a mixer with the given configuration, or nil if the
// configuration is invalid.
func NewWithConfig(volume float32, fade int32, cfg Config) *Mixer {
	bits := cfg.LayerBits
	if bits == 0 {
		bits = DefaultLayerBits
	}
	if bits < 1 || bits > 16 {
		return nil
	}
	m := &Mixer{
		layers: make([]layer, 1<<bits),
		mask:   uint32(1<<bits) - 1,
		noClip: cfg.NoClip,
		scalar: cfg.Scalar,
	}
	m.volume.Store(math.Float32bits(volume))
	m.SetDefaultFade(fade)
	return m
}

// Layers returns the pool size.
func (m *Mixer) Layers() int {
	return len(m.layers)
}

// Active returns the number of layers currently claimed. The count is a
// snapshot; the audio goroutine may reclaim layers concurrently.
func (m *Mixer) Active() int {
	n := 0
	for i := range m.layers {
		if m.layers[i].flag.Load() != uint32(stateFree) {
			n++
		}
	}
	return n
}

// Play starts snd in the given state over its whole length with the mixer's
// default fade. Returns a handle addressing the claimed layer, or 0 if the
// arguments are invalid or the pool is exhausted.
func (m *Mixer) Play(snd *Sample, flag State, gain, pan float32) uint32 {
	if snd == nil {
		return 0
	}
	return m.PlayAdvanced(snd, flag, gain, pan, 0, snd.length, m.fadeDefault)
}

// PlayAdvanced starts snd in the given state with an explicit play window and
// fade length. start and end are frame positions truncated to multiples of 4;
// a negative start delays the sound, and an end beyond the sample length
// repeats the sample data. Returns a handle, or 0 on invalid arguments or
// pool exhaustion.
func (m *Mixer) PlayAdvanced(snd *Sample, flag State, gain, pan float32, start, end, fade int32) uint32 {
	if snd == nil || flag < Stop || flag > Loop {
		return 0
	}
	if end-start < 4 || end < 4 {
		return 0
	}
	for range m.layers {
		id := m.nextID
		m.nextID++
		lay := &m.layers[id&m.mask]
		if lay.flag.Load() != uint32(stateFree) {
			continue
		}
		// 0 is reserved as the invalid handle
		if id == 0 {
			id = uint32(len(m.layers))
		}
		lay.id = id
		lay.snd = snd
		lay.start = start &^ 3
		lay.end = end &^ 3
		if fade < 0 {
			lay.fmax = 0
		} else {
			lay.fmax = fade &^ 3
		}
		// starting stopped or halted means fully faded out, so that a later
		// resume produces a fade-in
		if flag < Play {
			lay.fade = 0
		} else {
			lay.fade = lay.fmax
		}
		lay.gain.Store(packGain(gainPair(gain, pan)))
		lay.cursor.Store(lay.start)
		// publishing the flag releases the slot to the audio goroutine
		lay.flag.Store(uint32(flag))
		return id
	}
	return 0
}

// SetGainPan updates the gain and pan of the sound addressed by handle.
// Reports whether the handle still addressed a live layer.
func (m *Mixer) SetGainPan(handle uint32, gain, pan float32) bool {
	lay := &m.layers[handle&m.mask]
	if handle != lay.id || State(lay.flag.Load()) <= Stop {
		return false
	}
	lay.gain.Store(packGain(gainPair(gain, pan)))
	return true
}

// SetCursor moves the playback cursor of the sound addressed by handle. The
// cursor is clamped to the play window and truncated to a multiple of 4.
// Reports whether the handle still addressed a live layer.
func (m *Mixer) SetCursor(handle uint32, cursor int32) bool {
	lay := &m.layers[handle&m.mask]
	if handle != lay.id || State(lay.flag.Load()) <= Stop {
		return false
	}
	if cursor < lay.start {
		cursor = lay.start
	} else if cursor > lay.end {
		cursor = lay.end
	} else {
		cursor &^= 3
	}
	lay.cursor.Store(cursor)
	return true
}

// SetState transitions the sound addressed by handle to the given state.
// Succeeds trivially when the state already matches. Fails on an unknown
// state, a stale handle, or when the audio goroutine reclaimed the layer
// concurrently (the sound completed).
func (m *Mixer) SetState(handle uint32, flag State) bool {
	if flag < Stop || flag > Loop {
		return false
	}
	lay := &m.layers[handle&m.mask]
	if handle != lay.id {
		return false
	}
	prev := lay.flag.Load()
	if State(prev) <= Stop {
		return false
	}
	if prev == uint32(flag) {
		return true
	}
	return lay.flag.CompareAndSwap(prev, uint32(flag))
}

// SetVolume sets the global volume. Any float is accepted, including negative
// values; the clip stage bounds the output.
func (m *Mixer) SetVolume(volume float32) {
	m.volume.Store(math.Float32bits(volume))
}

// Volume returns the current global volume.
func (m *Mixer) Volume() float32 {
	return math.Float32frombits(m.volume.Load())
}

// SetDefaultFade sets the fade length, in frames, applied by Play to sounds
// started after the call. Negative values mean no fade.
func (m *Mixer) SetDefaultFade(fade int32) {
	if fade < 0 {
		m.fadeDefault = 0
	} else {
		m.fadeDefault = fade &^ 3
	}
}

// StopAll stops every live sound, invalidating all outstanding handles. Each
// sound fades out and its layer is reclaimed by the audio goroutine.
func (m *Mixer) StopAll() {
	for i := range m.layers {
		lay := &m.layers[i]
		if State(lay.flag.Load()) > Stop {
			lay.flag.Store(uint32(Stop))
		}
	}
}

// HaltAll halts every playing or looping sound so it can be resumed later.
func (m *Mixer) HaltAll() {
	for i := range m.layers {
		lay := &m.layers[i]
		if flag := lay.flag.Load(); State(flag) > Halt {
			lay.flag.CompareAndSwap(flag, uint32(Halt))
		}
	}
}

// ResumeAll resumes every halted sound. Looping and stopping sounds are
// unaffected.
func (m *Mixer) ResumeAll() {
	for i := range m.layers {
		m.layers[i].flag.CompareAndSwap(uint32(Halt), uint32(Play))
	}
}
