// ABOUTME: Immutable PCM sample storage
// ABOUTME: Copies caller data and pads the length up to a 4-frame boundary
package mixer

// Zalloc returns a zero-filled float32 slice of n elements. It backs every
// sample and scratch allocation the engine makes; override it to route
// allocations through an arena or a pool.
var Zalloc = func(n int) []float32 {
	return make([]float32, n)
}

// Sample is an immutable block of interleaved float32 PCM frames. Samples are
// referenced by playing layers but not owned by them; the caller must keep a
// sample alive for as long as any layer plays it.
type Sample struct {
	channels int32
	length   int32 // frames, always a multiple of 4
	data     []float32
}

// NewSample copies frames of interleaved data into a new sample. channels
// must be 1 or 2 and frames at least 1; data must hold frames*channels
// values. The stored length is rounded up to the next multiple of 4 and the
// padding frames are silence. Returns nil on invalid arguments.
func NewSample(channels int, data []float32, frames int) *Sample {
	if channels < 1 || channels > 2 || data == nil || frames < 1 {
		return nil
	}
	if len(data) < frames*channels {
		return nil
	}
	rlen := (frames + 3) &^ 3
	buf := Zalloc(rlen * channels)
	if buf == nil {
		return nil
	}
	copy(buf, data[:frames*channels])
	return &Sample{
		channels: int32(channels),
		length:   int32(rlen),
		data:     buf,
	}
}

// Channels returns the channel count, 1 or 2.
func (s *Sample) Channels() int {
	return int(s.channels)
}

// Length returns the sample length in frames, always a multiple of 4.
func (s *Sample) Length() int32 {
	return s.length
}
