// ABOUTME: Audio-thread entry point
// ABOUTME: Drains the carry, runs every layer kernel, clips, and stages the remainder
package mixer

import "math"

// Mix fills exactly frames interleaved stereo float32 frames of out and
// returns frames. out must have room for 2*frames values. Mix must only ever
// be called from one goroutine at a time, typically the audio device
// callback. It has no failure mode.
func (m *Mixer) Mix(out []float32, frames int) int {
	if frames <= 0 {
		return 0
	}
	if m.scalar {
		m.mixScalar(out, int32(frames))
	} else {
		m.mixBlock(out, int32(frames))
	}
	return frames
}

// mixBlock mixes in 4-frame steps through an internal accumulator, carrying
// up to 3 already-mixed frames between calls when the request is not a
// multiple of 4.
func (m *Mixer) mixBlock(out []float32, frames int32) {
	rnum := frames
	if m.rem > 0 {
		if rnum > m.rem {
			copy(out, m.carry[:m.rem*2])
			out = out[m.rem*2:]
			rnum -= m.rem
			m.rem = 0
		} else {
			copy(out, m.carry[:rnum*2])
			m.rem -= rnum
			if m.rem > 0 {
				copy(m.carry[:m.rem*2], m.carry[rnum*2:(rnum+m.rem)*2])
			}
			return
		}
	}

	asize := (rnum + 3) &^ 3
	acc := m.accumulator(asize)

	vol := math.Float32frombits(m.volume.Load())
	for i := range m.layers {
		mixLayerBlock(&m.layers[i], vol, acc)
	}
	if !m.noClip {
		clip(acc)
	}

	copy(out, acc[:rnum*2])
	m.rem = asize - rnum
	if m.rem > 0 {
		copy(m.carry[:m.rem*2], acc[rnum*2:asize*2])
	}
}

// mixScalar mixes one frame at a time straight into the caller's buffer.
func (m *Mixer) mixScalar(out []float32, frames int32) {
	buf := out[:frames*2]
	clear(buf)
	vol := math.Float32frombits(m.volume.Load())
	for i := range m.layers {
		mixLayerScalar(&m.layers[i], vol, buf)
	}
	if !m.noClip {
		clip(buf)
	}
}

// accumulator returns a zeroed stereo scratch buffer of the given frame
// count. The buffer is retained between calls and only grows, so steady-state
// mixing does not allocate.
func (m *Mixer) accumulator(frames int32) []float32 {
	n := int(frames) * 2
	if cap(m.scratch) < n {
		m.scratch = Zalloc(n)
	}
	acc := m.scratch[:n]
	clear(acc)
	return acc
}

// clip saturates every value into [-1, +1].
func clip(buf []float32) {
	for i, v := range buf {
		if v < -1 {
			buf[i] = -1
		} else if v > 1 {
			buf[i] = 1
		}
	}
}
