// ABOUTME: Wait-free real-time audio mixing engine
// ABOUTME: Fixed layer pool coordinated between a control thread and an audio thread
// Package mixer implements a wait-free stereo mixing engine built around a
// fixed pool of layers. One control goroutine starts, stops, seeks and
// re-gains sounds; exactly one audio goroutine (usually a device callback)
// pulls mixed frames with Mix. Coordination uses only atomic operations on
// per-layer fields: no locks, and no allocation on the audio path once the
// scratch buffer has warmed up.
//
// All cursor positions, start/end windows and fade lengths are frame counts,
// truncated to multiples of 4. The mixer is sample-rate agnostic; fades are
// interpreted at whatever rate the device consumes.
//
// Example:
//
//	m := mixer.New(1.0, 4096)
//	snd := mixer.NewSample(1, pcm, len(pcm))
//	h := m.Play(snd, mixer.Loop, 1.0, 0)
//	// from the device callback:
//	m.Mix(out, frames)
//	// later, from the control goroutine:
//	m.SetState(h, mixer.Stop)
package mixer
