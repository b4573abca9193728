// ABOUTME: Audio output package for playing mixed audio
// ABOUTME: Pull-model Output interface with oto, malgo, and PortAudio backends
// Package output plays the engine's stereo float32 stream on an audio device.
//
// Outputs are pull-driven: the device callback asks the supplied MixFunc for
// frames, which matches the mixer's single-audio-goroutine contract.
//
// Example:
//
//	out := output.NewMalgo()
//	err := out.Open(48000, m.Mix)
//	defer out.Close()
package output
