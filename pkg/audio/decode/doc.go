// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Decoders turn encoded streams into float32 PCM ready for the mixer
// Package decode provides audio decoders for various formats.
//
// Supports: WAV, MP3, Ogg Vorbis, FLAC, raw PCM (16-bit and 24-bit), and
// packet-based Opus. All decoders produce interleaved float32 samples in
// [-1, 1], the representation mixer.NewSample consumes.
//
// Example:
//
//	pcm, err := decode.File("bell.ogg")
//	snd := mixer.NewSample(pcm.Format.Channels, pcm.Samples, pcm.Frames())
package decode
