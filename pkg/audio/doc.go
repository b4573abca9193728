// ABOUTME: Shared audio types and sample conversions
// ABOUTME: Defines PCM formats and float32 interchange used across the engine
// Package audio defines the PCM types shared by the decoders, the outputs,
// and the mixer. The engine works in interleaved float32 throughout; this
// package holds the conversions to and from the integer formats that devices
// and files speak.
package audio
