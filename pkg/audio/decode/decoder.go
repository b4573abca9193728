// ABOUTME: Decoder interface and format registry
// ABOUTME: Dispatches files to a decoder by extension
package decode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/strata-audio/strata-go/pkg/audio"
)

// Decoder decodes one encoded audio stream to float32 PCM.
type Decoder interface {
	// Decode reads the whole stream and returns the decoded buffer.
	Decode(r io.Reader) (*audio.PCM, error)
}

// ErrUnknownFormat is returned when no decoder is registered for a format.
var ErrUnknownFormat = errors.New("unknown audio format")

var registry = map[string]func() Decoder{
	".wav":  func() Decoder { return NewWAV() },
	".mp3":  func() Decoder { return NewMP3() },
	".ogg":  func() Decoder { return NewVorbis() },
	".oga":  func() Decoder { return NewVorbis() },
	".flac": func() Decoder { return NewFLAC() },
}

// ForExtension returns a decoder for the given file extension (".wav",
// ".mp3", ".ogg", ".oga", ".flac").
func ForExtension(ext string) (Decoder, error) {
	mk, ok := registry[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return mk(), nil
}

// File opens and fully decodes an audio file, picking the decoder from the
// file extension.
func File(path string) (*audio.PCM, error) {
	dec, err := ForExtension(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	pcm, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return pcm, nil
}
