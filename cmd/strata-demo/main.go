// ABOUTME: Entry point for the strata mixer demo
// ABOUTME: Decodes a music and an effect file and drives the mixer from a device callback
package main

import (
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/strata-audio/strata-go/internal/ui"
	"github.com/strata-audio/strata-go/pkg/audio/decode"
	"github.com/strata-audio/strata-go/pkg/audio/output"
	"github.com/strata-audio/strata-go/pkg/mixer"
)

var (
	musicFile  = flag.String("music", "", "Music file to loop (WAV, MP3, Ogg, FLAC)")
	effectFile = flag.String("effect", "", "Effect file to fire as one-shots")
	backend    = flag.String("backend", "malgo", "Audio backend: malgo, oto, portaudio")
	volume     = flag.Float64("volume", 1.0, "Initial global volume")
	fadeMs     = flag.Int("fade-ms", 50, "Default fade length in milliseconds")
	logFile    = flag.String("log-file", "strata-demo.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, fire effects on a timer instead")
)

// demo wires the TUI controller to the engine.
type demo struct {
	mix         *mixer.Mixer
	music       uint32
	musicHalted bool
	effect      *mixer.Sample
	rng         *rand.Rand
}

func (d *demo) FireEffect() uint32 {
	pan := d.rng.Float32()*2 - 1
	return d.mix.Play(d.effect, mixer.Play, 1.0, pan)
}

func (d *demo) ToggleMusic() bool {
	if d.musicHalted {
		if d.mix.SetState(d.music, mixer.Loop) {
			d.musicHalted = false
		}
	} else if d.mix.SetState(d.music, mixer.Halt) {
		d.musicHalted = true
	}
	return d.musicHalted
}

func (d *demo) StopAll()            { d.mix.StopAll() }
func (d *demo) SetVolume(v float32) { d.mix.SetVolume(v) }
func (d *demo) ActiveLayers() int   { return d.mix.Active() }

func newOutput(name string) output.Output {
	switch name {
	case "oto":
		return output.NewOto()
	case "portaudio":
		return output.NewPortAudio()
	default:
		return output.NewMalgo()
	}
}

func loadSample(path string) (*mixer.Sample, int) {
	pcm, err := decode.File(path)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", path, err)
	}
	channels := pcm.Format.Channels
	if channels > 2 {
		log.Fatalf("%s has %d channels; only mono and stereo are supported", path, channels)
	}
	snd := mixer.NewSample(channels, pcm.Samples, pcm.Frames())
	if snd == nil {
		log.Fatalf("Failed to build sample from %s", path)
	}
	log.Printf("Loaded %s: %d frames, %d channels, %dHz",
		path, pcm.Frames(), channels, pcm.Format.SampleRate)
	return snd, pcm.Format.SampleRate
}

func main() {
	flag.Parse()
	if *musicFile == "" || *effectFile == "" {
		log.Fatal("Both -music and -effect are required")
	}

	// log to the file, and to stdout too only without the TUI, which owns the
	// terminal once it starts
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()
	if *noTUI {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	} else {
		log.SetOutput(f)
	}

	music, rate := loadSample(*musicFile)
	effect, effectRate := loadSample(*effectFile)
	if effectRate != rate {
		log.Printf("Warning: effect is %dHz but the device runs at %dHz; it will play detuned", effectRate, rate)
	}

	fade := int32(rate * *fadeMs / 1000)
	m := mixer.New(float32(*volume), fade)

	out := newOutput(*backend)
	if err := out.Open(rate, m.Mix); err != nil {
		log.Fatalf("Failed to open %s output: %v", *backend, err)
	}
	defer out.Close()

	d := &demo{
		mix:    m,
		effect: effect,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	d.music = m.Play(music, mixer.Loop, 0.75, 0)
	if d.music == 0 {
		log.Fatal("Failed to start music")
	}

	if *noTUI {
		runTimed(d)
		return
	}

	p := tea.NewProgram(ui.NewModel(d, *musicFile, *effectFile))
	go func() {
		for range time.Tick(500 * time.Millisecond) {
			p.Send(ui.TickMsg{})
		}
	}()
	if _, err := p.Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}

	// let the stop fade drain before the device closes
	m.StopAll()
	time.Sleep(200 * time.Millisecond)
}

// runTimed fires effects on a timer for ten seconds, no TUI.
func runTimed(d *demo) {
	log.Printf("Running without TUI; firing an effect every second")
	for i := 0; i < 10; i++ {
		time.Sleep(time.Second)
		if h := d.FireEffect(); h == 0 {
			log.Printf("Layer pool exhausted")
		}
		log.Printf("Active layers: %d", d.ActiveLayers())
	}
	d.StopAll()
	time.Sleep(200 * time.Millisecond)
}
