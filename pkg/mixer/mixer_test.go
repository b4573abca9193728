// ABOUTME: Control-thread operation tests
// ABOUTME: Covers handles, pool exhaustion, state transitions, and bulk operations
package mixer

import "testing"

// constSample builds a mono sample of the given length filled with v.
func constSample(t *testing.T, frames int, v float32) *Sample {
	t.Helper()
	data := make([]float32, frames)
	for i := range data {
		data[i] = v
	}
	s := NewSample(1, data, frames)
	if s == nil {
		t.Fatal("NewSample failed")
	}
	return s
}

func drain(m *Mixer, frames int) {
	out := make([]float32, frames*2)
	m.Mix(out, frames)
}

func TestPlayRejectsInvalidArguments(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	if h := m.Play(nil, Play, 1, 0); h != 0 {
		t.Error("Expected handle 0 for nil sample")
	}
	if h := m.Play(snd, State(0), 1, 0); h != 0 {
		t.Error("Expected handle 0 for the free state")
	}
	if h := m.Play(snd, State(5), 1, 0); h != 0 {
		t.Error("Expected handle 0 for an unknown state")
	}
	if h := m.PlayAdvanced(snd, Play, 1, 0, 0, 2, 0); h != 0 {
		t.Error("Expected handle 0 for a window shorter than 4 frames")
	}
	if h := m.PlayAdvanced(snd, Play, 1, 0, -8, 0, 0); h != 0 {
		t.Error("Expected handle 0 for end < 4")
	}
}

func TestPlayReturnsLiveHandle(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	h := m.Play(snd, Play, 1, 0)
	if h == 0 {
		t.Fatal("Play returned handle 0")
	}
	lay := &m.layers[h&m.mask]
	if lay.id != h {
		t.Errorf("Slot id %d does not match handle %d", lay.id, h)
	}
	if State(lay.flag.Load()) != Play {
		t.Errorf("Slot state: got %d, want Play", lay.flag.Load())
	}
}

func TestPoolExhaustion(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	for i := 0; i < m.Layers(); i++ {
		if h := m.Play(snd, Loop, 1, 0); h == 0 {
			t.Fatalf("Play %d failed with free slots remaining", i)
		}
	}
	if h := m.Play(snd, Loop, 1, 0); h != 0 {
		t.Error("Expected handle 0 once every layer is claimed")
	}
}

func TestHandleZeroSubstitution(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	// the very first claim would compute id 0, which is reserved
	h := m.Play(snd, Loop, 1, 0)
	if h == 0 {
		t.Fatal("Play returned handle 0")
	}
	if h != uint32(m.Layers()) {
		t.Errorf("First handle: got %d, want %d", h, m.Layers())
	}
	if h&m.mask != 0 {
		t.Errorf("First handle should address slot 0, addresses %d", h&m.mask)
	}
}

func TestHandleInvalidationAfterStopAll(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	h := m.Play(snd, Loop, 1, 0)
	if h == 0 {
		t.Fatal("Play returned handle 0")
	}

	m.StopAll()
	// fade is 0, so one mix call reclaims the layer
	drain(m, 64)

	if m.SetState(h, Play) {
		t.Error("SetState succeeded on a reclaimed handle")
	}
	if m.SetGainPan(h, 1, 0) {
		t.Error("SetGainPan succeeded on a reclaimed handle")
	}
	if m.SetCursor(h, 0) {
		t.Error("SetCursor succeeded on a reclaimed handle")
	}
}

func TestSetStateIdempotent(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	h := m.Play(snd, Loop, 1, 0)
	if !m.SetState(h, Loop) {
		t.Error("SetState with the current state should succeed")
	}
	if State(m.layers[h&m.mask].flag.Load()) != Loop {
		t.Error("Idempotent SetState changed the slot state")
	}
}

func TestSetStateRejectsUnknownState(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	h := m.Play(snd, Loop, 1, 0)
	if m.SetState(h, State(0)) {
		t.Error("SetState accepted the free state")
	}
	if m.SetState(h, State(9)) {
		t.Error("SetState accepted an unknown state")
	}
}

func TestSetCursorClampsToWindow(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	h := m.PlayAdvanced(snd, Loop, 1, 0, 0, 8, 0)
	if h == 0 {
		t.Fatal("PlayAdvanced failed")
	}
	lay := &m.layers[h&m.mask]

	if !m.SetCursor(h, 100) {
		t.Fatal("SetCursor failed")
	}
	if got := lay.cursor.Load(); got != 8 {
		t.Errorf("Cursor past end: got %d, want 8", got)
	}

	if !m.SetCursor(h, -20) {
		t.Fatal("SetCursor failed")
	}
	if got := lay.cursor.Load(); got != 0 {
		t.Errorf("Cursor before start: got %d, want 0", got)
	}

	if !m.SetCursor(h, 6) {
		t.Fatal("SetCursor failed")
	}
	if got := lay.cursor.Load(); got != 4 {
		t.Errorf("Cursor truncation: got %d, want 4", got)
	}
}

func TestSetGainPanRequiresLiveLayer(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	h := m.Play(snd, Play, 1, 0)
	if !m.SetGainPan(h, 0.25, -1) {
		t.Fatal("SetGainPan failed on a live handle")
	}
	l, r := unpackGain(m.layers[h&m.mask].gain.Load())
	if l != 0.25 || r != 0 {
		t.Errorf("Stored gain: got (%v, %v), want (0.25, 0)", l, r)
	}

	// wrong generation tag
	if m.SetGainPan(h+uint32(m.Layers()), 1, 0) {
		t.Error("SetGainPan accepted a stale handle")
	}
}

func TestStopAllInvalidatesOnlyLiveLayers(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	h1 := m.Play(snd, Loop, 1, 0)
	h2 := m.Play(snd, Halt, 1, 0)
	m.StopAll()

	if State(m.layers[h1&m.mask].flag.Load()) != Stop {
		t.Error("Looping layer was not stopped")
	}
	if State(m.layers[h2&m.mask].flag.Load()) != Stop {
		t.Error("Halted layer was not stopped")
	}
}

func TestHaltAllAndResumeAll(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 16, 0.5)

	playing := m.Play(snd, Play, 1, 0)
	looping := m.Play(snd, Loop, 1, 0)
	stopped := m.Play(snd, Stop, 1, 0)

	m.HaltAll()
	if State(m.layers[playing&m.mask].flag.Load()) != Halt {
		t.Error("Playing layer was not halted")
	}
	if State(m.layers[looping&m.mask].flag.Load()) != Halt {
		t.Error("Looping layer was not halted")
	}
	if State(m.layers[stopped&m.mask].flag.Load()) != Stop {
		t.Error("Stopping layer should be untouched by HaltAll")
	}

	m.ResumeAll()
	if State(m.layers[playing&m.mask].flag.Load()) != Play {
		t.Error("Halted layer was not resumed")
	}
	if State(m.layers[looping&m.mask].flag.Load()) != Play {
		t.Error("Halted layer was not resumed to Play")
	}
	if State(m.layers[stopped&m.mask].flag.Load()) != Stop {
		t.Error("Stopping layer should be untouched by ResumeAll")
	}
}

func TestHaltFadeOutKeepsHandleValid(t *testing.T) {
	m := New(1.0, 0)
	snd := constSample(t, 64, 0.5)

	h := m.PlayAdvanced(snd, Play, 1, 0, 0, 64, 16)
	drain(m, 16) // advance into the sound
	if !m.SetState(h, Halt) {
		t.Fatal("SetState(Halt) failed")
	}
	drain(m, 32) // fully faded out

	// a halted layer stays claimed even when silent
	if !m.SetState(h, Play) {
		t.Error("Resuming a fully faded halt should succeed")
	}
}

func TestSetDefaultFade(t *testing.T) {
	m := New(1.0, 0)
	m.SetDefaultFade(10)
	if m.fadeDefault != 8 {
		t.Errorf("Default fade: got %d, want 8", m.fadeDefault)
	}
	m.SetDefaultFade(-5)
	if m.fadeDefault != 0 {
		t.Errorf("Negative default fade: got %d, want 0", m.fadeDefault)
	}
}

func TestVolumeRoundTrip(t *testing.T) {
	m := New(0.75, 0)
	if v := m.Volume(); v != 0.75 {
		t.Errorf("Volume: got %v, want 0.75", v)
	}
	m.SetVolume(-2)
	if v := m.Volume(); v != -2 {
		t.Errorf("Volume: got %v, want -2", v)
	}
}

func TestNewWithConfigValidation(t *testing.T) {
	if m := NewWithConfig(1, 0, Config{LayerBits: 4}); m == nil || m.Layers() != 16 {
		t.Error("Expected a 16-layer pool for LayerBits=4")
	}
	if m := NewWithConfig(1, 0, Config{LayerBits: -1}); m != nil {
		t.Error("Expected nil for negative LayerBits")
	}
	if m := NewWithConfig(1, 0, Config{LayerBits: 24}); m != nil {
		t.Error("Expected nil for oversized LayerBits")
	}
}
