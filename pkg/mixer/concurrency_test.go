// ABOUTME: Two-goroutine stress tests
// ABOUTME: Exercises the control/audio protocol under the race detector
package mixer

import (
	"sync"
	"testing"
)

// TestControlAudioStress runs one control goroutine issuing every mutation
// against one audio goroutine mixing continuously, the only caller pattern
// the engine supports. The test passes when nothing panics, every Mix call
// fills its request, and the live-layer invariants hold afterwards.
func TestControlAudioStress(t *testing.T) {
	m := NewWithConfig(1, 64, Config{LayerBits: 4})
	mono := constSample(t, 128, 0.25)
	stereo := NewSample(2, make([]float32, 256), 128)
	if stereo == nil {
		t.Fatal("NewSample failed")
	}

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		out := make([]float32, 2*96)
		for {
			select {
			case <-done:
				return
			default:
			}
			for _, n := range []int{96, 17, 64, 3} {
				if got := m.Mix(out, n); got != n {
					t.Errorf("Mix returned %d, want %d", got, n)
					return
				}
			}
		}
	}()

	handles := make([]uint32, 0, 1024)
	for i := 0; i < 2000; i++ {
		snd := mono
		if i%3 == 0 {
			snd = stereo
		}
		flag := []State{Play, Loop, Halt, Stop}[i%4]
		if h := m.PlayAdvanced(snd, flag, 0.5, float32(i%5)/2-1, -16, 128, 32); h != 0 {
			handles = append(handles, h)
		}
		if len(handles) > 0 {
			h := handles[i%len(handles)]
			m.SetGainPan(h, 0.3, 0.1)
			m.SetCursor(h, int32(i%160))
			m.SetState(h, []State{Play, Loop, Halt, Stop}[(i+1)%4])
		}
		switch i % 250 {
		case 100:
			m.HaltAll()
		case 200:
			m.ResumeAll()
		case 249:
			m.StopAll()
		}
		m.SetVolume(float32(i%8) / 4)
	}
	close(done)
	wg.Wait()

	// the pool must still be internally consistent
	out := make([]float32, 2*64)
	m.Mix(out, 64)
	for i := range m.layers {
		lay := &m.layers[i]
		if State(lay.flag.Load()) == stateFree {
			continue
		}
		cur := lay.cursor.Load()
		if cur < lay.start || cur > lay.end {
			t.Errorf("Layer %d cursor %d outside [%d, %d]", i, cur, lay.start, lay.end)
		}
	}
}
