// ABOUTME: Sample construction tests
// ABOUTME: Verifies validation, length rounding, and silent padding
package mixer

import "testing"

func TestNewSampleRejectsInvalidArguments(t *testing.T) {
	data := make([]float32, 8)

	if s := NewSample(0, data, 8); s != nil {
		t.Error("Expected nil for 0 channels")
	}
	if s := NewSample(3, data, 4); s != nil {
		t.Error("Expected nil for 3 channels")
	}
	if s := NewSample(1, nil, 8); s != nil {
		t.Error("Expected nil for nil data")
	}
	if s := NewSample(1, data, 0); s != nil {
		t.Error("Expected nil for zero frames")
	}
	if s := NewSample(2, data, 8); s != nil {
		t.Error("Expected nil when data is shorter than frames*channels")
	}
}

func TestNewSampleRoundsLengthUp(t *testing.T) {
	cases := []struct {
		frames int
		want   int32
	}{
		{1, 4},
		{4, 4},
		{5, 8},
		{7, 8},
		{8, 8},
		{1021, 1024},
	}
	for _, c := range cases {
		s := NewSample(1, make([]float32, c.frames), c.frames)
		if s == nil {
			t.Fatalf("NewSample failed for %d frames", c.frames)
		}
		if s.Length() != c.want {
			t.Errorf("Length for %d frames: got %d, want %d", c.frames, s.Length(), c.want)
		}
	}
}

func TestNewSampleCopiesAndPadsWithSilence(t *testing.T) {
	src := []float32{1, 2, 3, 4, 5}
	s := NewSample(1, src, 5)
	if s == nil {
		t.Fatal("NewSample failed")
	}

	// mutating the caller's buffer must not affect the sample
	src[0] = 99
	if s.data[0] != 1 {
		t.Error("Sample shares memory with the caller's buffer")
	}

	for i := 5; i < 8; i++ {
		if s.data[i] != 0 {
			t.Errorf("Padding frame %d is %v, want silence", i, s.data[i])
		}
	}
}

func TestNewSampleStereoSizing(t *testing.T) {
	s := NewSample(2, make([]float32, 12), 6)
	if s == nil {
		t.Fatal("NewSample failed")
	}
	if s.Channels() != 2 {
		t.Errorf("Channels: got %d, want 2", s.Channels())
	}
	if s.Length() != 8 {
		t.Errorf("Length: got %d, want 8", s.Length())
	}
	if len(s.data) != 16 {
		t.Errorf("Buffer size: got %d, want 16", len(s.data))
	}
}
