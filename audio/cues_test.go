package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

func drainStreamer(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestOscillatorLengthAndRange(t *testing.T) {
	s := newOscillator(440, 440, 100*time.Millisecond, testRate)
	samples := drainStreamer(t, s)

	want := testRate.N(100 * time.Millisecond)
	if len(samples) != want {
		t.Errorf("samples = %d, want %d", len(samples), want)
	}
	for i, sm := range samples {
		if math.Abs(sm[0]) > 1.0 || math.Abs(sm[1]) > 1.0 {
			t.Fatalf("sample %d out of range: %v", i, sm)
		}
	}
}

// A glide sweeps phase faster at the high end: the last zero crossings of
// a rising sweep are closer together than the first
func TestOscillatorSweep(t *testing.T) {
	s := newOscillator(100, 1000, 200*time.Millisecond, testRate)
	samples := drainStreamer(t, s)

	firstGap := zeroCrossingGap(samples[:len(samples)/4])
	lastGap := zeroCrossingGap(samples[3*len(samples)/4:])
	if lastGap >= firstGap {
		t.Errorf("sweep did not accelerate: first gap %d, last gap %d", firstGap, lastGap)
	}
}

func zeroCrossingGap(samples [][2]float64) int {
	first, second := -1, -1
	for i := 1; i < len(samples); i++ {
		if samples[i-1][0] < 0 && samples[i][0] >= 0 {
			if first < 0 {
				first = i
			} else {
				second = i
				break
			}
		}
	}
	if first < 0 || second < 0 {
		return len(samples)
	}
	return second - first
}

// The envelope starts and ends near silence so cues never click
func TestEnvelopeEdgesSilent(t *testing.T) {
	osc := newOscillator(440, 440, 100*time.Millisecond, testRate)
	s := newEnvelope(osc, 100*time.Millisecond, 5*time.Millisecond, 20*time.Millisecond, testRate)
	samples := drainStreamer(t, s)

	if len(samples) == 0 {
		t.Fatal("no samples")
	}
	if v := math.Abs(samples[0][0]); v > 0.01 {
		t.Errorf("first sample %v, want near 0", v)
	}
	if v := math.Abs(samples[len(samples)-1][0]); v > 0.05 {
		t.Errorf("last sample %v, want near 0", v)
	}
}

func TestBuildCueAllKinds(t *testing.T) {
	for cue := Cue(0); cue < cueCount; cue++ {
		s := buildCue(cue, 0.5, testRate)
		if s == nil {
			t.Fatalf("cue %d built nil", cue)
		}
		samples := drainStreamer(t, s)
		if len(samples) == 0 {
			t.Errorf("cue %d produced no audio", cue)
		}
	}
}

func TestZeroVolumeSilent(t *testing.T) {
	osc := newOscillator(440, 440, 20*time.Millisecond, testRate)
	s := newVolume(osc, 0)
	for _, sm := range drainStreamer(t, s) {
		if sm[0] != 0 || sm[1] != 0 {
			t.Fatalf("zero volume leaked audio: %v", sm)
		}
	}
}
