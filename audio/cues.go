package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/icariumtech/mothership-console/constants"
)

// Cue identifies one console sound
type Cue int

const (
	CueSelect Cue = iota
	CueDive
	CueReturn
	CueReady
	cueCount
)

// oscillator generates a sine wave whose frequency glides linearly from
// start to end over the duration; equal start/end is a plain tone
type oscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64
	duration  int
	position  int
	rate      beep.SampleRate
}

func newOscillator(startFreq, endFreq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		startFreq: startFreq,
		endFreq:   endFreq,
		duration:  rate.N(duration),
		rate:      rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.startFreq + (o.endFreq-o.startFreq)*t
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping so cues never click
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a streamer with safe volume; log2(0) is -Inf, so zero
// volume goes through Silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// buildCue synthesizes one cue at the given master volume
func buildCue(cue Cue, master float64, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case CueSelect:
		osc := newOscillator(constants.SelectCueFreq, constants.SelectCueFreq, constants.SelectCueDuration, rate)
		shaped := newEnvelope(osc, constants.SelectCueDuration, constants.CueAttack, constants.CueRelease, rate)
		return newVolume(shaped, 0.6*master)

	case CueDive:
		osc := newOscillator(constants.DiveCueStartFreq, constants.DiveCueEndFreq, constants.DiveCueDuration, rate)
		shaped := newEnvelope(osc, constants.DiveCueDuration, constants.CueAttack, constants.CueRelease, rate)
		return newVolume(shaped, 0.8*master)

	case CueReturn:
		osc := newOscillator(constants.ReturnCueStartFreq, constants.ReturnCueEndFreq, constants.ReturnCueDuration, rate)
		shaped := newEnvelope(osc, constants.ReturnCueDuration, constants.CueAttack, constants.CueRelease, rate)
		return newVolume(shaped, 0.8*master)

	case CueReady:
		// Two-voice chime, octave apart
		fund := newOscillator(660, 660, constants.SelectCueDuration*2, rate)
		over := newOscillator(1320, 1320, constants.SelectCueDuration*2, rate)
		mixed := beep.Mix(
			newVolume(newEnvelope(fund, constants.SelectCueDuration*2, constants.CueAttack, constants.CueRelease*2, rate), 0.7),
			newVolume(newEnvelope(over, constants.SelectCueDuration*2, constants.CueAttack, constants.CueRelease*2, rate), 0.3),
		)
		return newVolume(mixed, 0.5*master)
	}
	return nil
}
