package constants

import "time"

// Info Panel Text Reveal
const (
	// RevealCharsPerSecond is the typewriter speed of the info panel
	RevealCharsPerSecond = 40.0

	// InfoPanelWidth is the column width reserved for the info panel
	InfoPanelWidth = 34
)

// Status Footer
const (
	// PerfSampleInterval is how often the footer re-samples process CPU/RSS
	PerfSampleInterval = 1 * time.Second
)

// Audio Cue Timing
const (
	SelectCueDuration = 70 * time.Millisecond
	SelectCueFreq     = 880.0

	DiveCueDuration  = 350 * time.Millisecond
	DiveCueStartFreq = 220.0
	DiveCueEndFreq   = 660.0

	ReturnCueDuration  = 350 * time.Millisecond
	ReturnCueStartFreq = 660.0
	ReturnCueEndFreq   = 220.0

	CueAttack  = 5 * time.Millisecond
	CueRelease = 40 * time.Millisecond

	AudioSampleRate = 44100
)
