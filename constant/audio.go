package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate  = 44100
	AudioChannels    = 2
	AudioPrecision   = 2 // bytes per sample in decoded buffers
	ResampleQuality  = 4
	AudioBufferDelay = 100 * time.Millisecond
)

// Fade Timing
const (
	// FadeStepInterval is the volume update period of a linear fade
	FadeStepInterval = 20 * time.Millisecond
)
