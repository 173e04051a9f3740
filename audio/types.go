package audio

import (
	"errors"
	"time"
)

// Engine opens playback handles for audio sources
type Engine interface {
	Open(src string, opts HandleOptions) Handle
}

// Handle controls one voice of an Engine
// Load is asynchronous; completion is reported through HandleOptions callbacks
// All methods are safe for concurrent use and become no-ops after Unload
type Handle interface {
	Load()
	Play()
	Pause()
	Stop()
	SetVolume(v float64)
	Volume() float64
	Fade(from, to float64, d time.Duration)
	Playing() bool
	Unload()
}

// HandleOptions configures a voice at open time
type HandleOptions struct {
	Volume      float64
	Loop        bool
	OnLoad      func()
	OnLoadError func(error)
}

// Sentinel errors
var (
	ErrNoAudioDevice     = errors.New("no audio output device")
	ErrEngineRunning     = errors.New("audio engine already running")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptySource       = errors.New("audio source has no samples")
)

// clampVolume limits v to [0, 1]
func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
