package audio

import (
	"sync"
	"time"
)

// SilentEngine tracks playback state without producing sound
// Used when no output device is available so the mixer stays fully usable
type SilentEngine struct{}

// NewSilentEngine creates a silent engine
func NewSilentEngine() *SilentEngine {
	return &SilentEngine{}
}

// Open implements Engine
func (e *SilentEngine) Open(src string, opts HandleOptions) Handle {
	return &silentHandle{opts: opts, volume: clampVolume(opts.Volume)}
}

type silentHandle struct {
	opts HandleOptions

	mu       sync.Mutex
	loaded   bool
	unloaded bool
	playing  bool
	volume   float64
}

// Load completes synchronously
func (h *silentHandle) Load() {
	h.mu.Lock()
	if h.loaded || h.unloaded {
		h.mu.Unlock()
		return
	}
	h.loaded = true
	h.mu.Unlock()

	if h.opts.OnLoad != nil {
		h.opts.OnLoad()
	}
}

func (h *silentHandle) Play() {
	h.Load()
	h.mu.Lock()
	if !h.unloaded {
		h.playing = true
	}
	h.mu.Unlock()
}

func (h *silentHandle) Pause() {
	h.mu.Lock()
	h.playing = false
	h.mu.Unlock()
}

func (h *silentHandle) Stop() {
	h.Pause()
}

func (h *silentHandle) SetVolume(v float64) {
	h.mu.Lock()
	h.volume = clampVolume(v)
	h.mu.Unlock()
}

func (h *silentHandle) Volume() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.volume
}

// Fade jumps to the target level
func (h *silentHandle) Fade(from, to float64, d time.Duration) {
	h.SetVolume(to)
}

func (h *silentHandle) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing
}

func (h *silentHandle) Unload() {
	h.mu.Lock()
	h.unloaded = true
	h.playing = false
	h.mu.Unlock()
}
