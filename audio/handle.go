package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/ambience/constant"
)

type handleState uint8

const (
	stateIdle handleState = iota
	stateLoading
	stateLoaded
	stateFailed
	stateUnloaded
)

// beepHandle is one voice of a BeepEngine
// Streamer chain: buffer -> loop -> gain -> ctrl -> engine mixer
// Lock order: h.mu before engine lock
type beepHandle struct {
	engine *BeepEngine
	path   string
	opts   HandleOptions

	mu       sync.Mutex
	state    handleState
	seeker   beep.StreamSeeker
	gain     *effects.Gain
	ctrl     *beep.Ctrl
	volume   float64
	wantPlay bool
	fadeGen  uint64 // Bumped to cancel a running fade
	held     bool   // Holds a cache reference
}

// Load starts decoding in the background; no-op unless idle or failed
func (h *beepHandle) Load() {
	h.mu.Lock()
	if h.state != stateIdle && h.state != stateFailed {
		h.mu.Unlock()
		return
	}
	h.state = stateLoading
	h.mu.Unlock()

	go h.decode()
}

func (h *beepHandle) decode() {
	buf, err := h.engine.acquire(h.path)

	h.mu.Lock()
	if h.state == stateUnloaded {
		h.mu.Unlock()
		if err == nil {
			h.engine.release(h.path)
		}
		return
	}

	if err != nil {
		h.state = stateFailed
		h.mu.Unlock()
		if h.opts.OnLoadError != nil {
			h.opts.OnLoadError(err)
		}
		return
	}

	h.held = true
	h.seeker = buf.Streamer(0, buf.Len())
	var s beep.Streamer = h.seeker
	if h.opts.Loop {
		s = beep.Loop(-1, h.seeker)
	}
	h.gain = &effects.Gain{Streamer: s, Gain: h.volume - 1}
	h.ctrl = &beep.Ctrl{Streamer: h.gain, Paused: !h.wantPlay}
	h.state = stateLoaded
	h.engine.attach(h.ctrl)
	h.mu.Unlock()

	if h.opts.OnLoad != nil {
		h.opts.OnLoad()
	}
}

// Play resumes playback, loading first if needed
// A play request made while loading takes effect once decoding completes
func (h *beepHandle) Play() {
	h.mu.Lock()
	if h.state == stateUnloaded {
		h.mu.Unlock()
		return
	}
	h.wantPlay = true
	needLoad := h.state == stateIdle || h.state == stateFailed
	if h.state == stateLoaded {
		h.engine.lock()
		h.ctrl.Paused = false
		h.engine.unlock()
	}
	h.mu.Unlock()

	if needLoad {
		h.Load()
	}
}

func (h *beepHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.wantPlay = false
	if h.state == stateLoaded {
		h.engine.lock()
		h.ctrl.Paused = true
		h.engine.unlock()
	}
}

// Stop pauses and rewinds to the start
func (h *beepHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.wantPlay = false
	if h.state != stateLoaded {
		return
	}

	h.engine.lock()
	h.ctrl.Paused = true
	err := h.seeker.Seek(0)
	h.engine.unlock()

	if err != nil {
		log.Printf("audio: rewind %s: %v", h.path, err)
	}
}

// SetVolume applies a linear volume immediately and cancels any fade
func (h *beepHandle) SetVolume(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.fadeGen++
	h.setLevel(clampVolume(v))
}

func (h *beepHandle) Volume() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.volume
}

// Fade ramps volume linearly from 'from' to 'to' over d
func (h *beepHandle) Fade(from, to float64, d time.Duration) {
	from, to = clampVolume(from), clampVolume(to)

	h.mu.Lock()
	if h.state == stateUnloaded {
		h.mu.Unlock()
		return
	}
	h.fadeGen++
	gen := h.fadeGen
	steps := int(d / constant.FadeStepInterval)
	if steps < 1 {
		h.setLevel(to)
		h.mu.Unlock()
		return
	}
	h.setLevel(from)
	h.mu.Unlock()

	go h.runFade(gen, from, to, steps)
}

func (h *beepHandle) runFade(gen uint64, from, to float64, steps int) {
	ticker := time.NewTicker(constant.FadeStepInterval)
	defer ticker.Stop()

	for i := 1; i <= steps; i++ {
		<-ticker.C

		h.mu.Lock()
		if h.fadeGen != gen || h.state == stateUnloaded {
			h.mu.Unlock()
			return
		}
		h.setLevel(from + (to-from)*float64(i)/float64(steps))
		h.mu.Unlock()
	}
}

// setLevel stores volume and pushes it to the gain stage; caller holds h.mu
func (h *beepHandle) setLevel(v float64) {
	h.volume = v
	if h.state == stateLoaded {
		h.engine.lock()
		h.gain.Gain = v - 1
		h.engine.unlock()
	}
}

func (h *beepHandle) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != stateLoaded {
		return false
	}
	h.engine.lock()
	defer h.engine.unlock()
	return !h.ctrl.Paused
}

// Unload detaches the voice from the mixer; in-flight decodes are discarded on arrival
func (h *beepHandle) Unload() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == stateUnloaded {
		return
	}
	h.fadeGen++

	if h.ctrl != nil {
		// A nil streamer makes the mixer drop the ctrl on its next pull
		h.engine.lock()
		h.ctrl.Streamer = nil
		h.engine.unlock()
	}

	if h.held {
		h.engine.release(h.path)
		h.held = false
	}

	h.state = stateUnloaded
	h.ctrl = nil
	h.gain = nil
	h.seeker = nil
	h.wantPlay = false
}
