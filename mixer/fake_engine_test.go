package mixer

import (
	"sync"
	"time"

	"github.com/lixenwraith/ambience/audio"
)

// fakeEngine records every handle it opens, keyed by source
// Loads never complete unless failOnLoad is set for the source
type fakeEngine struct {
	mu         sync.Mutex
	handles    map[string][]*fakeHandle
	failOnLoad map[string]error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		handles:    make(map[string][]*fakeHandle),
		failOnLoad: make(map[string]error),
	}
}

func (e *fakeEngine) Open(src string, opts audio.HandleOptions) audio.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := &fakeHandle{opts: opts, volume: opts.Volume, failErr: e.failOnLoad[src]}
	e.handles[src] = append(e.handles[src], h)
	return h
}

// handle returns the only handle opened for src, or nil
func (e *fakeEngine) handle(src string) *fakeHandle {
	e.mu.Lock()
	defer e.mu.Unlock()

	hs := e.handles[src]
	if len(hs) == 0 {
		return nil
	}
	return hs[len(hs)-1]
}

func (e *fakeEngine) opened(src string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handles[src])
}

type fakeHandle struct {
	opts    audio.HandleOptions
	failErr error

	mu       sync.Mutex
	loads    int
	playing  bool
	stops    int
	volume   float64
	pushes   []float64
	unloaded bool
}

func (h *fakeHandle) Load() {
	h.mu.Lock()
	h.loads++
	err := h.failErr
	h.mu.Unlock()

	if err != nil && h.opts.OnLoadError != nil {
		h.opts.OnLoadError(err)
	}
}

func (h *fakeHandle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failErr == nil && !h.unloaded {
		h.playing = true
	}
}

func (h *fakeHandle) Pause() {
	h.mu.Lock()
	h.playing = false
	h.mu.Unlock()
}

func (h *fakeHandle) Stop() {
	h.mu.Lock()
	h.playing = false
	h.stops++
	h.mu.Unlock()
}

func (h *fakeHandle) SetVolume(v float64) {
	h.mu.Lock()
	h.volume = v
	h.pushes = append(h.pushes, v)
	h.mu.Unlock()
}

func (h *fakeHandle) Volume() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.volume
}

func (h *fakeHandle) Fade(from, to float64, d time.Duration) {
	h.SetVolume(to)
}

func (h *fakeHandle) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing
}

func (h *fakeHandle) Unload() {
	h.mu.Lock()
	h.unloaded = true
	h.playing = false
	h.mu.Unlock()
}

// takePushes returns and clears recorded SetVolume calls
func (h *fakeHandle) takePushes() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.pushes
	h.pushes = nil
	return p
}
