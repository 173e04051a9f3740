package audio

import (
	"log"
	"sync"
	"time"
)

// PlayerOptions configures a Player
type PlayerOptions struct {
	Source      string
	Volume      float64
	Preload     bool
	OnLoad      func()
	OnLoadError func(error)
}

// Player owns one looping sound and tracks its load status
// After Destroy every method is a no-op and late load callbacks are dropped
type Player struct {
	mu      sync.Mutex
	handle  Handle
	source  string
	loaded  bool
	loading bool

	onLoad      func()
	onLoadError func(error)
}

// NewPlayer opens a looping handle for opts.Source on engine
func NewPlayer(engine Engine, opts PlayerOptions) *Player {
	p := &Player{
		source:      opts.Source,
		onLoad:      opts.OnLoad,
		onLoadError: opts.OnLoadError,
	}

	h := engine.Open(opts.Source, HandleOptions{
		Volume:      clampVolume(opts.Volume),
		Loop:        true,
		OnLoad:      p.handleLoad,
		OnLoadError: p.handleLoadError,
	})

	p.mu.Lock()
	p.handle = h
	p.mu.Unlock()

	if opts.Preload {
		p.Load()
	}
	return p
}

func (p *Player) handleLoad() {
	p.mu.Lock()
	if p.handle == nil {
		p.mu.Unlock()
		return
	}
	p.loaded = true
	p.loading = false
	cb := p.onLoad
	p.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (p *Player) handleLoadError(err error) {
	p.mu.Lock()
	if p.handle == nil {
		p.mu.Unlock()
		return
	}
	p.loading = false
	cb := p.onLoadError
	p.mu.Unlock()

	log.Printf("audio: failed to load sound %s: %v", p.source, err)
	if cb != nil {
		cb(err)
	}
}

// current returns the live handle or nil after Destroy
func (p *Player) current() Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle
}

// Load triggers decoding once; repeated calls while loading or loaded do nothing
func (p *Player) Load() {
	p.mu.Lock()
	h := p.handle
	if h == nil || p.loaded || p.loading {
		p.mu.Unlock()
		return
	}
	p.loading = true
	p.mu.Unlock()

	h.Load()
}

// Play starts looping playback, loading first if needed
func (p *Player) Play() {
	p.mu.Lock()
	h := p.handle
	if h == nil {
		p.mu.Unlock()
		return
	}
	start := !p.loaded && !p.loading
	if start {
		p.loading = true
	}
	p.mu.Unlock()

	if start {
		h.Load()
	}
	h.Play()
}

func (p *Player) Pause() {
	if h := p.current(); h != nil {
		h.Pause()
	}
}

// Stop pauses and resets the playback position
func (p *Player) Stop() {
	if h := p.current(); h != nil {
		h.Stop()
	}
}

// SetVolume applies v clamped to [0, 1]
func (p *Player) SetVolume(v float64) {
	if h := p.current(); h != nil {
		h.SetVolume(clampVolume(v))
	}
}

func (p *Player) Volume() float64 {
	if h := p.current(); h != nil {
		return h.Volume()
	}
	return 0
}

// Fade ramps volume linearly over d
func (p *Player) Fade(from, to float64, d time.Duration) {
	if h := p.current(); h != nil {
		h.Fade(clampVolume(from), clampVolume(to), d)
	}
}

func (p *Player) IsPlaying() bool {
	if h := p.current(); h != nil {
		return h.Playing()
	}
	return false
}

func (p *Player) IsLoaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *Player) IsLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Destroy releases the handle; safe while a load is in flight
func (p *Player) Destroy() {
	p.mu.Lock()
	h := p.handle
	p.handle = nil
	p.loaded = false
	p.loading = false
	p.mu.Unlock()

	if h != nil {
		h.Unload()
	}
}
