// Package mixer owns per-sound playback state, volume composition and presets
package mixer

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/ambience/audio"
	"github.com/lixenwraith/ambience/catalog"
	"github.com/lixenwraith/ambience/constant"
)

// SoundState is the runtime state of one catalog sound
// player is created on first activation and kept until Destroy
type SoundState struct {
	Active bool
	Volume float64
	player *audio.Player
}

// SoundView is a read-only view of one sound for display
type SoundView struct {
	ID       string
	Label    string
	Category string
	Active   bool
	Volume   float64
	Loaded   bool
	Playing  bool
}

// Store is the mixer state container
// Not safe for concurrent use: one goroutine owns a Store for its lifetime
type Store struct {
	engine audio.Engine

	descriptors map[string]catalog.Sound
	order       []string
	sounds      map[string]*SoundState

	builtin []catalog.Preset
	custom  []catalog.Preset

	master  float64
	playing bool
	current string

	observers []observer
	nextObs   int

	now         func() time.Time
	intN        func(n int) int
	float       func() float64
	onLoadError func(id string, err error)

	destroyed bool
}

type observer struct {
	id int
	fn func(Snapshot)
}

// Option configures a Store at construction
type Option func(*Store)

// WithSounds replaces the catalog sounds the store manages
func WithSounds(sounds []catalog.Sound) Option {
	return func(s *Store) {
		s.setSounds(sounds)
	}
}

// WithPresets replaces the built-in presets
func WithPresets(presets []catalog.Preset) Option {
	return func(s *Store) {
		s.builtin = clonePresets(presets)
	}
}

// WithClock sets the time source used for custom preset IDs
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMasterVolume sets the initial master volume
func WithMasterVolume(v float64) Option {
	return func(s *Store) {
		s.master = clamp(v)
	}
}

// WithLoadErrorHandler receives sound load failures, called from engine goroutines
func WithLoadErrorHandler(fn func(id string, err error)) Option {
	return func(s *Store) {
		s.onLoadError = fn
	}
}

// New creates a store with every sound inactive at the default volume
func New(engine audio.Engine, opts ...Option) *Store {
	s := &Store{
		engine:  engine,
		builtin: catalog.BuiltinPresets(),
		master:  constant.DefaultMasterVolume,
		playing: constant.DefaultIsPlaying,
		now:     time.Now,
		intN:    rand.IntN,
		float:   rand.Float64,
	}
	s.setSounds(catalog.All())

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) setSounds(sounds []catalog.Sound) {
	s.descriptors = make(map[string]catalog.Sound, len(sounds))
	s.sounds = make(map[string]*SoundState, len(sounds))
	s.order = s.order[:0]
	for _, snd := range sounds {
		if _, dup := s.descriptors[snd.ID]; dup {
			continue
		}
		s.descriptors[snd.ID] = snd
		s.sounds[snd.ID] = &SoundState{Volume: constant.DefaultSoundVolume}
		s.order = append(s.order, snd.ID)
	}
}

// Destroy releases every player; the store is inert afterwards
func (s *Store) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	for _, id := range s.order {
		st := s.sounds[id]
		if st.player != nil {
			st.player.Destroy()
			st.player = nil
		}
	}
	s.observers = nil
}

// effective is the volume sent to the engine for a sound
func (s *Store) effective(st *SoundState) float64 {
	return st.Volume * s.master
}

// ensurePlayer returns the sound's player, creating it at the effective volume if absent
// created reports whether the player is new and therefore already at the right volume
func (s *Store) ensurePlayer(id string) (p *audio.Player, created bool) {
	st := s.sounds[id]
	if st.player != nil {
		return st.player, false
	}

	desc := s.descriptors[id]
	st.player = audio.NewPlayer(s.engine, audio.PlayerOptions{
		Source: desc.Source,
		Volume: s.effective(st),
		OnLoadError: func(err error) {
			if s.onLoadError != nil {
				s.onLoadError(id, err)
			}
		},
	})
	return st.player, true
}

// activate marks a sound active at volume and starts it if globally playing
func (s *Store) activate(id string, volume float64) {
	st := s.sounds[id]
	st.Active = true
	st.Volume = clamp(volume)

	p, created := s.ensurePlayer(id)
	if !created {
		p.SetVolume(s.effective(st))
	}
	if s.playing {
		p.Play()
	}
}

// stopAll deactivates and rewinds every sound without notifying
func (s *Store) stopAll() {
	for _, id := range s.order {
		st := s.sounds[id]
		st.Active = false
		if st.player != nil {
			st.player.Stop()
		}
	}
	s.current = ""
}

// Subscribe registers fn to receive a snapshot after every state change
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, o := range append([]observer(nil), s.observers...) {
		o.fn(snap)
	}
}

// MasterVolume returns the mix-wide volume
func (s *Store) MasterVolume() float64 {
	return s.master
}

// IsPlaying returns the global play switch
func (s *Store) IsPlaying() bool {
	return s.playing
}

// CurrentPreset returns the last loaded preset ID or "" when the mix was edited since
func (s *Store) CurrentPreset() string {
	return s.current
}

// CustomPresets returns user presets in creation order
func (s *Store) CustomPresets() []catalog.Preset {
	return clonePresets(s.custom)
}

// AllPresets returns built-in presets followed by custom presets
func (s *Store) AllPresets() []catalog.Preset {
	out := clonePresets(s.builtin)
	return append(out, clonePresets(s.custom)...)
}

// ActiveSoundCount returns the number of active sounds
func (s *Store) ActiveSoundCount() int {
	n := 0
	for _, st := range s.sounds {
		if st.Active {
			n++
		}
	}
	return n
}

// Sound returns a view of one sound
func (s *Store) Sound(id string) (SoundView, bool) {
	st, ok := s.sounds[id]
	if !ok {
		return SoundView{}, false
	}
	return s.view(id, st), true
}

// Sounds returns views of every sound in catalog order
func (s *Store) Sounds() []SoundView {
	out := make([]SoundView, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.view(id, s.sounds[id]))
	}
	return out
}

func (s *Store) view(id string, st *SoundState) SoundView {
	desc := s.descriptors[id]
	v := SoundView{
		ID:       id,
		Label:    desc.Label,
		Category: desc.Category,
		Active:   st.Active,
		Volume:   st.Volume,
	}
	if st.player != nil {
		v.Loaded = st.player.IsLoaded()
		v.Playing = st.player.IsPlaying()
	}
	return v
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clonePresets(in []catalog.Preset) []catalog.Preset {
	out := make([]catalog.Preset, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
