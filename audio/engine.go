package audio

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ambience/constant"
)

// BeepEngine plays handles through a shared beep mixer on the system speaker
// Before Start the mixer is not attached to any device and can be pulled manually
type BeepEngine struct {
	config *AudioConfig
	format beep.Format
	mixer  *beep.Mixer
	cache  *bufferCache

	running atomic.Bool

	mu sync.Mutex // Serializes mixer mutation; speaker lock is taken too once running
}

// NewBeepEngine creates an engine; the speaker is not touched until Start
func NewBeepEngine(cfg ...*AudioConfig) *BeepEngine {
	config := DefaultAudioConfig()
	if len(cfg) > 0 && cfg[0] != nil {
		config = cfg[0]
	}

	return &BeepEngine{
		config: config,
		format: beep.Format{
			SampleRate:  beep.SampleRate(config.SampleRate),
			NumChannels: constant.AudioChannels,
			Precision:   constant.AudioPrecision,
		},
		mixer: &beep.Mixer{},
		cache: newBufferCache(),
	}
}

// Start opens the speaker and attaches the mixer
func (e *BeepEngine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running.Load() {
		return ErrEngineRunning
	}

	sr := e.format.SampleRate
	if err := speaker.Init(sr, sr.N(e.config.BufferSize)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoAudioDevice, err)
	}

	speaker.Play(e.mixer)
	e.running.Store(true)
	return nil
}

// Stop detaches the mixer and closes the speaker
func (e *BeepEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.CompareAndSwap(true, false) {
		return
	}

	speaker.Clear()
	speaker.Close()
}

// IsRunning returns true if the speaker is attached
func (e *BeepEngine) IsRunning() bool {
	return e.running.Load()
}

// Open implements Engine
// Relative sources resolve against the configured sounds directory
func (e *BeepEngine) Open(src string, opts HandleOptions) Handle {
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.config.SoundsDir, src)
	}

	return &beepHandle{
		engine: e,
		path:   path,
		opts:   opts,
		volume: clampVolume(opts.Volume),
	}
}

// lock guards mixer and streamer fields against the speaker goroutine
func (e *BeepEngine) lock() {
	e.mu.Lock()
	if e.running.Load() {
		speaker.Lock()
	}
}

func (e *BeepEngine) unlock() {
	if e.running.Load() {
		speaker.Unlock()
	}
	e.mu.Unlock()
}

// attach adds a streamer to the mixer
func (e *BeepEngine) attach(s beep.Streamer) {
	e.lock()
	e.mixer.Add(s)
	e.unlock()
}

// pull streams from the mixer directly, used when no speaker is attached
func (e *BeepEngine) pull(samples [][2]float64) int {
	e.lock()
	defer e.unlock()
	n, _ := e.mixer.Stream(samples)
	return n
}

// voices returns the number of streamers held by the mixer
func (e *BeepEngine) voices() int {
	e.lock()
	defer e.unlock()
	return e.mixer.Len()
}

// acquire returns the shared decoded buffer for path
func (e *BeepEngine) acquire(path string) (*beep.Buffer, error) {
	return e.cache.acquire(path, e.decode)
}

// release drops a handle's reference to a decoded buffer
func (e *BeepEngine) release(path string) {
	e.cache.release(path)
}

// decode reads a source fully into a buffer in the engine format
func (e *BeepEngine) decode(path string) (*beep.Buffer, error) {
	streamer, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != e.format.SampleRate {
		s = beep.Resample(constant.ResampleQuality, format.SampleRate, e.format.SampleRate, streamer)
	}

	buf := beep.NewBuffer(e.format)
	buf.Append(s)

	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, path)
	}
	return buf, nil
}
