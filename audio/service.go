package audio

import (
	"log"
	"sync/atomic"
)

// AudioService wraps BeepEngine as a Service
// Handles graceful degradation when no audio device is available
type AudioService struct {
	config   *AudioConfig
	engine   *BeepEngine
	silent   *SilentEngine
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService() *AudioService {
	return &AudioService{
		config: DefaultAudioConfig(),
		silent: NewSilentEngine(),
	}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: *AudioConfig (optional, overrides default)
// A disabled config selects the silent engine
func (s *AudioService) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*AudioConfig); ok && cfg != nil {
			s.config = cfg
		}
	}

	if !s.config.Enabled {
		s.disabled.Store(true)
		return nil
	}

	s.engine = NewBeepEngine(s.config)
	return nil
}

// Start implements Service
// Opens the speaker; falls back to silent mode on failure (no error returned)
func (s *AudioService) Start() error {
	if s.disabled.Load() || s.engine == nil {
		return nil
	}

	if err := s.engine.Start(); err != nil {
		log.Printf("audio: %v (continuing without sound)", err)
		s.disabled.Store(true)
		s.engine = nil
	}
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.engine != nil && s.engine.IsRunning() {
		s.engine.Stop()
	}
	return nil
}

// IsDisabled returns true if sound output is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Config returns the active configuration
func (s *AudioService) Config() *AudioConfig {
	return s.config
}

// Engine returns the engine the mixer should use
// Never nil: the silent engine stands in when audio is disabled
func (s *AudioService) Engine() Engine {
	if s.disabled.Load() || s.engine == nil {
		return s.silent
	}
	return s.engine
}
