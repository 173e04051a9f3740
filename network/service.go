package network

import (
	"log"
	"sync/atomic"
)

// Service wraps Transport as a hub-managed service
type Service struct {
	config    *Config
	transport *Transport

	disabled atomic.Bool
}

// NewService creates a network service (disabled by default)
func NewService() *Service {
	return &Service{
		config: DefaultConfig(),
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
// The transport exists after Init so handlers can be attached before Start
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}

	if s.config.Role == RoleNone {
		s.disabled.Store(true)
		return nil
	}

	s.transport = NewTransport(s.config)
	return nil
}

// Start implements service.Service
// A server that cannot bind keeps the process usable without the relay;
// a client that cannot connect has nothing to do and reports the error
func (s *Service) Start() error {
	if s.disabled.Load() || s.transport == nil {
		return nil
	}

	err := s.transport.Start()
	if err == nil {
		return nil
	}
	if s.config.Role == RoleServer {
		log.Printf("network: relay unavailable on %s: %v (continuing without relay)", s.config.Address, err)
		s.disabled.Store(true)
		return nil
	}
	return err
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.transport != nil {
		return s.transport.Stop()
	}
	return nil
}

// Transport returns the underlying transport, nil when the role is RoleNone
func (s *Service) Transport() *Transport {
	return s.transport
}

// Config returns the active configuration
func (s *Service) Config() *Config {
	return s.config
}

// IsDisabled returns true if the relay link is unavailable
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// IsRunning returns true if network is active
func (s *Service) IsRunning() bool {
	return s.transport != nil && s.transport.IsRunning()
}
