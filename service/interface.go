// Package service manages the lifecycle of long-lived process resources
package service

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources: audio output, relay sockets
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - configuration from parsed flags/env
//  3. Start() - open devices, launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	// Return nil or empty slice if no dependencies
	Dependencies() []string

	// Init configures the service from optional args
	// Args are service-specific (*audio.AudioConfig, *network.Config)
	Init(args ...any) error

	// Start begins service operation (launches goroutines if any)
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// Degradable is implemented by services that keep running without their resource
// The audio service falls back to silence; the relay server runs without a socket
type Degradable interface {
	IsDisabled() bool
}
