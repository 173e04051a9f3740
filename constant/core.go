package constant

import "time"

// Event Loop Timing
const (
	// LoopTickInterval is how often the owning loop drains relayed commands and redraws
	LoopTickInterval = 50 * time.Millisecond

	// CommandQueueSize is the fixed capacity of the command ring buffer
	CommandQueueSize = 256

	// CommandBufferMask is the bitmask for fast modulo operations (256 - 1)
	CommandBufferMask = 255
)

// Persistence
const (
	// SnapshotKey is the key-value entry holding the mixer snapshot
	SnapshotKey = "ambientSounds"

	// StoreFileName is the document written by the file-backed key-value store
	StoreFileName = "config.json"
)
