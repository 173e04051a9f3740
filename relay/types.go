// Package relay carries mixer commands and state between two UI surfaces
package relay

import (
	"context"
	"errors"

	"github.com/lixenwraith/ambience/mixer"
)

// Topics
const (
	TopicToggleSound     = "ambient-toggle-sound"
	TopicSetSoundVolume  = "ambient-set-sound-volume"
	TopicSetMasterVolume = "ambient-set-master-volume"
	TopicTogglePlayPause = "ambient-toggle-play-pause"
	TopicLoadPreset      = "ambient-load-preset"
	TopicShuffle         = "ambient-shuffle"
	TopicStopAll         = "ambient-stop-all"
	TopicRequestState    = "ambient-request-state"
	TopicStateUpdate     = "ambient-state-update"

	// TopicGetState is request/response: the reply is the latest snapshot
	TopicGetState = "ambient-get-state"
)

// Sentinel errors
var (
	ErrClosed       = errors.New("relay channel closed")
	ErrNoResponder  = errors.New("no responder for topic")
	ErrNotConnected = errors.New("relay not connected")
	ErrNoState      = errors.New("mixer state not yet available")
)

// Handler receives a fire-and-forget message
type Handler func(payload []byte)

// Responder answers a request with exactly one reply
type Responder func(payload []byte) ([]byte, error)

// Channel is a bidirectional message link between two surfaces
// Messages from one sender are delivered in send order; handlers for one
// channel end run sequentially on a delivery goroutine
type Channel interface {
	// Send delivers payload to every handler registered for topic on the other end
	Send(topic string, payload []byte) error

	// On registers a handler and returns a function removing it
	On(topic string, fn Handler) (off func())

	// Invoke sends a request and waits for the single reply
	// Must not be called from a handler of the same channel end
	Invoke(ctx context.Context, topic string, payload []byte) ([]byte, error)

	// Handle sets the responder for requests on topic, replacing any previous one
	Handle(topic string, fn Responder)

	Close() error
}

// Mixer is the command surface the host applies relayed commands to
type Mixer interface {
	ToggleSound(id string)
	SetSoundVolume(id string, v float64)
	SetMasterVolume(v float64)
	TogglePlayPause()
	LoadPresetByID(id string) bool
	Shuffle()
	StopAll()
	Snapshot() mixer.Snapshot
}

// commandPayload is the JSON body of every command topic
type commandPayload struct {
	SoundID  string   `json:"soundId,omitempty"`
	PresetID string   `json:"presetId,omitempty"`
	Volume   *float64 `json:"volume,omitempty"`
	Sender   string   `json:"sender,omitempty"`
}
