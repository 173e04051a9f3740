package relay

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/lixenwraith/ambience/event"
	"github.com/lixenwraith/ambience/mixer"
)

// Host is the mixer owner's end of the relay
// Commands arrive on channel goroutines and are queued; Drain applies them on
// the goroutine that owns the mixer
type Host struct {
	ch    Channel
	queue *event.CommandQueue

	mu     sync.RWMutex
	latest []byte // Encoded snapshot of the last broadcast

	offs []func()
}

// NewHost subscribes to every command topic on ch
func NewHost(ch Channel) *Host {
	h := &Host{
		ch:    ch,
		queue: event.NewCommandQueue(),
	}

	routes := map[string]event.CommandType{
		TopicToggleSound:     event.CommandToggleSound,
		TopicSetSoundVolume:  event.CommandSetSoundVolume,
		TopicSetMasterVolume: event.CommandSetMasterVolume,
		TopicTogglePlayPause: event.CommandTogglePlayPause,
		TopicLoadPreset:      event.CommandLoadPreset,
		TopicShuffle:         event.CommandShuffle,
		TopicStopAll:         event.CommandStopAll,
		TopicRequestState:    event.CommandRequestState,
	}
	for topic, typ := range routes {
		h.offs = append(h.offs, ch.On(topic, h.enqueue(typ)))
	}

	ch.Handle(TopicGetState, h.getState)
	return h
}

// enqueue decodes a command body into the queue
func (h *Host) enqueue(typ event.CommandType) Handler {
	return func(payload []byte) {
		var p commandPayload
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &p); err != nil {
				log.Printf("relay: dropped %s with malformed body: %v", typ, err)
				return
			}
		}

		cmd := event.Command{
			Type:     typ,
			SoundID:  p.SoundID,
			PresetID: p.PresetID,
			Sender:   p.Sender,
		}

		switch typ {
		case event.CommandSetSoundVolume, event.CommandSetMasterVolume:
			if p.Volume == nil {
				log.Printf("relay: dropped %s without volume from %s", typ, p.Sender)
				return
			}
			cmd.Volume = *p.Volume
		}

		if h.queue.Push(cmd) {
			log.Printf("relay: command queue full, oldest command dropped (%d total)", h.queue.Dropped())
		}
	}
}

// getState answers a request with the last broadcast snapshot
func (h *Host) getState([]byte) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.latest == nil {
		return nil, ErrNoState
	}
	return h.latest, nil
}

// Pending returns the approximate number of queued commands
func (h *Host) Pending() int {
	return h.queue.Len()
}

// Drain applies queued commands to m in arrival order and returns how many ran
// A state request is answered with a broadcast of m's snapshot
func (h *Host) Drain(m Mixer) int {
	cmds := h.queue.Consume()
	for _, cmd := range cmds {
		log.Printf("relay: %s from %s", cmd.Type, cmd.Sender)

		switch cmd.Type {
		case event.CommandToggleSound:
			m.ToggleSound(cmd.SoundID)
		case event.CommandSetSoundVolume:
			m.SetSoundVolume(cmd.SoundID, cmd.Volume)
		case event.CommandSetMasterVolume:
			m.SetMasterVolume(cmd.Volume)
		case event.CommandTogglePlayPause:
			m.TogglePlayPause()
		case event.CommandLoadPreset:
			m.LoadPresetByID(cmd.PresetID)
		case event.CommandShuffle:
			m.Shuffle()
		case event.CommandStopAll:
			m.StopAll()
		case event.CommandRequestState:
			h.Broadcast(m.Snapshot())
		}
	}
	return len(cmds)
}

// Broadcast publishes snap to the other surface and caches it for get-state
func (h *Host) Broadcast(snap mixer.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("relay: failed to encode state: %v", err)
		return
	}

	h.mu.Lock()
	h.latest = data
	h.mu.Unlock()

	if err := h.ch.Send(TopicStateUpdate, data); err != nil {
		log.Printf("relay: failed to broadcast state: %v", err)
	}
}

// Close unsubscribes from the channel
func (h *Host) Close() {
	for _, off := range h.offs {
		off()
	}
	h.offs = nil
	h.ch.Handle(TopicGetState, nil)
}
