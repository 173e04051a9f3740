package relay

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/ambience/mixer"
)

// Remote is the secondary surface's end of the relay
// Commands are fire-and-forget; state is the most recently received broadcast
type Remote struct {
	ch     Channel
	sender string

	mu        sync.Mutex
	latest    mixer.Snapshot
	hasLatest bool
	listeners []stateListener
	nextID    int

	off func()
}

type stateListener struct {
	id int
	fn func(mixer.Snapshot)
}

// NewRemote subscribes to state broadcasts on ch
func NewRemote(ch Channel) *Remote {
	r := &Remote{
		ch:     ch,
		sender: uuid.NewString(),
	}
	r.off = ch.On(TopicStateUpdate, r.onState)
	return r
}

// ID returns the sender ID stamped on every command
func (r *Remote) ID() string {
	return r.sender
}

func (r *Remote) onState(payload []byte) {
	var snap mixer.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		log.Printf("relay: dropped malformed state: %v", err)
		return
	}
	r.apply(snap)
}

// apply replaces the latest snapshot and notifies listeners
func (r *Remote) apply(snap mixer.Snapshot) {
	r.mu.Lock()
	r.latest = snap
	r.hasLatest = true
	listeners := append([]stateListener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l.fn(snap)
	}
}

// OnState registers fn for every received snapshot and returns a function removing it
func (r *Remote) OnState(fn func(mixer.Snapshot)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, stateListener{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// Latest returns the newest received snapshot
func (r *Remote) Latest() (mixer.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest, r.hasLatest
}

// FetchState asks the host for its snapshot and waits for the reply
func (r *Remote) FetchState(ctx context.Context) (mixer.Snapshot, error) {
	data, err := r.ch.Invoke(ctx, TopicGetState, nil)
	if err != nil {
		return mixer.Snapshot{}, err
	}

	var snap mixer.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return mixer.Snapshot{}, err
	}
	r.apply(snap)
	return snap, nil
}

// send stamps and publishes a command; failures are logged only
func (r *Remote) send(topic string, p commandPayload) bool {
	p.Sender = r.sender
	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("relay: failed to encode %s: %v", topic, err)
		return false
	}
	if err := r.ch.Send(topic, data); err != nil {
		log.Printf("relay: failed to send %s: %v", topic, err)
		return false
	}
	return true
}

func (r *Remote) ToggleSound(id string) {
	r.send(TopicToggleSound, commandPayload{SoundID: id})
}

func (r *Remote) SetSoundVolume(id string, v float64) {
	r.send(TopicSetSoundVolume, commandPayload{SoundID: id, Volume: &v})
}

func (r *Remote) SetMasterVolume(v float64) {
	r.send(TopicSetMasterVolume, commandPayload{Volume: &v})
}

func (r *Remote) TogglePlayPause() {
	r.send(TopicTogglePlayPause, commandPayload{})
}

// LoadPresetByID reports whether the command was handed to the channel
func (r *Remote) LoadPresetByID(id string) bool {
	return r.send(TopicLoadPreset, commandPayload{PresetID: id})
}

func (r *Remote) Shuffle() {
	r.send(TopicShuffle, commandPayload{})
}

func (r *Remote) StopAll() {
	r.send(TopicStopAll, commandPayload{})
}

// RequestState asks the host to broadcast its snapshot
func (r *Remote) RequestState() {
	r.send(TopicRequestState, commandPayload{})
}

// Close stops listening for state
func (r *Remote) Close() {
	if r.off != nil {
		r.off()
		r.off = nil
	}
}
