package relay

import (
	"sync"
)

// handlerSet is the topic registry shared by channel implementations
type handlerSet struct {
	mu         sync.RWMutex
	handlers   map[string][]handlerEntry
	responders map[string]Responder
	nextID     int
}

type handlerEntry struct {
	id int
	fn Handler
}

func newHandlerSet() *handlerSet {
	return &handlerSet{
		handlers:   make(map[string][]handlerEntry),
		responders: make(map[string]Responder),
	}
}

func (hs *handlerSet) on(topic string, fn Handler) func() {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	hs.nextID++
	id := hs.nextID
	hs.handlers[topic] = append(hs.handlers[topic], handlerEntry{id: id, fn: fn})

	return func() {
		hs.mu.Lock()
		defer hs.mu.Unlock()

		entries := hs.handlers[topic]
		for i, e := range entries {
			if e.id == id {
				hs.handlers[topic] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

func (hs *handlerSet) handle(topic string, fn Responder) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	if fn == nil {
		delete(hs.responders, topic)
		return
	}
	hs.responders[topic] = fn
}

// dispatch runs every handler for topic outside the lock
func (hs *handlerSet) dispatch(topic string, payload []byte) {
	hs.mu.RLock()
	entries := hs.handlers[topic]
	hs.mu.RUnlock()

	for _, e := range entries {
		e.fn(payload)
	}
}

// respond runs the responder for topic
func (hs *handlerSet) respond(topic string, payload []byte) ([]byte, error) {
	hs.mu.RLock()
	fn := hs.responders[topic]
	hs.mu.RUnlock()

	if fn == nil {
		return nil, ErrNoResponder
	}
	return fn(payload)
}
