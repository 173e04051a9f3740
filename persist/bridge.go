package persist

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/mixer"
)

// Bridge moves mixer snapshots in and out of a KeyValue store
// Save never blocks on I/O: a background writer persists the latest pending
// snapshot and bursts of saves collapse into one write
type Bridge struct {
	kv  KeyValue
	key string

	mu      sync.Mutex
	pending *mixer.Snapshot
	closed  bool

	writeMu sync.Mutex // Held across take-and-write so Flush observes completed writes

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// NewBridge starts the background writer for kv under the snapshot key
func NewBridge(kv KeyValue) *Bridge {
	b := &Bridge{
		kv:   kv,
		key:  constant.SnapshotKey,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	b.wg.Add(1)
	go b.writeLoop()
	return b
}

// Load reads the stored snapshot; false means start from defaults
// Errors are logged and treated as absent
func (b *Bridge) Load() (mixer.Snapshot, bool) {
	data, ok, err := b.kv.Get(b.key)
	if err != nil {
		log.Printf("persist: failed to load %s: %v", b.key, err)
		return mixer.Snapshot{}, false
	}
	if !ok {
		return mixer.Snapshot{}, false
	}

	var snap mixer.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("persist: failed to decode %s: %v", b.key, err)
		return mixer.Snapshot{}, false
	}
	return snap, true
}

// Save queues snap for writing; a newer Save before the write replaces it
func (b *Bridge) Save(snap mixer.Snapshot) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.pending = &snap
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Flush writes any pending snapshot before returning
func (b *Bridge) Flush() {
	b.writePending()
}

// Close flushes and stops the writer; later saves are dropped
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	close(b.done)
	b.wg.Wait()
	b.writePending()
}

func (b *Bridge) writeLoop() {
	defer b.wg.Done()

	for {
		select {
		case <-b.done:
			return
		case <-b.wake:
			b.writePending()
		}
	}
}

func (b *Bridge) writePending() {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	b.mu.Lock()
	snap := b.pending
	b.pending = nil
	b.mu.Unlock()

	if snap == nil {
		return
	}

	data, err := json.Marshal(*snap)
	if err != nil {
		log.Printf("persist: failed to encode %s: %v", b.key, err)
		return
	}
	if err := b.kv.Set(b.key, data); err != nil {
		log.Printf("persist: failed to save %s: %v", b.key, err)
	}
}
