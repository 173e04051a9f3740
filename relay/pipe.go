package relay

import (
	"context"
	"sync"
)

type pipeKind uint8

const (
	pipePublish pipeKind = iota
	pipeRequest
	pipeReply
)

type pipeMessage struct {
	kind    pipeKind
	topic   string
	id      uint64
	payload []byte
	err     error
}

type pipeReplyResult struct {
	payload []byte
	err     error
}

// PipeEnd is one side of an in-process channel pair
// Each end delivers inbound messages in order on its own goroutine
type PipeEnd struct {
	peer     *PipeEnd
	handlers *handlerSet

	mu      sync.Mutex
	inbox   []pipeMessage
	closed  bool
	pending map[uint64]chan pipeReplyResult
	nextID  uint64

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// NewPipe returns two connected channel ends
func NewPipe() (*PipeEnd, *PipeEnd) {
	a, b := newPipeEnd(), newPipeEnd()
	a.peer, b.peer = b, a
	return a, b
}

func newPipeEnd() *PipeEnd {
	e := &PipeEnd{
		handlers: newHandlerSet(),
		pending:  make(map[uint64]chan pipeReplyResult),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	e.wg.Add(1)
	go e.deliverLoop()
	return e
}

// enqueue appends to the inbox; false if this end is closed
func (e *PipeEnd) enqueue(m pipeMessage) bool {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false
	}
	e.inbox = append(e.inbox, m)
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
	return true
}

func (e *PipeEnd) deliverLoop() {
	defer e.wg.Done()

	for {
		select {
		case <-e.done:
			return
		case <-e.wake:
		}

		for {
			e.mu.Lock()
			if len(e.inbox) == 0 || e.closed {
				e.mu.Unlock()
				break
			}
			m := e.inbox[0]
			e.inbox = e.inbox[1:]
			e.mu.Unlock()

			e.deliver(m)
		}
	}
}

func (e *PipeEnd) deliver(m pipeMessage) {
	switch m.kind {
	case pipePublish:
		e.handlers.dispatch(m.topic, m.payload)

	case pipeRequest:
		resp, err := e.handlers.respond(m.topic, m.payload)
		e.peer.enqueue(pipeMessage{kind: pipeReply, id: m.id, payload: resp, err: err})

	case pipeReply:
		e.mu.Lock()
		ch, ok := e.pending[m.id]
		delete(e.pending, m.id)
		e.mu.Unlock()
		if ok {
			ch <- pipeReplyResult{payload: m.payload, err: m.err}
		}
	}
}

// Send implements Channel
func (e *PipeEnd) Send(topic string, payload []byte) error {
	if e.isClosed() {
		return ErrClosed
	}
	if !e.peer.enqueue(pipeMessage{kind: pipePublish, topic: topic, payload: clone(payload)}) {
		return ErrNotConnected
	}
	return nil
}

// On implements Channel
func (e *PipeEnd) On(topic string, fn Handler) func() {
	return e.handlers.on(topic, fn)
}

// Handle implements Channel
func (e *PipeEnd) Handle(topic string, fn Responder) {
	e.handlers.handle(topic, fn)
}

// Invoke implements Channel
func (e *PipeEnd) Invoke(ctx context.Context, topic string, payload []byte) ([]byte, error) {
	ch := make(chan pipeReplyResult, 1)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	e.nextID++
	id := e.nextID
	e.pending[id] = ch
	e.mu.Unlock()

	if !e.peer.enqueue(pipeMessage{kind: pipeRequest, topic: topic, id: id, payload: clone(payload)}) {
		e.dropPending(id)
		return nil, ErrNotConnected
	}

	select {
	case r := <-ch:
		return r.payload, r.err
	case <-e.done:
		return nil, ErrClosed
	case <-ctx.Done():
		e.dropPending(id)
		return nil, ctx.Err()
	}
}

func (e *PipeEnd) dropPending(id uint64) {
	e.mu.Lock()
	delete(e.pending, id)
	e.mu.Unlock()
}

func (e *PipeEnd) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close stops delivery on this end; queued messages are discarded
func (e *PipeEnd) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.inbox = nil
	e.pending = make(map[uint64]chan pipeReplyResult)
	e.mu.Unlock()

	close(e.done)
	e.wg.Wait()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
