package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/lixenwraith/ambience/network"
)

// envelope is the wire body of publish and request messages
type envelope struct {
	Topic string          `json:"topic"`
	Body  json.RawMessage `json:"body,omitempty"`
}

// NetChannel runs a Channel over a network transport
// On a server, Send reaches every connected panel; on a client it reaches the server
type NetChannel struct {
	transport *network.Transport
	handlers  *handlerSet

	mu      sync.Mutex
	pending map[uint32]pendingRequest
	closed  bool
}

// pendingRequest waits for a reply; a nil reply means the request was abandoned
type pendingRequest struct {
	peer  network.PeerID
	reply chan *network.Message
}

// NewNetChannel attaches to t; call before t starts so no message is missed
func NewNetChannel(t *network.Transport) *NetChannel {
	c := &NetChannel{
		transport: t,
		handlers:  newHandlerSet(),
		pending:   make(map[uint32]pendingRequest),
	}
	t.SetHandlers(c.onConnect, c.onDisconnect, c.onMessage)
	return c
}

func (c *NetChannel) onConnect(id network.PeerID) {
	log.Printf("relay: peer %d connected", id)
}

// onDisconnect fails requests still waiting on the departed peer
func (c *NetChannel) onDisconnect(id network.PeerID, reason error) {
	log.Printf("relay: peer %d disconnected: %v", id, reason)

	c.mu.Lock()
	defer c.mu.Unlock()
	for seq, req := range c.pending {
		if req.peer == id {
			req.reply <- nil
			delete(c.pending, seq)
		}
	}
}

// onMessage runs on the peer's read goroutine, preserving per-sender order
func (c *NetChannel) onMessage(id network.PeerID, msg *network.Message) {
	switch msg.Type {
	case network.MsgPublish:
		var env envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			log.Printf("relay: dropped malformed message from peer %d: %v", id, err)
			return
		}
		c.handlers.dispatch(env.Topic, env.Body)

	case network.MsgRequest:
		var env envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			c.transport.Send(id, network.NewErrorReply(msg.Seq, err.Error()))
			return
		}
		resp, err := c.handlers.respond(env.Topic, env.Body)
		if err != nil {
			c.transport.Send(id, network.NewErrorReply(msg.Seq, err.Error()))
			return
		}
		c.transport.Send(id, network.NewReply(msg.Seq, resp))

	case network.MsgReply:
		c.mu.Lock()
		req, ok := c.pending[msg.Ref]
		delete(c.pending, msg.Ref)
		c.mu.Unlock()
		if ok {
			req.reply <- msg
		}
	}
}

func encodeEnvelope(topic string, payload []byte) ([]byte, error) {
	env := envelope{Topic: topic}
	if len(payload) > 0 {
		if !json.Valid(payload) {
			return nil, fmt.Errorf("relay: %s payload is not JSON", topic)
		}
		env.Body = payload
	}
	return json.Marshal(env)
}

// Send implements Channel
func (c *NetChannel) Send(topic string, payload []byte) error {
	if c.isClosed() {
		return ErrClosed
	}
	data, err := encodeEnvelope(topic, payload)
	if err != nil {
		return err
	}
	c.transport.Broadcast(network.NewMessage(network.MsgPublish, data))
	return nil
}

// On implements Channel
func (c *NetChannel) On(topic string, fn Handler) func() {
	return c.handlers.on(topic, fn)
}

// Handle implements Channel
func (c *NetChannel) Handle(topic string, fn Responder) {
	c.handlers.handle(topic, fn)
}

// Invoke implements Channel; the request goes to the upstream peer
func (c *NetChannel) Invoke(ctx context.Context, topic string, payload []byte) ([]byte, error) {
	data, err := encodeEnvelope(topic, payload)
	if err != nil {
		return nil, err
	}

	peer, ok := c.transport.Upstream()
	if !ok {
		return nil, ErrNotConnected
	}

	ch := make(chan *network.Message, 1)

	// Held across send so the reply cannot be routed before registration
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	seq, ok := c.transport.Send(peer, network.NewMessage(network.MsgRequest, data))
	if !ok {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	c.pending[seq] = pendingRequest{peer: peer, reply: ch}
	c.mu.Unlock()

	select {
	case reply := <-ch:
		if reply == nil {
			if c.isClosed() {
				return nil, ErrClosed
			}
			return nil, ErrNotConnected
		}
		if reply.Flags&network.FlagError != 0 {
			return nil, errorString(string(reply.Payload))
		}
		return reply.Payload, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, seq)
		c.mu.Unlock()
		return nil, ctx.Err()
	}
}

func (c *NetChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close fails outstanding requests; the transport is owned by its service
func (c *NetChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	for seq, req := range c.pending {
		req.reply <- nil
		delete(c.pending, seq)
	}
	return nil
}

// errorString recovers a comparable sentinel from a transported error message
func errorString(msg string) error {
	for _, sentinel := range []error{ErrNoResponder, ErrNoState, ErrClosed} {
		if msg == sentinel.Error() {
			return sentinel
		}
	}
	return errors.New(msg)
}
