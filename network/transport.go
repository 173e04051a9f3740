package network

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAddressInUse is returned when another server already owns a unix socket
var ErrAddressInUse = errors.New("relay address in use")

// acceptBackoff delays the next Accept after a transient failure
const acceptBackoff = 50 * time.Millisecond

// Transport owns the listener (server) or the single upstream connection (client)
// Peer traffic is handed to the callbacks registered with SetHandlers
type Transport struct {
	config   *Config
	listener net.Listener
	peers    *PeerManager

	running atomic.Bool
	done    chan struct{}
	accepts sync.WaitGroup
}

// NewTransport creates a stopped transport
func NewTransport(cfg *Config) *Transport {
	return &Transport{
		config: cfg,
		peers:  NewPeerManager(cfg),
		done:   make(chan struct{}),
	}
}

// SetHandlers configures connection and message callbacks
func (t *Transport) SetHandlers(
	onConnect func(PeerID),
	onDisconnect func(PeerID, error),
	onMessage func(PeerID, *Message),
) {
	t.peers.SetHandlers(onConnect, onDisconnect, onMessage)
}

// Start listens (server) or dials (client); RoleNone is a no-op
// A failed start leaves the transport stopped and restartable
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	switch t.config.Role {
	case RoleServer:
		err = t.listen()
	case RoleClient:
		err = t.connect()
	}

	if err != nil {
		t.running.Store(false)
	}
	return err
}

func (t *Transport) listen() error {
	if t.config.Network == "unix" {
		if err := clearStaleSocket(t.config.Address); err != nil {
			return err
		}
	}

	ln, err := net.Listen(t.config.Network, t.config.Address)
	if err != nil {
		return err
	}
	t.listener = ln

	t.accepts.Add(1)
	go t.acceptLoop(ln)
	return nil
}

// clearStaleSocket removes a socket file left by a crashed server
// A socket that still accepts connections belongs to a live server
func clearStaleSocket(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if conn, err := net.Dial("unix", path); err == nil {
		conn.Close()
		return fmt.Errorf("%w: %s", ErrAddressInUse, path)
	}
	return os.Remove(path)
}

func (t *Transport) acceptLoop(ln net.Listener) {
	defer t.accepts.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-t.done:
				return
			case <-time.After(acceptBackoff):
				continue
			}
		}

		// Over-limit connections are closed by the manager
		t.peers.AddConnection(conn)
	}
}

func (t *Transport) connect() error {
	conn, err := dial(t.config)
	if err != nil {
		return err
	}
	_, err = t.peers.AddConnection(conn)
	return err
}

// Stop closes the listener and says goodbye to every peer
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	close(t.done)
	if t.listener != nil {
		t.listener.Close()
	}
	t.accepts.Wait()
	t.peers.Close()

	return nil
}

// Send transmits to a specific peer and returns the assigned sequence number
func (t *Transport) Send(id PeerID, msg *Message) (uint32, bool) {
	return t.peers.Send(id, msg)
}

// Broadcast sends to all peers
func (t *Transport) Broadcast(msg *Message) {
	t.peers.Broadcast(msg)
}

// Upstream returns the oldest connected peer; for a client this is the server
func (t *Transport) Upstream() (PeerID, bool) {
	ids := t.peers.PeerIDs()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// PeerCount returns connected peer count
func (t *Transport) PeerCount() int {
	return t.peers.PeerCount()
}

// Addr returns the bound listener address, or the configured address before Start
func (t *Transport) Addr() string {
	if t.listener != nil {
		return t.listener.Addr().String()
	}
	return t.config.Address
}

// Config returns the transport configuration
func (t *Transport) Config() *Config {
	return t.config
}

// IsRunning reports whether Start succeeded and Stop has not been called
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}
