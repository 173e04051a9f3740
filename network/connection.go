package network

import (
	"bufio"
	"errors"
	"net"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// PeerID uniquely identifies a connected peer; IDs increase in connection order
type PeerID uint32

// Peer errors
var (
	ErrMaxPeers     = errors.New("max peers reached")
	ErrPeerGone     = errors.New("peer sent disconnect")
	ErrLocalClose   = errors.New("closed locally")
	ErrSendOverflow = errors.New("send queue overflow")
)

// goodbyeTimeout bounds how long Shutdown waits for the disconnect frame to flush
const goodbyeTimeout = 100 * time.Millisecond

// Peer is one framed connection
// Each peer runs a read loop and a write loop; Send never blocks
type Peer struct {
	ID   PeerID
	Addr string

	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
	config *Config

	outSeq atomic.Uint32 // Last assigned outbound sequence
	inSeq  atomic.Uint32 // Highest inbound sequence seen

	sendCh chan *Message

	closeCh   chan struct{}
	closeOnce sync.Once
	closeErr  error // Set once before closeCh closes
}

func newPeer(id PeerID, conn net.Conn, cfg *Config) *Peer {
	addr := addrString(conn.RemoteAddr())
	if addr == "" {
		addr = addrString(conn.LocalAddr()) // Unix socket peers have no remote name
	}

	return &Peer{
		ID:      id,
		Addr:    addr,
		conn:    conn,
		reader:  bufio.NewReaderSize(conn, cfg.ReadBufferSize),
		writer:  bufio.NewWriterSize(conn, cfg.WriteBufferSize),
		config:  cfg,
		sendCh:  make(chan *Message, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// Send stamps msg with the next sequence number and queues it
// A full queue closes the peer: relay commands must not be dropped silently
func (p *Peer) Send(msg *Message) (uint32, bool) {
	select {
	case <-p.closeCh:
		return 0, false
	default:
	}

	msg.Seq = p.outSeq.Add(1)
	msg.Ack = p.inSeq.Load()

	select {
	case p.sendCh <- msg:
		return msg.Seq, true
	default:
		p.closeWith(ErrSendOverflow)
		return 0, false
	}
}

// Shutdown sends a disconnect frame, waits briefly for it to flush, then closes
func (p *Peer) Shutdown() {
	bye := NewMessage(MsgDisconnect, nil)
	if _, ok := p.Send(bye); ok {
		select {
		case <-p.closeCh:
		case <-time.After(goodbyeTimeout):
		}
	}
	p.closeWith(ErrLocalClose)
}

// Close disconnects immediately
func (p *Peer) Close() {
	p.closeWith(ErrLocalClose)
}

func (p *Peer) closeWith(err error) {
	p.closeOnce.Do(func() {
		p.closeErr = err
		close(p.closeCh)
		p.conn.Close()
	})
}

// Done is closed when the peer disconnects
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

// Err returns why the peer closed; nil while connected
func (p *Peer) Err() error {
	select {
	case <-p.closeCh:
		return p.closeErr
	default:
		return nil
	}
}

// readLoop decodes frames until the connection fails or the peer says goodbye
// Heartbeats refresh the read deadline and are not delivered
func (p *Peer) readLoop(deliver func(PeerID, *Message)) {
	for {
		if p.config.ReadTimeout > 0 {
			p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))
		}

		msg, err := Decode(p.reader)
		if err != nil {
			p.closeWith(err)
			return
		}

		if msg.Seq > p.inSeq.Load() {
			p.inSeq.Store(msg.Seq)
		}

		switch msg.Type {
		case MsgHeartbeat:
			continue
		case MsgDisconnect:
			p.closeWith(ErrPeerGone)
			return
		}

		deliver(p.ID, msg)
	}
}

// writeLoop flushes queued frames and sends heartbeats while idle
func (p *Peer) writeLoop() {
	var heartbeat <-chan time.Time
	if p.config.HeartbeatInterval > 0 {
		ticker := time.NewTicker(p.config.HeartbeatInterval)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	for {
		var msg *Message
		select {
		case <-p.closeCh:
			return
		case <-heartbeat:
			msg = NewMessage(MsgHeartbeat, nil)
			msg.Seq = p.outSeq.Add(1)
			msg.Ack = p.inSeq.Load()
		case msg = <-p.sendCh:
		}

		if err := msg.Encode(p.writer); err != nil {
			p.closeWith(err)
			return
		}
		if err := p.writer.Flush(); err != nil {
			p.closeWith(err)
			return
		}
		if msg.Type == MsgDisconnect {
			p.closeWith(ErrLocalClose)
			return
		}
	}
}

// PeerManager tracks connected peers and fans callbacks out to the transport owner
type PeerManager struct {
	mu     sync.RWMutex
	peers  map[PeerID]*Peer
	nextID atomic.Uint32
	config *Config

	onConnect    func(PeerID)
	onDisconnect func(PeerID, error)
	onMessage    func(PeerID, *Message)
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config) *PeerManager {
	return &PeerManager{
		peers:  make(map[PeerID]*Peer),
		config: cfg,
	}
}

// SetHandlers configures callbacks; must be called before connections arrive
// onDisconnect receives the close reason: ErrPeerGone, ErrLocalClose, or the I/O error
func (pm *PeerManager) SetHandlers(
	onConnect func(PeerID),
	onDisconnect func(PeerID, error),
	onMessage func(PeerID, *Message),
) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
	pm.onMessage = onMessage
}

// AddConnection registers conn and starts its I/O loops
func (pm *PeerManager) AddConnection(conn net.Conn) (PeerID, error) {
	pm.mu.Lock()
	if len(pm.peers) >= pm.config.MaxPeers {
		pm.mu.Unlock()
		conn.Close()
		return 0, ErrMaxPeers
	}

	id := PeerID(pm.nextID.Add(1))
	peer := newPeer(id, conn, pm.config)
	pm.peers[id] = peer
	onConnect := pm.onConnect
	pm.mu.Unlock()

	// Connect fires before the read loop so it precedes any message from the peer
	if onConnect != nil {
		onConnect(id)
	}

	go peer.readLoop(pm.deliver)
	go peer.writeLoop()
	go pm.monitor(peer)

	return id, nil
}

func (pm *PeerManager) deliver(id PeerID, msg *Message) {
	pm.mu.RLock()
	onMessage := pm.onMessage
	pm.mu.RUnlock()

	if onMessage != nil {
		onMessage(id, msg)
	}
}

// monitor removes the peer once it closes and reports the reason
func (pm *PeerManager) monitor(peer *Peer) {
	<-peer.Done()

	pm.mu.Lock()
	delete(pm.peers, peer.ID)
	onDisconnect := pm.onDisconnect
	pm.mu.Unlock()

	if onDisconnect != nil {
		onDisconnect(peer.ID, peer.Err())
	}
}

// Send transmits to one peer and returns the assigned sequence number
func (pm *PeerManager) Send(id PeerID, msg *Message) (uint32, bool) {
	pm.mu.RLock()
	peer, ok := pm.peers[id]
	pm.mu.RUnlock()

	if !ok {
		return 0, false
	}
	return peer.Send(msg)
}

// Broadcast sends a copy of msg to every peer
func (pm *PeerManager) Broadcast(msg *Message) {
	pm.mu.RLock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, peer := range pm.peers {
		peers = append(peers, peer)
	}
	pm.mu.RUnlock()

	for _, peer := range peers {
		clone := *msg
		peer.Send(&clone)
	}
}

// PeerIDs returns connected peer IDs in connection order
func (pm *PeerManager) PeerIDs() []PeerID {
	pm.mu.RLock()
	ids := make([]PeerID, 0, len(pm.peers))
	for id := range pm.peers {
		ids = append(ids, id)
	}
	pm.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// PeerCount returns current connected peer count
func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close says goodbye to every peer in parallel and waits for them to close
func (pm *PeerManager) Close() {
	pm.mu.Lock()
	peers := pm.peers
	pm.peers = make(map[PeerID]*Peer)
	pm.mu.Unlock()

	var wg sync.WaitGroup
	for _, peer := range peers {
		wg.Add(1)
		go func(p *Peer) {
			defer wg.Done()
			p.Shutdown()
		}(peer)
	}
	wg.Wait()
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}

// dial establishes a connection for the configured network
func dial(cfg *Config) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	return dialer.Dial(cfg.Network, cfg.Address)
}
