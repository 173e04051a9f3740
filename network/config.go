package network

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Role defines which side of the relay link this process is
type Role uint8

const (
	RoleNone   Role = iota // Network disabled
	RoleClient             // Connects to server (secondary panel)
	RoleServer             // Accepts connections (mixer owner)
)

// Config holds network configuration
type Config struct {
	// Role determines connection behavior
	Role Role

	// Network is "tcp" or "unix"
	Network string

	// Address to bind (server) or connect to (client)
	Address string

	// Connection limits
	MaxPeers int

	// Timing
	ConnectTimeout    time.Duration
	ReadTimeout       time.Duration // Zero disables read deadlines
	HeartbeatInterval time.Duration // Zero disables heartbeats

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
}

// DefaultConfig returns defaults for a local relay socket
func DefaultConfig() *Config {
	return &Config{
		Role:              RoleNone,
		Network:           "unix",
		Address:           DefaultSocketPath(),
		MaxPeers:          8,
		ConnectTimeout:    2 * time.Second,
		ReadTimeout:       30 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		ReadBufferSize:    64 * 1024,
		WriteBufferSize:   64 * 1024,
		SendQueueSize:     256,
	}
}

// LocalConfig returns config for role at addr
// addr is "unix:/path/to.sock", a bare path, or "host:port"
func LocalConfig(role Role, addr string) *Config {
	cfg := DefaultConfig()
	cfg.Role = role
	if addr != "" {
		cfg.Network, cfg.Address = ParseAddress(addr)
	}
	return cfg
}

// LoadConfig builds config for role, honoring AMBIENCE_RELAY_ADDR
func LoadConfig(role Role) *Config {
	return LocalConfig(role, os.Getenv("AMBIENCE_RELAY_ADDR"))
}

// ParseAddress splits an address into network and dial address
func ParseAddress(addr string) (network, address string) {
	if rest, ok := strings.CutPrefix(addr, "unix:"); ok {
		return "unix", rest
	}
	if strings.HasPrefix(addr, "/") || strings.HasPrefix(addr, ".") {
		return "unix", addr
	}
	return "tcp", addr
}

// DefaultSocketPath returns the per-user relay socket location
func DefaultSocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "ambience.sock")
}
