package service

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// Hub owns the process services and drives their lifecycle in dependency order
type Hub struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string // Registration order
	sorted  []string // Dependency order, set by InitAll
	started []string // Services whose Start succeeded, for rollback and StopAll
}

type entry struct {
	svc  Service
	args []any
}

// Status describes one registered service
type Status struct {
	Name     string
	Started  bool
	Degraded bool // Running without its resource, see Degradable
}

// NewHub creates an empty service hub
func NewHub() *Hub {
	return &Hub{entries: make(map[string]*entry)}
}

// Register adds svc; args are passed to its Init
func (h *Hub) Register(svc Service, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.entries[name]; exists {
		return fmt.Errorf("service already registered: %s", name)
	}

	h.entries[name] = &entry{svc: svc, args: args}
	h.order = append(h.order, name)
	h.sorted = nil
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.entries[name]
	if !ok {
		return nil, false
	}
	return e.svc, true
}

// InitAll resolves dependencies and initializes every service
// A failed Init stops the services initialized before it
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, err := h.resolve()
	if err != nil {
		return err
	}

	for i, name := range order {
		e := h.entries[name]
		if err := e.svc.Init(e.args...); err != nil {
			h.stopReverse(order[:i])
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
	}

	h.sorted = order
	return nil
}

// StartAll starts services in dependency order
// A failed Start stops the services started before it
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		return fmt.Errorf("services not initialized")
	}

	h.started = h.started[:0]
	for _, name := range h.sorted {
		if err := h.entries[name].svc.Start(); err != nil {
			h.stopReverse(h.started)
			h.started = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops started services in reverse dependency order
// Every service is stopped even if an earlier Stop fails
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopReverse(h.started)
	h.started = nil
}

// stopReverse stops names last to first; caller holds h.mu
func (h *Hub) stopReverse(names []string) {
	for i := len(names) - 1; i >= 0; i-- {
		if err := h.entries[names[i]].svc.Stop(); err != nil {
			log.Printf("service: %s stop failed: %v", names[i], err)
		}
	}
}

// Status reports every service in registration order
func (h *Hub) Status() []Status {
	h.mu.Lock()
	defer h.mu.Unlock()

	started := make(map[string]bool, len(h.started))
	for _, name := range h.started {
		started[name] = true
	}

	out := make([]Status, 0, len(h.order))
	for _, name := range h.order {
		st := Status{Name: name, Started: started[name]}
		if d, ok := h.entries[name].svc.(Degradable); ok {
			st.Degraded = d.IsDisabled()
		}
		out = append(out, st)
	}
	return out
}

// Degraded returns the names of services running without their resource
func (h *Hub) Degraded() []string {
	var names []string
	for _, st := range h.Status() {
		if st.Degraded {
			names = append(names, st.Name)
		}
	}
	return names
}

// resolve orders services so dependencies come first
// Depth-first in registration order; a cycle is reported with its path
func (h *Hub) resolve() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int, len(h.entries))
	order := make([]string, 0, len(h.entries))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, n := range path {
				if n == name {
					start = i
					break
				}
			}
			cycle := append(append([]string(nil), path[start:]...), name)
			return fmt.Errorf("circular service dependency: %s", strings.Join(cycle, " -> "))
		}

		state[name] = visiting
		path = append(path, name)
		for _, dep := range h.entries[name].svc.Dependencies() {
			if _, ok := h.entries[dep]; !ok {
				return fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range h.order {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Names returns all registered service names in registration order
func (h *Hub) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.order...)
}
