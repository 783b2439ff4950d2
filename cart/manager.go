package cart

import (
	"sync"
)

// Manager hands out one Store per user and keeps it for the life of the
// process. Stores for anonymous sessions get no mirror.
type Manager struct {
	mu     sync.Mutex
	dir    string
	mirror Mirror
	stores map[string]*Store
}

func NewManager(dir string, mirror Mirror) *Manager {
	return &Manager{
		dir:    dir,
		mirror: mirror,
		stores: make(map[string]*Store),
	}
}

// StoreFor returns the cart store owned by userID, creating it on first use.
func (m *Manager) StoreFor(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[userID]; ok {
		return s
	}

	var mirror Mirror
	if userID != "" {
		mirror = m.mirror
	}
	s := NewStore(userID, NewSnapshot(m.dir, userID), mirror)
	m.stores[userID] = s
	return s
}

// Default is the process-wide manager wired by main.
var Default *Manager

// InitManager wires the package-level manager used by the HTTP handlers.
func InitManager(dir string, mirror Mirror) {
	Default = NewManager(dir, mirror)
}
