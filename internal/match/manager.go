package match

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrUnknownMatch is returned for a match ID the manager does not hold.
var ErrUnknownMatch = errors.New("match: unknown match id")

// Manager tracks live matches by ID. Safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]*Match
}

func NewManager() *Manager {
	return &Manager{matches: make(map[uuid.UUID]*Match)}
}

// Create starts a new match from the config and registers it.
func (mgr *Manager) Create(cfg Config) *Match {
	m := New(cfg)
	mgr.mu.Lock()
	mgr.matches[m.ID] = m
	mgr.mu.Unlock()
	return m
}

// Get returns the match with the given ID.
func (mgr *Manager) Get(id uuid.UUID) (*Match, error) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	m, ok := mgr.matches[id]
	if !ok {
		return nil, ErrUnknownMatch
	}
	return m, nil
}

// Remove drops the match from the manager. Removing an unknown ID is
// a no-op.
func (mgr *Manager) Remove(id uuid.UUID) {
	mgr.mu.Lock()
	delete(mgr.matches, id)
	mgr.mu.Unlock()
}

// Len returns the number of registered matches.
func (mgr *Manager) Len() int {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return len(mgr.matches)
}
