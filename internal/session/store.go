// Package session restores the persisted session (token + role label) at
// startup. The login flow writes it; this package only reads and carries it.
package session

import (
	"context"
	"sync"
)

// DefaultRole is assumed when no role label was persisted.
const DefaultRole = "user"

// Store is the client-local persistent storage for the session.
type Store interface {
	Token(ctx context.Context) (string, error)
	Role(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	SetRole(ctx context.Context, role string) error
}

// MemoryStore keeps the session in process memory. Used in tests and when no
// persistent backend is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	role  string
}

func NewMemoryStore(token, role string) *MemoryStore {
	return &MemoryStore{token: token, role: role}
}

func (m *MemoryStore) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) Role(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role, nil
}

func (m *MemoryStore) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) SetRole(_ context.Context, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.role = role
	return nil
}
