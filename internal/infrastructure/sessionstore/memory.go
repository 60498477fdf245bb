package sessionstore

import (
	"context"
	"sync"

	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/internal/domain/entity"
)

var _ ports.SessionStore = (*MemoryStore)(nil)

// MemoryStore sesión en memoria del proceso. Se pierde al terminar.
type MemoryStore struct {
	mu sync.RWMutex
	s  entity.Session
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Set(_ context.Context, access, refresh, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = entity.Session{AccessToken: access, RefreshToken: refresh, Username: username}
	return nil
}

func (m *MemoryStore) SetAccessToken(_ context.Context, access string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s.Empty() {
		return nil
	}
	m.s.AccessToken = access
	return nil
}

func (m *MemoryStore) AccessToken(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.AccessToken, nil
}

func (m *MemoryStore) RefreshToken(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.RefreshToken, nil
}

func (m *MemoryStore) Username(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.Username, nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = entity.Session{}
	return nil
}
