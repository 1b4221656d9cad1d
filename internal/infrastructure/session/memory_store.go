package session

import (
	"sync"

	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

var _ repository.SessionStore = (*MemoryStore)(nil)

// MemoryStore SessionStore en memoria (tests y uso embebido).
type MemoryStore struct {
	mu    sync.RWMutex
	token string

	sets, clears int
}

// NewMemoryStore crea el store con un token inicial opcional.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.sets++
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.clears++
	return nil
}

func (s *MemoryStore) IsAuthenticated() bool {
	_, ok := s.Get()
	return ok
}

// Writes devuelve cuántas veces se llamó a Set y a Clear.
func (s *MemoryStore) Writes() (sets, clears int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets, s.clears
}
