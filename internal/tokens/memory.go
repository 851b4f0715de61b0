package tokens

import (
	"context"
	"sync"
)

// memoryStore — потокобезопасная реализация в памяти.
// Используется в тестах и в локальном окружении без Redis.
type memoryStore struct {
	mu    sync.RWMutex
	pairs map[string]Pair
}

// NewMemoryStore создаёт пустое хранилище в памяти.
func NewMemoryStore() Store {
	return &memoryStore{pairs: make(map[string]Pair)}
}

func (s *memoryStore) Pair(_ context.Context, sid string) (Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pairs[sid], nil
}

func (s *memoryStore) SaveAccess(_ context.Context, sid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pairs[sid]
	p.Access = token
	s.pairs[sid] = p
	return nil
}

func (s *memoryStore) SaveRefresh(_ context.Context, sid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pairs[sid]
	p.Refresh = token
	s.pairs[sid] = p
	return nil
}

func (s *memoryStore) SavePair(_ context.Context, sid string, p Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pairs[sid] = p
	return nil
}

func (s *memoryStore) Destroy(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pairs, sid)
	return nil
}

func (s *memoryStore) Close() error { return nil }
