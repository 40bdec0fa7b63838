package session

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	s         Session
	expiresAt time.Time
}

// MemoryStore — сессии в памяти процесса. Истёкшие записи удаляются при чтении и в Sweep.
type MemoryStore struct {
	mu  sync.Mutex
	m   map[string]memEntry
	now func() time.Time
}

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]memEntry{}, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.m[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.m, id)
		return Session{}, ErrNotFound
	}

	return e.s, nil
}

func (m *MemoryStore) Save(_ context.Context, s Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.m[s.ID] = memEntry{s: s, expiresAt: m.now().Add(ttl)}

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.m, id)

	return nil
}

// Sweep удаляет истёкшие сессии и возвращает их число.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now, n := m.now(), 0
	for id, e := range m.m {
		if !now.Before(e.expiresAt) {
			delete(m.m, id)
			n++
		}
	}

	return n
}

// Len — число записей (включая ещё не вычищенные истёкшие).
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.m)
}

func (m *MemoryStore) Close() error { return nil }
