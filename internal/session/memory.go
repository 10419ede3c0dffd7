package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	userID    int
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. A background janitor drops
// expired entries every interval until Close is called.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewMemoryStore(ttl, interval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.janitor(interval)
	return s
}

func (s *MemoryStore) Create(ctx context.Context, userID int) (string, error) {
	sid := uuid.NewString()
	s.mu.Lock()
	s.sessions[sid] = memoryEntry{userID: userID, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return sid, nil
}

func (s *MemoryStore) Get(ctx context.Context, sid string) (int, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok || !s.now().Before(entry.expiresAt) {
		return 0, ErrNotFound
	}
	return entry.userID, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sid string) error {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
	return nil
}

// Close stops the janitor and waits for it to exit.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) janitor(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.prune()
		}
	}
}

func (s *MemoryStore) prune() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for sid, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, sid)
		}
	}
}
