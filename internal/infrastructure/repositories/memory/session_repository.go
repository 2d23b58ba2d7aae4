package memory

import (
	"context"
	"sync"
	"time"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"
)

type sessionEntry struct {
	identity  domain.Identity
	expiresAt time.Time
}

// MemorySessionRepository expires sessions lazily on read.
type MemorySessionRepository struct {
	sessions map[string]sessionEntry
	mu       sync.Mutex
	now      func() time.Time
}

func NewMemorySessionRepository() ports.SessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) Get(ctx context.Context, sid string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.sessions[sid]
	if !exists {
		return nil, domain.ErrSessionNotFound
	}
	if r.now().After(entry.expiresAt) {
		delete(r.sessions, sid)
		return nil, domain.ErrSessionNotFound
	}

	identity := entry.identity
	return &identity, nil
}

func (r *MemorySessionRepository) Set(ctx context.Context, sid string, identity *domain.Identity, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sid] = sessionEntry{
		identity:  *identity,
		expiresAt: r.now().Add(ttl),
	}
	return nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sid)
	return nil
}
