package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-league-portal/internal/domain/session"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]session.Session)}
}

func (r *SessionRepository) Get(_ context.Context, token string) (session.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.sessions[token]
	return item, ok, nil
}

func (r *SessionRepository) Upsert(_ context.Context, item session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[item.Token] = item
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	return nil
}

func (r *SessionRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, item := range r.sessions {
		if item.Expired(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}
