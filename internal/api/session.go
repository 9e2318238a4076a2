package api

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/atelier-lumiere/studio-portal/internal/api/metrics"
	"github.com/atelier-lumiere/studio-portal/internal/core/ports"
	"github.com/atelier-lumiere/studio-portal/internal/core/service"
)

// SessionStore owns one Reconciler per live dashboard session, keyed by the
// session token. A session's state holder is created on login (or lazily
// after a portal restart) and discarded on logout.
type SessionStore struct {
	facade ports.Facade
	log    zerolog.Logger

	mu       sync.Mutex
	sessions map[string]ports.Reconciler
}

func NewSessionStore(facade ports.Facade, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		facade:   facade,
		log:      log,
		sessions: make(map[string]ports.Reconciler),
	}
}

// GetOrCreate returns the session's reconciler, building a fresh one when
// the token is unknown (first login, or a valid token surviving a restart).
func (s *SessionStore) GetOrCreate(token string, scope ports.Scope) ports.Reconciler {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.sessions[token]; ok {
		return rec
	}
	rec := service.NewReconciler(s.facade, scope, s.log)
	s.sessions[token] = rec
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return rec
}

// Drop discards a session's state holder.
func (s *SessionStore) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}
