// Package sessionstore persists portal sessions. The in-memory store
// backs DEV and tests; the Postgres store backs multi-instance
// deployments.
package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/unitrack/portal/core/session"
)

type InMem struct {
	mu    sync.RWMutex
	table map[string]session.Session
}

var _ session.Store = (*InMem)(nil)

func NewInMem() *InMem {
	return &InMem{table: make(map[string]session.Session)}
}

func (s *InMem) SaveSession(_ context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table[sess.ID] = sess
	return nil
}

func (s *InMem) GetSession(_ context.Context, id string) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.table[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (s *InMem) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.table[id]; !ok {
		return session.ErrNotFound
	}
	delete(s.table, id)
	return nil
}

func (s *InMem) DeleteExpiredSessions(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for id, sess := range s.table {
		if sess.Expired(now) {
			delete(s.table, id)
			n++
		}
	}
	return n, nil
}
