package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type (
	ServiceInterface interface {
		Begin(ctx context.Context, userID int, name, email, role string) (Session, error)
		Get(ctx context.Context, id string) (Session, error)
		End(ctx context.Context, id string) error
		Purge(ctx context.Context) (int, error)
	}

	Service struct {
		store Store
		ttl   time.Duration
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

// Begin creates and persists a new session; the sole session writer
// together with End.
func (svc *Service) Begin(ctx context.Context, userID int, name, email, role string) (Session, error) {
	if !ValidRole(role) {
		return Session{}, errors.Errorf("unknown role %q", role)
	}
	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(svc.ttl),
	}
	if err := svc.store.SaveSession(ctx, sess); err != nil {
		return Session{}, errors.Wrap(err, "saving session")
	}
	return sess, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Session, error) {
	sess, err := svc.store.GetSession(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(time.Now().UTC()) {
		// lazily evict; expiry is equivalent to absence for callers
		_ = svc.store.DeleteSession(ctx, id)
		return Session{}, ErrExpired
	}
	return sess, nil
}

func (svc *Service) End(ctx context.Context, id string) error {
	if err := svc.store.DeleteSession(ctx, id); err != nil && err != ErrNotFound {
		return errors.Wrap(err, "deleting session")
	}
	return nil
}

// Purge removes expired sessions; run periodically or via the admin CLI.
func (svc *Service) Purge(ctx context.Context) (int, error) {
	return svc.store.DeleteExpiredSessions(ctx, time.Now().UTC())
}
