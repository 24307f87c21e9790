package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/unitrack/portal/core/session"
	"github.com/unitrack/portal/storage/sessionstore"
)

func newService(ttl time.Duration) session.ServiceInterface {
	return session.NewService(sessionstore.NewInMem(), ttl)
}

func TestServiceBeginGet(t *testing.T) {
	ctx := context.Background()
	svc := newService(time.Hour)

	sess, err := svc.Begin(ctx, 7, "Rita Banda", "rita@unitrack.test", session.RoleStudent)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if sess.ID == "" {
		t.Error("expected a session ID")
	}
	if !sess.IsStudent() {
		t.Errorf("expected STUDENT role, got %q", sess.Role)
	}
	if !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Errorf("expected expiry after creation; created=%v expires=%v", sess.CreatedAt, sess.ExpiresAt)
	}

	got, err := svc.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != 7 || got.Email != "rita@unitrack.test" {
		t.Errorf("got %+v", got)
	}
}

func TestServiceBeginRejectsUnknownRole(t *testing.T) {
	svc := newService(time.Hour)
	if _, err := svc.Begin(context.Background(), 1, "X", "x@unitrack.test", "JANITOR"); err == nil {
		t.Error("expected an error for an unknown role")
	}
}

func TestServiceGetEvictsExpired(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.NewInMem()
	svc := session.NewService(store, -time.Minute) // already expired at creation

	sess, err := svc.Begin(ctx, 1, "X", "x@unitrack.test", session.RoleAdmin)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	if _, err := svc.Get(ctx, sess.ID); err != session.ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	// the expired row must be gone, not just masked
	if _, err := store.GetSession(ctx, sess.ID); err != session.ErrNotFound {
		t.Errorf("expected eviction from the store, got %v", err)
	}
}

func TestServiceEnd(t *testing.T) {
	ctx := context.Background()
	svc := newService(time.Hour)

	sess, err := svc.Begin(ctx, 1, "X", "x@unitrack.test", session.RoleFaculty)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := svc.End(ctx, sess.ID); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, err := svc.Get(ctx, sess.ID); err != session.ErrNotFound {
		t.Errorf("expected ErrNotFound after End, got %v", err)
	}
	// ending an already-ended session is a no-op
	if err := svc.End(ctx, sess.ID); err != nil {
		t.Errorf("expected nil on double End, got %v", err)
	}
}

func TestServicePurge(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.NewInMem()

	now := time.Now().UTC()
	stale := session.Session{ID: "stale", UserID: 1, Role: session.RoleStudent, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	live := session.Session{ID: "live", UserID: 2, Role: session.RoleStudent, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	for _, s := range []session.Session{stale, live} {
		if err := store.SaveSession(ctx, s); err != nil {
			t.Fatalf("SaveSession: %v", err)
		}
	}

	svc := session.NewService(store, time.Hour)
	n, err := svc.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged session, got %d", n)
	}
	if _, err := store.GetSession(ctx, "live"); err != nil {
		t.Errorf("live session should survive a purge: %v", err)
	}
}
