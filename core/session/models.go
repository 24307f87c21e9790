package session

import (
	"context"
	"errors"
	"time"
)

// Roles as reported by the upstream API.
const (
	RoleStudent = "STUDENT"
	RoleFaculty = "FACULTY"
	RoleAdmin   = "ADMIN"
)

var (
	AllRoles = []string{RoleStudent, RoleFaculty, RoleAdmin}

	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Session is the client-cached identity established at login. It is the
// only cross-screen shared state; it is written by Service.Begin and
// Service.End exclusively and read-only everywhere else.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"` // UTC
	ExpiresAt time.Time `json:"expires_at"` // UTC
}

func (s Session) IsStudent() bool { return s.Role == RoleStudent }
func (s Session) IsFaculty() bool { return s.Role == RoleFaculty }
func (s Session) IsAdmin() bool   { return s.Role == RoleAdmin }

func (s Session) HasRole(roles ...string) bool {
	for _, role := range roles {
		if s.Role == role {
			return true
		}
	}
	return false
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store persists sessions across requests (and portal instances).
type Store interface {
	SaveSession(ctx context.Context, sess Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}
