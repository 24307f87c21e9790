package sessionstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/unitrack/portal/core/session"
)

type PG struct {
	db *sqlx.DB
}

var _ session.Store = (*PG)(nil)

func NewPG(db *sqlx.DB) *PG {
	return &PG{db: db}
}

type sessionRow struct {
	ID        string    `db:"id"`
	UserID    int       `db:"user_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (r sessionRow) toSession() session.Session {
	return session.Session{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		CreatedAt: r.CreatedAt.UTC(),
		ExpiresAt: r.ExpiresAt.UTC(),
	}
}

func (s *PG) SaveSession(ctx context.Context, sess session.Session) error {
	const q = `
		INSERT INTO sessions (id, user_id, name, email, role, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id, name = EXCLUDED.name, email = EXCLUDED.email,
		    role = EXCLUDED.role, expires_at = EXCLUDED.expires_at`
	_, err := s.db.ExecContext(ctx, q, sess.ID, sess.UserID, sess.Name, sess.Email, sess.Role, sess.CreatedAt, sess.ExpiresAt)
	return errors.Wrap(err, "saving session")
}

func (s *PG) GetSession(ctx context.Context, id string) (session.Session, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row, `SELECT id, user_id, name, email, role, created_at, expires_at FROM sessions WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, errors.Wrap(err, "getting session")
	}
	return row.toSession(), nil
}

func (s *PG) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting session")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (s *PG) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, errors.Wrap(err, "deleting expired sessions")
	}
	n, err := res.RowsAffected()
	return int(n), errors.Wrap(err, "counting deleted sessions")
}
