package sessionstore

import (
	"embed"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// InitGoose points goose at the embedded migrations.
func InitGoose() error {
	goose.SetBaseFS(migrations)
	return errors.Wrap(goose.SetDialect("postgres"), "setting goose dialect")
}

// Migrate brings the session schema up to date.
func Migrate(db *sqlx.DB) error {
	if err := InitGoose(); err != nil {
		return err
	}
	return errors.Wrap(goose.Up(db.DB, "migrations"), "applying migrations")
}
