// Package cache opens the client's local sqlite database and applies the
// embedded migrations. The database holds only disposable cached data; it can
// be deleted at any time.
package cache

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/watchb/internal/client/migrations"
	"github.com/pressly/goose/v3"
)

// InitDatabase opens (creating if necessary) the sqlite database at dsn and
// migrates it to the latest schema.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
