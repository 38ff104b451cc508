package movies

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/watchb/internal/client/models"
	"github.com/dmitrijs2005/watchb/internal/dbx"
)

// maxCachedMovies bounds the cache size; the oldest rows are pruned on save.
const maxCachedMovies = 100

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.Movie, time.Time, error) {
	var data []byte
	var fetchedAt int64

	err := r.db.QueryRowContext(ctx,
		`SELECT data, fetched_at FROM movies WHERE id = ?`, id,
	).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to get movie %d: %w", id, err)
	}

	var movie models.Movie
	if err := json.Unmarshal(data, &movie); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode cached movie %d: %w", id, err)
	}
	return &movie, time.Unix(fetchedAt, 0), nil
}

func (r *SQLiteRepository) Save(ctx context.Context, movie models.Movie, fetchedAt time.Time) error {
	data, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("failed to encode movie %d: %w", movie.ID, err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO movies (id, data, fetched_at) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at
		`, movie.ID, data, fetchedAt.Unix())
		if err != nil {
			return fmt.Errorf("failed to save movie %d: %w", movie.ID, err)
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM movies WHERE id NOT IN (
				SELECT id FROM movies ORDER BY fetched_at DESC, id DESC LIMIT ?
			)
		`, maxCachedMovies)
		if err != nil {
			return fmt.Errorf("failed to prune movie cache: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return fmt.Errorf("failed to clear movie cache: %w", err)
	}
	return nil
}

var _ Repository = (*SQLiteRepository)(nil)
