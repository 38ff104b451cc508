package movies

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/watchb/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE movies (
  id INTEGER PRIMARY KEY,
  data BLOB NOT NULL,
  fetched_at INTEGER NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_GetMissingReturnsNil(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	movie, _, err := repo.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, movie)
}

func TestSQLiteRepository_SaveAndGetRoundtrip(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	in := models.Movie{
		ID:     42,
		Title:  "The Movie",
		Genres: []string{"drama", "thriller"},
		Credits: []models.Credit{
			{Job: "director", Name: "Someone"},
		},
	}
	fetchedAt := time.Now().Truncate(time.Second)

	require.NoError(t, repo.Save(ctx, in, fetchedAt))

	got, gotAt, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in, *got)
	assert.True(t, gotAt.Equal(fetchedAt))
}

func TestSQLiteRepository_SaveReplacesExisting(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, models.Movie{ID: 1, Title: "old"}, time.Now().Add(-time.Hour)))
	require.NoError(t, repo.Save(ctx, models.Movie{ID: 1, Title: "new"}, time.Now()))

	got, _, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", got.Title)
}

func TestSQLiteRepository_SavePrunesOldest(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Duration(maxCachedMovies+10) * time.Minute)
	for i := 0; i < maxCachedMovies+5; i++ {
		m := models.Movie{ID: int64(i + 1), Title: fmt.Sprintf("m%d", i+1)}
		require.NoError(t, repo.Save(ctx, m, base.Add(time.Duration(i)*time.Minute)))
	}

	var n int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM movies`).Scan(&n))
	assert.Equal(t, maxCachedMovies, n)

	// the oldest entries are gone, the newest survive
	oldest, _, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, oldest)

	newest, _, err := repo.Get(ctx, int64(maxCachedMovies+5))
	require.NoError(t, err)
	assert.NotNil(t, newest)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, models.Movie{ID: 1, Title: "x"}, time.Now()))
	require.NoError(t, repo.Clear(ctx))

	got, _, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}
