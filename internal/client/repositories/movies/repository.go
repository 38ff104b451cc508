// Package movies persists fetched movie details in the local cache database
// so repeat lookups (and offline sessions) do not hit the API.
package movies

import (
	"context"
	"time"

	"github.com/dmitrijs2005/watchb/internal/client/models"
)

// Repository is the local movie cache.
type Repository interface {
	// Get returns the cached movie and the time it was fetched, or a nil
	// movie when the id is not cached.
	Get(ctx context.Context, id int64) (*models.Movie, time.Time, error)

	// Save stores (or replaces) a movie and prunes the oldest entries
	// beyond the cache capacity.
	Save(ctx context.Context, movie models.Movie, fetchedAt time.Time) error

	// Clear wipes the cache.
	Clear(ctx context.Context) error
}
