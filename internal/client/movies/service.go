// Package movies provides movie detail browsing on top of the API client and
// the local read-through cache.
package movies

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/watchb/internal/client/api"
	"github.com/dmitrijs2005/watchb/internal/client/models"
	moviesrepo "github.com/dmitrijs2005/watchb/internal/client/repositories/movies"
	"github.com/dmitrijs2005/watchb/internal/logging"
)

// timeNow is a test seam for time.Now.
var timeNow = time.Now

// DefaultCacheTTL is how long a cached movie is considered fresh.
const DefaultCacheTTL = 24 * time.Hour

// Service defines movie browsing operations for the CLI.
type Service interface {
	// Get returns the movie detail, from cache when fresh. A stale cached
	// copy is served when the API is unreachable.
	Get(ctx context.Context, id int64) (models.Movie, error)
}

type service struct {
	api  api.Client
	repo moviesrepo.Repository
	ttl  time.Duration
	log  logging.Logger
}

// NewService builds a movie browsing service. ttl <= 0 selects the default.
func NewService(apiClient api.Client, repo moviesrepo.Repository, log logging.Logger, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		api:  apiClient,
		repo: repo,
		ttl:  ttl,
		log:  log.With("component", "movies"),
	}
}

func (s *service) Get(ctx context.Context, id int64) (models.Movie, error) {
	// cache errors are never fatal to a lookup
	cached, fetchedAt, err := s.repo.Get(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "movie cache read failed", "movie_id", id, "error", err)
		cached = nil
	}

	if cached != nil && timeNow().Sub(fetchedAt) < s.ttl {
		return *cached, nil
	}

	fetched, err := s.api.GetMovie(ctx, id)
	if err != nil {
		if cached != nil {
			s.log.Debug(ctx, "serving stale cached movie", "movie_id", id, "error", err)
			return *cached, nil
		}
		return models.Movie{}, fmt.Errorf("get movie %d: %w", id, err)
	}

	if err := s.repo.Save(ctx, fetched, timeNow()); err != nil {
		s.log.Warn(ctx, "movie cache write failed", "movie_id", id, "error", err)
	}
	return fetched, nil
}
