// Package auth implements the client-side session lifecycle: obtaining an
// access token, refreshing it proactively before expiry, and tearing the
// session down on logout. The refresh token itself is never seen here; it
// lives in the HTTP client's cookie jar.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/watchb/internal/client/api"
	"github.com/dmitrijs2005/watchb/internal/client/session"
	"github.com/dmitrijs2005/watchb/internal/common"
	"github.com/dmitrijs2005/watchb/internal/logging"
	"golang.org/x/sync/singleflight"
)

const (
	// refreshSafetyMargin is how long before the expected token expiry the
	// proactive refresh fires.
	refreshSafetyMargin = time.Minute

	// DefaultAccessTokenLifetime matches the backend's configured access
	// token lifetime.
	DefaultAccessTokenLifetime = 5 * time.Minute

	// scheduledRefreshTimeout bounds the background refresh request fired
	// by the timer, which has no caller to cancel it.
	scheduledRefreshTimeout = 30 * time.Second
)

// afterFunc is a test seam for time.AfterFunc.
var afterFunc = time.AfterFunc

// Manager orchestrates the token lifecycle against the API client and writes
// results into the session store. It owns the single refresh timer: every
// successful obtain/refresh cancels the previous schedule and installs a new
// one, so at most one timer is live at any moment.
type Manager struct {
	api      api.Client
	store    *session.Store
	log      logging.Logger
	lifetime time.Duration

	mu    sync.Mutex
	timer *time.Timer

	// refreshGroup collapses concurrent Refresh calls (a timer-fired refresh
	// racing a user-triggered one) into a single in-flight request.
	refreshGroup singleflight.Group
}

// NewManager builds a Manager. lifetime is the access-token lifetime hint
// used to schedule proactive refreshes; zero selects the default.
func NewManager(apiClient api.Client, store *session.Store, log logging.Logger, lifetime time.Duration) *Manager {
	if lifetime <= 0 {
		lifetime = DefaultAccessTokenLifetime
	}
	return &Manager{
		api:      apiClient,
		store:    store,
		log:      log.With("component", "auth"),
		lifetime: lifetime,
	}
}

// Obtain exchanges credentials for a fresh token pair. On success the access
// token is committed (store + default bearer header) and a refresh is
// scheduled; on failure nothing is committed and the error propagates.
func (m *Manager) Obtain(ctx context.Context, email, password string) error {
	access, err := m.api.ObtainTokenPair(ctx, email, password)
	if err != nil {
		return fmt.Errorf("obtain token pair: %w", err)
	}
	m.commit(ctx, access)
	return nil
}

// Refresh mints a new access token from the ambient refresh cookie and
// commits it like Obtain. Concurrent calls share one request and one commit.
// On failure (expired/revoked cookie, network) the error propagates; the
// caller decides whether that means "logged out".
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		access, err := m.api.RefreshTokenPair(ctx)
		if err != nil {
			return nil, err
		}
		m.commit(ctx, access)
		return access, nil
	})
	if err != nil {
		// A 401 on refresh means the cookie itself is gone or expired.
		if errors.Is(err, common.ErrUnauthorized) {
			return fmt.Errorf("refresh token pair: %w", common.ErrRefreshTokenExpired)
		}
		return fmt.Errorf("refresh token pair: %w", err)
	}
	return nil
}

// Expire revokes the refresh cookie server-side and resets local session
// state. Used on explicit logout.
func (m *Manager) Expire(ctx context.Context) error {
	if err := m.api.ExpireRefreshToken(ctx); err != nil {
		return fmt.Errorf("expire refresh token: %w", err)
	}
	m.stopTimer()
	m.api.SetBearerToken("")
	m.store.MarkLoggedOut()
	return nil
}

// Login is the interactive flow: obtain a token pair, then hydrate the user
// profile and mark the session authenticated.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.Obtain(ctx, email, password); err != nil {
		return err
	}
	if err := m.hydrateUser(ctx); err != nil {
		return err
	}
	return nil
}

// Bootstrap attempts a silent login at application start: one unconditional
// refresh against the cookie jar. Failure is normal (first visit, expired
// cookie) and is never surfaced; the session just stays unauthenticated.
// Returns whether the session ended up authenticated.
func (m *Manager) Bootstrap(ctx context.Context) bool {
	if err := m.Refresh(ctx); err != nil {
		m.log.Debug(ctx, "silent login skipped", "error", err)
		return false
	}
	if err := m.hydrateUser(ctx); err != nil {
		m.log.Warn(ctx, "silent login: profile hydration failed", "error", err)
		return false
	}
	m.log.Debug(ctx, "silent login succeeded")
	return true
}

// Stop cancels any pending refresh timer. Called on application shutdown.
func (m *Manager) Stop() {
	m.stopTimer()
}

// commit stores the access token, updates the default bearer header, and
// (re)schedules the proactive refresh. This is the only scheduling path.
func (m *Manager) commit(ctx context.Context, access string) {
	m.store.SetToken(access)
	m.api.SetBearerToken(access)
	m.schedule(ctx)
}

func (m *Manager) schedule(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}

	delay := m.lifetime - refreshSafetyMargin
	if delay <= 0 {
		// lifetime shorter than the margin: refresh at half-life
		delay = m.lifetime / 2
	}

	m.timer = afterFunc(delay, m.refreshOnTimer)
	m.log.Debug(ctx, "refresh scheduled", "in", delay)
}

// refreshOnTimer runs in the timer's goroutine. A failed scheduled refresh
// has no caller to report to: the session silently degrades to logged-out.
func (m *Manager) refreshOnTimer() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledRefreshTimeout)
	defer cancel()

	if err := m.Refresh(ctx); err != nil {
		m.log.Warn(ctx, "scheduled refresh failed, session degraded to logged out", "error", err)
		m.api.SetBearerToken("")
		m.store.MarkLoggedOut()
	}
}

func (m *Manager) stopTimer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// hydrateUser decodes the subject id from the committed access token,
// fetches the profile, and flips the session to authenticated. The token is
// committed first, so a brief window exists where the session holds a token
// but no user fields yet.
func (m *Manager) hydrateUser(ctx context.Context) error {
	access := m.store.Snapshot().AccessToken

	userID, err := UserIDFromToken(access)
	if err != nil {
		return err
	}

	user, err := m.api.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch user %d: %w", userID, err)
	}

	m.store.SetUserFull(user)
	m.store.MarkLoggedIn()
	return nil
}
