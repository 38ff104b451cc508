package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/watchb/internal/client/api"
	"github.com/dmitrijs2005/watchb/internal/client/auth"
	"github.com/dmitrijs2005/watchb/internal/client/cache"
	"github.com/dmitrijs2005/watchb/internal/client/config"
	"github.com/dmitrijs2005/watchb/internal/client/movies"
	moviesrepo "github.com/dmitrijs2005/watchb/internal/client/repositories/movies"
	"github.com/dmitrijs2005/watchb/internal/client/session"
	"github.com/dmitrijs2005/watchb/internal/client/users"
	"github.com/dmitrijs2005/watchb/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionManager is the slice of the auth manager the CLI needs. The real
// auth.Manager satisfies it; tests can provide a stub.
type sessionManager interface {
	Login(ctx context.Context, email, password string) error
	Bootstrap(ctx context.Context) bool
	Expire(ctx context.Context) error
	Stop()
}

type App struct {
	config  *config.Config
	api     api.Client
	store   *session.Store
	auth    sessionManager
	users   users.Service
	movies  movies.Service
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := cache.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing cache database", "error", err)
		return nil, err
	}

	apiClient, err := api.NewRESTClient(c.BackendHost)
	if err != nil {
		return nil, err
	}

	store := session.NewStore()
	am := auth.NewManager(apiClient, store, log, c.AccessTokenLifetime)
	us := users.NewService(apiClient, store)
	ms := movies.NewService(apiClient, moviesrepo.NewSQLiteRepository(db), log, c.MovieCacheTTL)

	return &App{
		config: c,
		api:    apiClient,
		store:  store,
		auth:   am,
		users:  us,
		movies: ms,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsAuthenticated
}

// getStatus renders the prompt suffix: the username when logged in, "guest"
// otherwise.
func (a *App) getStatus() string {
	state := a.store.Snapshot()
	if state.IsAuthenticated {
		return fmt.Sprintf("(%s)", state.User.Username)
	}
	return "(guest)"
}

// Run attempts a silent login from the saved refresh cookie and starts the
// REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.auth.Stop()

	if a.auth.Bootstrap(ctx) {
		printlnFn(fmt.Sprintf("Welcome back, %s!", a.store.Snapshot().User.Username))
	}

	printlnFn("WatchB CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
