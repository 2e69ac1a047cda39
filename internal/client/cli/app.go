package cli

import (
	"bufio"
	"context"
	"os"

	"remindcli/internal/client/api"
	"remindcli/internal/client/config"
	"remindcli/internal/client/repositories/tokens"
	"remindcli/internal/client/services"
	"remindcli/internal/client/session"
	"remindcli/internal/client/storage"
	"remindcli/internal/logging"
)

// App is the interactive reminder client. It owns the wired service graph:
// local token store, session state, the HTTP transport, and the guard that
// decides whether a command may run.
type App struct {
	config    *config.Config
	log       logging.Logger
	auth      services.AuthService
	reminders services.ReminderService
	state     *session.State
	guard     *session.Guard
	reader    *bufio.Reader
}

// NewApp wires the application from configuration: opens (and migrates) the
// local database, hydrates session state from it, and connects the REST
// transport. The session is not validated here; the guard does that lazily
// before the first protected command.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.New(os.Stderr, c.LogLevel)

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "initializing database", "error", err)
		return nil, err
	}

	store := tokens.NewSQLiteRepository(db)
	state := session.NewState(store)
	if err := state.Hydrate(ctx); err != nil {
		log.Warn(ctx, "hydrating session state", "error", err)
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, log)

	auth := services.NewAuthService(apiClient, state, store, log)
	reminders := services.NewReminderService(apiClient, state, log)
	guard := session.NewGuard(state, auth, log)

	return &App{
		config:    c,
		log:       log,
		auth:      auth,
		reminders: reminders,
		state:     state,
		guard:     guard,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.state.Snapshot().Authenticated
}

// ensureSession runs the guard and reports whether the caller may proceed.
// When the guard ends up redirecting, the user is told to log in.
func (a *App) ensureSession(ctx context.Context) bool {
	if a.guard.Ensure(ctx) != session.StateAuthenticated {
		printlnFn("Not logged in. Use 'login' or 'register' first.")
		return false
	}
	return true
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.auth.Close(); err != nil {
			a.log.Warn(ctx, "closing transport", "error", err)
		}
	}()
	a.Root(ctx)
}
