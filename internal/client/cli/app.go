package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/poskoadmin/internal/client/api"
	"github.com/dmitrijs2005/poskoadmin/internal/client/config"
	"github.com/dmitrijs2005/poskoadmin/internal/client/credentials"
	"github.com/dmitrijs2005/poskoadmin/internal/client/models"
	"github.com/dmitrijs2005/poskoadmin/internal/client/services"
	"github.com/dmitrijs2005/poskoadmin/internal/client/session"
	"github.com/dmitrijs2005/poskoadmin/internal/logging"
)

// sessionManager is the part of *session.Store the console drives.
type sessionManager interface {
	State() session.State
	IsAuthenticated() bool
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Expire(ctx context.Context)
	RefreshProfile(ctx context.Context) (*models.Profile, error)
}

type tokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	session  sessionManager
	services *services.Services
	tokens   tokenSource
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the credential store, builds the API client and restores the
// persisted session. Close releases the store.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	creds, db, err := credentials.OpenSQLite(ctx, c.StorePath)
	if err != nil {
		logger.Error(ctx, "error initializing credential store", "path", c.StorePath, "error", err)
		return nil, err
	}

	client, err := api.New(c.APIBaseURL, creds,
		api.WithLogger(logger.With("component", "api")),
		api.WithTimeout(c.RequestTimeout),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	svc := services.New(client)

	sess, err := session.New(ctx, svc.Auth, creds, logger.With("component", "session"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		session:  sess,
		services: svc,
		tokens:   creds,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run shows the login prompt when no session was restored, then serves
// commands until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to Posko admin console (type 'help' for commands)")
	a.logger.Debug(ctx, "console started", "api", a.config.APIBaseURL)

	if !a.isLoggedIn() {
		report(ctx, a, a.Login(ctx))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) Expire(ctx context.Context) {
	a.session.Expire(ctx)
}

func (a *App) getStatus() string {
	st := a.session.State()
	if !st.IsAuthenticated || st.User == nil {
		return "(guest)"
	}
	name := st.User.Email
	if name == "" {
		name = st.User.Name
	}
	return fmt.Sprintf("(%s)", name)
}
