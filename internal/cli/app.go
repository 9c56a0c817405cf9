package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/posterm/internal/api"
	"github.com/dmitrijs2005/posterm/internal/config"
	"github.com/dmitrijs2005/posterm/internal/logging"
	"github.com/dmitrijs2005/posterm/internal/router"
	"github.com/dmitrijs2005/posterm/internal/session"
	"github.com/dmitrijs2005/posterm/internal/storage"
	"github.com/dmitrijs2005/posterm/internal/stores"

	_ "modernc.org/sqlite"
)

// App wires the posterm client together: the durable session, the HTTP API
// client, the navigation guard and the per-resource stores.
type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	session   *session.Store
	router    *router.Router
	products  *stores.ProductStore
	settings  *stores.SettingsStore
	analytics *stores.AnalyticsStore
	reader    *bufio.Reader
}

// NewApp opens the local database, restores any persisted session and
// constructs the API client and stores. The session store is both the token
// source for the API client and the auth source for the navigation guard.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	sess := session.New(ctx, db, log)
	rt := router.New(sess)
	sess.SetNavigator(rt)

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, sess, log)
	sess.SetClient(apiClient)

	return &App{
		config:    c,
		log:       log,
		db:        db,
		session:   sess,
		router:    rt,
		products:  stores.NewProductStore(apiClient, log),
		settings:  stores.NewSettingsStore(apiClient, log),
		analytics: stores.NewAnalyticsStore(apiClient, log),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Println("posterm CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		if u := a.session.User(); u != nil {
			fmt.Printf("Session restored for %s\n", u.Username)
		}
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// Close releases the local database handle.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus renders the prompt suffix: the current user and, when the token
// carries an expiry claim, the time the session runs out.
func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	s := u.Username
	if exp := a.session.ExpiresAt(); !exp.IsZero() {
		s = fmt.Sprintf("%s until %s", s, exp.Format("15:04"))
	}
	return fmt.Sprintf("(%s)", s)
}
