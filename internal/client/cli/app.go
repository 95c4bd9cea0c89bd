package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/client/client"
	"github.com/dmitrijs2005/savvysnip/internal/client/config"
	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/client/repositories/session"
	"github.com/dmitrijs2005/savvysnip/internal/client/services"
	"github.com/dmitrijs2005/savvysnip/internal/client/viewmodel"
	"github.com/dmitrijs2005/savvysnip/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// exportsDir is created under the working directory on the first export.
const exportsDir = "exports"

type categoryStore interface {
	Create(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Rename(ctx context.Context, id, newName string) error
	Reorder(ctx context.Context, categories []models.Category) error
	Delete(ctx context.Context, category models.Category) error
	Find(ctx context.Context, name string) (*models.Category, error)
}

type snipStore interface {
	Create(ctx context.Context, categoryName, title, code string) (*models.Snip, error)
	List(ctx context.Context, categoryName string) ([]models.Snip, error)
	Update(ctx context.Context, categoryName string, snip models.Snip) error
	Delete(ctx context.Context, categoryName, title, code string, timestamp time.Time) error
	DeleteByID(ctx context.Context, snipID string) error
	Export(ctx context.Context, categoryID string) (*models.Export, error)
}

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	authService   services.AuthService
	categoryStore categoryStore
	snipStore     snipStore
	auth          *viewmodel.AuthModel
	categories    *viewmodel.CategoriesModel
	httpClient    *http.Client
	exportBase    string

	mu   sync.Mutex
	mode Mode

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the client from cfg: logger, local database, gRPC client,
// services and view-models. The stored session, if any, is resumed.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logger, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	sessions := session.NewSQLiteRepository(db)

	apiClient, err := client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.CallTimeout, sessions.UpdateTokens)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, sessions, logger)
	cs := services.NewCategoryStore(apiClient)
	ss := services.NewSnipStore(apiClient)

	a := &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		authService:   as,
		categoryStore: cs,
		snipStore:     ss,
		auth:          viewmodel.NewAuthModel(as),
		categories:    viewmodel.NewCategoriesModel(cs),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}

	if _, err := as.Resume(ctx); err != nil {
		logger.Warn(ctx, "failed to resume session", "error", err)
	}
	if err := a.auth.Load(ctx); err != nil {
		logger.Warn(ctx, "failed to load account", "error", err)
	}

	return a, nil
}

// Close releases the gRPC connection and the local database.
func (a *App) Close(ctx context.Context) error {
	var err error
	if a.authService != nil {
		err = a.authService.Close(ctx)
	}
	if a.db != nil {
		if cerr := a.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.Account() != nil
}

// Run starts the connectivity watcher and the REPL and blocks until the user
// leaves it or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to SavvySnip CLI (type 'help' for commands)")
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "You are not signed in. Use 'login' or 'register'.")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	runREPL(ctx, a, a.getStatus, a.reader)

	cancel()
	wg.Wait()
	return nil
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode between online and offline until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) getStatus() string {
	s := ""
	if acc := a.auth.Account(); acc != nil {
		s = acc.Email + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

type alerter interface {
	ShowAlert() bool
	Message() string
	DismissAlert()
}

// report prints a pending alert of m and returns err unchanged.
func (a *App) report(m alerter, err error) error {
	if m.ShowAlert() {
		fmt.Fprintln(a.out, m.Message())
		m.DismissAlert()
	}
	return err
}
