// Package server wires configuration, storage and services together and runs
// the gRPC and HTTP endpoints until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/savvysnip/internal/logging"
	"github.com/dmitrijs2005/savvysnip/internal/server/config"
	gs "github.com/dmitrijs2005/savvysnip/internal/server/grpc"
	"github.com/dmitrijs2005/savvysnip/internal/server/httpapi"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/savvysnip/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

// openDB is swapped in tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	userService     *services.UserService
	categoryService *services.CategoryService
	snipService     *services.SnipService
	exportService   *services.ExportService
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := logging.New(c.Logger, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(c, logger, db, repomanager.NewPostgresRepositoryManager()), nil
}

func newApp(c *config.Config, l logging.Logger, db *sql.DB, m repomanager.RepositoryManager) *App {
	return &App{
		config:          c,
		logger:          l,
		db:              db,
		repomanager:     m,
		userService:     services.NewUserService(db, m, c, services.NewLogNotifier(l), l),
		categoryService: services.NewCategoryService(db, m),
		snipService:     services.NewSnipService(db, m),
		exportService:   services.NewExportService(db, m, c),
	}
}

// Run applies pending migrations, then serves until ctx is cancelled, a
// termination signal arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return err
	}

	grpcServer, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.userService, app.categoryService, app.snipService, app.exportService, app.config.SecretKey)
	if err != nil {
		return err
	}
	httpServer := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcServer.Run(gctx) })
	g.Go(func() error { return httpServer.Run(gctx) })

	err = g.Wait()
	app.logger.Info(ctx, "App stopped")
	return err
}
