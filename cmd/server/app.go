package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/weeklisthq/weeklist-api/internal/config"
	"github.com/weeklisthq/weeklist-api/internal/platform/postgres"
	"github.com/weeklisthq/weeklist-api/internal/service"
	"github.com/weeklisthq/weeklist-api/internal/service/auth"
	"github.com/weeklisthq/weeklist-api/internal/store"
	"github.com/weeklisthq/weeklist-api/internal/sweep"
	"github.com/weeklisthq/weeklist-api/migrations"
)

const (
	serverName      = "Week List"
	shutdownTimeout = 10 * time.Second
	dbPingTimeout   = 5 * time.Second
)

// application holds the wired components and the HTTP server.
type application struct {
	cfg     *config.Config
	db      *sql.DB
	server  *http.Server
	sweeper *sweep.Sweeper
	logger  *slog.Logger
}

// newApplication connects to the database, runs the migrations and wires
// stores, services, the sweeper and the router.
func newApplication(cfg *config.Config) (*application, error) {
	log := slog.Default()

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	userStore := postgres.NewUserStore(db, log)
	weeklistStore := postgres.NewWeeklistStore(db, log)
	transactor := store.NewSQLTransactor(db)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()

	userService := service.NewUserService(userStore, hasher, verifier, jwtService, log)
	weeklistService := service.NewWeeklistService(weeklistStore, userStore, transactor, cfg.Sweep, log)

	sweeper, err := sweep.NewSweeper(weeklistService, cfg.Sweep.CronSpec, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to schedule expiry sweep: %w", err)
	}

	router := newRouter(routerDeps{
		db:              db,
		jwtService:      jwtService,
		userService:     userService,
		weeklistService: weeklistService,
		logger:          log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &application{
		cfg:     cfg,
		db:      db,
		server:  server,
		sweeper: sweeper,
		logger:  log,
	}, nil
}

// Run starts the sweeper and the HTTP server, then blocks until a shutdown
// signal arrives and the server has drained.
func (a *application) Run() error {
	a.sweeper.Start()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.sweeper.Stop()
		a.db.Close()
		return err
	case sig := <-stop:
		a.logger.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("graceful shutdown failed", "error", err)
	}
	a.sweeper.Stop()

	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}

	a.logger.Info("server stopped")
	return nil
}

// openDatabase opens and verifies the PostgreSQL connection.
func openDatabase(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations brings the schema up to date from the embedded SQL files.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
