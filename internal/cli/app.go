// Package cli implements the interactive diary shell: a small REPL on top
// of the services, with prompt helpers for text, passwords and numbers.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"nutridiary/internal/bootstrap"
	"nutridiary/internal/common"
	"nutridiary/internal/config"
	"nutridiary/internal/logging"
	"nutridiary/internal/models"
	"nutridiary/internal/repositories/repomanager"
	"nutridiary/internal/securestore"
	"nutridiary/internal/services"
)

// App wires the services to the interactive shell and tracks the logged-in
// user.
type App struct {
	config *config.Config
	log    logging.Logger

	db *sql.DB

	auth    *services.AuthService
	goals   *services.GoalsService
	diary   *services.DiaryService
	catalog *services.ProductService
	stats   *services.StatsService
	weight  *services.WeightService

	user   *models.User
	reader *bufio.Reader
	out    io.Writer
}

// NewApp prepares the database and constructs the application.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if _, err := os.Stat(cfg.DataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.DataDir, 0o770); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	db, err := bootstrap.EnsureDatabase(ctx, cfg.DatabasePath, cfg.SeedAssetPath, log)
	if err != nil {
		return nil, err
	}

	store := securestore.New(cfg.DataDir)
	repos := repomanager.NewSQLiteRepositoryManager()

	return &App{
		config:  cfg,
		log:     log,
		db:      db,
		auth:    services.NewAuthService(db, repos, store, cfg.SessionTTL),
		goals:   services.NewGoalsService(db, repos),
		diary:   services.NewDiaryService(db, repos),
		catalog: services.NewProductService(db, repos),
		stats:   services.NewStatsService(db, repos),
		weight:  services.NewWeightService(db, repos),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run resumes a persisted session if one is valid, then hands control to
// the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	user, err := a.auth.Resume(ctx)
	if err == nil {
		a.user = user
		fmt.Fprintf(a.out, "Welcome back, %s!\n", a.displayName())
	} else if !errors.Is(err, common.ErrUnauthorized) {
		a.log.Warn(ctx, "session resume failed", "error", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) displayName() string {
	if a.user == nil {
		return ""
	}
	if a.user.Name != "" {
		return a.user.Name
	}
	return a.user.Email
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.displayName())
}

// currentUser returns the logged-in user id or ErrUnauthorized.
func (a *App) currentUser() (string, error) {
	if a.user == nil {
		return "", common.ErrUnauthorized
	}
	return a.user.ID, nil
}
