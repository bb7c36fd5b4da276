// Package bootstrap installs and opens the local database: on first launch
// it copies the pre-seeded product bundle from the application assets, or,
// when no seed asset is present, creates an empty database and executes the
// embedded schema script. Either way, goose migrations then create and
// upgrade the per-user application tables.
package bootstrap

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"nutridiary/internal/bootstrap/migrations"
	"nutridiary/internal/filex"
	"nutridiary/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the embedded product bundle schema script. The seed bundle
// builder applies it to a fresh database before inserting products.
func Schema() string {
	return schemaSQL
}

// DSN builds the sqlite connection string for the given database file.
// Foreign keys are enforced per connection; the busy timeout covers the rare
// case of a second process holding the file.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

// EnsureDatabase makes sure the database file at dbPath exists and is up to
// date, then returns an open handle.
//
// seedPath may be empty; a missing seed asset is not an error, the embedded
// schema script is executed instead.
func EnsureDatabase(ctx context.Context, dbPath, seedPath string, log logging.Logger) (*sql.DB, error) {
	fresh := !filex.FileExists(dbPath)
	seeded := false

	if fresh && seedPath != "" && filex.FileExists(seedPath) {
		if err := filex.CopyFile(seedPath, dbPath); err != nil {
			return nil, fmt.Errorf("install seed database: %w", err)
		}
		seeded = true
		log.Info(ctx, "seed database installed", "from", seedPath, "to", dbPath)
	}

	db, err := sql.Open("sqlite", DSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if !seeded {
		if fresh {
			log.Warn(ctx, "seed asset not found, applying embedded schema", "db", dbPath)
		}
		if err := ExecScript(ctx, db, schemaSQL); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema script: %w", err)
		}
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	log.Info(ctx, "database ready", "path", dbPath, "seeded", seeded)
	return db, nil
}

// ExecScript executes every statement of a multi-statement SQL script,
// including trigger bodies, in order.
func ExecScript(ctx context.Context, db *sql.DB, script string) error {
	for _, stmt := range SplitStatements(script) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
