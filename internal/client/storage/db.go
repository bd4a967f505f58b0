// Package storage opens the client's local sqlite database, applies goose
// migrations, and bundles the repositories built on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/forkahq/forka-cli/internal/client/migrations"
	"github.com/forkahq/forka-cli/internal/client/repositories/postcache"
	"github.com/forkahq/forka-cli/internal/client/repositories/sessiondata"

	_ "modernc.org/sqlite"
)

type Storage struct {
	DB          *sql.DB
	SessionData sessiondata.Repository
	PostCache   postcache.Repository
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &Storage{
		DB:          db,
		SessionData: sessiondata.NewSQLiteRepository(db),
		PostCache:   postcache.NewSQLiteRepository(db),
	}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
