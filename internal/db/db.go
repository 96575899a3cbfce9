package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/orgball2608/insta-archiver/internal/migrations"
	"github.com/orgball2608/insta-archiver/pkg/config"
	"github.com/pressly/goose/v3"
)

// MigrationsDir is passed to goose; the migrations are compiled in, so no files are read from it.
const MigrationsDir = "."

// Open connects to the ledger database through lib/pq for goose.
func Open(cfg *config.Config) (*sql.DB, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}

	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// Migrate brings the ledger schema up to date.
func Migrate(cfg *config.Config) error {
	conn, err := Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect for migrations: %w", err)
	}
	defer conn.Close()

	if err := goose.Up(conn, MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
