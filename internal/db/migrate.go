package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

const (
	postgresMigrationsDir = "migrations/postgres"
	sqliteMigrationsDir   = "migrations/sqlite"
)

func init() {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
}

// MigratePostgres applies the embedded postgres migrations through a database/sql handle.
func MigratePostgres(ctx context.Context, databaseURL string) error {
	config, err := pgx.ParseConnectionString(databaseURL)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return classify(ErrUnavailable, fmt.Errorf("ping for migrations: %w", err))
	}

	return migrate(ctx, sqldb, "postgres", postgresMigrationsDir)
}

func migrateSqlite(ctx context.Context, sqldb *sql.DB) error {
	return migrate(ctx, sqldb, "sqlite3", sqliteMigrationsDir)
}

func migrate(ctx context.Context, sqldb *sql.DB, dialect, dir string) error {
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqldb, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
