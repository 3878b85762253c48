package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const dialect = "postgres"

//go:embed *.sql
var FS embed.FS

func setup() error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

func Up(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "migrations.Up"

	logger.Info("Running database migrations...")

	if err := setup(); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", operation, err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

func Down(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "migrations.Down"

	logger.Info("Rolling back last migration...")

	if err := setup(); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%s: failed to rollback migration: %w", operation, err)
	}

	logger.Info("Migration rollback completed")
	return nil
}

func Status(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "migrations.Status"

	logger.Info("Checking migration status...")

	if err := setup(); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if err := goose.StatusContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%s: failed to check migration status: %w", operation, err)
	}
	return nil
}
