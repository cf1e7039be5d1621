package database

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file source driver

	"github.com/mapsee-lab/placesync/internal/logger"
)

// RunMigrations applies all pending migrations.
func RunMigrations(cfg Config, migrationsDir string, log logger.Logger) error {
	m, cleanup, err := newMigrator(cfg, migrationsDir)
	if err != nil {
		return err
	}
	defer cleanup()

	if upErr := m.Up(); upErr != nil {
		if errors.Is(upErr, migrate.ErrNoChange) {
			log.Info("No pending migrations",
				logger.String("migrations_path", migrationsDir),
			)
			return nil
		}
		return fmt.Errorf("run migrations: %w", upErr)
	}

	log.Info("Migrations applied successfully",
		logger.String("migrations_path", migrationsDir),
	)
	return nil
}

// MigrateDown rolls back the given number of migrations, at least one.
func MigrateDown(cfg Config, migrationsDir string, steps int, log logger.Logger) error {
	m, cleanup, err := newMigrator(cfg, migrationsDir)
	if err != nil {
		return err
	}
	defer cleanup()

	if steps <= 0 {
		steps = 1
	}

	if downErr := m.Steps(-steps); downErr != nil {
		if errors.Is(downErr, migrate.ErrNoChange) {
			log.Info("No migrations to roll back",
				logger.String("migrations_path", migrationsDir),
			)
			return nil
		}
		return fmt.Errorf("rollback migrations: %w", downErr)
	}

	log.Info("Migrations rolled back",
		logger.String("migrations_path", migrationsDir),
		logger.Int("steps", steps),
	)
	return nil
}

func newMigrator(cfg Config, migrationsDir string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database connection: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create postgres driver: %w", err)
	}

	if absPath, absErr := filepath.Abs(migrationsDir); absErr == nil {
		migrationsDir = absPath
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsDir),
		"postgres",
		driver,
	)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return m, func() { db.Close() }, nil
}
