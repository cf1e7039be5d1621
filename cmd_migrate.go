package main

import (
	"log"
	"strconv"

	"github.com/mapsee-lab/placesync/internal/config"
	"github.com/mapsee-lab/placesync/internal/database"
	"github.com/mapsee-lab/placesync/internal/logger"
)

// runMigrate applies or rolls back schema migrations.
func runMigrate(args []string) {
	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}

	cfg, err := config.Load(getEnv("PLACESYNC_CONFIG_PATH", "config.yml"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	dbCfg := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}
	migrationsDir := getEnv("PLACESYNC_MIGRATIONS_DIR", "migrations")

	switch direction {
	case "up":
		if upErr := database.RunMigrations(dbCfg, migrationsDir, lg); upErr != nil {
			log.Fatalf("Migration failed: %v", upErr)
		}
	case "down":
		steps := 1
		if len(args) > 1 {
			if n, convErr := strconv.Atoi(args[1]); convErr == nil {
				steps = n
			}
		}
		if downErr := database.MigrateDown(dbCfg, migrationsDir, steps, lg); downErr != nil {
			log.Fatalf("Rollback failed: %v", downErr)
		}
	default:
		log.Fatalf("Unknown migrate direction: %s (expected up or down)", direction)
	}
}
