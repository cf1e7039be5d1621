package main

import (
	"log"

	"github.com/mapsee-lab/placesync/internal/app"
)

// runServe starts the HTTP API server and blocks until shutdown.
func runServe() {
	a, err := app.New(app.Options{
		ConfigPath: getEnv("PLACESYNC_CONFIG_PATH", "config.yml"),
		Version:    version,
	})
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if runErr := a.Run(); runErr != nil {
		log.Fatalf("Application error: %v", runErr)
	}
}
