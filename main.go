// Package main is the entry point for the placesync service.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	// version can be set at build time via -ldflags
	version = "dev"
)

func main() {
	// A missing .env is fine; real deployments set the environment.
	_ = godotenv.Load()

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "serve":
		runServe()
	case "migrate":
		runMigrate(os.Args[2:])
	case "version":
		log.Printf("placesync version %s\n", version)
		os.Exit(0)
	case "help", "-h", "--help":
		printUsage()
		os.Exit(0)
	default:
		log.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	log.Println("placesync - place catalog reconciliation service")
	log.Println()
	log.Println("Usage:")
	log.Println("  placesync [command]")
	log.Println()
	log.Println("Commands:")
	log.Println("  serve           Start the HTTP API server (default)")
	log.Println("  migrate up      Apply pending database migrations")
	log.Println("  migrate down    Roll back the last migration")
	log.Println("  version         Print version information")
	log.Println("  help            Show this help message")
	log.Println()
	log.Println("Environment Variables:")
	log.Println("  PLACESYNC_CONFIG_PATH  - Config file path (default: config.yml)")
	log.Println("  PLACESYNC_PORT         - HTTP port override")
	log.Println("  POSTGRES_HOST          - PostgreSQL host")
	log.Println("  POSTGRES_PORT          - PostgreSQL port")
	log.Println("  POSTGRES_USER          - PostgreSQL user")
	log.Println("  POSTGRES_PASSWORD      - PostgreSQL password")
	log.Println("  POSTGRES_DB            - PostgreSQL database")
	log.Println("  REDIS_ADDR             - Redis address")
	log.Println("  REDIS_PASSWORD         - Redis password (optional)")
	log.Println("  CALLBACK_API_KEY       - Webhook API key")
	log.Println("  PUSH_GATEWAY_URL       - Push gateway base URL")
	log.Println("  PUSH_GATEWAY_API_KEY   - Push gateway API key")
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
