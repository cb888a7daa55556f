package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/TheMistaKrips/autobatya-fullstack/config"
	"github.com/TheMistaKrips/autobatya-fullstack/database"
)

func main() {
	// Command line flags
	var (
		drop = flag.Bool("drop", false, "Drop all tables before migration")
		help = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatal().Err(err).Msg("database connection check failed")
	}

	// Drop tables if requested
	if *drop {
		log.Warn().Msg("dropping all tables")
		if err := database.DropAll(database.DB); err != nil {
			log.Fatal().Err(err).Msg("failed to drop tables")
		}
	}

	// Run AutoMigrate
	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migration")
	}

	log.Info().Msg("migration completed successfully")
}

func showHelp() {
	fmt.Println(`
Database Migration Tool for AutoBatya

Usage:
  go run cmd/migrate/main.go [options]

Options:
  -drop     Drop all tables before migration (WARNING: Data loss!)
  -help     Show this help message

Examples:
  # Run migration (create/update tables)
  go run cmd/migrate/main.go

  # Drop all tables and recreate
  go run cmd/migrate/main.go -drop

Environment:
  Requires .env file or environment variables for database configuration:
  - DB_DRIVER (postgres|sqlite)
  - DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME
  - DB_SQLITE_PATH (sqlite driver)`)
}
