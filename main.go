package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/TheMistaKrips/autobatya-fullstack/config"
	"github.com/TheMistaKrips/autobatya-fullstack/database"
	"github.com/TheMistaKrips/autobatya-fullstack/web"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed database with sample data")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

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

	// Run migration if requested
	if *migrate {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	// Seed database if requested
	if *seed {
		if err := database.SeedData(database.DB); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	// Create and start web server
	server := web.NewServer()

	go func() {
		if err := server.Start(cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

func showHelp() {
	fmt.Println(`
AutoBatya - auto repair shop management backend

Usage:
  go run main.go [options]

Options:
  -migrate  Run database migration on startup
  -seed     Seed database with sample data
  -help     Show this help message

Environment:
  Configuration is read from .env or environment variables:
  - DB_DRIVER (postgres|sqlite), DB_HOST, DB_PORT, DB_USER,
    DB_PASSWORD, DB_NAME, DB_SSLMODE, DB_SQLITE_PATH
  - APP_ENV, APP_PORT`)
}
