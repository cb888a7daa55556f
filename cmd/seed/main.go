package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/TheMistaKrips/autobatya-fullstack/config"
	"github.com/TheMistaKrips/autobatya-fullstack/database"
)

func main() {
	var (
		migrate = flag.Bool("migrate", false, "Run migration before seeding")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close()

	if *migrate {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatal().Err(err).Msg("failed to run migration")
		}
	}

	if err := database.SeedData(database.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	log.Info().Msg("seeding completed successfully")
}

func showHelp() {
	fmt.Println(`
Database Seeder for AutoBatya

Usage:
  go run cmd/seed/main.go [options]

Options:
  -migrate  Run migration before seeding
  -help     Show this help message

Seeds employees, the parts and services catalog, payroll records and a
pair of sample orders. Tables that already contain data are left alone.`)
}
