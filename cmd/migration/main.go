package main

import (
	"flag"
	"os"
	"path/filepath"

	"server/cmd/migration/initialize"
	"server/cmd/migration/seed"
	"server/config"
	"server/internal/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	seedData := flag.Bool("seed", false, "seed development data after migrating")
	flag.Parse()

	log := logger.New("migration")

	config, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(config.DatabaseDbPath), 0755); err != nil {
		log.Er("failed to create database directory", err, "path", config.DatabaseDbPath)
		os.Exit(1)
	}

	db, err := gorm.Open(sqlite.Open(config.DatabaseDbPath), &gorm.Config{})
	if err != nil {
		log.Er("failed to open database", err, "path", config.DatabaseDbPath)
		os.Exit(1)
	}

	if err := initialize.InitializeTables(db, config, log); err != nil {
		os.Exit(1)
	}

	if *seedData {
		if err := seed.Seed(db, config, log); err != nil {
			os.Exit(1)
		}
	}

	log.Info("Migration complete")
}
