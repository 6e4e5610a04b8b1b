package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"pantry/internal/config"
	"pantry/internal/db"
	"pantry/internal/populate"
	"pantry/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	var (
		gormDB *gorm.DB
		err    error
	)
	switch cfg.DBDriver {
	case "mysql":
		gormDB, err = db.NewMySQL(cfg.MySQLDSN)
	default:
		gormDB, err = db.NewSQLite(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	repo := repository.NewDatabaseRepository(gormDB)

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := repo.Reset(); err != nil {
			log.Printf("Warning: failed to drop tables (may not exist): %v", err)
		}
	}

	// Run migrations to ensure schema is up to date
	if err := repo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Load the seed catalogue from SEED_DIR
	if err := populate.Populate(context.Background(), repo, cfg.SeedDir); err != nil {
		log.Fatalf("Failed to seed catalogue: %v", err)
	}

	log.Println("Seed completed successfully!")
}
