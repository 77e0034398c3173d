package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/duetcal/duetcal-api/internal/config"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage/migrations"
	"github.com/duetcal/duetcal-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize("info")
	log := logger.Migration()

	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	createDB := flag.Bool("create-db", false, "Create the application database if it does not exist")
	flag.Parse()

	log.Info("Starting migration process", "rollback", *rollback)

	if *createDB {
		if err := ensureDatabase(cfg); err != nil {
			log.Error("Failed to ensure database exists", "error", err)
			os.Exit(1)
		}
	}

	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if *rollback {
		log.Info("Rolling back migrations...")
		if err := migrations.RollbackMigration(db); err != nil {
			log.Error("Migration rollback failed", "error", err)
			os.Exit(1)
		}
		log.Info("Migration rollback completed successfully")
	} else {
		log.Info("Running migrations...")
		if err := migrations.RunMigrations(db); err != nil {
			log.Error("Migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("Migrations completed successfully")
	}

	fmt.Println("Migration process completed!")
}

// ensureDatabase connects to the maintenance database and creates the
// application database when it is missing. CREATE DATABASE cannot run inside
// a transaction, so this uses a plain database/sql connection.
func ensureDatabase(cfg *config.Config) error {
	log := logger.Migration()

	db, err := sql.Open("postgres", cfg.GetAdminDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to open maintenance connection: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DB.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		log.Debug("Database already exists", "database", cfg.DB.Name)
		return nil
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %q", cfg.DB.Name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.DB.Name, err)
	}

	log.Info("Database created", "database", cfg.DB.Name)
	return nil
}
