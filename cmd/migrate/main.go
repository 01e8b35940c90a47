package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/masspath/masspath/backend/config"
	"github.com/masspath/masspath/backend/internal/database"
	"github.com/masspath/masspath/backend/internal/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the migration files")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Error("DATABASE_URL is not set and configuration failed to load", "error", err)
			os.Exit(1)
		}
		dsn = cfg.MigrationURL()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *rollback {
		if err := database.MigrateDown(db, *dir); err != nil {
			logger.Error("failed to roll back migration", "error", err)
			os.Exit(1)
		}
		fmt.Println("Successfully rolled back the last migration.")
		return
	}

	if err := database.MigrateUp(db, *dir); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	fmt.Println("All migrations applied successfully.")
}
