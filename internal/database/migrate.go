package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/models"
)

// AutoMigrate creates the schema from the gorm models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.LoggedMeal{},
		&models.MealFeedback{},
		&models.UserProfile{},
	); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

// RunMigrations brings the schema up to date. SQLite uses gorm
// auto-migration; postgres applies the SQL files in migrationsDir.
func RunMigrations(db *gorm.DB, migrationsDir string) error {
	if db.Dialector.Name() == "sqlite" {
		logger.Info("using gorm auto-migration for sqlite")
		return AutoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return MigrateUp(sqlDB, migrationsDir)
}

// NewMigrator wraps an open postgres connection in a golang-migrate instance
func NewMigrator(sqlDB *sql.DB, migrationsDir string) (*migrate.Migrate, error) {
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration
func MigrateUp(sqlDB *sql.DB, migrationsDir string) error {
	m, err := NewMigrator(sqlDB, migrationsDir)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	logger.Info("database migrations applied", "version", version, "dirty", dirty)
	return nil
}

// MigrateDown rolls back the last applied migration
func MigrateDown(sqlDB *sql.DB, migrationsDir string) error {
	m, err := NewMigrator(sqlDB, migrationsDir)
	if err != nil {
		return err
	}
	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}
