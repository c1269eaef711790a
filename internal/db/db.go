// Package db opens the gorm connection behind the record store, migrates the
// schema and loads demo data.
package db

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/diewo77/autoparts/internal/config"
	"github.com/diewo77/autoparts/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MigrationsSource is where RunSQLMigrations reads its files from.
const MigrationsSource = "file://migrations"

const (
	connectAttempts = 10
	retryDelay      = 2 * time.Second
)

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&models.Part{},
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Expense{},
		&models.AppSettings{},
	}
}

// Open connects to the configured SQL database. Postgres connections are
// retried to leave the server time to start.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := NormalizeDSN(cfg.DSN())
		log.Println("[DB] Using DSN:", MaskDSN(dsn))
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		log.Println("[DB] Using SQLite file:", cfg.SQLitePath)
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	var (
		conn *gorm.DB
		err  error
	)
	for i := 0; i < connectAttempts; i++ {
		conn, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		log.Printf("Retrying DB connection (%d/%d): %v", i+1, connectAttempts, err)
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if err := conn.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return conn, nil
}

// Migrate creates or updates the tables of every model.
func Migrate(conn *gorm.DB) error {
	for _, m := range Models() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"parts", "invoices", "invoice_items"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// RunSQLMigrations applies the versioned SQL files under ./migrations to a
// postgres database.
func RunSQLMigrations(dsn string) error {
	m, err := migrate.New(MigrationsSource, ToURLDSN(NormalizeDSN(dsn)))
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Prepare brings the schema up to date: SQL migrations when enabled on
// postgres, AutoMigrate otherwise.
func Prepare(conn *gorm.DB, cfg *config.Config) error {
	if cfg.App.Migrations && cfg.Database.Driver == config.DriverPostgres {
		log.Println("Running SQL migrations...")
		if err := RunSQLMigrations(cfg.Database.DSN()); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		return nil
	}
	return Migrate(conn)
}
