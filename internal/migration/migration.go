// Package migration owns the database schema. Postgres deployments run the
// embedded versioned migrations under an advisory lock; sqlite (local dev and
// tests) auto-migrates from the gorm models instead.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	accountdomain "github.com/spendguardlabs/spendguard/internal/account/domain"
	"github.com/spendguardlabs/spendguard/internal/config"
	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// Run applies the schema for the configured driver.
func Run(db *gorm.DB, cfg *config.Config) error {
	if cfg.Database.Driver == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return runPostgres(sqlDB)
	}
	return autoMigrate(db)
}

func runPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	unlock, err := acquireAdvisoryLock(ctx, db)
	if err != nil {
		return err
	}
	defer func() {
		_ = unlock(context.Background())
	}()

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := ensureNotDirty(migrator); err != nil {
		return err
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return ensureNotDirty(migrator)
}

func ensureNotDirty(migrator *migrate.Migrate) error {
	version, dirty, err := migrator.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database migrations are dirty at version %d", version)
	}
	return nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountdomain.Account{},
		&orderdomain.Order{},
		&orderdomain.Transaction{},
		&riskdomain.PipelineRun{},
		&riskdomain.RAGResult{},
		&riskdomain.AcceptedRecord{},
		&riskdomain.HeldRecord{},
	)
}
