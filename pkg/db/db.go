// Package db wires the relational store used by every repository.
package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/spendguardlabs/spendguard/internal/config"
)

var Module = fx.Module("db",
	fx.Provide(Open),
)

func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		conn *gorm.DB
		err  error
	)
	switch cfg.Database.Driver {
	case "postgres":
		conn, err = gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	case "sqlite":
		conn, err = gorm.Open(sqlite.Open(cfg.Database.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	log.Info("database connected", zap.String("driver", cfg.Database.Driver))
	return conn, nil
}
