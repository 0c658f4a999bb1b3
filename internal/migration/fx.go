package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/spendguardlabs/spendguard/internal/config"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(db *gorm.DB, cfg *config.Config) error {
		return Run(db, cfg)
	}),
)
