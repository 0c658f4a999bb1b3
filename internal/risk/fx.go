package risk

import (
	"go.uber.org/fx"

	"github.com/spendguardlabs/spendguard/internal/risk/repository"
	"github.com/spendguardlabs/spendguard/internal/risk/service"
)

var Module = fx.Module("risk",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
