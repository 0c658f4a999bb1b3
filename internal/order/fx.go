package order

import (
	"go.uber.org/fx"

	"github.com/spendguardlabs/spendguard/internal/order/repository"
)

var Module = fx.Module("order",
	fx.Provide(repository.Provide),
)
