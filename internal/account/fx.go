package account

import (
	"go.uber.org/fx"

	"github.com/spendguardlabs/spendguard/internal/account/repository"
)

var Module = fx.Module("account",
	fx.Provide(repository.Provide),
)
