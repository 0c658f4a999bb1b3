package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/spendguardlabs/spendguard/internal/config"
)

var Module = fx.Module("cache",
	fx.Provide(New),
)

// New builds the summary cache when a redis address is configured; otherwise
// it returns nil and callers skip caching.
func New(cfg *config.Config, log *zap.Logger) (SummaryCache, error) {
	if cfg.Redis.Addr == "" {
		log.Info("summary cache disabled, no redis address configured")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return NewRedisCache(rdb, cfg.Redis.SummaryTTL, log), nil
}
