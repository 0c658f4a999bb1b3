// Package cache keeps the latest run summaries in redis so dashboard polls
// skip the database. The pipeline works identically without it; an empty
// redis address disables caching.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
)

type SummaryCache interface {
	SetRiskSummary(ctx context.Context, runID string, s riskdomain.RiskSummary)
	GetRiskSummary(ctx context.Context, runID string) (*riskdomain.RiskSummary, bool)
	SetValidationSummary(ctx context.Context, runID string, s riskdomain.ValidationSummary)
	GetValidationSummary(ctx context.Context, runID string) (*riskdomain.ValidationSummary, bool)
}

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) SummaryCache {
	return &redisCache{rdb: rdb, ttl: ttl, log: log.Named("cache")}
}

func riskKey(runID string) string       { return fmt.Sprintf("spendguard:summary:rag:%s", runID) }
func validationKey(runID string) string { return fmt.Sprintf("spendguard:summary:validation:%s", runID) }

func (c *redisCache) SetRiskSummary(ctx context.Context, runID string, s riskdomain.RiskSummary) {
	c.set(ctx, riskKey(runID), s)
}

func (c *redisCache) GetRiskSummary(ctx context.Context, runID string) (*riskdomain.RiskSummary, bool) {
	var s riskdomain.RiskSummary
	if !c.get(ctx, riskKey(runID), &s) {
		return nil, false
	}
	return &s, true
}

func (c *redisCache) SetValidationSummary(ctx context.Context, runID string, s riskdomain.ValidationSummary) {
	c.set(ctx, validationKey(runID), s)
}

func (c *redisCache) GetValidationSummary(ctx context.Context, runID string) (*riskdomain.ValidationSummary, bool) {
	var s riskdomain.ValidationSummary
	if !c.get(ctx, validationKey(runID), &s) {
		return nil, false
	}
	return &s, true
}

// Cache failures are logged and swallowed; the store remains authoritative.
func (c *redisCache) set(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("marshal summary", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisCache) get(ctx context.Context, key string, v any) bool {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(payload, v); err != nil {
		c.log.Warn("unmarshal summary", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
