package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
)

func newTestCache(t *testing.T) (SummaryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(rdb, time.Minute, zap.NewNop()), mr
}

func TestRiskSummaryRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := c.GetRiskSummary(ctx, "run-1")
	assert.False(t, ok)

	want := riskdomain.RiskSummary{TotalAccounts: 3, RedCount: 1, GreenCount: 2}
	c.SetRiskSummary(ctx, "run-1", want)

	got, ok := c.GetRiskSummary(ctx, "run-1")
	require.True(t, ok)
	assert.Equal(t, want, *got)
}

func TestValidationSummaryRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := riskdomain.ValidationSummary{
		TotalRecords:  4,
		AcceptedCount: 3,
		HeldCount:     1,
		HeldByReason: map[riskdomain.HoldReason]int64{
			riskdomain.HoldMissingOrderLimit: 1,
		},
	}
	c.SetValidationSummary(ctx, "run-2", want)

	got, ok := c.GetValidationSummary(ctx, "run-2")
	require.True(t, ok)
	assert.Equal(t, want, *got)
}

func TestSummaryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetRiskSummary(ctx, "run-3", riskdomain.RiskSummary{TotalAccounts: 1})
	mr.FastForward(2 * time.Minute)

	_, ok := c.GetRiskSummary(ctx, "run-3")
	assert.False(t, ok)
}
