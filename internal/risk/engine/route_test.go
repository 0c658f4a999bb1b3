package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

func TestRoutePartitionsDisjointExhaustive(t *testing.T) {
	reason := domain.HoldMissingCustomerName
	records := []domain.ValidatedRecord{
		{AccountMonthRecord: validRecord()},
		{AccountMonthRecord: validRecord(), HoldReason: &reason},
		{AccountMonthRecord: validRecord()},
	}
	capturedAt := day(2025, time.January, 2)

	routed := Route(records, capturedAt)
	assert.Len(t, routed.Accepted, 2)
	assert.Len(t, routed.Held, 1)
	assert.Equal(t, len(records), len(routed.Accepted)+len(routed.Held))
}

func TestRouteStampsHeldRecords(t *testing.T) {
	reason := domain.HoldMissingCustomerName
	rec := validRecord()
	rec.CustomerName = nil
	capturedAt := time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)

	routed := Route([]domain.ValidatedRecord{{AccountMonthRecord: rec, HoldReason: &reason}}, capturedAt)
	require.Len(t, routed.Held, 1)
	assert.Equal(t, domain.HoldMissingCustomerName, routed.Held[0].HoldReason)
	assert.Equal(t, capturedAt, routed.Held[0].HoldTimestamp)
}

func TestRouteEmptyInput(t *testing.T) {
	routed := Route(nil, time.Now())
	assert.Empty(t, routed.Accepted)
	assert.Empty(t, routed.Held)
}
