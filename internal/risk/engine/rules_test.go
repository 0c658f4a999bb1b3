package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

func validRecord() domain.AccountMonthRecord {
	return domain.AccountMonthRecord{
		MonthlyAggregate: domain.MonthlyAggregate{
			AccountID:     "ACC001",
			OrderMonth:    month(2024, time.December),
			MonthlyTotal:  1000,
			OrderCount:    3,
			TotalProducts: 7,
		},
		CustomerName: strPtr("Test Corp"),
		OrderLimit:   int64Ptr(10),
	}
}

func TestValidatePassingRecord(t *testing.T) {
	out := Validate([]domain.AccountMonthRecord{validRecord()})
	require.Len(t, out, 1)
	assert.Nil(t, out[0].HoldReason)
}

func TestValidateSingleRuleFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.AccountMonthRecord)
		want   domain.HoldReason
	}{
		{"missing account id", func(r *domain.AccountMonthRecord) { r.AccountID = "" }, domain.HoldMissingAccountID},
		{"blank account id", func(r *domain.AccountMonthRecord) { r.AccountID = "   " }, domain.HoldMissingAccountID},
		{"missing customer name", func(r *domain.AccountMonthRecord) { r.CustomerName = nil }, domain.HoldMissingCustomerName},
		{"negative amount", func(r *domain.AccountMonthRecord) { r.MonthlyTotal = -0.01 }, domain.HoldNegativeAmount},
		{"zero order count", func(r *domain.AccountMonthRecord) { r.OrderCount = 0 }, domain.HoldInvalidOrderCount},
		{"negative order count", func(r *domain.AccountMonthRecord) { r.OrderCount = -1 }, domain.HoldInvalidOrderCount},
		{"missing order limit", func(r *domain.AccountMonthRecord) { r.OrderLimit = nil }, domain.HoldMissingOrderLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			out := Validate([]domain.AccountMonthRecord{rec})
			require.Len(t, out, 1)
			require.NotNil(t, out[0].HoldReason)
			assert.Equal(t, tt.want, *out[0].HoldReason)
		})
	}
}

func TestValidateFirstMatchWins(t *testing.T) {
	// Both account id and customer name missing: rule 1 pre-empts rule 2.
	rec := validRecord()
	rec.AccountID = ""
	rec.CustomerName = nil

	out := Validate([]domain.AccountMonthRecord{rec})
	require.Len(t, out, 1)
	require.NotNil(t, out[0].HoldReason)
	assert.Equal(t, domain.HoldMissingAccountID, *out[0].HoldReason)
}

func TestValidateEveryRuleViolatedReportsHighestPriority(t *testing.T) {
	rec := domain.AccountMonthRecord{
		MonthlyAggregate: domain.MonthlyAggregate{
			AccountID:    "",
			OrderMonth:   month(2024, time.December),
			MonthlyTotal: -50,
			OrderCount:   0,
		},
	}

	out := Validate([]domain.AccountMonthRecord{rec})
	require.Len(t, out, 1)
	require.NotNil(t, out[0].HoldReason)
	assert.Equal(t, domain.HoldMissingAccountID, *out[0].HoldReason)
}

func TestValidateZeroMonthlyTotalIsValid(t *testing.T) {
	rec := validRecord()
	rec.MonthlyTotal = 0

	out := Validate([]domain.AccountMonthRecord{rec})
	require.Len(t, out, 1)
	assert.Nil(t, out[0].HoldReason)
}
