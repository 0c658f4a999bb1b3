package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

func agg(accountID string, m time.Time, total float64) domain.MonthlyAggregate {
	return domain.MonthlyAggregate{AccountID: accountID, OrderMonth: m, MonthlyTotal: total, OrderCount: 1}
}

func TestCompareMonthOverMonthExactChange(t *testing.T) {
	cmps := CompareMonthOverMonth([]domain.MonthlyAggregate{
		agg("ACC001", month(2024, time.November), 1000),
		agg("ACC001", month(2024, time.December), 1500),
	})
	require.Len(t, cmps, 2)

	assert.Nil(t, cmps[0].PreviousMonthTotal)
	assert.Nil(t, cmps[0].PercentageChange)

	require.NotNil(t, cmps[1].PreviousMonthTotal)
	assert.Equal(t, 1000.0, *cmps[1].PreviousMonthTotal)
	require.NotNil(t, cmps[1].PercentageChange)
	assert.Equal(t, 50.0, *cmps[1].PercentageChange)
}

func TestCompareMonthOverMonthSkippedMonthBridgesGap(t *testing.T) {
	// October then December: December's previous is October's total, not a
	// zero-filled November.
	cmps := CompareMonthOverMonth([]domain.MonthlyAggregate{
		agg("ACC001", month(2024, time.October), 400),
		agg("ACC001", month(2024, time.December), 600),
	})
	require.Len(t, cmps, 2)

	require.NotNil(t, cmps[1].PreviousMonthTotal)
	assert.Equal(t, 400.0, *cmps[1].PreviousMonthTotal)
	require.NotNil(t, cmps[1].PercentageChange)
	assert.InDelta(t, 50.0, *cmps[1].PercentageChange, 1e-9)
}

func TestCompareMonthOverMonthZeroPreviousTotal(t *testing.T) {
	cmps := CompareMonthOverMonth([]domain.MonthlyAggregate{
		agg("ACC001", month(2024, time.November), 0),
		agg("ACC001", month(2024, time.December), 500),
	})
	require.Len(t, cmps, 2)

	// Previous total is recorded but the change is undefined.
	require.NotNil(t, cmps[1].PreviousMonthTotal)
	assert.Equal(t, 0.0, *cmps[1].PreviousMonthTotal)
	assert.Nil(t, cmps[1].PercentageChange)
}

func TestCompareMonthOverMonthDecrease(t *testing.T) {
	cmps := CompareMonthOverMonth([]domain.MonthlyAggregate{
		agg("ACC001", month(2024, time.November), 1000),
		agg("ACC001", month(2024, time.December), 750),
	})
	require.Len(t, cmps, 2)
	require.NotNil(t, cmps[1].PercentageChange)
	assert.Equal(t, -25.0, *cmps[1].PercentageChange)
}

func TestCompareMonthOverMonthAccountsIndependent(t *testing.T) {
	cmps := CompareMonthOverMonth([]domain.MonthlyAggregate{
		agg("ACC001", month(2024, time.November), 1000),
		agg("ACC002", month(2024, time.December), 2000),
		agg("ACC001", month(2024, time.December), 1100),
	})
	require.Len(t, cmps, 3)

	// ACC002's only month must not see ACC001's November as history.
	for _, cmp := range cmps {
		if cmp.AccountID == "ACC002" {
			assert.Nil(t, cmp.PreviousMonthTotal)
			assert.Nil(t, cmp.PercentageChange)
		}
	}
}

func TestCompareMonthOverMonthUnsortedInput(t *testing.T) {
	cmps := CompareMonthOverMonth([]domain.MonthlyAggregate{
		agg("ACC001", month(2024, time.December), 1300),
		agg("ACC001", month(2024, time.October), 500),
		agg("ACC001", month(2024, time.November), 1000),
	})
	require.Len(t, cmps, 3)

	// Rows come back chronologically per account regardless of input order.
	assert.Equal(t, month(2024, time.October), cmps[0].OrderMonth)
	assert.Equal(t, month(2024, time.November), cmps[1].OrderMonth)
	assert.Equal(t, month(2024, time.December), cmps[2].OrderMonth)

	require.NotNil(t, cmps[2].PreviousMonthTotal)
	assert.Equal(t, 1000.0, *cmps[2].PreviousMonthTotal)
	require.NotNil(t, cmps[2].PercentageChange)
	assert.InDelta(t, 30.0, *cmps[2].PercentageChange, 1e-9)
}
