package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountdomain "github.com/spendguardlabs/spendguard/internal/account/domain"
	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

func TestEnrichWithAccountsLeftJoin(t *testing.T) {
	accounts := []accountdomain.Account{
		{AccountID: "ACC001", CustomerName: strPtr("Test Corp"), OrderLimit: int64Ptr(10)},
	}
	aggs := []domain.MonthlyAggregate{
		agg("ACC001", month(2024, time.December), 100),
		agg("ACC999", month(2024, time.December), 200),
	}

	records := EnrichWithAccounts(aggs, accounts)
	require.Len(t, records, 2)

	require.NotNil(t, records[0].CustomerName)
	assert.Equal(t, "Test Corp", *records[0].CustomerName)
	require.NotNil(t, records[0].OrderLimit)
	assert.Equal(t, int64(10), *records[0].OrderLimit)

	// Unknown account: row kept, enrichment fields nil.
	assert.Nil(t, records[1].CustomerName)
	assert.Nil(t, records[1].OrderLimit)
}

func TestClassifyAllLimitExceededStrict(t *testing.T) {
	accounts := []accountdomain.Account{
		{AccountID: "ACC001", CustomerName: strPtr("Sample Inc"), OrderLimit: int64Ptr(5)},
	}

	tests := []struct {
		name       string
		orderCount int64
		want       string
	}{
		{"over limit", 6, domain.LimitExceededYes},
		{"at limit", 5, domain.LimitExceededNo},
		{"under limit", 4, domain.LimitExceededNo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp := domain.MoMComparison{MonthlyAggregate: domain.MonthlyAggregate{
				AccountID:  "ACC001",
				OrderMonth: month(2024, time.December),
				OrderCount: tt.orderCount,
			}}
			out := ClassifyAll([]domain.MoMComparison{cmp}, accounts)
			require.Len(t, out, 1)
			assert.Equal(t, tt.want, out[0].LimitExceeded)
		})
	}
}

func TestClassifyAllMissingLimitNotExceeded(t *testing.T) {
	// The RAG variant defaults a missing limit to not-exceeded; validation
	// holds the same record instead. Both behaviors are pinned by tests.
	accounts := []accountdomain.Account{
		{AccountID: "ACC001", CustomerName: strPtr("Demo LLC"), OrderLimit: nil},
	}
	cmp := domain.MoMComparison{MonthlyAggregate: domain.MonthlyAggregate{
		AccountID:  "ACC001",
		OrderMonth: month(2024, time.December),
		OrderCount: 1000,
	}}

	out := ClassifyAll([]domain.MoMComparison{cmp}, accounts)
	require.Len(t, out, 1)
	assert.Equal(t, domain.LimitExceededNo, out[0].LimitExceeded)
	assert.Nil(t, out[0].OrderLimit)
}

func TestClassifyAllAttachesStatus(t *testing.T) {
	accounts := []accountdomain.Account{
		{AccountID: "ACC001", CustomerName: strPtr("Test Corp"), OrderLimit: int64Ptr(10)},
	}
	cmps := []domain.MoMComparison{
		{
			MonthlyAggregate:   agg("ACC001", month(2024, time.December), 1500),
			PreviousMonthTotal: floatPtr(1000),
			PercentageChange:   floatPtr(50),
		},
		{
			MonthlyAggregate: agg("ACC001", month(2024, time.November), 1000),
		},
	}

	out := ClassifyAll(cmps, accounts)
	require.Len(t, out, 2)
	assert.Equal(t, domain.RAGRed, out[0].RAGStatus)
	assert.Equal(t, domain.RAGGreen, out[1].RAGStatus)
}
