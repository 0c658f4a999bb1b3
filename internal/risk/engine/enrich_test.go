package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
)

func TestEnrichOrdersZeroFill(t *testing.T) {
	orders := []orderdomain.Order{
		{OrderID: "ORD001", AccountID: "ACC001", OrderDate: day(2024, time.December, 1), TotalAmount: 100},
		{OrderID: "ORD002", AccountID: "ACC001", OrderDate: day(2024, time.December, 2), TotalAmount: 200},
	}
	summaries := []orderdomain.TransactionSummary{
		{OrderID: "ORD001", TotalPaid: 100, TransactionCount: 2},
	}

	enriched := EnrichOrders(orders, summaries)
	require.Len(t, enriched, 2)

	assert.Equal(t, 100.0, enriched[0].TotalPaid)
	assert.Equal(t, int64(2), enriched[0].TransactionCount)

	// No successful transaction: left join fills zeroes, order is kept.
	assert.Equal(t, 0.0, enriched[1].TotalPaid)
	assert.Equal(t, int64(0), enriched[1].TransactionCount)
}

func TestEnrichOrdersDoesNotAlterOrderAmounts(t *testing.T) {
	orders := []orderdomain.Order{
		{OrderID: "ORD001", AccountID: "ACC001", OrderDate: day(2024, time.December, 1), TotalAmount: 100},
	}
	summaries := []orderdomain.TransactionSummary{
		{OrderID: "ORD001", TotalPaid: 999, TransactionCount: 5},
	}

	enriched := EnrichOrders(orders, summaries)
	require.Len(t, enriched, 1)
	assert.Equal(t, 100.0, enriched[0].TotalAmount)
}
