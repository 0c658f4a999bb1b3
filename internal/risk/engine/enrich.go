package engine

import (
	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
)

// EnrichOrders left-joins per-order payment rollups onto orders. Orders
// without a successful transaction get zero total_paid and count. Payment
// data never feeds monthly totals; it only travels alongside.
func EnrichOrders(orders []orderdomain.Order, summaries []orderdomain.TransactionSummary) []orderdomain.EnrichedOrder {
	byOrder := make(map[string]orderdomain.TransactionSummary, len(summaries))
	for _, s := range summaries {
		byOrder[s.OrderID] = s
	}

	out := make([]orderdomain.EnrichedOrder, 0, len(orders))
	for _, o := range orders {
		enriched := orderdomain.EnrichedOrder{Order: o}
		if s, ok := byOrder[o.OrderID]; ok {
			enriched.TotalPaid = s.TotalPaid
			enriched.TransactionCount = s.TransactionCount
		}
		out = append(out, enriched)
	}
	return out
}
