// Package engine implements the aggregation-to-classification pipeline as
// pure functions over in-memory rows. Nothing here touches the database or
// the wall clock; missing data flows forward as nil fields and is resolved
// downstream by rule priority or conservative classification.
package engine

import (
	"sort"
	"time"

	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

// TruncateToMonth maps any instant to the first day of its calendar month,
// UTC midnight.
func TruncateToMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AggregateMonthly reduces billable orders to one row per (account, month).
// Accounts with no orders in a month produce no row; there is no zero-fill.
// Output is sorted by account then month so identical inputs always yield
// identical output.
func AggregateMonthly(orders []orderdomain.Order) []domain.MonthlyAggregate {
	type key struct {
		accountID string
		month     time.Time
	}

	groups := make(map[key]*domain.MonthlyAggregate)
	for _, o := range orders {
		k := key{accountID: o.AccountID, month: TruncateToMonth(o.OrderDate)}
		agg, ok := groups[k]
		if !ok {
			agg = &domain.MonthlyAggregate{
				AccountID:  k.accountID,
				OrderMonth: k.month,
			}
			groups[k] = agg
		}
		agg.MonthlyTotal += o.TotalAmount
		agg.OrderCount++
		agg.TotalProducts += o.ProductCount
	}

	out := make([]domain.MonthlyAggregate, 0, len(groups))
	for _, agg := range groups {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountID != out[j].AccountID {
			return out[i].AccountID < out[j].AccountID
		}
		return out[i].OrderMonth.Before(out[j].OrderMonth)
	})
	return out
}
