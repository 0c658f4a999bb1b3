package engine

import (
	"sort"

	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

// CompareMonthOverMonth attaches, per account, the immediately preceding
// observed month's total and the percentage change against it. "Preceding"
// means the previous row in that account's chronological sequence, not the
// calendar-adjacent month: a skipped month is not zero-filled, the gap is
// simply bridged.
//
// PercentageChange is nil for an account's first observed month and whenever
// the previous total is zero.
func CompareMonthOverMonth(aggregates []domain.MonthlyAggregate) []domain.MoMComparison {
	byAccount := make(map[string][]domain.MonthlyAggregate)
	for _, agg := range aggregates {
		byAccount[agg.AccountID] = append(byAccount[agg.AccountID], agg)
	}

	accountIDs := make([]string, 0, len(byAccount))
	for id := range byAccount {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	out := make([]domain.MoMComparison, 0, len(aggregates))
	for _, id := range accountIDs {
		months := byAccount[id]
		sort.Slice(months, func(i, j int) bool {
			return months[i].OrderMonth.Before(months[j].OrderMonth)
		})

		for i, agg := range months {
			cmp := domain.MoMComparison{MonthlyAggregate: agg}
			if i > 0 {
				prev := months[i-1].MonthlyTotal
				cmp.PreviousMonthTotal = &prev
				if prev != 0 {
					change := (agg.MonthlyTotal - prev) / prev * 100
					cmp.PercentageChange = &change
				}
			}
			out = append(out, cmp)
		}
	}
	return out
}
