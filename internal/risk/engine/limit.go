package engine

import (
	accountdomain "github.com/spendguardlabs/spendguard/internal/account/domain"
	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

// accountIndex builds the lookup used by the left joins below.
func accountIndex(accounts []accountdomain.Account) map[string]accountdomain.Account {
	idx := make(map[string]accountdomain.Account, len(accounts))
	for _, a := range accounts {
		idx[a.AccountID] = a
	}
	return idx
}

// EnrichWithAccounts left-joins aggregates to their accounts. Aggregates
// whose account is unknown keep nil customer name and order limit; no row
// is dropped.
func EnrichWithAccounts(aggregates []domain.MonthlyAggregate, accounts []accountdomain.Account) []domain.AccountMonthRecord {
	idx := accountIndex(accounts)
	out := make([]domain.AccountMonthRecord, 0, len(aggregates))
	for _, agg := range aggregates {
		rec := domain.AccountMonthRecord{MonthlyAggregate: agg}
		if a, ok := idx[agg.AccountID]; ok {
			rec.CustomerName = a.CustomerName
			rec.OrderLimit = a.OrderLimit
		}
		out = append(out, rec)
	}
	return out
}

// ClassifyAll turns month-over-month comparisons into classified rows,
// joining account attributes and flagging order-limit violations.
//
// A missing order limit counts as not exceeded here. The validation variant
// holds the same condition outright (MISSING_ORDER_LIMIT); the two policies
// are deliberately different and must not be unified without product
// guidance.
func ClassifyAll(comparisons []domain.MoMComparison, accounts []accountdomain.Account) []domain.ClassifiedRecord {
	idx := accountIndex(accounts)
	out := make([]domain.ClassifiedRecord, 0, len(comparisons))
	for _, cmp := range comparisons {
		rec := domain.ClassifiedRecord{
			MoMComparison: cmp,
			RAGStatus:     Classify(cmp.PercentageChange),
			LimitExceeded: domain.LimitExceededNo,
		}
		if a, ok := idx[cmp.AccountID]; ok {
			rec.CustomerName = a.CustomerName
			rec.OrderLimit = a.OrderLimit
		}
		if rec.OrderLimit != nil && cmp.OrderCount > *rec.OrderLimit {
			rec.LimitExceeded = domain.LimitExceededYes
		}
		out = append(out, rec)
	}
	return out
}
