package engine

import (
	"strings"

	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

// validationRules is evaluated in order, stopping at the first match, so a
// record carries at most one hold reason. The order is a documented
// contract: callers rely on MISSING_ACCOUNT_ID pre-empting
// MISSING_CUSTOMER_NAME when both conditions hold.
var validationRules = []struct {
	reason domain.HoldReason
	failed func(domain.AccountMonthRecord) bool
}{
	{domain.HoldMissingAccountID, func(r domain.AccountMonthRecord) bool {
		return strings.TrimSpace(r.AccountID) == ""
	}},
	{domain.HoldMissingCustomerName, func(r domain.AccountMonthRecord) bool {
		return r.CustomerName == nil
	}},
	{domain.HoldNegativeAmount, func(r domain.AccountMonthRecord) bool {
		return r.MonthlyTotal < 0
	}},
	{domain.HoldInvalidOrderCount, func(r domain.AccountMonthRecord) bool {
		return r.OrderCount <= 0
	}},
	{domain.HoldMissingOrderLimit, func(r domain.AccountMonthRecord) bool {
		return r.OrderLimit == nil
	}},
}

// Validate applies the ordered rule set to each record. Records that pass
// every rule carry a nil hold reason.
func Validate(records []domain.AccountMonthRecord) []domain.ValidatedRecord {
	out := make([]domain.ValidatedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.ValidatedRecord{
			AccountMonthRecord: rec,
			HoldReason:         firstFailedRule(rec),
		})
	}
	return out
}

func firstFailedRule(rec domain.AccountMonthRecord) *domain.HoldReason {
	for _, rule := range validationRules {
		if rule.failed(rec) {
			reason := rule.reason
			return &reason
		}
	}
	return nil
}
