package engine

import (
	"time"

	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

// LatestMonth returns the single maximum order month across all aggregates.
// The maximum is global, not per account: an account whose own latest
// activity is in an earlier month is excluded from that run's output. This
// is the reporting-month policy, intentional and covered by tests.
func LatestMonth(aggregates []domain.MonthlyAggregate) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, agg := range aggregates {
		if !found || agg.OrderMonth.After(latest) {
			latest = agg.OrderMonth
			found = true
		}
	}
	return latest, found
}

// FilterClassified narrows RAG output to one reporting month. A month with
// no rows yields an empty, well-typed slice.
func FilterClassified(records []domain.ClassifiedRecord, month time.Time) []domain.ClassifiedRecord {
	out := make([]domain.ClassifiedRecord, 0, len(records))
	for _, rec := range records {
		if rec.OrderMonth.Equal(month) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterRecords narrows enriched account-month records to one reporting month.
func FilterRecords(records []domain.AccountMonthRecord, month time.Time) []domain.AccountMonthRecord {
	out := make([]domain.AccountMonthRecord, 0, len(records))
	for _, rec := range records {
		if rec.OrderMonth.Equal(month) {
			out = append(out, rec)
		}
	}
	return out
}
