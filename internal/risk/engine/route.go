package engine

import (
	"time"

	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

// Route partitions validated records into the accepted and held sets. The
// sets are disjoint and exhaustive; no record is dropped. Held records are
// stamped with capturedAt, the wall-clock time of the routing step, not of
// the original data.
func Route(records []domain.ValidatedRecord, capturedAt time.Time) domain.RoutedRecords {
	routed := domain.RoutedRecords{
		Accepted: make([]domain.AccountMonthRecord, 0, len(records)),
		Held:     make([]domain.HeldRecordValue, 0),
	}
	for _, rec := range records {
		if rec.HoldReason == nil {
			routed.Accepted = append(routed.Accepted, rec.AccountMonthRecord)
			continue
		}
		routed.Held = append(routed.Held, domain.HeldRecordValue{
			AccountMonthRecord: rec.AccountMonthRecord,
			HoldReason:         *rec.HoldReason,
			HoldTimestamp:      capturedAt,
		})
	}
	return routed
}
