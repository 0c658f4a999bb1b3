package engine

import (
	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

// Customer risk scoring over validated account-month records.
const (
	scoreLimitExceeded    = 20
	scoreHighValue        = 15
	scoreValidationFailed = 10

	highValueThreshold = 10000.0

	highRiskScore   = 50
	mediumRiskScore = 25
)

// ScoreRecords assigns each validated record a risk score and category:
// points for exceeding the order limit, for monthly spend above the
// high-value threshold, and for failing validation.
func ScoreRecords(records []domain.ValidatedRecord) []domain.CustomerRiskScore {
	out := make([]domain.CustomerRiskScore, 0, len(records))
	for _, rec := range records {
		score := 0
		if rec.OrderLimit != nil && rec.OrderCount > *rec.OrderLimit {
			score += scoreLimitExceeded
		}
		if rec.MonthlyTotal > highValueThreshold {
			score += scoreHighValue
		}
		if rec.HoldReason != nil {
			score += scoreValidationFailed
		}
		out = append(out, domain.CustomerRiskScore{
			AccountID:    rec.AccountID,
			RiskScore:    score,
			RiskCategory: categorize(score),
		})
	}
	return out
}

func categorize(score int) domain.RiskCategory {
	switch {
	case score >= highRiskScore:
		return domain.RiskHigh
	case score >= mediumRiskScore:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
