package engine

import (
	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

// SummarizeRAGResults computes the risk summary over one run's output rows.
func SummarizeRAGResults(results []domain.RAGResult) domain.RiskSummary {
	var s domain.RiskSummary
	s.TotalAccounts = int64(len(results))
	for _, r := range results {
		switch domain.RAGStatus(r.RAGStatus) {
		case domain.RAGRed:
			s.RedCount++
		case domain.RAGAmber:
			s.AmberCount++
		case domain.RAGGreen:
			s.GreenCount++
		}
		if r.LimitExceeded == domain.LimitExceededYes {
			s.LimitExceededCount++
		}
	}
	return s
}

// SummarizeValidation computes the validation summary over one run's
// accepted and held rows. Monetary and order-count sums cover accepted
// records only.
func SummarizeValidation(accepted []domain.AcceptedRecord, held []domain.HeldRecord) domain.ValidationSummary {
	s := domain.ValidationSummary{
		TotalRecords:  int64(len(accepted) + len(held)),
		AcceptedCount: int64(len(accepted)),
		HeldCount:     int64(len(held)),
		HeldByReason:  make(map[domain.HoldReason]int64),
	}
	for _, r := range accepted {
		s.AcceptedTotalAmount += r.MonthlyTotal
		s.AcceptedOrderCount += r.OrderCount
	}
	for _, r := range held {
		s.HeldByReason[domain.HoldReason(r.HoldReason)]++
	}
	return s
}
