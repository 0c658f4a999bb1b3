package engine

import (
	"github.com/spendguardlabs/spendguard/internal/risk/domain"
)

// Fixed RAG thresholds, percent. Lower edges are inclusive: exactly 30.0 is
// AMBER, exactly 50.0 is RED.
const (
	redThreshold   = 50.0
	amberThreshold = 30.0
)

// Classify maps a month-over-month percentage change to a RAG status. A nil
// change means no usable history (first observed month, or previous total
// zero) and classifies GREEN.
func Classify(percentageChange *float64) domain.RAGStatus {
	switch {
	case percentageChange == nil:
		return domain.RAGGreen
	case *percentageChange >= redThreshold:
		return domain.RAGRed
	case *percentageChange >= amberThreshold:
		return domain.RAGAmber
	default:
		return domain.RAGGreen
	}
}
