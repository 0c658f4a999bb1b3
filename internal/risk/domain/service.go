package domain

import (
	"context"
	"errors"
	"time"

	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
)

// RunRequest narrows a run to one reporting month. A nil TargetMonth selects
// the single latest order_month observed across all accounts; accounts whose
// own latest activity is older are excluded from that run entirely.
type RunRequest struct {
	TargetMonth *time.Time `json:"target_month,omitempty"`
}

type RAGRunResponse struct {
	Run     PipelineRun `json:"run"`
	Results []RAGResult `json:"results"`
	Summary RiskSummary `json:"summary"`
}

type ValidationRunResponse struct {
	Run      PipelineRun         `json:"run"`
	Accepted []AcceptedRecord    `json:"accepted"`
	Held     []HeldRecord        `json:"held"`
	Scores   []CustomerRiskScore `json:"scores"`
	Summary  ValidationSummary   `json:"summary"`
}

type Service interface {
	RunRAG(ctx context.Context, req RunRequest) (*RAGRunResponse, error)
	RunValidation(ctx context.Context, req RunRequest) (*ValidationRunResponse, error)

	GetRun(ctx context.Context, runID string) (*PipelineRun, error)
	GetRiskSummary(ctx context.Context, runID string) (*RiskSummary, error)
	GetValidationSummary(ctx context.Context, runID string) (*ValidationSummary, error)
	ListHeldRecords(ctx context.Context, runID string) ([]HeldRecord, error)
	ListCustomerSummaries(ctx context.Context) ([]orderdomain.CustomerSummary, error)
	ListEnrichedOrders(ctx context.Context) ([]orderdomain.EnrichedOrder, error)
}

var (
	ErrRunNotFound        = errors.New("run_not_found")
	ErrRunKindMismatch    = errors.New("run_kind_mismatch")
	ErrInvalidTargetMonth = errors.New("invalid_target_month")
)

// ParseTargetMonth accepts "2006-01" or "2006-01-02" and normalizes to the
// first day of the month, UTC midnight.
func ParseTargetMonth(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrInvalidTargetMonth
}
