package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	InsertRun(ctx context.Context, db *gorm.DB, run *PipelineRun) error
	UpdateRun(ctx context.Context, db *gorm.DB, run *PipelineRun) error
	FindRun(ctx context.Context, db *gorm.DB, runID string) (*PipelineRun, error)

	// Delete* clear previous output for the same kind and reporting month,
	// which is what makes identical re-runs idempotent.
	DeleteRAGResults(ctx context.Context, db *gorm.DB, orderMonth time.Time) error
	DeleteValidationRecords(ctx context.Context, db *gorm.DB, orderMonth time.Time) error

	InsertRAGResults(ctx context.Context, db *gorm.DB, results []RAGResult) error
	InsertAcceptedRecords(ctx context.Context, db *gorm.DB, records []AcceptedRecord) error
	InsertHeldRecords(ctx context.Context, db *gorm.DB, records []HeldRecord) error

	ListRAGResults(ctx context.Context, db *gorm.DB, runID string) ([]RAGResult, error)
	ListAcceptedRecords(ctx context.Context, db *gorm.DB, runID string) ([]AcceptedRecord, error)
	ListHeldRecords(ctx context.Context, db *gorm.DB, runID string) ([]HeldRecord, error)

	// CountHeldByReason groups a run's held records by hold_reason.
	CountHeldByReason(ctx context.Context, db *gorm.DB, runID string) (map[HoldReason]int64, error)
}
