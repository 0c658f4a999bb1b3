package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
)

type repo struct{}

func Provide() riskdomain.Repository {
	return &repo{}
}

func (r *repo) InsertRun(ctx context.Context, db *gorm.DB, run *riskdomain.PipelineRun) error {
	return db.WithContext(ctx).Create(run).Error
}

func (r *repo) UpdateRun(ctx context.Context, db *gorm.DB, run *riskdomain.PipelineRun) error {
	return db.WithContext(ctx).Exec(
		`UPDATE pipeline_runs
		 SET status = ?, total_records = ?, held_count = ?, finished_at = ?
		 WHERE run_id = ?`,
		run.Status,
		run.TotalRecords,
		run.HeldCount,
		run.FinishedAt,
		run.RunID,
	).Error
}

func (r *repo) FindRun(ctx context.Context, db *gorm.DB, runID string) (*riskdomain.PipelineRun, error) {
	var run riskdomain.PipelineRun
	err := db.WithContext(ctx).Raw(
		`SELECT run_id, kind, target_month, status, total_records, held_count, started_at, finished_at
		 FROM pipeline_runs WHERE run_id = ?`,
		runID,
	).Scan(&run).Error
	if err != nil {
		return nil, err
	}
	if run.RunID == "" {
		return nil, nil
	}
	return &run, nil
}

func (r *repo) DeleteRAGResults(ctx context.Context, db *gorm.DB, orderMonth time.Time) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM rag_results WHERE order_month = ?`, orderMonth,
	).Error
}

func (r *repo) DeleteValidationRecords(ctx context.Context, db *gorm.DB, orderMonth time.Time) error {
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM accepted_records WHERE order_month = ?`, orderMonth,
	).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(
		`DELETE FROM held_records WHERE order_month = ?`, orderMonth,
	).Error
}

func (r *repo) InsertRAGResults(ctx context.Context, db *gorm.DB, results []riskdomain.RAGResult) error {
	if len(results) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&results, 500).Error
}

func (r *repo) InsertAcceptedRecords(ctx context.Context, db *gorm.DB, records []riskdomain.AcceptedRecord) error {
	if len(records) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&records, 500).Error
}

func (r *repo) InsertHeldRecords(ctx context.Context, db *gorm.DB, records []riskdomain.HeldRecord) error {
	if len(records) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(&records, 500).Error
}

func (r *repo) ListRAGResults(ctx context.Context, db *gorm.DB, runID string) ([]riskdomain.RAGResult, error) {
	var results []riskdomain.RAGResult
	err := db.WithContext(ctx).Raw(
		`SELECT id, run_id, account_id, customer_name, order_month, current_month_total,
		        previous_month_total, percentage_change, order_count, order_limit,
		        rag_status, limit_exceeded, created_at
		 FROM rag_results WHERE run_id = ? ORDER BY account_id`,
		runID,
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repo) ListAcceptedRecords(ctx context.Context, db *gorm.DB, runID string) ([]riskdomain.AcceptedRecord, error) {
	var records []riskdomain.AcceptedRecord
	err := db.WithContext(ctx).Raw(
		`SELECT id, run_id, account_id, customer_name, order_month, monthly_total,
		        order_count, total_products, order_limit, created_at
		 FROM accepted_records WHERE run_id = ? ORDER BY account_id`,
		runID,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListHeldRecords(ctx context.Context, db *gorm.DB, runID string) ([]riskdomain.HeldRecord, error) {
	var records []riskdomain.HeldRecord
	err := db.WithContext(ctx).Raw(
		`SELECT id, run_id, account_id, customer_name, order_month, monthly_total,
		        order_count, total_products, order_limit, hold_reason, hold_timestamp, created_at
		 FROM held_records WHERE run_id = ? ORDER BY account_id`,
		runID,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) CountHeldByReason(ctx context.Context, db *gorm.DB, runID string) (map[riskdomain.HoldReason]int64, error) {
	var rows []struct {
		HoldReason string
		Total      int64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT hold_reason, COUNT(*) AS total
		 FROM held_records WHERE run_id = ?
		 GROUP BY hold_reason`,
		runID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[riskdomain.HoldReason]int64, len(rows))
	for _, row := range rows {
		counts[riskdomain.HoldReason(row.HoldReason)] = row.Total
	}
	return counts, nil
}
