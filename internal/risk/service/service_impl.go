package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/spendguardlabs/spendguard/internal/account/domain"
	"github.com/spendguardlabs/spendguard/internal/cache"
	"github.com/spendguardlabs/spendguard/internal/clock"
	"github.com/spendguardlabs/spendguard/internal/observability"
	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
	"github.com/spendguardlabs/spendguard/internal/risk/engine"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID   *snowflake.Node
	clk     clock.Clock
	metrics *observability.Metrics

	accounts accountdomain.Repository
	orders   orderdomain.Repository
	repo     riskdomain.Repository
	summary  cache.SummaryCache
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Metrics     *observability.Metrics
	AccountRepo accountdomain.Repository
	OrderRepo   orderdomain.Repository
	Repo        riskdomain.Repository
	Summary     cache.SummaryCache `optional:"true"`
}

func NewService(p ServiceParam) riskdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("risk.service"),

		genID:   p.GenID,
		clk:     p.Clock,
		metrics: p.Metrics,

		accounts: p.AccountRepo,
		orders:   p.OrderRepo,
		repo:     p.Repo,
		summary:  p.Summary,
	}
}

// pipelineInput is everything one run reads from the store. Raw entities are
// loaded once per run; every derived set is recomputed from scratch.
type pipelineInput struct {
	accounts   []accountdomain.Account
	orders     []orderdomain.Order
	aggregates []riskdomain.MonthlyAggregate
}

func (s *Service) loadInput(ctx context.Context) (*pipelineInput, error) {
	accounts, err := s.accounts.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	orders, err := s.orders.ListBillable(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	return &pipelineInput{
		accounts:   accounts,
		orders:     orders,
		aggregates: engine.AggregateMonthly(orders),
	}, nil
}

// resolveMonth applies the reporting-month policy: an explicit target month
// wins, otherwise the global maximum observed month. ok is false when the
// store holds no aggregates at all and no explicit month was given.
func resolveMonth(req riskdomain.RunRequest, aggregates []riskdomain.MonthlyAggregate) (time.Time, bool) {
	if req.TargetMonth != nil {
		return engine.TruncateToMonth(*req.TargetMonth), true
	}
	return engine.LatestMonth(aggregates)
}

func (s *Service) RunRAG(ctx context.Context, req riskdomain.RunRequest) (*riskdomain.RAGRunResponse, error) {
	startedAt := s.clk.Now(ctx)
	run := riskdomain.PipelineRun{
		RunID:       uuid.NewString(),
		Kind:        string(riskdomain.RunKindRAG),
		TargetMonth: req.TargetMonth,
		Status:      riskdomain.RunStatusRunning,
		StartedAt:   startedAt,
	}
	if err := s.repo.InsertRun(ctx, s.db, &run); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	results, err := s.runRAG(ctx, req, &run, startedAt)
	if err != nil {
		s.finishRun(ctx, &run, riskdomain.RunStatusFailed)
		s.metrics.RunsTotal.WithLabelValues(run.Kind, "failed").Inc()
		return nil, err
	}

	run.TotalRecords = int64(len(results))
	s.finishRun(ctx, &run, riskdomain.RunStatusSucceeded)
	s.metrics.RunsTotal.WithLabelValues(run.Kind, "succeeded").Inc()
	s.metrics.RecordsEmitted.WithLabelValues(run.Kind).Add(float64(len(results)))

	summary := engine.SummarizeRAGResults(results)
	if s.summary != nil {
		s.summary.SetRiskSummary(ctx, run.RunID, summary)
	}

	s.log.Info("rag run finished",
		zap.String("run_id", run.RunID),
		zap.Int("results", len(results)),
		zap.Int64("red", summary.RedCount),
		zap.Int64("amber", summary.AmberCount),
		zap.Int64("green", summary.GreenCount),
		zap.Int64("limit_exceeded", summary.LimitExceededCount),
	)

	return &riskdomain.RAGRunResponse{Run: run, Results: results, Summary: summary}, nil
}

func (s *Service) runRAG(ctx context.Context, req riskdomain.RunRequest, run *riskdomain.PipelineRun, now time.Time) ([]riskdomain.RAGResult, error) {
	input, err := s.loadInput(ctx)
	if err != nil {
		return nil, err
	}

	month, ok := resolveMonth(req, input.aggregates)
	if !ok {
		// No data at all: an empty, well-typed result, not a failure.
		return []riskdomain.RAGResult{}, nil
	}
	run.TargetMonth = &month

	comparisons := engine.CompareMonthOverMonth(input.aggregates)
	classified := engine.ClassifyAll(comparisons, input.accounts)
	selected := engine.FilterClassified(classified, month)

	results := make([]riskdomain.RAGResult, 0, len(selected))
	for _, rec := range selected {
		results = append(results, riskdomain.RAGResult{
			ID:                 s.genID.Generate(),
			RunID:              run.RunID,
			AccountID:          rec.AccountID,
			CustomerName:       rec.CustomerName,
			OrderMonth:         rec.OrderMonth,
			CurrentMonthTotal:  rec.MonthlyTotal,
			PreviousMonthTotal: rec.PreviousMonthTotal,
			PercentageChange:   rec.PercentageChange,
			OrderCount:         rec.OrderCount,
			OrderLimit:         rec.OrderLimit,
			RAGStatus:          string(rec.RAGStatus),
			LimitExceeded:      rec.LimitExceeded,
			CreatedAt:          now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteRAGResults(ctx, tx, month); err != nil {
			return err
		}
		return s.repo.InsertRAGResults(ctx, tx, results)
	})
	if err != nil {
		return nil, fmt.Errorf("persist rag results: %w", err)
	}
	return results, nil
}

func (s *Service) RunValidation(ctx context.Context, req riskdomain.RunRequest) (*riskdomain.ValidationRunResponse, error) {
	startedAt := s.clk.Now(ctx)
	run := riskdomain.PipelineRun{
		RunID:       uuid.NewString(),
		Kind:        string(riskdomain.RunKindValidation),
		TargetMonth: req.TargetMonth,
		Status:      riskdomain.RunStatusRunning,
		StartedAt:   startedAt,
	}
	if err := s.repo.InsertRun(ctx, s.db, &run); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	accepted, held, scores, err := s.runValidation(ctx, req, &run, startedAt)
	if err != nil {
		s.finishRun(ctx, &run, riskdomain.RunStatusFailed)
		s.metrics.RunsTotal.WithLabelValues(run.Kind, "failed").Inc()
		return nil, err
	}

	run.TotalRecords = int64(len(accepted) + len(held))
	run.HeldCount = int64(len(held))
	s.finishRun(ctx, &run, riskdomain.RunStatusSucceeded)
	s.metrics.RunsTotal.WithLabelValues(run.Kind, "succeeded").Inc()
	s.metrics.RecordsEmitted.WithLabelValues(run.Kind).Add(float64(run.TotalRecords))
	for _, rec := range held {
		s.metrics.HeldRecords.WithLabelValues(rec.HoldReason).Inc()
	}

	summary := engine.SummarizeValidation(accepted, held)
	if s.summary != nil {
		s.summary.SetValidationSummary(ctx, run.RunID, summary)
	}

	s.log.Info("validation run finished",
		zap.String("run_id", run.RunID),
		zap.Int64("total", summary.TotalRecords),
		zap.Int64("accepted", summary.AcceptedCount),
		zap.Int64("held", summary.HeldCount),
	)

	return &riskdomain.ValidationRunResponse{
		Run:      run,
		Accepted: accepted,
		Held:     held,
		Scores:   scores,
		Summary:  summary,
	}, nil
}

func (s *Service) runValidation(
	ctx context.Context,
	req riskdomain.RunRequest,
	run *riskdomain.PipelineRun,
	now time.Time,
) ([]riskdomain.AcceptedRecord, []riskdomain.HeldRecord, []riskdomain.CustomerRiskScore, error) {
	input, err := s.loadInput(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	month, ok := resolveMonth(req, input.aggregates)
	if !ok {
		return []riskdomain.AcceptedRecord{}, []riskdomain.HeldRecord{}, []riskdomain.CustomerRiskScore{}, nil
	}
	run.TargetMonth = &month

	enriched := engine.EnrichWithAccounts(input.aggregates, input.accounts)
	selected := engine.FilterRecords(enriched, month)
	validated := engine.Validate(selected)
	routed := engine.Route(validated, now)
	scores := engine.ScoreRecords(validated)

	accepted := make([]riskdomain.AcceptedRecord, 0, len(routed.Accepted))
	for _, rec := range routed.Accepted {
		accepted = append(accepted, riskdomain.AcceptedRecord{
			ID:            s.genID.Generate(),
			RunID:         run.RunID,
			AccountID:     rec.AccountID,
			CustomerName:  rec.CustomerName,
			OrderMonth:    rec.OrderMonth,
			MonthlyTotal:  rec.MonthlyTotal,
			OrderCount:    rec.OrderCount,
			TotalProducts: rec.TotalProducts,
			OrderLimit:    rec.OrderLimit,
			CreatedAt:     now,
		})
	}

	held := make([]riskdomain.HeldRecord, 0, len(routed.Held))
	for _, rec := range routed.Held {
		held = append(held, riskdomain.HeldRecord{
			ID:            s.genID.Generate(),
			RunID:         run.RunID,
			AccountID:     rec.AccountID,
			CustomerName:  rec.CustomerName,
			OrderMonth:    rec.OrderMonth,
			MonthlyTotal:  rec.MonthlyTotal,
			OrderCount:    rec.OrderCount,
			TotalProducts: rec.TotalProducts,
			OrderLimit:    rec.OrderLimit,
			HoldReason:    string(rec.HoldReason),
			HoldTimestamp: rec.HoldTimestamp,
			CreatedAt:     now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteValidationRecords(ctx, tx, month); err != nil {
			return err
		}
		if err := s.repo.InsertAcceptedRecords(ctx, tx, accepted); err != nil {
			return err
		}
		return s.repo.InsertHeldRecords(ctx, tx, held)
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("persist validation records: %w", err)
	}
	return accepted, held, scores, nil
}

func (s *Service) finishRun(ctx context.Context, run *riskdomain.PipelineRun, status string) {
	finishedAt := s.clk.Now(ctx)
	run.Status = status
	run.FinishedAt = &finishedAt
	if err := s.repo.UpdateRun(ctx, s.db, run); err != nil {
		s.log.Error("update run failed", zap.String("run_id", run.RunID), zap.Error(err))
	}
}

func (s *Service) GetRun(ctx context.Context, runID string) (*riskdomain.PipelineRun, error) {
	run, err := s.repo.FindRun(ctx, s.db, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, riskdomain.ErrRunNotFound
	}
	return run, nil
}

func (s *Service) GetRiskSummary(ctx context.Context, runID string) (*riskdomain.RiskSummary, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Kind != string(riskdomain.RunKindRAG) {
		return nil, riskdomain.ErrRunKindMismatch
	}

	if s.summary != nil {
		if cached, ok := s.summary.GetRiskSummary(ctx, runID); ok {
			return cached, nil
		}
	}

	results, err := s.repo.ListRAGResults(ctx, s.db, runID)
	if err != nil {
		return nil, err
	}
	summary := engine.SummarizeRAGResults(results)
	if s.summary != nil {
		s.summary.SetRiskSummary(ctx, runID, summary)
	}
	return &summary, nil
}

func (s *Service) GetValidationSummary(ctx context.Context, runID string) (*riskdomain.ValidationSummary, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Kind != string(riskdomain.RunKindValidation) {
		return nil, riskdomain.ErrRunKindMismatch
	}

	if s.summary != nil {
		if cached, ok := s.summary.GetValidationSummary(ctx, runID); ok {
			return cached, nil
		}
	}

	accepted, err := s.repo.ListAcceptedRecords(ctx, s.db, runID)
	if err != nil {
		return nil, err
	}
	held, err := s.repo.ListHeldRecords(ctx, s.db, runID)
	if err != nil {
		return nil, err
	}
	summary := engine.SummarizeValidation(accepted, held)
	if s.summary != nil {
		s.summary.SetValidationSummary(ctx, runID, summary)
	}
	return &summary, nil
}

func (s *Service) ListHeldRecords(ctx context.Context, runID string) ([]riskdomain.HeldRecord, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Kind != string(riskdomain.RunKindValidation) {
		return nil, riskdomain.ErrRunKindMismatch
	}
	return s.repo.ListHeldRecords(ctx, s.db, runID)
}

func (s *Service) ListCustomerSummaries(ctx context.Context) ([]orderdomain.CustomerSummary, error) {
	return s.orders.ListCustomerSummaries(ctx, s.db)
}

// ListEnrichedOrders joins billable orders with their settled payment totals.
// Monthly totals come from order amounts only; payment figures are reporting
// context, so orders without a successful transaction still appear, zeroed.
func (s *Service) ListEnrichedOrders(ctx context.Context) ([]orderdomain.EnrichedOrder, error) {
	orders, err := s.orders.ListBillable(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	summaries, err := s.orders.SummarizeTransactions(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("summarize transactions: %w", err)
	}
	return engine.EnrichOrders(orders, summaries), nil
}
