// Package scheduler re-runs both pipeline variants on a fixed interval so
// that classification output tracks newly ingested orders without manual
// triggering.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/spendguardlabs/spendguard/internal/config"
	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
)

type Scheduler struct {
	log      *zap.Logger
	cfg      *config.Config
	risk     riskdomain.Service
	interval time.Duration
}

func New(log *zap.Logger, cfg *config.Config, risk riskdomain.Service) *Scheduler {
	interval := cfg.Scheduler.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		log:      log.Named("scheduler"),
		cfg:      cfg,
		risk:     risk,
		interval: interval,
	}
}

// RunForever ticks until ctx is cancelled. Each tick reruns both variants
// against the current reporting month; delete-then-insert persistence keeps
// the reruns idempotent.
func (s *Scheduler) RunForever(ctx context.Context) {
	s.log.Info("scheduler started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if rag, err := s.risk.RunRAG(ctx, riskdomain.RunRequest{}); err != nil {
		s.log.Error("scheduled rag run failed", zap.Error(err))
	} else {
		s.log.Info("scheduled rag run finished",
			zap.String("run_id", rag.Run.RunID),
			zap.Int64("records", rag.Run.TotalRecords),
		)
	}

	if val, err := s.risk.RunValidation(ctx, riskdomain.RunRequest{}); err != nil {
		s.log.Error("scheduled validation run failed", zap.Error(err))
	} else {
		s.log.Info("scheduled validation run finished",
			zap.String("run_id", val.Run.RunID),
			zap.Int64("records", val.Run.TotalRecords),
			zap.Int64("held", val.Run.HeldCount),
		)
	}
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
)

// Start launches the loop under the fx lifecycle; cancellation rides app
// shutdown.
func Start(lc fx.Lifecycle, s *Scheduler) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.RunForever(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
