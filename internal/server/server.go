// Package server exposes the pipeline over HTTP: run triggers, run lookups,
// summaries and reporting reads.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spendguardlabs/spendguard/internal/config"
	"github.com/spendguardlabs/spendguard/internal/observability"
	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
)

type Server struct {
	log     *zap.Logger
	cfg     *config.Config
	db      *gorm.DB
	metrics *observability.Metrics
	risksvc riskdomain.Service

	engine *gin.Engine
	http   *http.Server
}

type ServerParam struct {
	fx.In

	Log     *zap.Logger
	Cfg     *config.Config
	DB      *gorm.DB
	Metrics *observability.Metrics
	RiskSvc riskdomain.Service
}

func NewServer(p ServerParam) *Server {
	s := &Server{
		log:     p.Log.Named("server"),
		cfg:     p.Cfg,
		db:      p.DB,
		metrics: p.Metrics,
		risksvc: p.RiskSvc,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	s.engine = engine
	s.registerRoutes()

	s.http = &http.Server{
		Addr:              p.Cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	v1 := s.engine.Group("/v1")
	{
		v1.POST("/runs/rag", s.TriggerRAGRun)
		v1.POST("/runs/validation", s.TriggerValidationRun)
		v1.GET("/runs/:id", s.GetRun)
		v1.GET("/runs/:id/risk-summary", s.GetRiskSummary)
		v1.GET("/runs/:id/validation-summary", s.GetValidationSummary)
		v1.GET("/runs/:id/held", s.ListHeldRecords)
		v1.GET("/customers/summary", s.ListCustomerSummaries)
		v1.GET("/orders/enriched", s.ListEnrichedOrders)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Start(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", s.http.Addr)
			if err != nil {
				return err
			}
			s.log.Info("http server listening", zap.String("addr", s.http.Addr))
			go func() {
				if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.http.Shutdown(ctx)
		},
	})
}

func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
)
