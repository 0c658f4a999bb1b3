package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spendguardlabs/spendguard/internal/account"
	accountdomain "github.com/spendguardlabs/spendguard/internal/account/domain"
	"github.com/spendguardlabs/spendguard/internal/cache"
	"github.com/spendguardlabs/spendguard/internal/clock"
	"github.com/spendguardlabs/spendguard/internal/config"
	"github.com/spendguardlabs/spendguard/internal/migration"
	"github.com/spendguardlabs/spendguard/internal/observability"
	"github.com/spendguardlabs/spendguard/internal/order"
	orderdomain "github.com/spendguardlabs/spendguard/internal/order/domain"
	"github.com/spendguardlabs/spendguard/internal/risk"
	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
	"github.com/spendguardlabs/spendguard/internal/scheduler"
	"github.com/spendguardlabs/spendguard/internal/seed"
	"github.com/spendguardlabs/spendguard/internal/server"
	"github.com/spendguardlabs/spendguard/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "spendguard",
		Short:   "SpendGuard account risk pipeline",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newRunCmd(), newServeCmd(), newSchedulerCmd())
	return root
}

// baseModules is the wiring every subcommand shares.
func baseModules() fx.Option {
	return fx.Options(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
	)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(fx.New(
				baseModules(),
				migration.Module,
			))
		},
	}
}

func newSeedCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load accounts, orders and transactions from CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(fx.New(
				baseModules(),
				migration.Module,
				account.Module,
				order.Module,
				fx.Invoke(func(conn *gorm.DB, log *zap.Logger, accounts accountdomain.Repository, orders orderdomain.Repository) error {
					return seed.NewSeeder(conn, log, accounts, orders).Load(context.Background(), dir)
				}),
			))
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "data", "directory holding the CSV files")
	return cmd
}

func newRunCmd() *cobra.Command {
	var kind, targetMonth string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one pipeline run and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := riskdomain.RunRequest{}
			if targetMonth != "" {
				month, err := riskdomain.ParseTargetMonth(targetMonth)
				if err != nil {
					return err
				}
				req.TargetMonth = &month
			}

			return runOneShot(fx.New(
				baseModules(),
				migration.Module,
				cache.Module,
				account.Module,
				order.Module,
				risk.Module,
				fx.Invoke(func(svc riskdomain.Service) error {
					ctx := context.Background()
					switch kind {
					case "rag":
						resp, err := svc.RunRAG(ctx, req)
						if err != nil {
							return err
						}
						fmt.Printf("run %s: %d records (red=%d amber=%d green=%d)\n",
							resp.Run.RunID, resp.Run.TotalRecords,
							resp.Summary.RedCount, resp.Summary.AmberCount, resp.Summary.GreenCount)
					case "validation":
						resp, err := svc.RunValidation(ctx, req)
						if err != nil {
							return err
						}
						fmt.Printf("run %s: %d records, %d held\n",
							resp.Run.RunID, resp.Run.TotalRecords, resp.Run.HeldCount)
					default:
						return fmt.Errorf("unknown run kind %q, want rag or validation", kind)
					}
					return nil
				}),
			))
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "rag", "pipeline variant: rag or validation")
	cmd.Flags().StringVar(&targetMonth, "month", "", "target month (YYYY-MM), defaults to the latest observed")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				baseModules(),
				migration.Module,
				cache.Module,
				account.Module,
				order.Module,
				risk.Module,
				scheduler.Module,
				server.Module,
				fx.Invoke(startServer),
				fx.Invoke(maybeStartScheduler),
			)
			app.Run()
			return nil
		},
	}
}

func newSchedulerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the periodic pipeline scheduler without the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				baseModules(),
				migration.Module,
				cache.Module,
				account.Module,
				order.Module,
				risk.Module,
				scheduler.Module,
				fx.Invoke(scheduler.Start),
			)
			app.Run()
			return nil
		},
	}
}

func runOneShot(app *fx.App) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}
	return app.Stop(context.Background())
}

func startServer(lc fx.Lifecycle, s *server.Server) {
	s.Start(lc)
}

func maybeStartScheduler(lc fx.Lifecycle, cfg *config.Config, s *scheduler.Scheduler) {
	if !cfg.Scheduler.Enabled {
		return
	}
	scheduler.Start(lc, s)
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
