package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/icp"
	"github.com/shipcube/leads-cli/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lead discovery and qualification pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		icps, err := icp.Load(cfg.Pipeline.ICPFile)
		if err != nil {
			return err
		}

		e, err := initEnv(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		runner := &pipeline.Runner{
			Pipeline: e.Pipeline,
			Searcher: e.Searcher,
			Tech:     e.Tech,
			Budget:   pipeline.NewBudget(cfg.Search.DailyLimit),

			ICPs:            icps,
			TargetLeads:     cfg.Pipeline.TargetLeads,
			Workers:         cfg.Pipeline.Workers,
			MaxKeywordUsage: cfg.Pipeline.MaxKeywordUsage,
			BroadLimit:      cfg.Pipeline.BroadLimit,
		}

		zap.L().Info("starting pipeline run",
			zap.String("run_id", e.Pipeline.RunID),
			zap.Int("icps", len(icps)),
			zap.Int("target_leads", cfg.Pipeline.TargetLeads),
			zap.Int("workers", cfg.Pipeline.Workers))

		return runner.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
