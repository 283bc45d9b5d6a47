package main

import (
	"context"
	"os/signal"
	"syscall"

	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/pkg/logger"

	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one discovery run and write the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := logger.NewLogger(cfg.LogLevel)
			defer log.Sync()

			search, err := flags.toSearchConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pipeline, cleanup, err := buildPipeline(ctx, cfg, search.Origins, flags.email, log, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := pipeline.Run(ctx, search)
			if err != nil {
				log.Error("Run failed", "error", err)
				return err
			}
			log.Info("Run complete",
				"mode", string(report.Mode),
				"observations", report.Observations,
				"trips", len(report.Trips))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
