package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/internal/usecase"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var flags searchFlags
	var scheduleAt string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as a daemon, repeating the discovery run daily",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := logger.NewLogger(cfg.LogLevel)
			defer log.Sync()
			log.Info("Starting Farewatch daemon", "version", cfg.AppVersion)

			search, err := flags.toSearchConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			m := metrics.NewMetrics("farewatch")
			pipeline, cleanup, err := buildPipeline(ctx, cfg, search.Origins, flags.email, log, m)
			if err != nil {
				return err
			}
			defer cleanup()

			scheduler, err := usecase.NewScheduler(func(ctx context.Context) error {
				_, err := pipeline.Run(ctx, search)
				return err
			}, scheduleAt, log)
			if err != nil {
				return err
			}

			// Metrics and health endpoints.
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("Healthy"))
			})

			server := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      mux,
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
			}

			go func() {
				log.Info("Starting HTTP server", "port", cfg.Port)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("HTTP server error", "error", err)
				}
			}()

			// Blocks until the context is cancelled by a signal.
			scheduler.Start(ctx)

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("HTTP server shutdown error", "error", err)
			}

			log.Info("Farewatch daemon stopped")
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&scheduleAt, "at", "07:30", "daily run time, HH:MM local")
	return cmd
}
