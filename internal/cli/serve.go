package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/okian/skilltree/pkg/logger"
	"github.com/okian/skilltree/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the periodic refresh loop and serve /metrics",
	Long: `Run the engine as a long-lived process: refresh the display line on
the configured interval, expose Prometheus metrics, and save the graph
on shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, cfg, err := newService(ctx)
		if err != nil {
			return err
		}
		log := logger.Get().Named("serve")

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "metrics server failed", logger.Err(err))
			}
		}()

		if line, skipped := svc.Refresh(ctx); !skipped {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		ticker := time.NewTicker(cfg.RefreshInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				line, skipped := svc.Refresh(ctx)
				if skipped {
					log.Warn(ctx, "refresh tick skipped; previous still running")
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			case <-ctx.Done():
				log.Info(ctx, "shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.Error(ctx, "metrics server shutdown failed", logger.Err(err))
				}
				return svc.SaveFile(context.Background())
			}
		}
	},
}
