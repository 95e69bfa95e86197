package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/learnpath/internal/metrics"
	"github.com/abhisek/learnpath/internal/observability"
	"github.com/abhisek/learnpath/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the path builder over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LEARNPATH_HTTP_ADDR)")
	serveCmd.Flags().String("metrics-addr", "", "Serve /metrics on a separate address instead of the API listener")
	serveCmd.Flags().Bool("record", true, "Record generated paths and enable the history routes")
}

func runServe(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.HTTP.Addr = v
	}
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	record, _ := cmd.Flags().GetBool("record")

	g, ctx := errgroup.WithContext(cmd.Context())

	shutdown, err := observability.InitOTel(ctx, cfg.Tracing, version, log, nil)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Warn("otel shutdown failed", "error", err)
		}
	}()

	d, err := openDeps(ctx, record)
	if err != nil {
		return err
	}
	defer d.Close()

	m := metrics.New(prometheus.DefaultRegisterer)
	b, err := d.builder(log, m)
	if err != nil {
		return err
	}

	serverDeps := server.Deps{
		Builder:     b,
		Source:      d.source,
		Metrics:     m,
		Logger:      log,
		HTTP:        cfg.HTTP,
		ServiceName: cfg.Tracing.ServiceName,
	}
	if record {
		serverDeps.Paths = d.store.PathRepo()
	}
	if metricsAddr == "" {
		serverDeps.Gatherer = prometheus.DefaultGatherer
	}
	srv, err := server.New(serverDeps)
	if err != nil {
		return err
	}

	log.Info("serving learning paths", "addr", cfg.HTTP.Addr, "source", cfg.Source, "catalog_version", d.version)
	g.Go(func() error { return srv.Run(ctx) })
	if metricsAddr != "" {
		g.Go(func() error { return serveMetrics(ctx, metricsAddr) })
	}
	return g.Wait()
}

// serveMetrics runs a bare promhttp listener until ctx is done.
func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("metrics listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics listen on %s: %w", addr, err)
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
