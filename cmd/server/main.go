// Command server exposes OME, zone classification and full analyses as a
// JSON REST API.
//
// Endpoints:
//
//	POST /api/ome      body: {"tokens":[...]} or {"text":"..."}
//	POST /api/zones    body: {"ranked":[...], "ome":{...}, "disjoint":false}
//	POST /api/analyze  body: {"text":"...", "mode":"hap"|"no_hap"}
//	GET  /healthz
//	GET  /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/config"
	"github.com/nguyentantai21042004/textlab/internal/entities"
	"github.com/nguyentantai21042004/textlab/internal/llm"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	"github.com/nguyentantai21042004/textlab/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
)

// newHandler wires the API routes behind the metrics and CORS middleware.
func newHandler(cfg *config.Config, runner analysis.Runner, reg *prometheus.Registry, m *metrics.Metrics, log logger.Logger) http.Handler {
	mode, err := analysis.ParseMode(cfg.Analysis.Mode)
	if err != nil {
		mode = analysis.ModeHapax
	}
	h := &handlers{
		runner:      runner,
		defaultMode: mode,
		disjoint:    cfg.Analysis.Disjoint,
		logger:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/ome", h.handleOME)
	mux.HandleFunc("/api/zones", h.handleZones)
	mux.HandleFunc("/api/analyze", h.handleAnalyze)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", metrics.Handler(reg))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(metrics.Middleware(m)(mux))
}

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (optional)")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	log := logger.NewWithWriter(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	opts := analysis.Options{Disjoint: cfg.Analysis.Disjoint, Workers: cfg.Performance.ImportWorkers, Metrics: m}
	if len(cfg.Gemini.APIKeys) > 0 {
		client, err := llm.New(llm.Config{
			APIKeys:    cfg.Gemini.APIKeys,
			Model:      cfg.Gemini.Model,
			EmbedModel: cfg.Gemini.EmbedModel,
		}, log)
		if err != nil {
			log.Error(ctx, "Failed to create Gemini client: %v", err)
			os.Exit(1)
		}
		opts.Recognizer = entities.NewLLM(client)
	}
	runner := analysis.New(opts, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newHandler(cfg, runner, reg, m, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "Listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info(context.Background(), "Shutdown signal received")
	case err := <-errChan:
		log.Error(context.Background(), "Server error: %v", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Graceful shutdown failed: %v", err)
	}
	log.Info(shutdownCtx, "Server stopped")
}
