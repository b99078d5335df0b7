package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/config"
	"github.com/nguyentantai21042004/textlab/internal/entities"
	"github.com/nguyentantai21042004/textlab/internal/events"
	"github.com/nguyentantai21042004/textlab/internal/llm"
	"github.com/nguyentantai21042004/textlab/internal/logger"
	"github.com/nguyentantai21042004/textlab/internal/metrics"
	"github.com/nguyentantai21042004/textlab/internal/processor"
	"github.com/nguyentantai21042004/textlab/internal/speech"
	"github.com/nguyentantai21042004/textlab/internal/store"
	"github.com/nguyentantai21042004/textlab/internal/watcher"
	"github.com/nguyentantai21042004/textlab/pkg/executor"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (optional)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "Text analysis pipeline starting")
	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Max concurrent analyses: %d, mode: %s", cfg.Performance.MaxConcurrent, cfg.Analysis.Mode)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	var m *metrics.Metrics
	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		m = metrics.New(reg)
	}

	runnerOpts := analysis.Options{
		Disjoint: cfg.Analysis.Disjoint,
		Workers:  cfg.Performance.ImportWorkers,
		Metrics:  m,
	}
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
		runnerOpts.Recognizer = entities.NewLLM(client)
	} else {
		log.Info(ctx, "No Gemini API keys; using heuristic entity recognition")
	}

	deps := processor.Deps{Runner: analysis.New(runnerOpts, log)}
	if cfg.Whisper.ModelPath != "" {
		deps.Recognizer = speech.NewWhisper(speech.WhisperConfig{
			FFmpegPath: cfg.FFmpeg.BinaryPath,
			BinaryPath: cfg.Whisper.BinaryPath,
			ModelPath:  cfg.Whisper.ModelPath,
			Language:   cfg.Whisper.Language,
			Prompt:     cfg.Whisper.Prompt,
			Threads:    cfg.Whisper.Threads,
			TempDir:    cfg.Paths.Temp,
		}, executor.New(), log)
	} else {
		log.Info(ctx, "whisper.model_path not set; audio files will be rejected")
	}
	if cfg.Database.Path != "" {
		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			log.Error(ctx, "Failed to open analysis store: %v", err)
			os.Exit(1)
		}
		defer st.Close()
		deps.Saver = st
	}
	if producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log); producer != nil {
		defer producer.Close()
		deps.Publisher = producer
	}

	proc := processor.New(cfg, deps, log)

	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, watcher.Options{
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		Filter:        processor.Supported,
	})
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		metricsSrv = &http.Server{Addr: cfg.Server.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "Metrics server error: %v", err)
			}
		}()
		log.Info(ctx, "Metrics: http://%s/metrics", cfg.Server.Addr)
	}

	// The watcher starts before the backlog scan so files dropped meanwhile are
	// not missed; proc skips paths that both of them hand over.
	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()
	go func() {
		if err := proc.ProcessBacklog(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "Backlog processing failed: %v", err)
		}
	}()

	log.Info(ctx, "Pipeline is ready. Monitoring: %s, output: %s", cfg.Paths.Input, cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	if metricsSrv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}

	log.Info(ctx, "Pipeline stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
