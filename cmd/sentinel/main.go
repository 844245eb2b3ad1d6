package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"StockSentinel/internal/api"
	"StockSentinel/internal/cache"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/config"
	"StockSentinel/internal/metrics"
	"StockSentinel/internal/model"
	"StockSentinel/internal/notifier"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/scheduler"
	"StockSentinel/internal/strategy"
	"StockSentinel/pkg/errors"
	"StockSentinel/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Env); err != nil {
		logger.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	log := logger.Get()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	log.Infow("StockSentinel starting", "config", cfgPath, "source", cfg.Data.Source, "symbols", len(cfg.Data.Symbols))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fetcher collector.Fetcher
	switch cfg.Data.Source {
	case "mock":
		fetcher = &collector.MockFetcher{Price: cfg.Data.MockPrice, Drift: 0.0005}
	default:
		fetcher = collector.NewFileFetcher(cfg.Data.SnapshotDir)
	}
	col := collector.NewCollector(fetcher, cfg.Data.HistoryDays, log)
	engine := strategy.NewEngine(cfg.Engine, log.With("component", "engine"))

	results := cache.New[*model.TechnicalAnalysisResult](cfg.Cache.TTL)
	go results.RunJanitor(ctx, time.Minute)

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warnw("init sqlite recorder failed, using noop", "error", err)
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	analyzer := scheduler.NewAnalyzer(col, engine, results, rec, m, log)

	var notify notifier.Notifier = notifier.NoopNotifier{}
	if cfg.Telegram.Enabled() {
		tn, err := notifier.NewTelegramNotifier(cfg.Telegram, log)
		if err != nil {
			log.Warnw("telegram disabled", "error", err)
		} else {
			notify = tn
			go tn.StartPolling(ctx, notifier.NewCommandHandler(analyzer))
		}
	}

	sched := scheduler.NewScheduler(ctx, analyzer, notify, m, cfg.Data.Symbols, cfg.Workers, log)
	if err := sched.Register(cfg.Schedule.AnalysisCron); err != nil {
		log.Fatalf("register cron job: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Infow("RUN_ON_START enabled, running batch now")
		go sched.RunNow()
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(analyzer, reg, cfg.HTTP.RequestTimeout, log),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTP.RequestTimeout + 5*time.Second,
	}
	go func() {
		log.Infow("http server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("http server failed", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Infow("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("http shutdown failed", "error", err)
	}
	log.Infow("StockSentinel stopped")
}
