package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"StockSentinel/internal/metrics"
	"StockSentinel/internal/notifier"
	"StockSentinel/pkg/errors"
	"StockSentinel/pkg/logger"
)

// Scheduler runs the watchlist batch on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	analyzer *Analyzer
	notifier notifier.Notifier
	metrics  *metrics.Metrics
	symbols  []string
	workers  int
	log      *logger.Logger
	ctx      context.Context

	running sync.Mutex
}

// NewScheduler creates a Scheduler. Jobs started by cron inherit ctx.
// n, m and log may be nil.
func NewScheduler(
	ctx context.Context,
	a *Analyzer,
	n notifier.Notifier,
	m *metrics.Metrics,
	symbols []string,
	workers int,
	log *logger.Logger,
) *Scheduler {
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if workers <= 0 {
		workers = 1
	}
	m.SetWatchlistSize(len(symbols))
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		analyzer: a,
		notifier: n,
		metrics:  m,
		symbols:  symbols,
		workers:  workers,
		log:      log.With("component", "scheduler"),
		ctx:      ctx,
	}
}

// Register adds the batch job for spec (six fields, seconds first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RunNow); err != nil {
		return errors.Wrapf(err, "register analysis job %q", spec)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infow("scheduler started", "symbols", len(s.symbols), "workers", s.workers)
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Infow("scheduler stopped")
}

// RunNow executes one batch immediately (cron job, RUN_ON_START).
func (s *Scheduler) RunNow() {
	if err := s.RunBatch(s.ctx); err != nil {
		s.log.Warnw("batch finished with errors", "error", err)
	}
}

// RunBatch analyses every watchlist symbol with at most `workers` in flight,
// then sends a digest. A failing symbol never stops the others; failures are
// returned together as a MultiError.
func (s *Scheduler) RunBatch(ctx context.Context) error {
	if !s.running.TryLock() {
		s.log.Warnw("previous batch still running, skipping")
		return nil
	}
	defer s.running.Unlock()

	start := time.Now()
	lines := make([]notifier.DigestLine, len(s.symbols))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, sym := range s.symbols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				lines[i] = notifier.DigestLine{Symbol: sym, Err: err}
				return nil
			}
			res, err := s.analyzer.Refresh(ctx, sym)
			lines[i] = notifier.DigestLine{Symbol: sym, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	var merr errors.MultiError
	for _, l := range lines {
		if l.Err != nil {
			merr.Add(errors.Wrapf(l.Err, "%s", l.Symbol))
		}
	}

	took := time.Since(start)
	finished := time.Now()
	s.metrics.ObserveBatch(took, finished)
	s.log.Infow("batch complete", "symbols", len(s.symbols), "failed", len(merr.Errors), "took", took)

	if len(lines) > 0 {
		if err := s.notifier.Send(ctx, notifier.FormatDigest(lines, took, finished)); err != nil {
			s.metrics.RecordError("notifier")
			s.log.Errorw("send digest failed", "error", err)
		}
	}
	return merr.ToError()
}
