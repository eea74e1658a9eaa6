package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/netmon/internal/probe"
	"github.com/hamed0406/netmon/internal/report"
)

// Loop probes a single target over and over, reporting each result and then
// sleeping for Interval. The interval is a delay after each report, not a
// fixed schedule: a slow probe pushes every later probe back.
type Loop struct {
	Logger   *zap.Logger
	Prober   probe.Prober
	Reporter report.Reporter
	Target   string
	Interval time.Duration
	Count    int // stop after this many probes; 0 runs until ctx is cancelled
}

func NewLoop(
	logger *zap.Logger,
	p probe.Prober,
	r report.Reporter,
	target string,
	interval time.Duration,
	count int,
) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval < 0 {
		interval = 0
	}
	if count < 0 {
		count = 0
	}
	return &Loop{
		Logger:   logger,
		Prober:   p,
		Reporter: r,
		Target:   target,
		Interval: interval,
		Count:    count,
	}
}

// Run blocks until ctx is cancelled, returning ctx.Err(), or until Count
// probes have been reported, returning nil. Probe failures never stop it.
func (l *Loop) Run(ctx context.Context) error {
	l.Logger.Info("loop_started",
		zap.String("target", l.Target),
		zap.Duration("interval", l.Interval),
		zap.Int("count", l.Count),
	)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			l.Logger.Info("loop_stopped", zap.Int("probes", n-1))
			return err
		}

		res := l.Prober.Probe(ctx, l.Target)
		if err := ctx.Err(); err != nil {
			// interrupted mid-probe; nothing meaningful to report
			l.Logger.Info("loop_stopped", zap.Int("probes", n-1))
			return err
		}
		if err := l.Reporter.Report(ctx, res); err != nil {
			l.Logger.Warn("report_error", zap.String("target", l.Target), zap.Error(err))
		}

		if l.Count > 0 && n >= l.Count {
			l.Logger.Info("loop_finished", zap.Int("probes", n))
			return nil
		}

		timer.Reset(l.Interval)
		select {
		case <-ctx.Done():
			l.Logger.Info("loop_stopped", zap.Int("probes", n))
			return ctx.Err()
		case <-timer.C:
		}
	}
}
