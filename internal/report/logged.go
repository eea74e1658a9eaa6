package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/netmon/internal/probe"
)

// Logged records every probe as a structured log entry.
type Logged struct {
	Logger *zap.Logger
}

func (l Logged) Report(_ context.Context, r probe.Result) error {
	if r.OK() {
		l.Logger.Info("probe_ok",
			zap.String("target", r.Target),
			zap.String("endpoint", r.Endpoint),
			zap.Bool("fallback", r.Fallback),
			zap.Duration("rtt", r.RTT),
		)
		return nil
	}
	l.Logger.Warn("probe_failed",
		zap.String("target", r.Target),
		zap.String("endpoint", r.Endpoint),
		zap.String("kind", string(r.Kind())),
		zap.Error(r.Err),
	)
	return nil
}
