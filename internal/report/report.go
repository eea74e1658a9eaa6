package report

import (
	"context"

	"go.uber.org/multierr"

	"github.com/hamed0406/netmon/internal/domain"
	"github.com/hamed0406/netmon/internal/probe"
)

// Reporter consumes the result of each probe.
type Reporter interface {
	Report(ctx context.Context, r probe.Result) error
}

// Multi fans a result out to every reporter, even after one fails.
type Multi []Reporter

func (m Multi) Report(ctx context.Context, r probe.Result) error {
	var err error
	for _, rep := range m {
		if rep == nil {
			continue
		}
		err = multierr.Append(err, rep.Report(ctx, r))
	}
	return err
}

// NewSample converts a probe result into its JSON view.
func NewSample(r probe.Result) domain.Sample {
	s := domain.Sample{
		Target:    r.Target,
		Address:   r.Address,
		Endpoint:  r.Endpoint,
		Fallback:  r.Fallback,
		OK:        r.OK(),
		Kind:      string(r.Kind()),
		CheckedAt: r.CheckedAt,
	}
	if r.OK() {
		s.RTTMS = float64(r.RTT) / 1e6
	} else {
		s.Error = r.Err.Error()
	}
	return s
}
