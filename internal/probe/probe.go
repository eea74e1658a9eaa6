package probe

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Result is the outcome of a single probe.
//
// Fields:
//   - Target: the target exactly as the user supplied it.
//   - Address: Target after NormalizeAddress.
//   - Endpoint: the ip:port that was dialed; empty if nothing was dialed.
//   - Fallback: Endpoint is the fallback, not a resolution of Address.
//   - RTT: time to complete the TCP handshake; zero on failure.
type Result struct {
	Target    string
	Address   string
	Endpoint  string
	Fallback  bool
	RTT       time.Duration
	Err       error
	CheckedAt time.Time
}

func (r Result) OK() bool { return r.Err == nil }

// Kind reports the failure class, or KindNone for a successful probe.
func (r Result) Kind() Kind {
	if r.Err == nil {
		return KindNone
	}
	var pe *Error
	if errors.As(r.Err, &pe) {
		return pe.Kind
	}
	return KindIO
}

// Prober performs one resolve-connect-measure cycle against a target.
type Prober interface {
	Probe(ctx context.Context, target string) Result
}
