package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hamed0406/netmon/internal/probe"
)

// --- fakes ---

type instantProber struct {
	mu    sync.Mutex
	calls int
	fail  bool
	delay time.Duration
}

func (p *instantProber) Probe(ctx context.Context, target string) probe.Result {
	p.mu.Lock()
	p.calls++
	fail := p.fail
	p.mu.Unlock()
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	res := probe.Result{Target: target, Address: probe.NormalizeAddress(target), CheckedAt: time.Now().UTC()}
	if fail {
		res.Err = &probe.Error{Kind: probe.KindRefused, Err: errors.New("connection refused")}
		return res
	}
	res.RTT = time.Microsecond
	return res
}

type recordingReporter struct {
	mu  sync.Mutex
	at  []time.Time
	res []probe.Result
	err error
}

func (r *recordingReporter) Report(ctx context.Context, res probe.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.at = append(r.at, time.Now())
	r.res = append(r.res, res)
	return r.err
}

func (r *recordingReporter) snapshot() ([]time.Time, []probe.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.at...), append([]probe.Result(nil), r.res...)
}

// --- tests ---

func TestLoop_CadenceAtLeastInterval(t *testing.T) {
	const interval = 20 * time.Millisecond
	rep := &recordingReporter{}
	l := NewLoop(zap.NewNop(), &instantProber{}, rep, "example.com", interval, 4)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	at, _ := rep.snapshot()
	if len(at) != 4 {
		t.Fatalf("want 4 reports, got %d", len(at))
	}
	for i := 1; i < len(at); i++ {
		if gap := at[i].Sub(at[i-1]); gap < interval {
			t.Fatalf("reports %d and %d only %v apart, want >= %v", i-1, i, gap, interval)
		}
	}
}

func TestLoop_DelayIsAfterSlowProbe(t *testing.T) {
	const (
		interval = 10 * time.Millisecond
		delay    = 30 * time.Millisecond
	)
	rep := &recordingReporter{}
	l := NewLoop(zap.NewNop(), &instantProber{delay: delay}, rep, "example.com", interval, 2)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	at, _ := rep.snapshot()
	if gap := at[1].Sub(at[0]); gap < interval+delay {
		t.Fatalf("gap %v should cover probe time plus interval (%v)", gap, interval+delay)
	}
}

func TestLoop_FailuresDoNotStopLoop(t *testing.T) {
	rep := &recordingReporter{}
	p := &instantProber{fail: true}
	l := NewLoop(zap.NewNop(), p, rep, "example.com", 0, 3)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	_, res := rep.snapshot()
	if len(res) != 3 {
		t.Fatalf("want 3 reports, got %d", len(res))
	}
	for _, r := range res {
		if r.OK() || r.Kind() != probe.KindRefused {
			t.Fatalf("want refused failure, got %+v", r)
		}
	}
}

func TestLoop_ReporterErrorIsLoggedNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rep := &recordingReporter{err: errors.New("stdout closed")}
	l := NewLoop(zap.New(core), &instantProber{}, rep, "example.com", 0, 2)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := logs.FilterMessage("report_error").Len(); n != 2 {
		t.Fatalf("want 2 report_error entries, got %d", n)
	}
}

func TestLoop_CancelStopsDeterministically(t *testing.T) {
	rep := &recordingReporter{}
	p := &instantProber{}
	l := NewLoop(zap.NewNop(), p, rep, "example.com", time.Hour, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	// Wait for the first report, then cancel during the long sleep.
	deadline := time.Now().Add(time.Second)
	for {
		if at, _ := rep.snapshot(); len(at) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("no report within 1s")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("loop did not stop after cancel")
	}
	if at, _ := rep.snapshot(); len(at) != 1 {
		t.Fatalf("want exactly 1 report, got %d", len(at))
	}
}

func TestLoop_AlreadyCancelledNeverProbes(t *testing.T) {
	p := &instantProber{}
	l := NewLoop(zap.NewNop(), p, &recordingReporter{}, "example.com", 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("want no probes, got %d", p.calls)
	}
}
