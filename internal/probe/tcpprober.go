package probe

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Resolver is the subset of *net.Resolver the prober needs.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupPort(ctx context.Context, network, service string) (int, error)
}

type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// TCPProber measures how long a TCP handshake to a target takes.
type TCPProber struct {
	Logger   *zap.Logger
	Resolver Resolver
	Dial     DialFunc
	Timeout  time.Duration // bounds each connect; 0 waits indefinitely
	Fallback string        // dialed when resolution fails; empty disables
}

func NewTCPProber(logger *zap.Logger, timeout time.Duration, fallback string) *TCPProber {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout < 0 {
		timeout = 0
	}
	d := &net.Dialer{}
	return &TCPProber{
		Logger:   logger,
		Resolver: net.DefaultResolver,
		Dial:     d.DialContext,
		Timeout:  timeout,
		Fallback: fallback,
	}
}

func (p *TCPProber) Probe(ctx context.Context, target string) Result {
	res := Result{
		Target:    target,
		Address:   NormalizeAddress(target),
		CheckedAt: time.Now().UTC(),
	}

	endpoint, err := p.resolve(ctx, res.Address)
	if err != nil {
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			return res
		}
		if p.Fallback == "" {
			res.Err = &Error{Kind: KindResolution, Err: err}
			return res
		}
		p.Logger.Warn("resolve_fallback",
			zap.String("address", res.Address),
			zap.String("fallback", p.Fallback),
			zap.Error(err),
		)
		endpoint = p.Fallback
		res.Fallback = true
	}
	res.Endpoint = endpoint

	rtt, err := p.connect(ctx, endpoint)
	if err != nil {
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			return res
		}
		res.Err = newError(err)
		return res
	}
	res.RTT = rtt
	return res
}

// resolve picks the first candidate endpoint for a host:port address.
// Later candidates are never tried.
func (p *TCPProber) resolve(ctx context.Context, address string) (string, error) {
	host, service, err := net.SplitHostPort(address)
	if err != nil {
		return "", err
	}
	port, err := p.Resolver.LookupPort(ctx, "tcp", service)
	if err != nil {
		return "", err
	}
	addrs, err := p.Resolver.LookupHost(ctx, host)
	if err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", errors.Errorf("no addresses found for %s", host)
	}
	return net.JoinHostPort(addrs[0], strconv.Itoa(port)), nil
}

func (p *TCPProber) connect(ctx context.Context, endpoint string) (time.Duration, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	start := time.Now()
	conn, err := p.Dial(ctx, "tcp", endpoint)
	if err != nil {
		return 0, err
	}
	rtt := time.Since(start)

	if err := conn.Close(); err != nil {
		p.Logger.Debug("conn_close_error", zap.String("endpoint", endpoint), zap.Error(err))
	}
	return rtt, nil
}
