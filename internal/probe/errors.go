package probe

import (
	"context"
	"net"
	"syscall"

	"github.com/pkg/errors"
)

// Kind classifies why a probe failed.
type Kind string

const (
	KindNone       Kind = ""
	KindResolution Kind = "resolution"
	KindTimeout    Kind = "timeout"
	KindRefused    Kind = "refused"
	KindIO         Kind = "io"
)

var (
	ErrResolution = errors.New("address resolution failed")
	ErrTimeout    = errors.New("connect timed out")
	ErrRefused    = errors.New("connection refused")
	ErrIO         = errors.New("connect failed")
)

// Error is a classified probe failure. errors.Is matches both the sentinel
// for its Kind and anything in the wrapped cause chain.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindResolution:
		return ErrResolution
	case KindTimeout:
		return ErrTimeout
	case KindRefused:
		return ErrRefused
	case KindIO:
		return ErrIO
	}
	return nil
}

// classify maps a dial or lookup error onto the failure taxonomy.
func classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		dnsErr  *net.DNSError
		addrErr *net.AddrError
		netErr  net.Error
	)
	switch {
	case errors.As(err, &dnsErr), errors.As(err, &addrErr):
		// checked first: a resolver timeout is still a resolution failure
		return KindResolution
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return KindTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return KindRefused
	}
	return KindIO
}

func newError(err error) *Error {
	return &Error{Kind: classify(err), Err: err}
}
