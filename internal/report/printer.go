package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hamed0406/netmon/internal/probe"
)

// Printer writes the human-readable line for each probe: successes to Out,
// failures to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

func NewPrinter(out, errOut io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Printer{Out: out, Err: errOut}
}

func (p *Printer) Report(_ context.Context, r probe.Result) error {
	if r.Fallback {
		if _, err := fmt.Fprintf(p.Out, "Invalid server address: %s\nUsing default address %s\n", r.Address, r.Endpoint); err != nil {
			return err
		}
	}
	if r.OK() {
		_, err := fmt.Fprintf(p.Out, "RTT to %s: %s\n", r.Target, r.RTT)
		return err
	}
	_, err := fmt.Fprintf(p.Err, "Failed to ping %s: %v\n", r.Target, r.Err)
	return err
}
