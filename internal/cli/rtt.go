package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/netmon/internal/config"
	"github.com/hamed0406/netmon/internal/httpapi"
	"github.com/hamed0406/netmon/internal/logging"
	"github.com/hamed0406/netmon/internal/probe"
	"github.com/hamed0406/netmon/internal/repo/memory"
	"github.com/hamed0406/netmon/internal/report"
	"github.com/hamed0406/netmon/internal/scheduler"
)

func newRTTCmd() *cobra.Command {
	var (
		intervalMS int64
		timeoutMS  int64
		count      int
		noFallback bool
		listen     string
		logDir     string
	)

	cmd := &cobra.Command{
		Use:   "rtt [server]",
		Short: "Measure Round-Trip Time (RTT) to a server",
		Long: `Measure Round-Trip Time (RTT) to a server by timing TCP handshakes.

The server may carry an http:// or https:// prefix and an optional :port
(default 443). Probes repeat until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server := ""
			if len(args) == 1 {
				server = args[0]
			}
			cfg := config.FromMillis(server, intervalMS, timeoutMS, count)
			cfg.Listen = listen
			cfg.LogDir = logDir
			if noFallback {
				cfg.Fallback = ""
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.NewLogger(cfg.LogDir)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runRTT(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.Int64VarP(&intervalMS, "interval", "i", config.DefaultInterval.Milliseconds(), "Interval in milliseconds between pings")
	f.Int64VarP(&timeoutMS, "timeout", "t", config.DefaultTimeout.Milliseconds(), "Milliseconds before a connect attempt is abandoned (0 waits indefinitely)")
	f.IntVarP(&count, "count", "c", 0, "Stop after this many pings (0 runs until interrupted)")
	f.BoolVar(&noFallback, "no-fallback", false, "Report unresolvable servers as failures instead of pinging "+config.DefaultServer)
	f.StringVar(&listen, "listen", "", "Serve the latest result over HTTP on this address, e.g. 127.0.0.1:8080")
	f.StringVar(&logDir, "log-dir", "", "Write a rotating JSON log to this directory")

	return cmd
}

// runRTT wires the prober, reporters and optional status endpoint, then
// probes until ctx is cancelled or the configured count is reached.
func runRTT(ctx context.Context, cfg config.Config, logger *zap.Logger, out, errOut io.Writer) error {
	reporters := report.Multi{
		report.NewPrinter(out, errOut),
		report.Logged{Logger: logger},
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var srvErr chan error
	if cfg.Listen != "" {
		ln, err := net.Listen("tcp", cfg.Listen)
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.Listen, err)
		}
		store := memory.New()
		reporters = append(reporters, store)
		srvErr = make(chan error, 1)
		go func() { srvErr <- httpapi.NewServer(logger, store).Serve(ctx, ln) }()
	}

	prober := probe.NewTCPProber(logger, cfg.Timeout, cfg.Fallback)
	loop := scheduler.NewLoop(logger, prober, reporters, cfg.Server, cfg.Interval, cfg.Count)

	err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	cancel()
	if srvErr != nil {
		err = multierr.Append(err, <-srvErr)
	}
	return err
}
