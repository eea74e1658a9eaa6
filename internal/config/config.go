package config

import (
	"fmt"
	"time"
)

const (
	DefaultServer   = "1.1.1.1:443" // Cloudflare DNS; also the resolution fallback
	DefaultInterval = 1000 * time.Millisecond
	DefaultTimeout  = 500 * time.Millisecond
)

type Config struct {
	Server   string        // target as typed by the user, e.g. "https://example.com"
	Interval time.Duration // delay after each probe
	Timeout  time.Duration // per-connect bound; 0 means wait indefinitely
	Count    int           // probes before exiting; 0 means forever
	Fallback string        // dialed when the target does not resolve; "" disables
	Listen   string        // status endpoint bind address; "" disables
	LogDir   string        // rotating JSON log directory; "" disables
}

func Default() Config {
	return Config{
		Server:   DefaultServer,
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		Fallback: DefaultServer,
	}
}

// FromMillis builds a Config from the millisecond values the CLI accepts.
func FromMillis(server string, intervalMS, timeoutMS int64, count int) Config {
	cfg := Default()
	if server != "" {
		cfg.Server = server
	}
	cfg.Interval = time.Duration(intervalMS) * time.Millisecond
	cfg.Timeout = time.Duration(timeoutMS) * time.Millisecond
	cfg.Count = count
	return cfg
}

func (c Config) Validate() error {
	if c.Interval < 0 {
		return fmt.Errorf("interval must be >= 0, got %v", c.Interval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	if c.Count < 0 {
		return fmt.Errorf("count must be >= 0, got %d", c.Count)
	}
	return nil
}
