package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/netmon/internal/domain"
	"github.com/hamed0406/netmon/internal/probe"
	"github.com/hamed0406/netmon/internal/report"
)

// Store keeps the latest probe sample in memory; each report overwrites the
// previous one.
type Store struct {
	mu     sync.RWMutex
	latest *domain.Sample
}

func New() *Store {
	return &Store{}
}

func (m *Store) Report(ctx context.Context, r probe.Result) error {
	s := report.NewSample(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = &s
	return nil
}

func (m *Store) Latest(ctx context.Context) (*domain.Sample, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.latest == nil {
		return nil, nil
	}
	cp := *m.latest
	return &cp, nil
}
