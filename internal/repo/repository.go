package repo

import (
	"context"

	"github.com/hamed0406/netmon/internal/domain"
)

// LatestStore holds the most recent probe sample. No history is kept.
type LatestStore interface {
	// Latest returns nil, nil before the first probe.
	Latest(ctx context.Context) (*domain.Sample, error)
}
