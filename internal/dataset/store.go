package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/zip-time-service/internal/domain"
	"github.com/couchcryptid/zip-time-service/internal/observability"
)

// ErrNotLoaded is returned by Lookup before the first successful Load.
var ErrNotLoaded = errors.New("offset dataset not loaded")

// Store holds the loaded offset table and serves per-request lookups against
// the in-memory snapshot. The original library re-downloaded the whole
// dataset for every resolution; loading once and refreshing on an interval
// keeps the search semantics while dropping the per-request fetch.
type Store struct {
	client  *Client
	logger  *slog.Logger
	metrics *observability.Metrics

	mu    sync.RWMutex
	table domain.OffsetTable
}

// NewStore creates a Store backed by the given client. Call Load before
// serving lookups.
func NewStore(client *Client, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		client:  client,
		logger:  logger,
		metrics: metrics,
	}
}

// Load fetches the dataset and swaps it in. Safe to call again to refresh; on
// error the previous table is kept.
func (s *Store) Load(ctx context.Context) error {
	table, err := s.client.Fetch(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.metrics.DatasetLoaded.Set(1)
	s.metrics.DatasetEntries.Set(float64(len(table)))
	return nil
}

// Refresh reloads the dataset on the given interval until the context is
// cancelled. A failed refresh logs and keeps the current table.
func (s *Store) Refresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Load(ctx); err != nil {
				s.logger.Warn("dataset refresh failed", "error", err)
			}
		}
	}
}

// Lookup finds the record for a normalized code, falling back to the nearest
// neighboring code. It implements resolver.OffsetSource.
func (s *Store) Lookup(_ context.Context, zip string) (domain.OffsetRecord, bool, error) {
	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()

	if table == nil {
		return domain.OffsetRecord{}, false, ErrNotLoaded
	}

	rec, ok := table.Lookup(zip)
	return rec, ok, nil
}

// CheckReadiness returns nil once the dataset has been loaded.
func (s *Store) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return ErrNotLoaded
	}
	return nil
}
