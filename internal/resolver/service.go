// Package resolver turns raw ZIP codes into location profiles, falling back
// to host-local settings whenever a code cannot be used.
package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/zip-time-service/internal/domain"
	"github.com/couchcryptid/zip-time-service/internal/observability"
)

// OffsetSource serves dataset lookups for normalized codes. Implementations
// handle the exact-then-nearest search; found=false means the whole search
// came up empty.
type OffsetSource interface {
	Lookup(ctx context.Context, zip string) (rec domain.OffsetRecord, found bool, err error)
}

// Service resolves ZIP codes against an OffsetSource. Resolution is fail-soft
// by contract: every failure mode (invalid code, miss, source error, timeout)
// degrades to the host's local settings and is never surfaced as an error.
type Service struct {
	source  OffsetSource
	cache   *profileCache
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a resolution service. timeout bounds each dataset lookup; the
// original library's lookup worker could hang a resolution forever, so the
// bound is deliberate hardening rather than an optimization.
func New(source OffsetSource, cacheSize int, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		source:  source,
		cache:   newProfileCache(cacheSize),
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

// Resolve produces a profile for the given raw code. An empty or invalid code
// resolves to the host's local settings immediately; a dataset miss or lookup
// failure does the same after the search.
func (s *Service) Resolve(ctx context.Context, rawZip string) domain.LocationProfile {
	now := domain.Now()

	if rawZip == "" {
		s.metrics.Resolutions.WithLabelValues("local").Inc()
		return domain.LocalProfile(now)
	}

	zip, ok := domain.NormalizeZip(rawZip)
	if !ok {
		s.metrics.Resolutions.WithLabelValues("invalid").Inc()
		s.logger.Debug("invalid zip, using local settings", "raw_zip", rawZip)
		return domain.LocalProfile(now)
	}

	if profile, ok := s.cache.get(zip); ok {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		profile.RawZip = rawZip
		return profile
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	rec, found, err := s.lookup(ctx, zip)
	if err != nil {
		s.metrics.Resolutions.WithLabelValues("error").Inc()
		s.logger.Warn("dataset lookup failed, using local settings", "zip", zip, "error", err)
		return domain.LocalProfile(now)
	}
	if !found {
		s.metrics.Resolutions.WithLabelValues("miss").Inc()
		s.logger.Debug("no dataset entry near zip, using local settings", "zip", zip)
		return domain.LocalProfile(now)
	}

	if rec.Zip == zip {
		s.metrics.Resolutions.WithLabelValues("exact").Inc()
	} else {
		s.metrics.Resolutions.WithLabelValues("nearest").Inc()
	}

	profile := domain.LocationProfile{
		RawZip:         rawZip,
		Zip:            rec.Zip,
		UTCOffsetHours: rec.UTCOffsetHours,
		ObservesDST:    rec.ObservesDST,
		Matched:        true,
	}
	s.cache.put(zip, profile)
	return profile
}

type lookupResult struct {
	rec   domain.OffsetRecord
	found bool
	err   error
}

// lookup runs a single-shot search goroutine per request and waits for its
// one result or the timeout, whichever comes first. Exactly one message is
// ever sent per request; the channel is buffered so an abandoned search does
// not leak its goroutine.
func (s *Service) lookup(ctx context.Context, zip string) (domain.OffsetRecord, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	results := make(chan lookupResult, 1)
	go func() {
		rec, found, err := s.source.Lookup(ctx, zip)
		results <- lookupResult{rec: rec, found: found, err: err}
	}()

	select {
	case <-ctx.Done():
		return domain.OffsetRecord{}, false, ctx.Err()
	case r := <-results:
		s.metrics.LookupDuration.Observe(time.Since(start).Seconds())
		return r.rec, r.found, r.err
	}
}
