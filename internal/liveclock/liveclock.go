// Package liveclock emits freshly rendered timestamps for a resolved profile
// on a fixed interval, for display surfaces that want a running clock.
package liveclock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/zip-time-service/internal/domain"
)

// Sink receives each rendered tick.
type Sink func(rendered string)

// Ticker renders a profile's current time once per interval and hands the
// result to a sink. Start and Stop are idempotent.
type Ticker struct {
	profile  domain.LocationProfile
	format   string
	interval time.Duration
	sink     Sink
	clock    clockwork.Clock
	logger   *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a ticker for the given profile. A nil clock uses real time.
func New(profile domain.LocationProfile, format string, interval time.Duration, sink Sink, clock clockwork.Clock, logger *slog.Logger) *Ticker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Ticker{
		profile:  profile,
		format:   format,
		interval: interval,
		sink:     sink,
		clock:    clock,
		logger:   logger,
	}
}

// Start emits one tick immediately and then once per interval until Stop or
// context cancellation. Calling Start on a running ticker is a no-op.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	t.running = true
	t.mu.Unlock()

	t.logger.Info("live clock started", "zip", t.profile.Zip, "interval", t.interval)
	go t.run(ctx)
}

func (t *Ticker) run(ctx context.Context) {
	defer close(t.done)

	t.emit()
	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			t.emit()
		}
	}
}

func (t *Ticker) emit() {
	t.sink(t.profile.Render(t.clock.Now(), t.format))
}

// Stop halts the ticker and waits for the emit loop to exit. Calling Stop on
// a stopped ticker is a no-op.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	cancel()
	<-done
	t.logger.Info("live clock stopped", "zip", t.profile.Zip)
}
