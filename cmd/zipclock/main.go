// Command zipclock resolves a ZIP code against an offset dataset and prints
// its local time, either once or as a running clock.
//
// Usage:
//
//	go run ./cmd/zipclock -dataset http://localhost:9000/zipdata.json -zip 90210
//	go run ./cmd/zipclock -once -format "Y-m-d H:i:s"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/zip-time-service/internal/dataset"
	"github.com/couchcryptid/zip-time-service/internal/domain"
	"github.com/couchcryptid/zip-time-service/internal/liveclock"
	"github.com/couchcryptid/zip-time-service/internal/observability"
	"github.com/couchcryptid/zip-time-service/internal/resolver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "zipclock:", err)
		os.Exit(1)
	}
}

func run() error {
	zip := flag.String("zip", "", "ZIP code to resolve (empty uses host-local settings)")
	format := flag.String("format", "", `render format (default "D M j Y H:i:s")`)
	datasetURL := flag.String("dataset", "", "offset dataset URL, required with -zip")
	interval := flag.Duration("interval", time.Second, "tick interval")
	once := flag.Bool("once", false, "print a single timestamp and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profile, err := resolveProfile(ctx, *zip, *datasetURL, logger)
	if err != nil {
		return err
	}

	if *once {
		fmt.Println(profile.Render(domain.Now(), *format))
		return nil
	}

	ticker := liveclock.New(profile, *format, *interval, func(rendered string) {
		fmt.Println(rendered)
	}, nil, logger)

	ticker.Start(ctx)
	<-ctx.Done()
	ticker.Stop()
	return nil
}

func resolveProfile(ctx context.Context, zip, datasetURL string, logger *slog.Logger) (domain.LocationProfile, error) {
	if zip == "" {
		return domain.LocalProfile(domain.Now()), nil
	}
	if datasetURL == "" {
		return domain.LocationProfile{}, errors.New("-dataset is required when -zip is set")
	}

	metrics := observability.NewMetrics()
	store := dataset.NewStore(dataset.NewClient(datasetURL, 10*time.Second, logger), logger, metrics)
	if err := store.Load(ctx); err != nil {
		return domain.LocationProfile{}, fmt.Errorf("load dataset: %w", err)
	}

	svc := resolver.New(store, 1, 5*time.Second, logger, metrics)
	return svc.Resolve(ctx, zip), nil
}
