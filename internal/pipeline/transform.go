package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/zip-time-service/internal/domain"
)

// Resolver turns raw ZIP codes into location profiles.
type Resolver interface {
	Resolve(ctx context.Context, rawZip string) domain.LocationProfile
}

// RenderTransformer implements Transformer by resolving each request's ZIP
// code and rendering the requested instant.
type RenderTransformer struct {
	resolver Resolver
	logger   *slog.Logger
}

// NewTransformer creates a RenderTransformer backed by the given resolver.
func NewTransformer(resolver Resolver, logger *slog.Logger) *RenderTransformer {
	return &RenderTransformer{
		resolver: resolver,
		logger:   logger,
	}
}

func (t *RenderTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.RenderedTime, error) {
	req, at, err := domain.ParseRenderRequest(raw)
	if err != nil {
		return domain.RenderedTime{}, err
	}

	profile := t.resolver.Resolve(ctx, req.Zip)
	return domain.NewRenderedTime(profile, at, req.Format), nil
}
