package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RenderRequest is the flat JSON body of a source-topic message asking for a
// rendered time. Instant is optional RFC 3339; when absent the request is
// rendered at processing time.
type RenderRequest struct {
	Zip     string `json:"zip"`
	Format  string `json:"format"`
	Instant string `json:"instant,omitempty"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// RenderedTime is the domain-rich result published to the sink topic.
type RenderedTime struct {
	Zip            string    `json:"zip,omitempty"`         // normalized request code
	MatchedZip     string    `json:"matched_zip,omitempty"` // dataset code actually used
	UTCOffsetHours int       `json:"utc_offset_hours"`
	ObservesDST    bool      `json:"observes_dst"`
	DSTActive      bool      `json:"dst_active"`
	EffectiveHours int       `json:"effective_offset_hours"`
	Zone           string    `json:"zone"`
	Format         string    `json:"format"`
	Rendered       string    `json:"rendered"`
	ProcessedAt    time.Time `json:"processed_at"`
}

// NewRenderedTime projects the profile at the given instant and assembles the
// full result record. An empty format falls back to DefaultFormat.
func NewRenderedTime(profile LocationProfile, at time.Time, format string) RenderedTime {
	if format == "" {
		format = DefaultFormat
	}
	projected := profile.Project(at)

	matched := ""
	if profile.Matched {
		matched = profile.Zip
	}
	zip, _ := NormalizeZip(profile.RawZip)

	return RenderedTime{
		Zip:            zip,
		MatchedZip:     matched,
		UTCOffsetHours: profile.UTCOffsetHours,
		ObservesDST:    profile.ObservesDST,
		DSTActive:      projected.DSTActive,
		EffectiveHours: projected.OffsetHours,
		Zone:           projected.Zone,
		Format:         format,
		Rendered:       Render(projected, format),
		ProcessedAt:    Now(),
	}
}

// ParseRenderRequest deserializes a RawEvent's value into a RenderRequest and
// resolves its instant. A missing instant defaults to the package clock's
// current time; a malformed one is a parse error (poison pill for the
// pipeline, which skips and commits it).
func ParseRenderRequest(raw RawEvent) (RenderRequest, time.Time, error) {
	var req RenderRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return RenderRequest{}, time.Time{}, fmt.Errorf("parse render request: %w", err)
	}

	if req.Instant == "" {
		return req, Now(), nil
	}
	at, err := time.Parse(time.RFC3339, req.Instant)
	if err != nil {
		return RenderRequest{}, time.Time{}, fmt.Errorf("parse render request instant: %w", err)
	}
	return req, at, nil
}
