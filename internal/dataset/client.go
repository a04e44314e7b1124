// Package dataset loads the static ZIP offset dataset and serves lookups
// against the in-memory table.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/zip-time-service/internal/domain"
)

// Client fetches the offset dataset document over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

// NewClient creates a dataset client for the given document URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:    url,
		logger: logger,
	}
}

// Fetch downloads and decodes the dataset. Entries whose key does not
// normalize to itself are kept under their original key; the document is
// expected to use canonical 5-digit keys.
func (c *Client) Fetch(ctx context.Context) (domain.OffsetTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dataset fetch: status %d: %s", resp.StatusCode, body)
	}

	var table domain.OffsetTable
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	c.logger.Info("dataset fetched", "url", c.url, "entries", len(table))
	return table, nil
}
