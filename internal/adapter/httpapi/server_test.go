package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/zip-time-service/internal/adapter/httpapi"
	"github.com/couchcryptid/zip-time-service/internal/domain"
)

type mockResolver struct {
	lastZip  string
	profiles map[string]domain.LocationProfile
}

func (m *mockResolver) Resolve(_ context.Context, rawZip string) domain.LocationProfile {
	m.lastZip = rawZip
	if p, ok := m.profiles[rawZip]; ok {
		p.RawZip = rawZip
		return p
	}
	return domain.LocationProfile{UTCOffsetHours: -5, ObservesDST: true}
}

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error) (*httpapi.Server, *mockResolver) {
	resolver := &mockResolver{
		profiles: map[string]domain.LocationProfile{
			"90210": {Zip: "90210", UTCOffsetHours: -8, ObservesDST: true, Matched: true},
			"85001": {Zip: "85001", UTCOffsetHours: -7, ObservesDST: false, Matched: true},
		},
	}
	return httpapi.NewServer(":0", resolver, &mockReadiness{err: readyErr}, slog.Default()), resolver
}

func TestTimeEndpoint_ExplicitInstant(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/time?zip=90210&instant=2024-07-04T16:30:45Z", nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.RenderedTime
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "90210", body.Zip)
	assert.Equal(t, "90210", body.MatchedZip)
	assert.Equal(t, -8, body.UTCOffsetHours)
	assert.True(t, body.DSTActive)
	assert.Equal(t, -7, body.EffectiveHours)
	assert.Equal(t, "Thu Jul 4 2024 09:30:45", body.Rendered)
	assert.Equal(t, domain.DefaultFormat, body.Format)
}

func TestTimeEndpoint_CustomFormat(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/time?zip=85001&format=Y-m-d+H:i:s&instant=2024-01-15T12:00:00Z", nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.RenderedTime
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-01-15 05:00:00", body.Rendered)
	assert.False(t, body.DSTActive)
}

func TestTimeEndpoint_DefaultsToCurrentInstant(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fake)
	t.Cleanup(func() { domain.SetClock(nil) })

	srv, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/time?zip=85001&format=H:i:s", nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.RenderedTime
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "05:00:00", body.Rendered)
}

func TestTimeEndpoint_MalformedInstant(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/time?zip=90210&instant=yesterday", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "RFC 3339")
}

func TestTimeEndpoint_MissingZipFallsBackToLocal(t *testing.T) {
	srv, resolver := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/time?instant=2024-01-15T12:00:00Z", nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resolver.lastZip)

	var body domain.RenderedTime
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.MatchedZip)
}

func TestProfileEndpoint(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/profile?zip=90210", nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.LocationProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "90210", body.Zip)
	assert.Equal(t, -8, body.UTCOffsetHours)
	assert.True(t, body.ObservesDST)
	assert.True(t, body.Matched)
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(fmt.Errorf("dataset not loaded"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "dataset not loaded", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
