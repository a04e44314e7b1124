package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderedTime(t *testing.T) {
	frozen := time.Date(2024, time.July, 4, 17, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	at := time.Date(2024, time.July, 4, 16, 30, 45, 0, time.UTC)

	t.Run("matched profile", func(t *testing.T) {
		profile := LocationProfile{
			RawZip: "90210", Zip: "90210",
			UTCOffsetHours: -8, ObservesDST: true, Matched: true,
		}
		out := NewRenderedTime(profile, at, "H:i:s")

		assert.Equal(t, "90210", out.Zip)
		assert.Equal(t, "90210", out.MatchedZip)
		assert.Equal(t, -8, out.UTCOffsetHours)
		assert.True(t, out.DSTActive)
		assert.Equal(t, -7, out.EffectiveHours)
		assert.Equal(t, "PDT/MST", out.Zone)
		assert.Equal(t, "09:30:45", out.Rendered)
		assert.Equal(t, frozen, out.ProcessedAt)
	})

	t.Run("nearest match keeps the request code", func(t *testing.T) {
		profile := LocationProfile{
			RawZip: "90300", Zip: "90210",
			UTCOffsetHours: -8, ObservesDST: true, Matched: true,
		}
		out := NewRenderedTime(profile, at, "H:i:s")

		assert.Equal(t, "90300", out.Zip)
		assert.Equal(t, "90210", out.MatchedZip)
	})

	t.Run("empty format uses the default", func(t *testing.T) {
		profile := LocationProfile{UTCOffsetHours: -5, ObservesDST: true}
		out := NewRenderedTime(profile, at, "")

		assert.Equal(t, DefaultFormat, out.Format)
		assert.Equal(t, "Thu Jul 4 2024 12:30:45", out.Rendered)
		assert.Empty(t, out.Zip)
		assert.Empty(t, out.MatchedZip)
	})
}

func TestParseRenderRequest(t *testing.T) {
	t.Run("explicit instant", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"zip":"90210","format":"Y-m-d","instant":"2024-07-04T12:00:00Z"}`)}
		req, at, err := ParseRenderRequest(raw)

		require.NoError(t, err)
		assert.Equal(t, "90210", req.Zip)
		assert.Equal(t, "Y-m-d", req.Format)
		assert.Equal(t, time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC), at)
	})

	t.Run("missing instant uses the clock", func(t *testing.T) {
		frozen := time.Date(2024, time.April, 26, 15, 0, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(frozen))
		defer SetClock(nil)

		raw := RawEvent{Value: []byte(`{"zip":"32801","format":""}`)}
		req, at, err := ParseRenderRequest(raw)

		require.NoError(t, err)
		assert.Equal(t, "32801", req.Zip)
		assert.Equal(t, frozen, at)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, _, err := ParseRenderRequest(RawEvent{Value: []byte("{not-json")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse render request")
	})

	t.Run("malformed instant", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"zip":"90210","instant":"yesterday"}`)}
		_, _, err := ParseRenderRequest(raw)
		require.Error(t, err)
	})
}
