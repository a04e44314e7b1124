package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/zip-time-service/internal/domain"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("90210"),
		Value:     []byte(`{"zip":"90210"}`),
		Topic:     "time-render-requests",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("scheduler")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("90210"), raw.Key)
	assert.JSONEq(t, `{"zip":"90210"}`, string(raw.Value))
	assert.Equal(t, "time-render-requests", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "scheduler", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 7, 4, 16, 30, 45, 0, time.UTC)
	result := domain.RenderedTime{
		Zip:            "90210",
		MatchedZip:     "90210",
		UTCOffsetHours: -8,
		ObservesDST:    true,
		DSTActive:      true,
		EffectiveHours: -7,
		Zone:           "PDT/MST",
		Format:         "H:i:s",
		Rendered:       "09:30:45",
		ProcessedAt:    now,
	}

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("90210"), msg.Key)
	assert.Contains(t, string(msg.Value), `"rendered":"09:30:45"`)
	assert.Contains(t, string(msg.Value), `"effective_offset_hours":-7`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "zip", msg.Headers[0].Key)
	assert.Equal(t, []byte("90210"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_LocalFallbackHasEmptyKey(t *testing.T) {
	result := domain.RenderedTime{
		UTCOffsetHours: -5,
		ObservesDST:    true,
		Rendered:       "Mon Jan 15 2024 07:00:00",
		ProcessedAt:    time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Empty(t, msg.Key)
	assert.Equal(t, []byte(""), msg.Headers[0].Value)
}
