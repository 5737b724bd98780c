package nats

import (
	"testing"
	"time"

	"rag-symptom-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		data     string
		wantType string
		wantTime time.Time
	}{
		{
			name:     "typed payload",
			subject:  "events.CONSULTATION_FINALIZED",
			data:     `{"event_type":"CONSULTATION_FINALIZED","occurred_at":"2026-01-02T03:04:05Z","session_id":"abc"}`,
			wantType: events.TypeConsultationFinalized,
			wantTime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			name:     "type from subject",
			subject:  "events.CONSULTATION_NO_MATCH",
			data:     `{"session_id":"abc"}`,
			wantType: events.TypeConsultationNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, err := DecodeEvent(tt.subject, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, evt.EventType())
			assert.Equal(t, "abc", evt.Payload()["session_id"])
			assert.NotContains(t, evt.Payload(), "event_type")
			if !tt.wantTime.IsZero() {
				assert.True(t, tt.wantTime.Equal(evt.Timestamp()))
			}
		})
	}

	_, err := DecodeEvent("events.X", []byte("not json"))
	assert.Error(t, err)
}
