package progress_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mariana/linguaflash/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal_CurrentShape(t *testing.T) {
	data := []byte(`{
		"language": "de",
		"topic": "der Hund",
		"kind": "vocabulary",
		"level": "A1",
		"ease_factor": 2.36,
		"interval_days": 6,
		"repetitions": 2,
		"next_review": "2026-04-01T08:00:00Z",
		"last_reviewed": "2026-03-26T08:00:00Z"
	}`)

	var r progress.Record
	require.NoError(t, json.Unmarshal(data, &r))
	require.NoError(t, r.Validate())

	assert.Equal(t, "der Hund", r.Topic)
	assert.Equal(t, 2.36, r.EaseFactor)
	assert.Equal(t, 6, r.IntervalDays)
	assert.Equal(t, 2, r.Repetitions)
	assert.Equal(t, time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC), r.NextReview)
	require.NotNil(t, r.LastReviewed)
}

func TestUnmarshal_LegacyShape(t *testing.T) {
	data := []byte(`{
		"language": "de",
		"topic": "Akkusativ",
		"kind": "grammar",
		"level": "A2",
		"easiness_factor": 1.96,
		"interval": 15,
		"repetition": 4,
		"next_review_date": "2026-04-10T00:00:00Z",
		"last_review_date": "2026-03-26T00:00:00Z"
	}`)

	var r progress.Record
	require.NoError(t, json.Unmarshal(data, &r))
	require.NoError(t, r.Validate())

	assert.Equal(t, 1.96, r.EaseFactor)
	assert.Equal(t, 15, r.IntervalDays)
	assert.Equal(t, 4, r.Repetitions)
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), r.NextReview)
	require.NotNil(t, r.LastReviewed)
}

func TestUnmarshal_CurrentShapeWinsOverLegacy(t *testing.T) {
	data := []byte(`{
		"language": "de",
		"topic": "mixed",
		"ease_factor": 2.5,
		"easiness_factor": 1.5,
		"interval_days": 3,
		"interval": 99
	}`)

	var r progress.Record
	require.NoError(t, json.Unmarshal(data, &r))

	assert.Equal(t, 2.5, r.EaseFactor)
	assert.Equal(t, 3, r.IntervalDays)
}

func TestUnmarshal_DefaultsForMissingFields(t *testing.T) {
	data := []byte(`{"language": "de", "topic": "neu"}`)

	var r progress.Record
	require.NoError(t, json.Unmarshal(data, &r))
	require.NoError(t, r.Validate())

	assert.Equal(t, 2.5, r.EaseFactor)
	assert.Equal(t, 0, r.IntervalDays)
	assert.Equal(t, 0, r.Repetitions)
	assert.True(t, r.NextReview.IsZero())
	assert.Nil(t, r.LastReviewed)

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	card := r.Card(42, now)
	assert.Equal(t, int64(42), card.UserID)
	assert.Equal(t, now, card.NextReview, "missing due date means due now")
	assert.Equal(t, "vocabulary", card.Kind)
}

func TestValidate_RejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing topic", `{"language": "de"}`},
		{"missing language", `{"topic": "x"}`},
		{"ease below floor", `{"language": "de", "topic": "x", "ease_factor": 0.9}`},
		{"negative interval", `{"language": "de", "topic": "x", "interval_days": -1}`},
		{"negative repetitions", `{"language": "de", "topic": "x", "repetition": -2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r progress.Record
			require.NoError(t, json.Unmarshal([]byte(tt.data), &r))
			assert.Error(t, r.Validate())
		})
	}
}

func TestUnmarshal_BadLegacyDate(t *testing.T) {
	var r progress.Record
	err := json.Unmarshal([]byte(`{"topic": "x", "language": "de", "next_review_date": "not-a-date"}`), &r)
	assert.Error(t, err)
}
