package session_test

import (
	"testing"
	"time"

	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	start = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	end   = start.Add(5 * time.Minute)
)

func ptr(f float64) *float64 { return &f }

func addResults(t *testing.T, s *session.Session, correct, wrong int) {
	t.Helper()
	for i := 0; i < correct; i++ {
		require.NoError(t, s.AddResult(session.ExerciseResult{Correct: true}))
	}
	for i := 0; i < wrong; i++ {
		require.NoError(t, s.AddResult(session.ExerciseResult{Correct: false}))
	}
}

func TestNew_DefaultsToWrittenTranslation(t *testing.T) {
	s, err := session.New(1, "", start)
	require.NoError(t, err)
	assert.Equal(t, models.PracticeWrittenTranslation, s.PracticeType())
	assert.Equal(t, session.Active, s.State())
}

func TestNew_RejectsUnknownPracticeType(t *testing.T) {
	_, err := session.New(1, "karaoke", start)
	assert.Error(t, err)
}

func TestEnd_QualityThresholds(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		wrong   int
		pct     float64
		quality int
	}{
		{"9 of 10", 9, 1, 0.9, 5},
		{"8 of 10", 8, 2, 0.8, 4},
		{"6 of 10", 6, 4, 0.6, 3},
		{"5 of 10", 5, 5, 0.5, 2},
		{"2 of 10", 2, 8, 0.2, 1},
		{"1 of 10", 1, 9, 0.1, 0},
		{"all correct", 10, 0, 1.0, 5},
		{"all wrong", 0, 10, 0.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := session.New(1, models.PracticeWrittenTranslation, start)
			require.NoError(t, err)
			addResults(t, s, tt.correct, tt.wrong)

			summary, err := s.End(end)
			require.NoError(t, err)

			assert.InDelta(t, tt.pct, summary.CorrectPercentage, 1e-9)
			assert.Equal(t, tt.quality, summary.FinalQuality)
			assert.Equal(t, tt.correct+tt.wrong, summary.ExercisesCompleted)
			assert.Equal(t, tt.correct, summary.CorrectAnswers)
		})
	}
}

func TestEnd_NoExercises(t *testing.T) {
	s, err := session.New(1, models.PracticeGrammarDialog, start)
	require.NoError(t, err)

	summary, err := s.End(end)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.ExercisesCompleted)
	assert.Equal(t, 0.0, summary.CorrectPercentage)
	assert.Equal(t, 0, summary.FinalQuality)
	assert.Nil(t, summary.AvgPronunciationScore)
}

func TestEnd_AveragesPronunciationScores(t *testing.T) {
	s, err := session.New(1, models.PracticeRepeatAloud, start)
	require.NoError(t, err)

	require.NoError(t, s.AddResult(session.ExerciseResult{Correct: true, PronunciationScore: ptr(0.8)}))
	require.NoError(t, s.AddResult(session.ExerciseResult{Correct: true, PronunciationScore: ptr(0.6)}))
	require.NoError(t, s.AddResult(session.ExerciseResult{Correct: false}))

	summary, err := s.End(end)
	require.NoError(t, err)

	require.NotNil(t, summary.AvgPronunciationScore)
	assert.InDelta(t, 0.7, *summary.AvgPronunciationScore, 1e-9)
}

func TestAddResult_IgnoresPronunciationForWrittenTypes(t *testing.T) {
	s, err := session.New(1, models.PracticeWrittenTranslation, start)
	require.NoError(t, err)

	require.NoError(t, s.AddResult(session.ExerciseResult{Correct: true, PronunciationScore: ptr(0.9)}))

	summary, err := s.End(end)
	require.NoError(t, err)
	assert.Nil(t, summary.AvgPronunciationScore)
}

func TestEnd_OnlyOnce(t *testing.T) {
	s, err := session.New(1, models.PracticeWrittenTranslation, start)
	require.NoError(t, err)
	addResults(t, s, 3, 0)

	_, err = s.End(end)
	require.NoError(t, err)
	assert.Equal(t, session.Ended, s.State())

	_, err = s.End(end)
	assert.Error(t, err, "an ended session is immutable")
	assert.Error(t, s.AddResult(session.ExerciseResult{Correct: true}))
}

func TestReset_DiscardsFromAnyState(t *testing.T) {
	s, err := session.New(1, models.PracticeOralTranslation, start)
	require.NoError(t, err)
	addResults(t, s, 2, 1)

	s.Reset()
	assert.Equal(t, session.Discarded, s.State())
	assert.Error(t, s.AddResult(session.ExerciseResult{Correct: true}))
	_, err = s.End(end)
	assert.Error(t, err)
	_, err = s.Summary()
	assert.Error(t, err)

	// Reset after End is also allowed.
	s2, err := session.New(2, models.PracticeWrittenTranslation, start)
	require.NoError(t, err)
	_, err = s2.End(end)
	require.NoError(t, err)
	s2.Reset()
	assert.Equal(t, session.Discarded, s2.State())
}
