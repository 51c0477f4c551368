package models

import "time"

// PracticeType tags one bounded practice run. The set is closed; new types
// require schema and aggregator awareness.
type PracticeType string

const (
	PracticeWrittenTranslation PracticeType = "written_translation"
	PracticeRepeatAloud        PracticeType = "repeat_aloud"
	PracticeOralTranslation    PracticeType = "oral_translation"
	PracticeGrammarDialog      PracticeType = "grammar_dialog"
)

// DefaultPracticeType is assumed when a session is started without one.
const DefaultPracticeType = PracticeWrittenTranslation

// Valid reports whether t is a member of the closed practice-type set.
func (t PracticeType) Valid() bool {
	switch t {
	case PracticeWrittenTranslation, PracticeRepeatAloud, PracticeOralTranslation, PracticeGrammarDialog:
		return true
	}
	return false
}

// Audio reports whether the practice type produces pronunciation scores.
func (t PracticeType) Audio() bool {
	return t == PracticeRepeatAloud || t == PracticeOralTranslation
}

// PracticeStats accumulates per-practice-type usage for one card.
type PracticeStats struct {
	CardID         int64        `json:"card_id"`
	PracticeType   PracticeType `json:"practice_type"`
	Attempts       int          `json:"attempts"`
	Correct        int          `json:"correct"`
	PronScoreSum   float64      `json:"pron_score_sum"`
	PronScoreCount int          `json:"pron_score_count"`
	LastAttemptAt  *time.Time   `json:"last_attempt_at,omitempty"`
}

// AvgPronunciationScore returns the running mean of collected pronunciation
// scores. The second return is false when no scores were ever recorded.
func (s PracticeStats) AvgPronunciationScore() (float64, bool) {
	if s.PronScoreCount == 0 {
		return 0, false
	}
	return s.PronScoreSum / float64(s.PronScoreCount), true
}
