package models

import "time"

// DefaultEaseFactor is the ease factor assigned to freshly provisioned cards
// and restored by a deliberate reset.
const DefaultEaseFactor = 2.5

// MinEaseFactor is the lower bound the scheduler never crosses.
const MinEaseFactor = 1.3

// Card kinds.
const (
	KindGrammar    = "grammar"
	KindVocabulary = "vocabulary"
)

// Proficiency levels, ascending. Provisioning covers every topic at or below
// the learner's level.
var Levels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

// LevelIndex returns the ordinal position of a level, or -1 if unknown.
func LevelIndex(level string) int {
	for i, l := range Levels {
		if l == level {
			return i
		}
	}
	return -1
}

// LearningCard is one schedulable unit (a grammar topic or a vocabulary
// lemma) for one user in one target language. Scheduling fields are mutated
// only through the review and reset paths.
type LearningCard struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Language     string     `json:"language"`
	Topic        string     `json:"topic"`
	Kind         string     `json:"kind"`
	Level        string     `json:"level"`
	EaseFactor   float64    `json:"ease_factor"`
	IntervalDays int        `json:"interval_days"`
	Repetitions  int        `json:"repetitions"`
	NextReview   time.Time  `json:"next_review"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewCard returns a fresh card: default ease, zero interval and repetitions,
// due immediately.
func NewCard(userID int64, language, topic, kind, level string, now time.Time) LearningCard {
	return LearningCard{
		UserID:     userID,
		Language:   language,
		Topic:      topic,
		Kind:       kind,
		Level:      level,
		EaseFactor: DefaultEaseFactor,
		NextReview: now,
		CreatedAt:  now,
	}
}

// Due reports whether the card is due for review at the given time.
func (c LearningCard) Due(asOf time.Time) bool {
	return !c.NextReview.After(asOf)
}
