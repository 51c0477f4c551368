// Package session aggregates exercise-level results of one practice run into
// a single quality rating for the scheduler. Sessions live in memory only;
// an abandoned session leaves no trace.
package session

import (
	"time"

	"github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/models"
)

// State is the explicit lifecycle tag of a session.
type State int

const (
	Active State = iota
	Ended
	Discarded
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Ended:
		return "ended"
	case Discarded:
		return "discarded"
	}
	return "unknown"
}

// ExerciseResult is the outcome of one exercise inside a session.
type ExerciseResult struct {
	Correct            bool     `json:"correct"`
	PronunciationScore *float64 `json:"pronunciation_score,omitempty"`
}

// Summary is the frozen outcome of an ended session. FinalQuality is the
// value handed to the scheduler.
type Summary struct {
	CardID                int64               `json:"card_id"`
	PracticeType          models.PracticeType `json:"practice_type"`
	StartedAt             time.Time           `json:"started_at"`
	EndedAt               time.Time           `json:"ended_at"`
	ExercisesCompleted    int                 `json:"exercises_completed"`
	CorrectAnswers        int                 `json:"correct_answers"`
	CorrectPercentage     float64             `json:"correct_percentage"`
	PronunciationSamples  int                 `json:"pronunciation_samples,omitempty"`
	AvgPronunciationScore *float64            `json:"avg_pronunciation_score,omitempty"`
	FinalQuality          int                 `json:"final_quality"`
}

// Session accumulates exercise results for one card and one practice type.
// It is owned by a single flow and not safe for concurrent use.
type Session struct {
	cardID       int64
	practiceType models.PracticeType
	startedAt    time.Time

	state              State
	exercisesCompleted int
	correctAnswers     int
	pronScores         []float64
	summary            Summary
}

// New starts a session in the Active state. An empty practice type defaults
// to written translation; an unknown one is rejected.
func New(cardID int64, practiceType models.PracticeType, now time.Time) (*Session, error) {
	if practiceType == "" {
		practiceType = models.DefaultPracticeType
	}
	if !practiceType.Valid() {
		return nil, errors.NewInvalidArgumentError("practice type", string(practiceType))
	}
	return &Session{
		cardID:       cardID,
		practiceType: practiceType,
		startedAt:    now,
		state:        Active,
	}, nil
}

// CardID returns the card this session practices.
func (s *Session) CardID() int64 { return s.cardID }

// PracticeType returns the session's practice type.
func (s *Session) PracticeType() models.PracticeType { return s.practiceType }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// AddResult records one exercise outcome. Pronunciation scores are collected
// only for audio practice types; other types ignore them.
func (s *Session) AddResult(result ExerciseResult) error {
	if s.state != Active {
		return errors.NewInvalidArgumentError("session", "not active")
	}
	s.exercisesCompleted++
	if result.Correct {
		s.correctAnswers++
	}
	if result.PronunciationScore != nil && s.practiceType.Audio() {
		s.pronScores = append(s.pronScores, *result.PronunciationScore)
	}
	return nil
}

// End finalizes the session exactly once, deriving the quality rating from
// the fraction of correct answers.
func (s *Session) End(now time.Time) (Summary, error) {
	if s.state != Active {
		return Summary{}, errors.NewInvalidArgumentError("session", "not active")
	}

	pct := 0.0
	if s.exercisesCompleted > 0 {
		pct = float64(s.correctAnswers) / float64(s.exercisesCompleted)
	}

	s.summary = Summary{
		CardID:             s.cardID,
		PracticeType:       s.practiceType,
		StartedAt:          s.startedAt,
		EndedAt:            now,
		ExercisesCompleted: s.exercisesCompleted,
		CorrectAnswers:     s.correctAnswers,
		CorrectPercentage:  pct,
		FinalQuality:       qualityFor(pct),
	}
	if len(s.pronScores) > 0 {
		sum := 0.0
		for _, score := range s.pronScores {
			sum += score
		}
		avg := sum / float64(len(s.pronScores))
		s.summary.PronunciationSamples = len(s.pronScores)
		s.summary.AvgPronunciationScore = &avg
	}

	s.state = Ended
	return s.summary, nil
}

// Summary returns the frozen summary of an ended session.
func (s *Session) Summary() (Summary, error) {
	if s.state != Ended {
		return Summary{}, errors.NewInvalidArgumentError("session", "not ended")
	}
	return s.summary, nil
}

// Reset discards all accumulated state. Valid from any state; a reset
// session never produces a record.
func (s *Session) Reset() {
	s.state = Discarded
	s.exercisesCompleted = 0
	s.correctAnswers = 0
	s.pronScores = nil
	s.summary = Summary{}
}

// qualityFor maps the correct-answer fraction onto the 0-5 rating scale.
func qualityFor(pct float64) int {
	switch {
	case pct >= 0.9:
		return 5
	case pct >= 0.8:
		return 4
	case pct >= 0.6:
		return 3
	case pct >= 0.4:
		return 2
	case pct >= 0.2:
		return 1
	default:
		return 0
	}
}
