// Package srs implements the SM-2 spaced-repetition scheduling variant used
// for learning cards. All computation is pure: identical inputs always yield
// identical results, persistence is the caller's concern.
package srs

import (
	"math"
	"time"

	"github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/models"
)

// Quality ratings, 0-5. Ratings below QualityCorrectEffortful count as a
// failed review and regress the card to "new".
const (
	QualityBlackout         = 0 // total failure to recall
	QualityIncorrect        = 1 // wrong, but felt familiar after seeing the answer
	QualityIncorrectEasy    = 2 // wrong, but would have recalled easily
	QualityCorrectEffortful = 3 // correct with significant effort
	QualityCorrectHesitant  = 4 // correct after hesitation
	QualityPerfect          = 5 // perfect recall
)

// PassThreshold is the lowest quality counting as a successful review.
const PassThreshold = QualityCorrectEffortful

// State is the scheduling state of a card going into a review.
type State struct {
	IntervalDays int
	EaseFactor   float64
	Repetitions  int
}

// Result is the scheduling state coming out of a review.
type Result struct {
	IntervalDays int
	EaseFactor   float64
	Repetitions  int
	NextReview   time.Time
}

// StateOf extracts the scheduling state from a card.
func StateOf(c models.LearningCard) State {
	return State{
		IntervalDays: c.IntervalDays,
		EaseFactor:   c.EaseFactor,
		Repetitions:  c.Repetitions,
	}
}

// Schedule computes the next interval, ease factor and due date for one
// review outcome. quality must be in [0,5]; out-of-range values and malformed
// input state fail with INVALID_ARGUMENT rather than being clamped.
//
// The new due date counts from now, not from the card's previous due date:
// a learner reviewing late gets a fresh full interval.
func Schedule(s State, quality int, now time.Time) (Result, error) {
	if quality < 0 || quality > 5 {
		return Result{}, errors.NewInvalidArgumentError("quality", "must be between 0 and 5")
	}
	if err := validateState(s); err != nil {
		return Result{}, err
	}

	ef := s.EaseFactor + (0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02))
	if ef < models.MinEaseFactor {
		ef = models.MinEaseFactor
	}

	interval := 0
	repetitions := 0
	if quality >= PassThreshold {
		switch s.Repetitions {
		case 0:
			interval = 1
		case 1:
			interval = 6
		default:
			interval = int(math.Round(float64(s.IntervalDays) * ef))
		}
		repetitions = s.Repetitions + 1
	}

	return Result{
		IntervalDays: interval,
		EaseFactor:   ef,
		Repetitions:  repetitions,
		NextReview:   now.AddDate(0, 0, interval),
	}, nil
}

// Reset forgets a card deliberately: default ease, zero interval and
// repetitions, due immediately.
func Reset(now time.Time) Result {
	return Result{
		IntervalDays: 0,
		EaseFactor:   models.DefaultEaseFactor,
		Repetitions:  0,
		NextReview:   now,
	}
}

func validateState(s State) error {
	if s.IntervalDays < 0 {
		return errors.NewInvalidArgumentError("card state", "interval must not be negative")
	}
	if s.Repetitions < 0 {
		return errors.NewInvalidArgumentError("card state", "repetitions must not be negative")
	}
	if s.EaseFactor < models.MinEaseFactor {
		return errors.NewInvalidArgumentError("card state", "ease factor below minimum")
	}
	return nil
}
