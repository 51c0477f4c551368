// Package progress normalizes exported progress records into the canonical
// card representation. Two on-the-wire shapes exist: the current field naming
// and a legacy one (easiness_factor / repetition / RFC3339 date strings).
// Both decode into the same Record so the repository only ever sees one
// shape.
package progress

import (
	"encoding/json"
	"time"

	"github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/models"
)

// Record is the normalized scheduling snapshot of one card.
type Record struct {
	Language     string
	Topic        string
	Kind         string
	Level        string
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
	NextReview   time.Time
	LastReviewed *time.Time
}

type wireRecord struct {
	Language string `json:"language"`
	Topic    string `json:"topic"`
	Kind     string `json:"kind"`
	Level    string `json:"level"`

	// current naming
	EaseFactor   *float64   `json:"ease_factor"`
	IntervalDays *int       `json:"interval_days"`
	Repetitions  *int       `json:"repetitions"`
	NextReview   *time.Time `json:"next_review"`
	LastReviewed *time.Time `json:"last_reviewed"`

	// legacy naming
	EasinessFactor *float64 `json:"easiness_factor"`
	Interval       *int     `json:"interval"`
	Repetition     *int     `json:"repetition"`
	NextReviewDate *string  `json:"next_review_date"`
	LastReviewDate *string  `json:"last_review_date"`
}

// UnmarshalJSON accepts either field naming, preferring the current one when
// a record carries both.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	r.Language = w.Language
	r.Topic = w.Topic
	r.Kind = w.Kind
	r.Level = w.Level

	r.EaseFactor = models.DefaultEaseFactor
	if w.EaseFactor != nil {
		r.EaseFactor = *w.EaseFactor
	} else if w.EasinessFactor != nil {
		r.EaseFactor = *w.EasinessFactor
	}

	if w.IntervalDays != nil {
		r.IntervalDays = *w.IntervalDays
	} else if w.Interval != nil {
		r.IntervalDays = *w.Interval
	}

	if w.Repetitions != nil {
		r.Repetitions = *w.Repetitions
	} else if w.Repetition != nil {
		r.Repetitions = *w.Repetition
	}

	switch {
	case w.NextReview != nil:
		r.NextReview = *w.NextReview
	case w.NextReviewDate != nil:
		t, err := time.Parse(time.RFC3339, *w.NextReviewDate)
		if err != nil {
			return err
		}
		r.NextReview = t
	}

	switch {
	case w.LastReviewed != nil:
		r.LastReviewed = w.LastReviewed
	case w.LastReviewDate != nil:
		t, err := time.Parse(time.RFC3339, *w.LastReviewDate)
		if err != nil {
			return err
		}
		r.LastReviewed = &t
	}

	return nil
}

// Validate checks the normalized record against the card invariants.
func (r Record) Validate() error {
	if r.Topic == "" {
		return errors.NewInvalidArgumentError("progress record", "topic is required")
	}
	if r.Language == "" {
		return errors.NewInvalidArgumentError("progress record", "language is required")
	}
	if r.EaseFactor < models.MinEaseFactor {
		return errors.NewInvalidArgumentError("progress record", "ease factor below minimum")
	}
	if r.IntervalDays < 0 {
		return errors.NewInvalidArgumentError("progress record", "interval must not be negative")
	}
	if r.Repetitions < 0 {
		return errors.NewInvalidArgumentError("progress record", "repetitions must not be negative")
	}
	return nil
}

// Card converts the record into a learning card for the given user. Missing
// scheduling dates fall back to "due now".
func (r Record) Card(userID int64, now time.Time) models.LearningCard {
	kind := r.Kind
	if kind == "" {
		kind = models.KindVocabulary
	}
	nextReview := r.NextReview
	if nextReview.IsZero() {
		nextReview = now
	}
	return models.LearningCard{
		UserID:       userID,
		Language:     r.Language,
		Topic:        r.Topic,
		Kind:         kind,
		Level:        r.Level,
		EaseFactor:   r.EaseFactor,
		IntervalDays: r.IntervalDays,
		Repetitions:  r.Repetitions,
		NextReview:   nextReview,
		LastReviewed: r.LastReviewed,
		CreatedAt:    now,
	}
}
