package repository

import (
	"context"
	"time"

	"github.com/mariana/linguaflash/internal/models"
)

// CardRepository handles learning-card data access. Absent rows are reported
// as (nil, nil); storage failures come back unwrapped.
type CardRepository interface {
	Get(ctx context.Context, id int64) (*models.LearningCard, error)
	Insert(ctx context.Context, card models.LearningCard) (int64, error)
	// UpdateScheduling writes the scheduling fields (ease, interval,
	// repetitions, next/last review) of an existing card.
	UpdateScheduling(ctx context.Context, card models.LearningCard) error
	ListForUser(ctx context.Context, userID int64) ([]models.LearningCard, error)
	// ListDue returns every card of the user with next_review <= asOf,
	// ordered ascending by next_review, ties broken by creation order.
	ListDue(ctx context.Context, userID int64, asOf time.Time) ([]models.LearningCard, error)
	// Provision inserts the given fresh cards, silently skipping any
	// (user, language, topic) that already exists. Returns the number of
	// cards actually created.
	Provision(ctx context.Context, cards []models.LearningCard) (int, error)
	// UserIDs lists every user owning at least one card.
	UserIDs(ctx context.Context) ([]int64, error)
	// RecordPractice accumulates per-practice-type usage counters for a card.
	RecordPractice(ctx context.Context, cardID int64, practiceType models.PracticeType, attempts, correct int, pronScoreSum float64, pronScoreCount int, at time.Time) error
	PracticeStatsForCard(ctx context.Context, cardID int64) ([]models.PracticeStats, error)
}
