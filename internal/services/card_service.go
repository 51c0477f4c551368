package services

import (
	"context"
	"time"

	"github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/logger"
	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/repository"
	"github.com/mariana/linguaflash/internal/srs"
)

// CardService handles card scheduling business logic
type CardService interface {
	GetCard(ctx context.Context, cardID, userID int64) (*models.LearningCard, error)
	ListCards(ctx context.Context, userID int64) ([]models.LearningCard, error)
	// GetReviewQueue returns every due card of the user ordered earliest-due
	// first. An empty queue means "nothing to review", not an error.
	GetReviewQueue(ctx context.Context, userID int64, asOf time.Time) ([]models.LearningCard, error)
	ReviewCard(ctx context.Context, cardID, userID int64, quality int) (*models.LearningCard, error)
	ResetCard(ctx context.Context, cardID, userID int64) (*models.LearningCard, error)
	PracticeStats(ctx context.Context, cardID, userID int64) ([]models.PracticeStats, error)
}

type cardService struct {
	cards repository.CardRepository
}

// NewCardService creates a new CardService
func NewCardService(cards repository.CardRepository) CardService {
	return &cardService{cards: cards}
}

// getOwned loads a card and verifies ownership. A card owned by another user
// is reported as not found rather than leaked.
func (s *cardService) getOwned(ctx context.Context, cardID, userID int64) (*models.LearningCard, error) {
	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, errors.NewRepositoryError(err)
	}
	if card == nil || card.UserID != userID {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, cardID, userID int64) (*models.LearningCard, error) {
	return s.getOwned(ctx, cardID, userID)
}

func (s *cardService) ListCards(ctx context.Context, userID int64) ([]models.LearningCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: user_id=%d", userID)

	cards, err := s.cards.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewRepositoryError(err)
	}
	return cards, nil
}

func (s *cardService) GetReviewQueue(ctx context.Context, userID int64, asOf time.Time) ([]models.LearningCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("building review queue: user_id=%d, as_of=%s", userID, asOf.Format(time.RFC3339))

	cards, err := s.cards.ListDue(ctx, userID, asOf)
	if err != nil {
		log.Error("failed to list due cards: %v", err)
		return nil, errors.NewRepositoryError(err)
	}

	if len(cards) == 0 {
		log.Debug("no cards due for review")
	}
	return cards, nil
}

func (s *cardService) ReviewCard(ctx context.Context, cardID, userID int64, quality int) (*models.LearningCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: card_id=%d, quality=%d", cardID, quality)

	// Validate quality before touching the repository.
	if quality < 0 || quality > 5 {
		return nil, errors.NewInvalidArgumentError("quality", "must be between 0 and 5")
	}

	card, err := s.getOwned(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := srs.Schedule(srs.StateOf(*card), quality, now)
	if err != nil {
		return nil, err
	}

	card.EaseFactor = result.EaseFactor
	card.IntervalDays = result.IntervalDays
	card.Repetitions = result.Repetitions
	card.NextReview = result.NextReview
	card.LastReviewed = &now

	log.Debug("applied review, new interval=%d days, ease_factor=%.2f", card.IntervalDays, card.EaseFactor)

	if err := s.cards.UpdateScheduling(ctx, *card); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewRepositoryError(err)
	}
	return card, nil
}

func (s *cardService) ResetCard(ctx context.Context, cardID, userID int64) (*models.LearningCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("resetting card: card_id=%d", cardID)

	card, err := s.getOwned(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := srs.Reset(now)
	card.EaseFactor = result.EaseFactor
	card.IntervalDays = result.IntervalDays
	card.Repetitions = result.Repetitions
	card.NextReview = result.NextReview
	card.LastReviewed = &now

	if err := s.cards.UpdateScheduling(ctx, *card); err != nil {
		log.Error("failed to reset card: %v", err)
		return nil, errors.NewRepositoryError(err)
	}

	log.Info("card reset: id=%d", cardID)
	return card, nil
}

func (s *cardService) PracticeStats(ctx context.Context, cardID, userID int64) ([]models.PracticeStats, error) {
	if _, err := s.getOwned(ctx, cardID, userID); err != nil {
		return nil, err
	}

	stats, err := s.cards.PracticeStatsForCard(ctx, cardID)
	if err != nil {
		return nil, errors.NewRepositoryError(err)
	}
	return stats, nil
}
