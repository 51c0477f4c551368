package services

import (
	"context"
	"time"

	"github.com/mariana/linguaflash/internal/catalog"
	"github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/logger"
	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/repository"
)

// ProvisionService guarantees that a user has exactly one fresh card per
// catalog topic at or below their proficiency level. Repeated invocations
// never create duplicates.
type ProvisionService interface {
	ProvisionUser(ctx context.Context, userID int64, language, level string) (int, error)
}

type provisionService struct {
	cards   repository.CardRepository
	catalog *catalog.Catalog
}

// NewProvisionService creates a new ProvisionService
func NewProvisionService(cards repository.CardRepository, cat *catalog.Catalog) ProvisionService {
	return &provisionService{cards: cards, catalog: cat}
}

func (s *provisionService) ProvisionUser(ctx context.Context, userID int64, language, level string) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("provisioning user: user_id=%d, language=%s, level=%s", userID, language, level)

	if language == "" {
		return 0, errors.NewInvalidArgumentError("language", "is required")
	}
	if models.LevelIndex(level) < 0 {
		return 0, errors.NewInvalidArgumentError("level", "must be one of A1, A2, B1, B2, C1, C2")
	}

	entries := s.catalog.EntriesUpTo(language, level)
	if len(entries) == 0 {
		log.Warn("catalog has no entries: language=%s, level=%s", language, level)
		return 0, nil
	}

	now := time.Now()
	cards := make([]models.LearningCard, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, models.NewCard(userID, e.Language, e.Topic, e.Kind, e.Level, now))
	}

	created, err := s.cards.Provision(ctx, cards)
	if err != nil {
		log.Error("failed to provision cards: %v", err)
		return 0, errors.NewRepositoryError(err)
	}

	log.Info("provisioned user: user_id=%d, created=%d of %d topics", userID, created, len(entries))
	return created, nil
}
