package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/logger"
	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/progress"
	"github.com/mariana/linguaflash/internal/repository"
)

// ImportService migrates exported progress dumps into cards. Records may use
// the legacy or the current field naming; the progress adapter normalizes
// both before anything reaches the repository.
type ImportService interface {
	ImportProgress(ctx context.Context, userID int64, data []byte) (int, error)
}

type importService struct {
	cards repository.CardRepository
}

// NewImportService creates a new ImportService
func NewImportService(cards repository.CardRepository) ImportService {
	return &importService{cards: cards}
}

func (s *importService) ImportProgress(ctx context.Context, userID int64, data []byte) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing progress dump: user_id=%d, bytes=%d", userID, len(data))

	var records []progress.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, errors.NewBadRequestError("malformed progress dump: " + err.Error())
	}

	now := time.Now()
	cards := make([]models.LearningCard, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return 0, err
		}
		cards = append(cards, r.Card(userID, now))
	}

	// Existing cards win over imported state; the import never overwrites.
	created, err := s.cards.Provision(ctx, cards)
	if err != nil {
		log.Error("failed to import progress: %v", err)
		return 0, errors.NewRepositoryError(err)
	}

	log.Info("imported progress: user_id=%d, created=%d of %d records", userID, created, len(records))
	return created, nil
}
