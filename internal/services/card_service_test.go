package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/services"
	"github.com/mariana/linguaflash/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func freshCard(id, userID int64) *models.LearningCard {
	now := time.Now().Add(-24 * time.Hour)
	return &models.LearningCard{
		ID:         id,
		UserID:     userID,
		Language:   "de",
		Topic:      "der Hund",
		Kind:       models.KindVocabulary,
		Level:      "A1",
		EaseFactor: models.DefaultEaseFactor,
		NextReview: now,
		CreatedAt:  now,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestReviewCard_InvalidQuality(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	for _, quality := range []int{-1, 6} {
		_, err := svc.ReviewCard(context.Background(), 1, 1, quality)
		assertCode(t, err, apperrors.ErrCodeInvalidArgument)
	}
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReviewCard_NotFound(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	repo.On("Get", mock.Anything, int64(1)).Return(nil, nil)
	svc := services.NewCardService(repo)

	_, err := svc.ReviewCard(context.Background(), 1, 1, 4)
	assertCode(t, err, apperrors.ErrCodeNotFound)
}

func TestReviewCard_OtherUsersCardIsNotFound(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	repo.On("Get", mock.Anything, int64(1)).Return(freshCard(1, 99), nil)
	svc := services.NewCardService(repo)

	_, err := svc.ReviewCard(context.Background(), 1, 1, 4)
	assertCode(t, err, apperrors.ErrCodeNotFound)
	repo.AssertNotCalled(t, "UpdateScheduling", mock.Anything, mock.Anything)
}

func TestReviewCard_RepositoryError(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	repo.On("Get", mock.Anything, int64(1)).Return(nil, fmt.Errorf("disk on fire"))
	svc := services.NewCardService(repo)

	_, err := svc.ReviewCard(context.Background(), 1, 1, 4)
	assertCode(t, err, apperrors.ErrCodeRepository)
}

func TestReviewCard_FreshCardPerfect(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	repo.On("Get", mock.Anything, int64(1)).Return(freshCard(1, 7), nil)

	var saved models.LearningCard
	repo.On("UpdateScheduling", mock.Anything, mock.AnythingOfType("models.LearningCard")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(models.LearningCard)
		}).Return(nil)

	svc := services.NewCardService(repo)
	card, err := svc.ReviewCard(context.Background(), 1, 7, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, card.IntervalDays)
	assert.Equal(t, 1, card.Repetitions)
	assert.InDelta(t, 2.6, card.EaseFactor, 1e-9)
	require.NotNil(t, card.LastReviewed)
	assert.WithinDuration(t, time.Now(), *card.LastReviewed, time.Second)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 1), card.NextReview, time.Second)

	assert.Equal(t, *card, saved, "persisted state matches the returned card")
}

func TestReviewCard_FailureRegresses(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	card := freshCard(1, 7)
	card.IntervalDays = 30
	card.Repetitions = 5
	card.EaseFactor = 2.2
	repo.On("Get", mock.Anything, int64(1)).Return(card, nil)
	repo.On("UpdateScheduling", mock.Anything, mock.Anything).Return(nil)

	svc := services.NewCardService(repo)
	updated, err := svc.ReviewCard(context.Background(), 1, 7, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, updated.IntervalDays)
	assert.Equal(t, 0, updated.Repetitions)
	assert.Less(t, updated.EaseFactor, 2.2)
	assert.GreaterOrEqual(t, updated.EaseFactor, models.MinEaseFactor)
}

func TestResetCard(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	card := freshCard(1, 7)
	card.IntervalDays = 42
	card.Repetitions = 9
	card.EaseFactor = 1.7
	repo.On("Get", mock.Anything, int64(1)).Return(card, nil)
	repo.On("UpdateScheduling", mock.Anything, mock.Anything).Return(nil)

	svc := services.NewCardService(repo)
	updated, err := svc.ResetCard(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, 0, updated.IntervalDays)
	assert.Equal(t, 0, updated.Repetitions)
	assert.Equal(t, models.DefaultEaseFactor, updated.EaseFactor)
	assert.WithinDuration(t, time.Now(), updated.NextReview, time.Second)
}

func TestGetReviewQueue(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	asOf := time.Now()
	due := []models.LearningCard{*freshCard(1, 7), *freshCard(2, 7)}
	repo.On("ListDue", mock.Anything, int64(7), asOf).Return(due, nil)

	svc := services.NewCardService(repo)
	queue, err := svc.GetReviewQueue(context.Background(), 7, asOf)
	require.NoError(t, err)
	assert.Len(t, queue, 2)
}

func TestGetReviewQueue_EmptyIsNotAnError(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	repo.On("ListDue", mock.Anything, int64(7), mock.Anything).Return([]models.LearningCard{}, nil)

	svc := services.NewCardService(repo)
	queue, err := svc.GetReviewQueue(context.Background(), 7, time.Now())
	require.NoError(t, err)
	assert.Empty(t, queue)
}
