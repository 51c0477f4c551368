package mocks

import (
	"context"
	"time"

	"github.com/mariana/linguaflash/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Get(ctx context.Context, id int64) (*models.LearningCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearningCard), args.Error(1)
}

func (m *MockCardRepository) Insert(ctx context.Context, card models.LearningCard) (int64, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepository) UpdateScheduling(ctx context.Context, card models.LearningCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) ListForUser(ctx context.Context, userID int64) ([]models.LearningCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LearningCard), args.Error(1)
}

func (m *MockCardRepository) ListDue(ctx context.Context, userID int64, asOf time.Time) ([]models.LearningCard, error) {
	args := m.Called(ctx, userID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LearningCard), args.Error(1)
}

func (m *MockCardRepository) Provision(ctx context.Context, cards []models.LearningCard) (int, error) {
	args := m.Called(ctx, cards)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) UserIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockCardRepository) RecordPractice(ctx context.Context, cardID int64, practiceType models.PracticeType, attempts, correct int, pronScoreSum float64, pronScoreCount int, at time.Time) error {
	args := m.Called(ctx, cardID, practiceType, attempts, correct, pronScoreSum, pronScoreCount, at)
	return args.Error(0)
}

func (m *MockCardRepository) PracticeStatsForCard(ctx context.Context, cardID int64) ([]models.PracticeStats, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PracticeStats), args.Error(1)
}
