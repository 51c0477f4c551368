package services_test

import (
	"context"
	"testing"

	"github.com/mariana/linguaflash/internal/catalog"
	apperrors "github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/services"
	"github.com/mariana/linguaflash/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{Language: "de", Level: "A1", Kind: models.KindVocabulary, Topic: "der Hund"},
		{Language: "de", Level: "A1", Kind: models.KindGrammar, Topic: "Präsens"},
		{Language: "de", Level: "A2", Kind: models.KindGrammar, Topic: "Akkusativ"},
		{Language: "fr", Level: "A1", Kind: models.KindVocabulary, Topic: "le chien"},
	})
}

func TestProvisionUser_CreatesFreshCardsUpToLevel(t *testing.T) {
	repo := new(mocks.MockCardRepository)

	var batch []models.LearningCard
	repo.On("Provision", mock.Anything, mock.AnythingOfType("[]models.LearningCard")).
		Run(func(args mock.Arguments) {
			batch = args.Get(1).([]models.LearningCard)
		}).Return(3, nil)

	svc := services.NewProvisionService(repo, testCatalog())
	created, err := svc.ProvisionUser(context.Background(), 7, "de", "A2")
	require.NoError(t, err)

	assert.Equal(t, 3, created)
	require.Len(t, batch, 3, "A1 and A2 entries for de, nothing else")
	for _, c := range batch {
		assert.Equal(t, int64(7), c.UserID)
		assert.Equal(t, models.DefaultEaseFactor, c.EaseFactor)
		assert.Equal(t, 0, c.IntervalDays)
		assert.Equal(t, 0, c.Repetitions)
		assert.Equal(t, c.CreatedAt, c.NextReview, "fresh cards are due immediately")
	}
}

func TestProvisionUser_InvalidLevel(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewProvisionService(repo, testCatalog())

	_, err := svc.ProvisionUser(context.Background(), 7, "de", "Z9")
	assertCode(t, err, apperrors.ErrCodeInvalidArgument)
	repo.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything)
}

func TestProvisionUser_MissingLanguage(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewProvisionService(repo, testCatalog())

	_, err := svc.ProvisionUser(context.Background(), 7, "", "A1")
	assertCode(t, err, apperrors.ErrCodeInvalidArgument)
}

func TestProvisionUser_EmptyCatalogSliceIsNoop(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewProvisionService(repo, testCatalog())

	created, err := svc.ProvisionUser(context.Background(), 7, "es", "C2")
	require.NoError(t, err)
	assert.Zero(t, created)
	repo.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything)
}
