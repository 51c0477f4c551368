package services_test

import (
	"context"
	"testing"

	apperrors "github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/services"
	"github.com/mariana/linguaflash/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestImportProgress_AcceptsBothWireShapes(t *testing.T) {
	dump := []byte(`[
		{"language": "de", "topic": "der Hund", "ease_factor": 2.6, "interval_days": 6, "repetitions": 2, "next_review": "2026-04-01T08:00:00Z"},
		{"language": "de", "topic": "Akkusativ", "kind": "grammar", "easiness_factor": 1.96, "interval": 15, "repetition": 4, "next_review_date": "2026-04-10T00:00:00Z"}
	]`)

	repo := new(mocks.MockCardRepository)
	var batch []models.LearningCard
	repo.On("Provision", mock.Anything, mock.AnythingOfType("[]models.LearningCard")).
		Run(func(args mock.Arguments) {
			batch = args.Get(1).([]models.LearningCard)
		}).Return(2, nil)

	svc := services.NewImportService(repo)
	created, err := svc.ImportProgress(context.Background(), 7, dump)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	require.Len(t, batch, 2)
	assert.Equal(t, 2.6, batch[0].EaseFactor)
	assert.Equal(t, 6, batch[0].IntervalDays)
	assert.Equal(t, 1.96, batch[1].EaseFactor, "legacy naming normalized")
	assert.Equal(t, 15, batch[1].IntervalDays)
	assert.Equal(t, models.KindGrammar, batch[1].Kind)
}

func TestImportProgress_MalformedJSON(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewImportService(repo)

	_, err := svc.ImportProgress(context.Background(), 7, []byte(`{not json`))
	assertCode(t, err, apperrors.ErrCodeBadRequest)
	repo.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything)
}

func TestImportProgress_RejectsInvalidRecords(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewImportService(repo)

	dump := []byte(`[{"language": "de", "topic": "kaputt", "ease_factor": 0.5}]`)
	_, err := svc.ImportProgress(context.Background(), 7, dump)
	assertCode(t, err, apperrors.ErrCodeInvalidArgument)
	repo.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything)
}
