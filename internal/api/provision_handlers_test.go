package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mariana/linguaflash/internal/api"
	"github.com/mariana/linguaflash/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvisionService struct{}

func (stubProvisionService) ProvisionUser(ctx context.Context, userID int64, language, level string) (int, error) {
	return 0, nil
}

func TestHandleProvision_FullQueueSignalsBackPressure(t *testing.T) {
	// A pool that is never started keeps queued jobs queued, so the second
	// async request finds the queue full.
	pool := worker.NewPool(1, 1)
	srv := api.NewServer(nil, nil, stubProvisionService{}, nil, pool)
	router := srv.Routes()

	body := `{"language":"de","level":"A1","async":true}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/7/provision", strings.NewReader(body)))
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/7/provision", strings.NewReader(body)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "back-pressure is not a storage failure")
	assert.Contains(t, rec.Body.String(), "UNAVAILABLE")
}
