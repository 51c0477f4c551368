package api

import (
	"io"
	"net/http"

	"github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/jobs"
	"github.com/mariana/linguaflash/internal/logger"
)

type provisionRequest struct {
	Language string `json:"language" validate:"required"`
	Level    string `json:"level" validate:"required"`
	Async    bool   `json:"async"`
}

func (s *Server) handleProvision(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req provisionRequest
	if err := s.decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if req.Async {
		job := &jobs.ProvisionJob{
			Service:  s.ProvisionService,
			UserID:   userID,
			Language: req.Language,
			Level:    req.Level,
		}
		if err := s.ProvisionPool.Submit(job); err != nil {
			handleError(w, r, errors.NewUnavailableError("provisioning queue is full, retry later"))
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"queued": true})
		return
	}

	created, err := s.ProvisionService.ProvisionUser(r.Context(), userID, req.Language, req.Level)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"created": created})
}

func (s *Server) handleImportProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("failed to read request body"))
		return
	}

	created, err := s.ImportService.ImportProgress(r.Context(), userID, body)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("progress import finished: user_id=%d, created=%d", userID, created)
	writeJSON(w, http.StatusOK, map[string]any{"created": created})
}
