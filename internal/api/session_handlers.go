package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mariana/linguaflash/internal/models"
	"github.com/mariana/linguaflash/internal/session"
)

type startSessionRequest struct {
	CardID       int64  `json:"card_id" validate:"required"`
	PracticeType string `json:"practice_type"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req startSessionRequest
	if err := s.decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id, err := s.PracticeService.StartSession(r.Context(), req.CardID, userID, models.PracticeType(req.PracticeType))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"session_id": id})
}

type addResultRequest struct {
	Correct            *bool    `json:"correct" validate:"required"`
	PronunciationScore *float64 `json:"pronunciation_score" validate:"omitempty,min=0,max=1"`
}

func (s *Server) handleAddResult(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	var req addResultRequest
	if err := s.decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result := session.ExerciseResult{
		Correct:            *req.Correct,
		PronunciationScore: req.PronunciationScore,
	}
	if err := s.PracticeService.AddResult(r.Context(), sessionID, userID, result); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	summary, card, err := s.PracticeService.EndSession(r.Context(), sessionID, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"card":    card,
	})
}

func (s *Server) handleDiscardSession(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.PracticeService.DiscardSession(r.Context(), sessionID, userID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
