package api

import (
	"net/http"
	"time"

	"github.com/mariana/linguaflash/internal/errors"
	"github.com/mariana/linguaflash/internal/models"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.CardService.ListCards(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.LearningCard{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	asOf := time.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("as_of must be RFC3339"))
			return
		}
		asOf = t
	}

	queue, err := s.CardService.GetReviewQueue(r.Context(), userID, asOf)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if queue == nil {
		// "nothing due" is a valid, empty queue.
		queue = []models.LearningCard{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"due": queue})
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cardID, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.GetCard(r.Context(), cardID, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleCardStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cardID, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.CardService.PracticeStats(r.Context(), cardID, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if stats == nil {
		stats = []models.PracticeStats{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

type reviewRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cardID, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := s.decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.ReviewCard(r.Context(), cardID, userID, *req.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleResetCard(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cardID, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.ResetCard(r.Context(), cardID, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
