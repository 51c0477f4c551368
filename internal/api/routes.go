package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/cards", s.handleListCards)
		r.Get("/cards/due", s.handleReviewQueue)
		r.Get("/cards/{cardID}", s.handleGetCard)
		r.Get("/cards/{cardID}/stats", s.handleCardStats)
		r.Post("/cards/{cardID}/review", s.handleReviewCard)
		r.Post("/cards/{cardID}/reset", s.handleResetCard)

		r.Post("/provision", s.handleProvision)
		r.Post("/progress/import", s.handleImportProgress)

		r.Post("/sessions", s.handleStartSession)
		r.Post("/sessions/{sessionID}/results", s.handleAddResult)
		r.Post("/sessions/{sessionID}/end", s.handleEndSession)
		r.Post("/sessions/{sessionID}/discard", s.handleDiscardSession)
	})

	return r
}
