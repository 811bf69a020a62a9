package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.userMiddleware)
		r.Use(s.rateLimitMiddleware)

		r.Post("/missions", s.handleCreateMission)
		r.Get("/missions/current", s.handleCurrentMission)
		r.Get("/missions/{id}", s.handleMissionDetail)
		r.Post("/missions/{id}/start", s.handleStartMission)

		r.Post("/answers", s.handleSubmitAnswer)
		r.Get("/answers/{id}", s.handleAnswerDetail)

		r.Get("/insights", s.handleInsights)
		r.Get("/trend", s.handleTrend)

		r.Get("/problems", s.handleProblems)
		r.Get("/problems/{id}", s.handleProblemDetail)
		r.Post("/problems/import", s.handleImportProblems)
	})

	return r
}
