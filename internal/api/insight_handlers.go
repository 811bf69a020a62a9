package api

import (
	"net/http"
	"strconv"
)

// periodDays parses the optional ?period_days query parameter, falling
// back to the given default.
func periodDays(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("period_days")
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 || days > 365 {
		return fallback
	}
	return days
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.Analytics.GenerateInsights(r.Context(), userFromContext(r.Context()), periodDays(r, 7))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, insights)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := s.Analytics.GetPerformanceTrend(r.Context(), userFromContext(r.Context()), periodDays(r, 30))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, trend)
}
