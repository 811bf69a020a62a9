package api

import (
	"encoding/json"
	"net/http"

	"github.com/dabin/mathmission/internal/db"
	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/ratelimit"
	"github.com/dabin/mathmission/internal/services"
)

type Server struct {
	DB         *db.DB
	Missions   services.MissionService
	Answers    services.AnswerService
	Problems   services.ProblemService
	Analytics  services.AnalyticsService
	RateLimits *ratelimit.Limiter
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
