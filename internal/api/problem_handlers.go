package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dabin/mathmission/internal/errors"
	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
)

func (s *Server) handleProblems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.ProblemFilter{
		Search: strings.TrimSpace(q.Get("search")),
	}
	if topics := strings.TrimSpace(q.Get("topic")); topics != "" {
		for _, t := range strings.Split(topics, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Topics = append(filter.Topics, t)
			}
		}
	}
	if v, err := strconv.Atoi(q.Get("min_difficulty")); err == nil && v >= 1 {
		filter.MinDifficulty = v
	}
	if v, err := strconv.Atoi(q.Get("max_difficulty")); err == nil && v >= 1 {
		filter.MaxDifficulty = v
	}

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}
	if pp, err := strconv.Atoi(q.Get("per_page")); err == nil && pp > 0 {
		filter.Limit = pp
	}
	if filter.Limit > 0 {
		filter.Offset = (page - 1) * filter.Limit
	}

	problems, total, err := s.Problems.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"problems": problems,
		"total":    total,
		"page":     page,
	})
}

func (s *Server) handleProblemDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	problem, err := s.Problems.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, problem)
}

func (s *Server) handleImportProblems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var batch []models.ProblemCreate
	if err := decodeJSON(r, &batch); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if len(batch) == 0 {
		handleError(w, r, errors.NewValidationError("problems", "must not be empty"))
		return
	}

	inserted, err := s.Problems.Import(r.Context(), batch)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("catalog import via API: %d/%d inserted", inserted, len(batch))
	writeJSON(w, r, http.StatusOK, map[string]any{
		"inserted": inserted,
		"received": len(batch),
	})
}
