package api

import (
	"net/http"
	"strings"

	"github.com/dabin/mathmission/internal/errors"
	"github.com/dabin/mathmission/internal/logger"
)

type submitAnswerRequest struct {
	MissionID  int64  `json:"mission_id"`
	ProblemID  int64  `json:"problem_id"`
	AnswerText string `json:"answer_text"`
	TimeSpent  int    `json:"time_spent"` // seconds
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.MissionID <= 0 {
		handleError(w, r, errors.NewValidationError("mission_id", "must be a positive integer"))
		return
	}
	if req.ProblemID <= 0 {
		handleError(w, r, errors.NewValidationError("problem_id", "must be a positive integer"))
		return
	}
	if strings.TrimSpace(req.AnswerText) == "" {
		handleError(w, r, errors.NewValidationError("answer_text", "must not be empty"))
		return
	}
	if req.TimeSpent < 0 {
		req.TimeSpent = 0
	}

	result, err := s.Answers.Submit(r.Context(), userFromContext(r.Context()), req.MissionID, req.ProblemID, req.AnswerText, req.TimeSpent)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("answer processed: answer_id=%d, graded=%v", result.AnswerID, result.Graded)
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleAnswerDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	answer, err := s.Answers.GetResult(r.Context(), id, userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, answer)
}
