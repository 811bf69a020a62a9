package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dabin/mathmission/internal/errors"
	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
)

type createMissionRequest struct {
	MissionType string `json:"mission_type"`
}

func (s *Server) handleCreateMission(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID := userFromContext(r.Context())

	var req createMissionRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid request body"))
			return
		}
	}
	if req.MissionType == "" {
		req.MissionType = models.MissionTypeDaily
	}

	mission, err := s.Missions.CreateDailyMission(r.Context(), userID, req.MissionType)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("mission ready: mission_id=%d, status=%s", mission.ID, mission.Status)
	writeJSON(w, r, http.StatusOK, mission)
}

func (s *Server) handleCurrentMission(w http.ResponseWriter, r *http.Request) {
	userID := userFromContext(r.Context())

	mission, err := s.Missions.GetCurrentMission(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if mission == nil {
		handleError(w, r, errors.NewNotFoundError("current mission", userID))
		return
	}

	next, err := s.Missions.NextProblem(r.Context(), mission.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"mission":  mission,
		"progress": models.Progress(mission, next),
	})
}

func (s *Server) handleMissionDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	mission, err := s.Missions.GetMission(r.Context(), id, userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mission)
}

func (s *Server) handleStartMission(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	started, err := s.Missions.StartMission(r.Context(), id, userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("mission start requested: mission_id=%d, started=%v", id, started)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"mission_id": id,
		"started":    started,
	})
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}
