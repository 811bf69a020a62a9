package models

import "time"

// Mission status values. A mission only moves forward:
// pending -> in_progress -> completed.
const (
	MissionPending    = "pending"
	MissionInProgress = "in_progress"
	MissionCompleted  = "completed"
)

// Mission types. Only the create flow's naming differs by type.
const (
	MissionTypeDaily      = "daily"
	MissionTypeReview     = "review"
	MissionTypeChallenge  = "challenge"
	MissionTypeAssessment = "assessment"
)

type Mission struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	TotalProblems     int        `json:"total_problems"`
	CompletedProblems int        `json:"completed_problems"`
	TargetScore       int        `json:"target_score"`
	ActualScore       *int       `json:"actual_score,omitempty"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	Problems          []Problem  `json:"problems,omitempty"`
}

// IsOpen reports whether the mission still accepts work.
func (m *Mission) IsOpen() bool {
	return m.Status == MissionPending || m.Status == MissionInProgress
}

// MissionProblem links a problem into a mission at a fixed serving
// order. is_completed flips exactly once.
type MissionProblem struct {
	ID            int64      `json:"id"`
	MissionID     int64      `json:"mission_id"`
	ProblemID     int64      `json:"problem_id"`
	SequenceOrder int        `json:"sequence_order"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// MissionProgress is a derived view returned alongside the current mission.
type MissionProgress struct {
	MissionID          int64    `json:"mission_id"`
	TotalProblems      int      `json:"total_problems"`
	CompletedProblems  int      `json:"completed_problems"`
	ProgressPercentage float64  `json:"progress_percentage"`
	CurrentProblem     *Problem `json:"current_problem,omitempty"`
}

// Progress computes the derived progress view for a mission.
func Progress(m *Mission, current *Problem) MissionProgress {
	pct := 0.0
	if m.TotalProblems > 0 {
		pct = float64(m.CompletedProblems) / float64(m.TotalProblems) * 100
	}
	return MissionProgress{
		MissionID:          m.ID,
		TotalProblems:      m.TotalProblems,
		CompletedProblems:  m.CompletedProblems,
		ProgressPercentage: pct,
		CurrentProblem:     current,
	}
}
