package models

import "time"

// Answer is one submitted solution attempt. Score and the AI fields
// stay empty until grading finishes.
type Answer struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	MissionID   int64      `json:"mission_id"`
	ProblemID   int64      `json:"problem_id"`
	AnswerText  string     `json:"answer_text"`
	Score       *int       `json:"score,omitempty"` // 0-100
	Feedback    string     `json:"feedback,omitempty"`
	Concepts    []string   `json:"concepts"`
	Mistakes    []string   `json:"mistakes"`
	TimeSpent   int        `json:"time_spent,omitempty"` // seconds
	SubmittedAt time.Time  `json:"submitted_at"`
	ScoredAt    *time.Time `json:"scored_at,omitempty"`
}

// Graded reports whether the answer has received a score.
func (a *Answer) Graded() bool {
	return a.Score != nil
}

// AnswerResult is what the caller gets back from a submission.
type AnswerResult struct {
	AnswerID  int64           `json:"answer_id"`
	Score     int             `json:"score"`
	Feedback  string          `json:"feedback"`
	Concepts  []string        `json:"concepts"`
	Mistakes  []string        `json:"mistakes"`
	Graded    bool            `json:"graded"`
	Mission   *Mission        `json:"mission,omitempty"`
	Completed bool            `json:"mission_completed"`
	Progress  MissionProgress `json:"progress"`
}
