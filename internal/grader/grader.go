package grader

import (
	"context"

	"github.com/dabin/mathmission/internal/models"
)

// Result is what the external scorer returns for one answer.
type Result struct {
	Score       int      `json:"score"` // 0-100
	IsCorrect   bool     `json:"is_correct"`
	Concepts    []string `json:"concept_understanding"`
	Mistakes    []string `json:"mistakes_detected"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// Grader scores a student's answer to a problem. Implementations call
// an external model and may fail or time out; callers bound the call
// with a context deadline and treat failure as recoverable.
type Grader interface {
	Grade(ctx context.Context, problem models.Problem, answerText string) (*Result, error)
}
