package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dabin/mathmission/internal/grader"
	"github.com/dabin/mathmission/internal/models"
)

// MockGrader is a mock implementation of grader.Grader
type MockGrader struct {
	mock.Mock
}

func (m *MockGrader) Grade(ctx context.Context, problem models.Problem, answerText string) (*grader.Result, error) {
	args := m.Called(ctx, problem, answerText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grader.Result), args.Error(1)
}
