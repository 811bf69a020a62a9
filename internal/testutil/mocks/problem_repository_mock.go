package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dabin/mathmission/internal/models"
)

// MockProblemRepository is a mock implementation of repository.ProblemRepository
type MockProblemRepository struct {
	mock.Mock
}

func (m *MockProblemRepository) Get(ctx context.Context, id int64) (*models.Problem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Problem), args.Error(1)
}

func (m *MockProblemRepository) Find(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Problem), args.Error(1)
}

func (m *MockProblemRepository) Count(ctx context.Context, filter models.ProblemFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockProblemRepository) Insert(ctx context.Context, p models.ProblemCreate) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}
