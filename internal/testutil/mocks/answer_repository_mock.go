package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dabin/mathmission/internal/models"
)

// MockAnswerRepository is a mock implementation of repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Insert(ctx context.Context, a models.Answer) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepository) Get(ctx context.Context, id int64) (*models.Answer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Answer), args.Error(1)
}

func (m *MockAnswerRepository) SetGrading(ctx context.Context, id int64, score int, feedback string, concepts, mistakes []string) error {
	args := m.Called(ctx, id, score, feedback, concepts, mistakes)
	return args.Error(0)
}

func (m *MockAnswerRepository) RecentProblemIDs(ctx context.Context, userID int64, since time.Time) ([]int64, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
