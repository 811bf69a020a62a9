package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dabin/mathmission/internal/models"
)

// MockMissionRepository is a mock implementation of repository.MissionRepository
type MockMissionRepository struct {
	mock.Mock
}

func (m *MockMissionRepository) Get(ctx context.Context, id int64) (*models.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetWithProblems(ctx context.Context, id int64) (*models.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *MockMissionRepository) Current(ctx context.Context, userID int64) (*models.Mission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *MockMissionRepository) OpenMissionID(ctx context.Context, userID int64, day time.Time) (int64, error) {
	args := m.Called(ctx, userID, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMissionRepository) Create(ctx context.Context, mission models.Mission, problemIDs []int64) (int64, error) {
	args := m.Called(ctx, mission, problemIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMissionRepository) Start(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMissionRepository) MarkProblemCompleted(ctx context.Context, missionID, problemID int64) (int, error) {
	args := m.Called(ctx, missionID, problemID)
	return args.Int(0), args.Error(1)
}

func (m *MockMissionRepository) Complete(ctx context.Context, id int64, actualScore int) (bool, error) {
	args := m.Called(ctx, id, actualScore)
	return args.Bool(0), args.Error(1)
}

func (m *MockMissionRepository) NextProblem(ctx context.Context, missionID int64) (*models.Problem, error) {
	args := m.Called(ctx, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Problem), args.Error(1)
}

func (m *MockMissionRepository) Problems(ctx context.Context, missionID int64) ([]models.Problem, error) {
	args := m.Called(ctx, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Problem), args.Error(1)
}

func (m *MockMissionRepository) MissionProblems(ctx context.Context, missionID int64) ([]models.MissionProblem, error) {
	args := m.Called(ctx, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MissionProblem), args.Error(1)
}

func (m *MockMissionRepository) AverageAnswerScore(ctx context.Context, missionID int64) (int, error) {
	args := m.Called(ctx, missionID)
	return args.Int(0), args.Error(1)
}
