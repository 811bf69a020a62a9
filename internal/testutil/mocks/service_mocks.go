package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dabin/mathmission/internal/models"
)

// MockMissionService is a mock implementation of services.MissionService
type MockMissionService struct {
	mock.Mock
}

func (m *MockMissionService) CreateDailyMission(ctx context.Context, userID int64, missionType string) (*models.Mission, error) {
	args := m.Called(ctx, userID, missionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *MockMissionService) StartMission(ctx context.Context, missionID, userID int64) (bool, error) {
	args := m.Called(ctx, missionID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMissionService) GetCurrentMission(ctx context.Context, userID int64) (*models.Mission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *MockMissionService) GetMission(ctx context.Context, missionID, userID int64) (*models.Mission, error) {
	args := m.Called(ctx, missionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *MockMissionService) NextProblem(ctx context.Context, missionID int64) (*models.Problem, error) {
	args := m.Called(ctx, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Problem), args.Error(1)
}

func (m *MockMissionService) RecordProblemCompletion(ctx context.Context, missionID, problemID int64) error {
	args := m.Called(ctx, missionID, problemID)
	return args.Error(0)
}

func (m *MockMissionService) CheckCompletion(ctx context.Context, missionID int64) (bool, error) {
	args := m.Called(ctx, missionID)
	return args.Bool(0), args.Error(1)
}

// MockAnalyticsService is a mock implementation of services.AnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) RecordOutcome(ctx context.Context, userID, missionID, problemID int64, score, timeSpentSeconds int, topic string) {
	m.Called(ctx, userID, missionID, problemID, score, timeSpentSeconds, topic)
}

func (m *MockAnalyticsService) RecordMissionCompletion(ctx context.Context, userID, missionID int64, finalScore int) {
	m.Called(ctx, userID, missionID, finalScore)
}

func (m *MockAnalyticsService) GenerateInsights(ctx context.Context, userID int64, periodDays int) (*models.LearningInsights, error) {
	args := m.Called(ctx, userID, periodDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearningInsights), args.Error(1)
}

func (m *MockAnalyticsService) GetPerformanceTrend(ctx context.Context, userID int64, periodDays int) (*models.PerformanceTrend, error) {
	args := m.Called(ctx, userID, periodDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PerformanceTrend), args.Error(1)
}
