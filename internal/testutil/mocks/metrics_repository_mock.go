package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dabin/mathmission/internal/models"
)

// MockMetricsRepository is a mock implementation of repository.MetricsRepository
type MockMetricsRepository struct {
	mock.Mock
}

func (m *MockMetricsRepository) Append(ctx context.Context, metric models.Metric) error {
	args := m.Called(ctx, metric)
	return args.Error(0)
}

func (m *MockMetricsRepository) ScoreStats(ctx context.Context, userID int64, since time.Time) (models.ScoreStats, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(models.ScoreStats), args.Error(1)
}

func (m *MockMetricsRepository) TopicAverages(ctx context.Context, userID int64, since time.Time) (map[string]float64, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockMetricsRepository) TopicStats(ctx context.Context, userID int64, since time.Time) ([]models.TopicStat, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopicStat), args.Error(1)
}

func (m *MockMetricsRepository) ImprovementAverages(ctx context.Context, userID int64, periodDays int) (*float64, *float64, error) {
	args := m.Called(ctx, userID, periodDays)
	var initial, recent *float64
	if args.Get(0) != nil {
		initial = args.Get(0).(*float64)
	}
	if args.Get(1) != nil {
		recent = args.Get(1).(*float64)
	}
	return initial, recent, args.Error(2)
}

func (m *MockMetricsRepository) TimeEfficiencyByTopic(ctx context.Context, userID int64, since time.Time) (map[string]float64, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockMetricsRepository) DailyAccuracy(ctx context.Context, userID int64, since time.Time) ([]models.DailyTopicScore, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyTopicScore), args.Error(1)
}
