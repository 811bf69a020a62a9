package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/services"
	"github.com/dabin/mathmission/internal/testutil/mocks"
)

func newAnalytics(t *testing.T) (services.AnalyticsService, *mocks.MockMetricsRepository) {
	t.Helper()
	metrics := new(mocks.MockMetricsRepository)
	return services.NewAnalyticsService(metrics), metrics
}

// expectNoTopicData stubs every aggregate an insight request touches
// with empty results.
func expectNoTopicData(metrics *mocks.MockMetricsRepository) {
	metrics.On("TopicStats", mock.Anything, int64(1), mock.Anything).Return([]models.TopicStat{}, nil)
	metrics.On("TimeEfficiencyByTopic", mock.Anything, int64(1), mock.Anything).Return(map[string]float64{}, nil)
	metrics.On("ImprovementAverages", mock.Anything, int64(1), 7).Return(nil, nil, nil)
}

func TestRecordOutcome_AppendsAccuracyAndEfficiency(t *testing.T) {
	svc, metrics := newAnalytics(t)

	metrics.On("Append", mock.Anything, mock.MatchedBy(func(m models.Metric) bool {
		return m.Type == models.MetricAccuracy && m.Value == 85 && m.Topic == "series"
	})).Return(nil).Once()
	metrics.On("Append", mock.Anything, mock.MatchedBy(func(m models.Metric) bool {
		// 85 points over 2 minutes.
		return m.Type == models.MetricTimeEfficiency && m.Value == 42.5 && m.Topic == "series"
	})).Return(nil).Once()

	svc.RecordOutcome(context.Background(), 1, 10, 100, 85, 120, "series")
	metrics.AssertExpectations(t)
}

func TestRecordOutcome_NoTimingSkipsEfficiency(t *testing.T) {
	svc, metrics := newAnalytics(t)

	metrics.On("Append", mock.Anything, mock.MatchedBy(func(m models.Metric) bool {
		return m.Type == models.MetricAccuracy
	})).Return(nil).Once()

	svc.RecordOutcome(context.Background(), 1, 10, 100, 85, 0, "series")

	metrics.AssertExpectations(t)
	metrics.AssertNumberOfCalls(t, "Append", 1)
}

func TestRecordMissionCompletion(t *testing.T) {
	svc, metrics := newAnalytics(t)

	metrics.On("Append", mock.Anything, mock.MatchedBy(func(m models.Metric) bool {
		return m.Type == models.MetricMissionCompletion && m.Value == 100 && m.Topic == models.TopicGeneral
	})).Return(nil).Once()
	metrics.On("Append", mock.Anything, mock.MatchedBy(func(m models.Metric) bool {
		return m.Type == models.MetricMissionAverage && m.Value == 77 && m.Topic == models.TopicGeneral
	})).Return(nil).Once()

	svc.RecordMissionCompletion(context.Background(), 1, 10, 77)
	metrics.AssertExpectations(t)
}

func TestGenerateInsights_NoData(t *testing.T) {
	svc, metrics := newAnalytics(t)

	metrics.On("ScoreStats", mock.Anything, int64(1), mock.Anything).Return(models.ScoreStats{}, nil)
	expectNoTopicData(metrics)

	insights, err := svc.GenerateInsights(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Zero(t, insights.TotalProblemsSolved)
	assert.Zero(t, insights.AverageScore)
	// Both window halves default to the baseline, so no movement.
	assert.Zero(t, insights.ImprovementRate)
	assert.Empty(t, insights.StrongTopics)
	assert.Empty(t, insights.WeakTopics)
	require.NotEmpty(t, insights.Recommendations)
	assert.Equal(t, "Solve a few problems so your progress can be measured.", insights.Recommendations[0])
	assert.GreaterOrEqual(t, len(insights.Recommendations), 3)
	assert.LessOrEqual(t, len(insights.Recommendations), 5)
}

func TestGenerateInsights_TopicBreakdown(t *testing.T) {
	svc, metrics := newAnalytics(t)

	metrics.On("ScoreStats", mock.Anything, int64(1), mock.Anything).Return(models.ScoreStats{Count: 9, Average: 70}, nil)
	metrics.On("TopicStats", mock.Anything, int64(1), mock.Anything).Return([]models.TopicStat{
		{Topic: "sparse", Average: 95, Count: 2}, // too few samples
		{Topic: "geometry", Average: 90, Count: 4},
		{Topic: "series", Average: 50, Count: 3},
	}, nil)
	metrics.On("TimeEfficiencyByTopic", mock.Anything, int64(1), mock.Anything).Return(map[string]float64{}, nil)
	metrics.On("ImprovementAverages", mock.Anything, int64(1), 7).Return(nil, nil, nil)

	insights, err := svc.GenerateInsights(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, []string{"geometry"}, insights.StrongTopics)
	assert.Equal(t, []string{"series"}, insights.WeakTopics)
	assert.Contains(t, insights.Recommendations, "Revisit the basics of series.")
}

func TestGenerateInsights_ImprovementRate(t *testing.T) {
	svc, metrics := newAnalytics(t)

	initial, recent := 60.0, 75.0
	metrics.On("ScoreStats", mock.Anything, int64(1), mock.Anything).Return(models.ScoreStats{Count: 5, Average: 70}, nil)
	metrics.On("TopicStats", mock.Anything, int64(1), mock.Anything).Return([]models.TopicStat{}, nil)
	metrics.On("TimeEfficiencyByTopic", mock.Anything, int64(1), mock.Anything).Return(map[string]float64{}, nil)
	metrics.On("ImprovementAverages", mock.Anything, int64(1), 7).Return(&initial, &recent, nil)

	insights, err := svc.GenerateInsights(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, insights.ImprovementRate, 0.001)
}

func TestGenerateInsights_RecommendationTiers(t *testing.T) {
	cases := []struct {
		name    string
		average float64
		want    string
	}{
		{"struggling", 55, "Spend more time reviewing fundamental concepts before attempting new problems."},
		{"steady", 72, "Keep your current pace and start mixing in applied problems."},
		{"excelling", 88, "Challenge yourself with harder problems to push your level up."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, metrics := newAnalytics(t)
			metrics.On("ScoreStats", mock.Anything, int64(1), mock.Anything).Return(models.ScoreStats{Count: 5, Average: tc.average}, nil)
			expectNoTopicData(metrics)

			insights, err := svc.GenerateInsights(context.Background(), 1, 7)
			require.NoError(t, err)
			require.NotEmpty(t, insights.Recommendations)
			assert.Equal(t, tc.want, insights.Recommendations[0])
		})
	}
}

func TestGenerateInsights_SlowSolverGetsSpeedAdvice(t *testing.T) {
	svc, metrics := newAnalytics(t)

	metrics.On("ScoreStats", mock.Anything, int64(1), mock.Anything).Return(models.ScoreStats{Count: 5, Average: 72}, nil)
	metrics.On("TopicStats", mock.Anything, int64(1), mock.Anything).Return([]models.TopicStat{}, nil)
	metrics.On("TimeEfficiencyByTopic", mock.Anything, int64(1), mock.Anything).Return(map[string]float64{
		"series":   0.5,
		"geometry": 0.9,
	}, nil)
	metrics.On("ImprovementAverages", mock.Anything, int64(1), 7).Return(nil, nil, nil)

	insights, err := svc.GenerateInsights(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Contains(t, insights.Recommendations, "Memorize the key formulas so you spend less time deriving them.")
	assert.LessOrEqual(t, len(insights.Recommendations), 5)
}

func TestGetPerformanceTrend_FoldsDays(t *testing.T) {
	svc, metrics := newAnalytics(t)

	metrics.On("DailyAccuracy", mock.Anything, int64(1), mock.Anything).Return([]models.DailyTopicScore{
		{Date: "2026-08-30", Topic: "geometry", Score: 60},
		{Date: "2026-08-30", Topic: "series", Score: 80},
		{Date: "2026-08-31", Topic: "series", Score: 90},
	}, nil)

	trend, err := svc.GetPerformanceTrend(context.Background(), 1, 30)
	require.NoError(t, err)

	require.Equal(t, []string{"2026-08-30", "2026-08-31"}, trend.Dates)
	require.Len(t, trend.Scores, 2)
	assert.InDelta(t, 70.0, trend.Scores[0], 0.001)
	assert.InDelta(t, 90.0, trend.Scores[1], 0.001)
	require.Len(t, trend.Topics, 2)
	assert.Equal(t, []string{"geometry", "series"}, trend.Topics[0])
	assert.Equal(t, []string{"series"}, trend.Topics[1])
}

func TestGetPerformanceTrend_Empty(t *testing.T) {
	svc, metrics := newAnalytics(t)

	metrics.On("DailyAccuracy", mock.Anything, int64(1), mock.Anything).Return([]models.DailyTopicScore{}, nil)

	trend, err := svc.GetPerformanceTrend(context.Background(), 1, 30)
	require.NoError(t, err)
	assert.Empty(t, trend.Dates)
	assert.Empty(t, trend.Scores)
	assert.Empty(t, trend.Topics)
}
