package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dabin/mathmission/internal/errors"
	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
)

// AnalyticsService records outcomes into the performance ledger and
// derives insight views from it on demand.
type AnalyticsService interface {
	// RecordOutcome appends the accuracy metric for one graded answer,
	// plus a time-efficiency metric when timing is known. Recording
	// failures are logged, never surfaced: analytics must not break the
	// answer flow.
	RecordOutcome(ctx context.Context, userID, missionID, problemID int64, score, timeSpentSeconds int, topic string)
	// RecordMissionCompletion appends the mission-level ledger rows.
	RecordMissionCompletion(ctx context.Context, userID, missionID int64, finalScore int)
	GenerateInsights(ctx context.Context, userID int64, periodDays int) (*models.LearningInsights, error)
	GetPerformanceTrend(ctx context.Context, userID int64, periodDays int) (*models.PerformanceTrend, error)
}

const (
	defaultInsightPeriodDays = 7
	defaultTrendPeriodDays   = 30

	strongTopicThreshold = 80.0
	weakTopicThreshold   = 65.0
	minTopicSamples      = 3
	maxListedTopics      = 3

	// Score assumed for window halves with no data, so the improvement
	// rate defaults to zero instead of dividing by zero.
	baselineScore = 70.0
)

type analyticsService struct {
	metrics repository.MetricsRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(metrics repository.MetricsRepository) AnalyticsService {
	return &analyticsService{metrics: metrics}
}

func (s *analyticsService) RecordOutcome(ctx context.Context, userID, missionID, problemID int64, score, timeSpentSeconds int, topic string) {
	log := logger.FromContext(ctx).WithField("user_id", userID)

	err := s.metrics.Append(ctx, models.Metric{
		UserID:    userID,
		MissionID: &missionID,
		Type:      models.MetricAccuracy,
		Value:     float64(score),
		Topic:     topic,
	})
	if err != nil {
		log.Error("failed to record accuracy metric: %v", err)
		return
	}

	if timeSpentSeconds > 0 {
		// Points per minute.
		efficiency := float64(score) / (float64(timeSpentSeconds) / 60)
		if err := s.metrics.Append(ctx, models.Metric{
			UserID:    userID,
			MissionID: &missionID,
			Type:      models.MetricTimeEfficiency,
			Value:     efficiency,
			Topic:     topic,
		}); err != nil {
			log.Error("failed to record time efficiency metric: %v", err)
		}
	}

	log.Debug("outcome recorded: problem_id=%d, score=%d, topic=%s", problemID, score, topic)
}

func (s *analyticsService) RecordMissionCompletion(ctx context.Context, userID, missionID int64, finalScore int) {
	log := logger.FromContext(ctx).WithField("user_id", userID)

	if err := s.metrics.Append(ctx, models.Metric{
		UserID:    userID,
		MissionID: &missionID,
		Type:      models.MetricMissionCompletion,
		Value:     100,
		Topic:     models.TopicGeneral,
	}); err != nil {
		log.Error("failed to record mission completion metric: %v", err)
	}
	if err := s.metrics.Append(ctx, models.Metric{
		UserID:    userID,
		MissionID: &missionID,
		Type:      models.MetricMissionAverage,
		Value:     float64(finalScore),
		Topic:     models.TopicGeneral,
	}); err != nil {
		log.Error("failed to record mission average metric: %v", err)
	}

	log.Info("mission completion recorded: mission_id=%d, final_score=%d", missionID, finalScore)
}

func (s *analyticsService) GenerateInsights(ctx context.Context, userID int64, periodDays int) (*models.LearningInsights, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)

	if periodDays <= 0 {
		periodDays = defaultInsightPeriodDays
	}
	since := time.Now().AddDate(0, 0, -periodDays)

	stats, err := s.metrics.ScoreStats(ctx, userID, since)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	improvementRate, err := s.improvementRate(ctx, userID, periodDays)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	strong, weak, err := s.topicBreakdown(ctx, userID, since)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	timeEfficiency, err := s.metrics.TimeEfficiencyByTopic(ctx, userID, since)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	insights := &models.LearningInsights{
		UserID:              userID,
		PeriodDays:          periodDays,
		TotalProblemsSolved: stats.Count,
		AverageScore:        round2(stats.Average),
		ImprovementRate:     improvementRate,
		StrongTopics:        strong,
		WeakTopics:          weak,
		Recommendations:     buildRecommendations(stats, weak, timeEfficiency),
		TimeEfficiency:      timeEfficiency,
	}

	log.Debug("insights generated: problems=%d, avg=%.1f, strong=%d, weak=%d",
		stats.Count, stats.Average, len(strong), len(weak))
	return insights, nil
}

func (s *analyticsService) improvementRate(ctx context.Context, userID int64, periodDays int) (float64, error) {
	initial, recent, err := s.metrics.ImprovementAverages(ctx, userID, periodDays)
	if err != nil {
		return 0, err
	}

	initialScore := baselineScore
	if initial != nil {
		initialScore = *initial
	}
	recentScore := baselineScore
	if recent != nil {
		recentScore = *recent
	}

	if initialScore <= 0 {
		return 0, nil
	}
	return round2((recentScore - initialScore) / initialScore * 100), nil
}

func (s *analyticsService) topicBreakdown(ctx context.Context, userID int64, since time.Time) (strong, weak []string, err error) {
	topicStats, err := s.metrics.TopicStats(ctx, userID, since)
	if err != nil {
		return nil, nil, err
	}

	for _, t := range topicStats {
		if t.Count < minTopicSamples {
			continue
		}
		switch {
		case t.Average >= strongTopicThreshold:
			strong = append(strong, t.Topic)
		case t.Average < weakTopicThreshold:
			weak = append(weak, t.Topic)
		}
	}
	if len(strong) > maxListedTopics {
		strong = strong[:maxListedTopics]
	}
	if len(weak) > maxListedTopics {
		weak = weak[:maxListedTopics]
	}
	return strong, weak, nil
}

// buildRecommendations applies fixed rules keyed on the score tier,
// weak topics and time efficiency. Always returns 3 to 5 entries.
func buildRecommendations(stats models.ScoreStats, weakTopics []string, timeEfficiency map[string]float64) []string {
	var recs []string

	if stats.Count == 0 {
		recs = append(recs, "Solve a few problems so your progress can be measured.")
	} else {
		switch {
		case stats.Average < 60:
			recs = append(recs,
				"Spend more time reviewing fundamental concepts before attempting new problems.",
				"Short, consistent daily sessions build mastery faster than long irregular ones.")
		case stats.Average < 80:
			recs = append(recs,
				"Keep your current pace and start mixing in applied problems.",
				"Concentrate your practice on your weaker topics.")
		default:
			recs = append(recs,
				"Challenge yourself with harder problems to push your level up.",
				"Practice problems that combine several topics at once.")
		}
	}

	if len(weakTopics) > 0 {
		recs = append(recs, fmt.Sprintf("Revisit the basics of %s.", strings.Join(weakTopics, ", ")))
	}

	if len(timeEfficiency) > 0 {
		var total float64
		for _, v := range timeEfficiency {
			total += v
		}
		if total/float64(len(timeEfficiency)) < 1.0 {
			recs = append(recs,
				"Memorize the key formulas so you spend less time deriving them.",
				"Practice under a time limit to build solving speed.")
		}
	}

	generic := []string{
		"Study at the same time each day to build a habit.",
		"Always re-solve the problems you got wrong.",
		"Set aside time to summarize and review what you learned.",
	}
	for _, g := range generic {
		if len(recs) >= 3 {
			break
		}
		recs = append(recs, g)
	}

	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}

func (s *analyticsService) GetPerformanceTrend(ctx context.Context, userID int64, periodDays int) (*models.PerformanceTrend, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)

	if periodDays <= 0 {
		periodDays = defaultTrendPeriodDays
	}
	since := time.Now().AddDate(0, 0, -periodDays)

	rows, err := s.metrics.DailyAccuracy(ctx, userID, since)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	trend := &models.PerformanceTrend{
		Dates:  []string{},
		Scores: []float64{},
		Topics: [][]string{},
	}

	// Rows arrive ordered by day then topic; fold per-topic averages
	// into one point per day.
	var day string
	var scores []float64
	var topics []string
	flush := func() {
		if day == "" {
			return
		}
		var sum float64
		for _, v := range scores {
			sum += v
		}
		trend.Dates = append(trend.Dates, day)
		trend.Scores = append(trend.Scores, round2(sum/float64(len(scores))))
		trend.Topics = append(trend.Topics, topics)
	}
	for _, row := range rows {
		if row.Date != day {
			flush()
			day = row.Date
			scores = nil
			topics = nil
		}
		scores = append(scores, row.Score)
		topics = append(topics, row.Topic)
	}
	flush()

	log.Debug("performance trend: %d days of data over a %d day window", len(trend.Dates), periodDays)
	return trend, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
