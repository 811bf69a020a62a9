package models

import "time"

// Metric types written to the learning ledger.
const (
	MetricAccuracy          = "accuracy"
	MetricTimeEfficiency    = "time_efficiency"
	MetricMissionCompletion = "mission_completion"
	MetricMissionAverage    = "mission_average"
)

// TopicGeneral tags mission-level ledger rows that belong to no
// single topic. Topic aggregations skip it.
const TopicGeneral = "general"

// Metric is one append-only ledger row.
type Metric struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	MissionID  *int64    `json:"mission_id,omitempty"`
	Type       string    `json:"metric_type"`
	Value      float64   `json:"metric_value"`
	Topic      string    `json:"topic"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ScoreStats summarizes scored answers over a window.
type ScoreStats struct {
	Count   int
	Average float64
}

// TopicStat is a per-topic aggregate with its sample count.
type TopicStat struct {
	Topic   string
	Average float64
	Count   int
}

// LearningInsights is a derived view, recomputed per request and
// never persisted.
type LearningInsights struct {
	UserID              int64              `json:"user_id"`
	PeriodDays          int                `json:"period_days"`
	TotalProblemsSolved int                `json:"total_problems_solved"`
	AverageScore        float64            `json:"average_score"`
	ImprovementRate     float64            `json:"improvement_rate"`
	StrongTopics        []string           `json:"strong_topics"`
	WeakTopics          []string           `json:"weak_topics"`
	Recommendations     []string           `json:"recommendations"`
	TimeEfficiency      map[string]float64 `json:"time_efficiency"`
}

// DailyTopicScore is one (day, topic) accuracy aggregate from the ledger.
type DailyTopicScore struct {
	Date  string
	Topic string
	Score float64
}

// TrendPoint is one day of the performance trend.
type TrendPoint struct {
	Date   string   `json:"date"`
	Score  float64  `json:"score"`
	Topics []string `json:"topics"`
}

// PerformanceTrend is the daily accuracy series over a window.
type PerformanceTrend struct {
	Dates  []string   `json:"dates"`
	Scores []float64  `json:"scores"`
	Topics [][]string `json:"topics"`
}
