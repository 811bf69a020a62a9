package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
)

type metricsRepository struct {
	db *sql.DB
}

// NewMetricsRepository creates a new MetricsRepository implementation
func NewMetricsRepository(db *sql.DB) repository.MetricsRepository {
	return &metricsRepository{db: db}
}

func (r *metricsRepository) Append(ctx context.Context, m models.Metric) error {
	log := logger.FromContext(ctx).WithPrefix("metrics_repo")
	log.Debug("appending metric: type=%s, value=%.2f, topic=%s", m.Type, m.Value, m.Topic)

	var missionID sql.NullInt64
	if m.MissionID != nil {
		missionID = sql.NullInt64{Int64: *m.MissionID, Valid: true}
	}
	topic := m.Topic
	if topic == "" {
		topic = models.TopicGeneral
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO learning_metrics (user_id, mission_id, metric_type, metric_value, topic)
VALUES (?, ?, ?, ?, ?)
`, m.UserID, missionID, m.Type, m.Value, topic)
	if err != nil {
		log.Error("failed to append metric: %v", err)
	}
	return err
}

func (r *metricsRepository) ScoreStats(ctx context.Context, userID int64, since time.Time) (models.ScoreStats, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics_repo")

	var count int
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), AVG(metric_value)
FROM learning_metrics
WHERE user_id = ? AND metric_type = 'accuracy' AND recorded_at > ?
`, userID, since).Scan(&count, &avg)
	if err != nil {
		log.Error("failed to aggregate score stats: %v", err)
		return models.ScoreStats{}, err
	}
	return models.ScoreStats{Count: count, Average: avg.Float64}, nil
}

func (r *metricsRepository) TopicAverages(ctx context.Context, userID int64, since time.Time) (map[string]float64, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT topic, AVG(metric_value)
FROM learning_metrics
WHERE user_id = ? AND metric_type = 'accuracy' AND recorded_at > ? AND topic != 'general'
GROUP BY topic
`, userID, since)
	if err != nil {
		log.Error("failed to query topic averages: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var topic string
		var avg float64
		if err := rows.Scan(&topic, &avg); err != nil {
			return nil, err
		}
		out[topic] = avg
	}
	return out, rows.Err()
}

func (r *metricsRepository) TopicStats(ctx context.Context, userID int64, since time.Time) ([]models.TopicStat, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT topic, AVG(metric_value) AS avg_score, COUNT(*) AS sample_count
FROM learning_metrics
WHERE user_id = ? AND metric_type = 'accuracy' AND recorded_at > ? AND topic != 'general'
GROUP BY topic
ORDER BY avg_score DESC
`, userID, since)
	if err != nil {
		log.Error("failed to query topic stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.TopicStat
	for rows.Next() {
		var s models.TopicStat
		if err := rows.Scan(&s.Topic, &s.Average, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *metricsRepository) ImprovementAverages(ctx context.Context, userID int64, periodDays int) (*float64, *float64, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics_repo")

	now := time.Now()
	windowStart := now.AddDate(0, 0, -periodDays)
	halfCutoff := now.AddDate(0, 0, -periodDays/2)
	recentCutoff := now.AddDate(0, 0, -3)

	var initial, recent sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
SELECT
    AVG(CASE WHEN recorded_at < ? THEN metric_value END),
    AVG(CASE WHEN recorded_at >= ? THEN metric_value END)
FROM learning_metrics
WHERE user_id = ? AND metric_type = 'accuracy' AND recorded_at > ?
`, halfCutoff, recentCutoff, userID, windowStart).Scan(&initial, &recent)
	if err != nil {
		log.Error("failed to compute improvement averages: %v", err)
		return nil, nil, err
	}

	var initialPtr, recentPtr *float64
	if initial.Valid {
		initialPtr = &initial.Float64
	}
	if recent.Valid {
		recentPtr = &recent.Float64
	}
	return initialPtr, recentPtr, nil
}

func (r *metricsRepository) TimeEfficiencyByTopic(ctx context.Context, userID int64, since time.Time) (map[string]float64, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT topic, AVG(metric_value)
FROM learning_metrics
WHERE user_id = ? AND metric_type = 'time_efficiency' AND recorded_at > ? AND topic != 'general'
GROUP BY topic
`, userID, since)
	if err != nil {
		log.Error("failed to query time efficiency: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var topic string
		var avg float64
		if err := rows.Scan(&topic, &avg); err != nil {
			return nil, err
		}
		out[topic] = avg
	}
	return out, rows.Err()
}

func (r *metricsRepository) DailyAccuracy(ctx context.Context, userID int64, since time.Time) ([]models.DailyTopicScore, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT date(recorded_at) AS day, topic, AVG(metric_value)
FROM learning_metrics
WHERE user_id = ? AND metric_type = 'accuracy' AND recorded_at > ?
GROUP BY date(recorded_at), topic
ORDER BY day, topic
`, userID, since)
	if err != nil {
		log.Error("failed to query daily accuracy: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.DailyTopicScore
	for rows.Next() {
		var d models.DailyTopicScore
		if err := rows.Scan(&d.Date, &d.Topic, &d.Score); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
