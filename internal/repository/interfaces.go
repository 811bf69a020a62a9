package repository

import (
	"context"
	"time"

	"github.com/dabin/mathmission/internal/models"
)

// ProblemRepository handles catalog data access. The catalog is
// read-only from the service layer's perspective apart from Insert,
// which exists for catalog loading.
type ProblemRepository interface {
	Get(ctx context.Context, id int64) (*models.Problem, error)
	Find(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error)
	Count(ctx context.Context, filter models.ProblemFilter) (int, error)
	Insert(ctx context.Context, p models.ProblemCreate) (int64, error)
}

// MissionRepository handles mission and mission-problem data access.
type MissionRepository interface {
	Get(ctx context.Context, id int64) (*models.Mission, error)
	GetWithProblems(ctx context.Context, id int64) (*models.Mission, error)
	// Current returns the newest open mission for the user with its
	// ordered problems, or nil when none is open.
	Current(ctx context.Context, userID int64) (*models.Mission, error)
	// OpenMissionID returns the id of the user's non-completed mission
	// created on the given day, or 0 when there is none.
	OpenMissionID(ctx context.Context, userID int64, day time.Time) (int64, error)
	// Create persists the mission and its ordered problem rows atomically.
	Create(ctx context.Context, m models.Mission, problemIDs []int64) (int64, error)
	// Start transitions pending -> in_progress. Returns false when the
	// mission was not pending.
	Start(ctx context.Context, id int64) (bool, error)
	// MarkProblemCompleted idempotently flips the mission-problem row and
	// recounts completed_problems from the rows. Returns the new count.
	MarkProblemCompleted(ctx context.Context, missionID, problemID int64) (int, error)
	// Complete finalizes a non-completed mission. Returns false when the
	// mission was already completed.
	Complete(ctx context.Context, id int64, actualScore int) (bool, error)
	NextProblem(ctx context.Context, missionID int64) (*models.Problem, error)
	Problems(ctx context.Context, missionID int64) ([]models.Problem, error)
	MissionProblems(ctx context.Context, missionID int64) ([]models.MissionProblem, error)
	// AverageAnswerScore is the integer average of all scored answers
	// linked to the mission's problems, 0 when none are scored.
	AverageAnswerScore(ctx context.Context, missionID int64) (int, error)
}

// AnswerRepository handles answer data access.
type AnswerRepository interface {
	Insert(ctx context.Context, a models.Answer) (int64, error)
	Get(ctx context.Context, id int64) (*models.Answer, error)
	SetGrading(ctx context.Context, id int64, score int, feedback string, concepts, mistakes []string) error
	// RecentProblemIDs lists problems the user answered since the cutoff,
	// used to keep repeats out of new missions.
	RecentProblemIDs(ctx context.Context, userID int64, since time.Time) ([]int64, error)
}

// MetricsRepository is the append-only performance ledger.
type MetricsRepository interface {
	Append(ctx context.Context, m models.Metric) error
	// ScoreStats aggregates accuracy rows since the cutoff.
	ScoreStats(ctx context.Context, userID int64, since time.Time) (models.ScoreStats, error)
	// TopicAverages maps topic to average accuracy since the cutoff,
	// skipping the general topic.
	TopicAverages(ctx context.Context, userID int64, since time.Time) (map[string]float64, error)
	// TopicStats returns per-topic accuracy aggregates with sample
	// counts, ordered by average descending.
	TopicStats(ctx context.Context, userID int64, since time.Time) ([]models.TopicStat, error)
	// ImprovementAverages returns the average accuracy over the first
	// half of the window and over the trailing three days. Either value
	// is nil when its slice of the window holds no rows.
	ImprovementAverages(ctx context.Context, userID int64, periodDays int) (initial, recent *float64, err error)
	TimeEfficiencyByTopic(ctx context.Context, userID int64, since time.Time) (map[string]float64, error)
	// DailyAccuracy returns (day, topic) accuracy aggregates since the
	// cutoff, ordered by day then topic.
	DailyAccuracy(ctx context.Context, userID int64, since time.Time) ([]models.DailyTopicScore, error)
}
