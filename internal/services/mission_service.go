package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dabin/mathmission/internal/adaptive"
	"github.com/dabin/mathmission/internal/errors"
	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
)

// MissionService owns the mission state machine: creation, start,
// per-problem completion and completion detection.
type MissionService interface {
	// CreateDailyMission returns the user's open mission for today,
	// creating one when none exists. Idempotent within a day.
	CreateDailyMission(ctx context.Context, userID int64, missionType string) (*models.Mission, error)
	// StartMission transitions pending -> in_progress. Returns false
	// when the mission was not pending.
	StartMission(ctx context.Context, missionID, userID int64) (bool, error)
	GetCurrentMission(ctx context.Context, userID int64) (*models.Mission, error)
	GetMission(ctx context.Context, missionID, userID int64) (*models.Mission, error)
	NextProblem(ctx context.Context, missionID int64) (*models.Problem, error)
	// RecordProblemCompletion idempotently marks the problem done and
	// recounts mission progress.
	RecordProblemCompletion(ctx context.Context, missionID, problemID int64) error
	// CheckCompletion finalizes the mission when all problems are done.
	// Reports whether completion happened on this call.
	CheckCompletion(ctx context.Context, missionID int64) (bool, error)
}

// MissionConfig tunes mission assembly.
type MissionConfig struct {
	DefaultProblemCount int
	MinProblemCount     int
	MaxProblemCount     int
	Topics              []string
}

type missionService struct {
	missions  repository.MissionRepository
	problems  repository.ProblemRepository
	answers   repository.AnswerRepository
	metrics   repository.MetricsRepository
	analytics AnalyticsService
	cfg       MissionConfig

	// Serializes the same-day check-and-create per user. The partial
	// unique index on missions is the cross-process backstop.
	userLocks sync.Map // int64 -> *sync.Mutex
}

// NewMissionService creates a new MissionService
func NewMissionService(
	missions repository.MissionRepository,
	problems repository.ProblemRepository,
	answers repository.AnswerRepository,
	metrics repository.MetricsRepository,
	analytics AnalyticsService,
	cfg MissionConfig,
) MissionService {
	if cfg.MinProblemCount <= 0 {
		cfg.MinProblemCount = 3
	}
	if cfg.MaxProblemCount <= 0 {
		cfg.MaxProblemCount = 10
	}
	if cfg.DefaultProblemCount <= 0 {
		cfg.DefaultProblemCount = 5
	}
	if cfg.DefaultProblemCount < cfg.MinProblemCount {
		cfg.DefaultProblemCount = cfg.MinProblemCount
	}
	if cfg.DefaultProblemCount > cfg.MaxProblemCount {
		cfg.DefaultProblemCount = cfg.MaxProblemCount
	}
	return &missionService{
		missions:  missions,
		problems:  problems,
		answers:   answers,
		metrics:   metrics,
		analytics: analytics,
		cfg:       cfg,
	}
}

func (s *missionService) lockUser(userID int64) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *missionService) CreateDailyMission(ctx context.Context, userID int64, missionType string) (*models.Mission, error) {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	log.Debug("creating daily mission")

	if missionType == "" {
		missionType = models.MissionTypeDaily
	}

	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	// created_at is stored in UTC, so the day boundary is UTC too.
	today := time.Now().UTC()
	existingID, err := s.missions.OpenMissionID(ctx, userID, today)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existingID != 0 {
		log.Debug("open mission already exists for today: id=%d", existingID)
		return s.missions.GetWithProblems(ctx, existingID)
	}

	stats, err := s.metrics.ScoreStats(ctx, userID, today.AddDate(0, 0, -7))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	band := adaptive.EstimateBand(stats)
	log.Debug("estimated difficulty band: %d-%d (samples=%d, avg=%.1f)", band.Min, band.Max, stats.Count, stats.Average)

	selected, err := s.selectProblems(ctx, userID, band, s.cfg.DefaultProblemCount)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		log.Warn("no problems available for mission: band=%d-%d", band.Min, band.Max)
		return nil, errors.NewInsufficientProblemsError(band.Min, band.Max)
	}
	if len(selected) < s.cfg.DefaultProblemCount {
		log.Warn("mission created with fewer problems than requested: got=%d, want=%d", len(selected), s.cfg.DefaultProblemCount)
	}

	problemIDs := make([]int64, len(selected))
	for i, p := range selected {
		problemIDs[i] = p.ID
	}

	mission := models.Mission{
		UserID:      userID,
		Name:        missionName(missionType, band, today),
		Description: fmt.Sprintf("%d %s problems", len(selected), missionType),
		TargetScore: band.TargetScore(),
	}
	missionID, err := s.missions.Create(ctx, mission, problemIDs)
	if err != nil {
		// Another writer may have won the same-day race; serve its mission.
		if id, checkErr := s.missions.OpenMissionID(ctx, userID, today); checkErr == nil && id != 0 {
			log.Warn("concurrent mission creation detected, returning existing mission: id=%d", id)
			return s.missions.GetWithProblems(ctx, id)
		}
		return nil, errors.NewInternalError(err)
	}

	log.Info("mission created: id=%d, problems=%d, target=%d", missionID, len(selected), mission.TargetScore)
	return s.missions.GetWithProblems(ctx, missionID)
}

// selectProblems applies the hard filters at the catalog and the
// weighted diversity selection on the resulting pool.
func (s *missionService) selectProblems(ctx context.Context, userID int64, band adaptive.Band, count int) ([]models.Problem, error) {
	log := logger.FromContext(ctx)

	recentIDs, err := s.answers.RecentProblemIDs(ctx, userID, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	filter := models.ProblemFilter{
		MinDifficulty: band.Min,
		MaxDifficulty: band.Max,
		Topics:        s.cfg.Topics,
		ExcludeIDs:    recentIDs,
		Randomize:     true,
		Limit:         count * 2,
	}
	pool, err := s.problems.Find(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	// Recently solved problems stay excluded only while enough
	// alternatives exist.
	if len(pool) < count && len(recentIDs) > 0 {
		log.Debug("candidate pool too thin (%d), re-querying without recency exclusion", len(pool))
		filter.ExcludeIDs = nil
		pool, err = s.problems.Find(ctx, filter)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
	}

	performance, err := s.metrics.TopicAverages(ctx, userID, time.Now().AddDate(0, 0, -14))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	selected := adaptive.Select(pool, performance, count)
	log.Debug("selected %d problems from pool of %d", len(selected), len(pool))
	return selected, nil
}

func (s *missionService) StartMission(ctx context.Context, missionID, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	mission, err := s.missions.Get(ctx, missionID)
	if err != nil {
		return false, errors.NewInternalError(err)
	}
	if mission == nil {
		return false, errors.NewNotFoundError("mission", missionID)
	}
	if mission.UserID != userID {
		return false, errors.NewForbiddenError("mission", missionID)
	}

	started, err := s.missions.Start(ctx, missionID)
	if err != nil {
		return false, errors.NewInternalError(err)
	}
	if started {
		log.Info("mission started: id=%d", missionID)
	} else {
		log.Debug("mission not pending, start skipped: id=%d, status=%s", missionID, mission.Status)
	}
	return started, nil
}

func (s *missionService) GetCurrentMission(ctx context.Context, userID int64) (*models.Mission, error) {
	mission, err := s.missions.Current(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return mission, nil
}

func (s *missionService) GetMission(ctx context.Context, missionID, userID int64) (*models.Mission, error) {
	mission, err := s.missions.GetWithProblems(ctx, missionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if mission == nil {
		return nil, errors.NewNotFoundError("mission", missionID)
	}
	if mission.UserID != userID {
		return nil, errors.NewForbiddenError("mission", missionID)
	}
	return mission, nil
}

func (s *missionService) NextProblem(ctx context.Context, missionID int64) (*models.Problem, error) {
	problem, err := s.missions.NextProblem(ctx, missionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return problem, nil
}

func (s *missionService) RecordProblemCompletion(ctx context.Context, missionID, problemID int64) error {
	log := logger.FromContext(ctx)

	mission, err := s.missions.Get(ctx, missionID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if mission == nil {
		return errors.NewNotFoundError("mission", missionID)
	}

	completed, err := s.missions.MarkProblemCompleted(ctx, missionID, problemID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	log.Debug("mission progress: id=%d, completed=%d/%d", missionID, completed, mission.TotalProblems)
	return nil
}

func (s *missionService) CheckCompletion(ctx context.Context, missionID int64) (bool, error) {
	log := logger.FromContext(ctx)

	mission, err := s.missions.Get(ctx, missionID)
	if err != nil {
		return false, errors.NewInternalError(err)
	}
	if mission == nil {
		return false, errors.NewNotFoundError("mission", missionID)
	}
	if mission.Status == models.MissionCompleted {
		return false, nil
	}
	if mission.CompletedProblems < mission.TotalProblems {
		return false, nil
	}

	actualScore, err := s.missions.AverageAnswerScore(ctx, missionID)
	if err != nil {
		return false, errors.NewInternalError(err)
	}

	completed, err := s.missions.Complete(ctx, missionID, actualScore)
	if err != nil {
		return false, errors.NewInternalError(err)
	}
	if !completed {
		// Lost a completion race; the winner already recorded analytics.
		return false, nil
	}

	s.analytics.RecordMissionCompletion(ctx, mission.UserID, missionID, actualScore)
	log.Info("mission completed: id=%d, actual_score=%d, target_score=%d", missionID, actualScore, mission.TargetScore)
	return true, nil
}

// missionName builds a display name like "Sep 01 Daily Practice (Basic)".
func missionName(missionType string, band adaptive.Band, day time.Time) string {
	typeNames := map[string]string{
		models.MissionTypeDaily:      "Daily Practice",
		models.MissionTypeReview:     "Review",
		models.MissionTypeChallenge:  "Challenge",
		models.MissionTypeAssessment: "Assessment",
	}
	typeName, ok := typeNames[missionType]
	if !ok {
		typeName = "Daily Practice"
	}
	return fmt.Sprintf("%s %s (%s)", day.Format("Jan 02"), typeName, band.Tier())
}
