package services

import (
	"context"
	"time"

	"github.com/dabin/mathmission/internal/errors"
	"github.com/dabin/mathmission/internal/grader"
	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
)

// gradingFailedFeedback is stored with the sentinel score when the
// external grader fails or times out.
const gradingFailedFeedback = "Automatic grading was not available for this answer. The submission is saved; ask for a re-grade later."

// AnswerService handles answer submission: persist, grade through the
// external collaborator, then advance the owning mission.
type AnswerService interface {
	Submit(ctx context.Context, userID, missionID, problemID int64, answerText string, timeSpentSeconds int) (*models.AnswerResult, error)
	GetResult(ctx context.Context, answerID, userID int64) (*models.Answer, error)
}

type answerService struct {
	answers        repository.AnswerRepository
	missions       repository.MissionRepository
	problems       repository.ProblemRepository
	grader         grader.Grader
	missionSvc     MissionService
	analytics      AnalyticsService
	gradingTimeout time.Duration
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(
	answers repository.AnswerRepository,
	missions repository.MissionRepository,
	problems repository.ProblemRepository,
	g grader.Grader,
	missionSvc MissionService,
	analytics AnalyticsService,
	gradingTimeout time.Duration,
) AnswerService {
	if gradingTimeout <= 0 {
		gradingTimeout = 30 * time.Second
	}
	return &answerService{
		answers:        answers,
		missions:       missions,
		problems:       problems,
		grader:         g,
		missionSvc:     missionSvc,
		analytics:      analytics,
		gradingTimeout: gradingTimeout,
	}
}

func (s *answerService) Submit(ctx context.Context, userID, missionID, problemID int64, answerText string, timeSpentSeconds int) (*models.AnswerResult, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{"mission_id": missionID, "problem_id": problemID})
	log.Debug("answer submission started")

	if answerText == "" {
		return nil, errors.NewValidationError("answer_text", "must not be empty")
	}

	mission, err := s.missions.Get(ctx, missionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if mission == nil || mission.UserID != userID {
		return nil, errors.NewNotFoundError("mission", missionID)
	}

	problem, err := s.problems.Get(ctx, problemID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if problem == nil {
		return nil, errors.NewNotFoundError("problem", problemID)
	}

	answerID, err := s.answers.Insert(ctx, models.Answer{
		UserID:     userID,
		MissionID:  missionID,
		ProblemID:  problemID,
		AnswerText: answerText,
		TimeSpent:  timeSpentSeconds,
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	gradeCtx, cancel := context.WithTimeout(ctx, s.gradingTimeout)
	defer cancel()
	result, gradeErr := s.grader.Grade(gradeCtx, *problem, answerText)
	if gradeErr != nil {
		// Recover locally: keep the answer with a sentinel score and do
		// not touch mission progress or the ledger.
		log.Warn("grading failed, storing sentinel score: %v", gradeErr)
		if err := s.answers.SetGrading(ctx, answerID, 0, gradingFailedFeedback, nil, nil); err != nil {
			return nil, errors.NewInternalError(err)
		}
		return &models.AnswerResult{
			AnswerID: answerID,
			Score:    0,
			Feedback: gradingFailedFeedback,
			Graded:   false,
			Progress: models.Progress(mission, nil),
		}, nil
	}

	if err := s.answers.SetGrading(ctx, answerID, result.Score, result.Feedback, result.Concepts, result.Mistakes); err != nil {
		return nil, errors.NewInternalError(err)
	}

	if err := s.missionSvc.RecordProblemCompletion(ctx, missionID, problemID); err != nil {
		return nil, err
	}
	completed, err := s.missionSvc.CheckCompletion(ctx, missionID)
	if err != nil {
		return nil, err
	}

	s.analytics.RecordOutcome(ctx, userID, missionID, problemID, result.Score, timeSpentSeconds, problem.Topic)

	updated, err := s.missions.Get(ctx, missionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	next, err := s.missions.NextProblem(ctx, missionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Info("answer graded and mission advanced: answer_id=%d, score=%d, mission_completed=%v", answerID, result.Score, completed)
	return &models.AnswerResult{
		AnswerID:  answerID,
		Score:     result.Score,
		Feedback:  result.Feedback,
		Concepts:  result.Concepts,
		Mistakes:  result.Mistakes,
		Graded:    true,
		Mission:   updated,
		Completed: completed,
		Progress:  models.Progress(updated, next),
	}, nil
}

func (s *answerService) GetResult(ctx context.Context, answerID, userID int64) (*models.Answer, error) {
	answer, err := s.answers.Get(ctx, answerID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if answer == nil || answer.UserID != userID {
		return nil, errors.NewNotFoundError("answer", answerID)
	}
	return answer, nil
}
