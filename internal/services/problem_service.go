package services

import (
	"context"

	"github.com/dabin/mathmission/internal/errors"
	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProblemService exposes the problem catalog.
type ProblemService interface {
	Get(ctx context.Context, id int64) (*models.Problem, error)
	List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, int, error)
	Import(ctx context.Context, problems []models.ProblemCreate) (int, error)
}

type problemService struct {
	problems repository.ProblemRepository
}

// NewProblemService creates a new ProblemService
func NewProblemService(problems repository.ProblemRepository) ProblemService {
	return &problemService{problems: problems}
}

func (s *problemService) Get(ctx context.Context, id int64) (*models.Problem, error) {
	problem, err := s.problems.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if problem == nil {
		return nil, errors.NewNotFoundError("problem", id)
	}
	return problem, nil
}

// List returns a filtered page of the catalog plus the total number of
// matches before pagination.
func (s *problemService) List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	total, err := s.problems.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	items, err := s.problems.Find(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return items, total, nil
}

// Import loads problems into the catalog, skipping rows that fail
// validation so a bad entry does not sink the whole batch.
func (s *problemService) Import(ctx context.Context, problems []models.ProblemCreate) (int, error) {
	log := logger.FromContext(ctx)
	inserted := 0
	for i, p := range problems {
		if _, err := s.problems.Insert(ctx, p); err != nil {
			log.Warn("skipping problem %d (%q): %v", i, p.Title, err)
			continue
		}
		inserted++
	}
	log.Info("problem import finished: %d/%d inserted", inserted, len(problems))
	return inserted, nil
}
