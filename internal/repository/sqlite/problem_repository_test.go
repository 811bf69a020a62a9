package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dabin/mathmission/internal/db"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
	"github.com/dabin/mathmission/internal/repository/sqlite"
	"github.com/dabin/mathmission/internal/testutil"
)

type ProblemRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.ProblemRepository
}

func (s *ProblemRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProblemRepository(s.db.DB)
}

func (s *ProblemRepositorySuite) insert(title, topic string, difficulty int) int64 {
	id, err := s.repo.Insert(context.Background(), models.ProblemCreate{
		Title:      title,
		Content:    "Prove the statement.",
		Difficulty: difficulty,
		Topic:      topic,
	})
	s.Require().NoError(err)
	return id
}

func (s *ProblemRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.ProblemCreate{
		Title:         "Sum of an arithmetic sequence",
		Content:       "Find the sum of the first n terms.",
		Solution:      "n(a1+an)/2",
		Difficulty:    3,
		Topic:         "arithmetic_sequence",
		Subtopic:      "sums",
		EstimatedTime: 10,
		Keywords:      []string{"sum", "sequence"},
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	p, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.Assert().Equal("Sum of an arithmetic sequence", p.Title)
	s.Assert().Equal("arithmetic_sequence", p.Topic)
	s.Assert().Equal("sums", p.Subtopic)
	s.Assert().Equal(3, p.Difficulty)
	s.Assert().Equal(10, p.EstimatedTime)
	s.Assert().Equal([]string{"sum", "sequence"}, p.Keywords)
	s.Assert().False(p.CreatedAt.IsZero())
}

func (s *ProblemRepositorySuite) TestGet_NotFound() {
	p, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(p)
}

func (s *ProblemRepositorySuite) TestInsert_DifficultyOutOfRange() {
	_, err := s.repo.Insert(context.Background(), models.ProblemCreate{
		Title: "bad", Content: "bad", Difficulty: 0, Topic: "series",
	})
	s.Assert().Error(err)

	_, err = s.repo.Insert(context.Background(), models.ProblemCreate{
		Title: "bad", Content: "bad", Difficulty: 11, Topic: "series",
	})
	s.Assert().Error(err)
}

func (s *ProblemRepositorySuite) TestFind_DifficultyBand() {
	ctx := context.Background()
	s.insert("easy", "series", 1)
	mid := s.insert("mid", "series", 4)
	s.insert("hard", "series", 9)

	problems, err := s.repo.Find(ctx, models.ProblemFilter{MinDifficulty: 2, MaxDifficulty: 5})
	s.Require().NoError(err)
	s.Require().Len(problems, 1)
	s.Assert().Equal(mid, problems[0].ID)
}

func (s *ProblemRepositorySuite) TestFind_TopicsAndExclusion() {
	ctx := context.Background()
	a := s.insert("a", "series", 3)
	b := s.insert("b", "series", 3)
	s.insert("c", "geometry", 3)

	problems, err := s.repo.Find(ctx, models.ProblemFilter{
		Topics:     []string{"series"},
		ExcludeIDs: []int64{a},
	})
	s.Require().NoError(err)
	s.Require().Len(problems, 1)
	s.Assert().Equal(b, problems[0].ID)
}

func (s *ProblemRepositorySuite) TestFind_LimitAndOffset() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.insert("p", "series", 3)
	}

	page, err := s.repo.Find(ctx, models.ProblemFilter{Limit: 2, Offset: 4})
	s.Require().NoError(err)
	s.Assert().Len(page, 1)
}

func (s *ProblemRepositorySuite) TestFind_Search() {
	ctx := context.Background()
	want := s.insert("Geometric series convergence", "series", 4)
	s.insert("Induction basics", "mathematical_induction", 2)

	problems, err := s.repo.Find(ctx, models.ProblemFilter{Search: "convergence"})
	s.Require().NoError(err)
	s.Require().Len(problems, 1)
	s.Assert().Equal(want, problems[0].ID)
}

func (s *ProblemRepositorySuite) TestCount() {
	ctx := context.Background()
	s.insert("a", "series", 2)
	s.insert("b", "series", 6)
	s.insert("c", "geometry", 6)

	count, err := s.repo.Count(ctx, models.ProblemFilter{Topics: []string{"series"}})
	s.Require().NoError(err)
	s.Assert().Equal(2, count)

	count, err = s.repo.Count(ctx, models.ProblemFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(3, count)
}

func TestProblemRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProblemRepositorySuite))
}
