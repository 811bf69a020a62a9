package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dabin/mathmission/internal/db"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
	"github.com/dabin/mathmission/internal/repository/sqlite"
	"github.com/dabin/mathmission/internal/testutil"
)

type AnswerRepositorySuite struct {
	suite.Suite
	db        *db.DB
	repo      repository.AnswerRepository
	missionID int64
	problemID int64
}

func (s *AnswerRepositorySuite) SetupTest() {
	ctx := context.Background()
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAnswerRepository(s.db.DB)

	problems := sqlite.NewProblemRepository(s.db.DB)
	missions := sqlite.NewMissionRepository(s.db.DB)

	var err error
	s.problemID, err = problems.Insert(ctx, models.ProblemCreate{
		Title: "p", Content: "c", Difficulty: 3, Topic: "series",
	})
	s.Require().NoError(err)
	s.missionID, err = missions.Create(ctx, models.Mission{
		UserID: 1, Name: "Daily Practice", TargetScore: 80,
	}, []int64{s.problemID})
	s.Require().NoError(err)
}

func (s *AnswerRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Answer{
		UserID:     1,
		MissionID:  s.missionID,
		ProblemID:  s.problemID,
		AnswerText: "S_n = n(a1+an)/2",
		TimeSpent:  120,
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	a, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(a)
	s.Assert().Equal("S_n = n(a1+an)/2", a.AnswerText)
	s.Assert().Equal(120, a.TimeSpent)
	s.Assert().False(a.Graded(), "score stays empty until grading")
	s.Assert().Nil(a.ScoredAt)
	s.Assert().False(a.SubmittedAt.IsZero())
}

func (s *AnswerRepositorySuite) TestGet_NotFound() {
	a, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(a)
}

func (s *AnswerRepositorySuite) TestSetGrading() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Answer{
		UserID: 1, MissionID: s.missionID, ProblemID: s.problemID, AnswerText: "x",
	})
	s.Require().NoError(err)

	err = s.repo.SetGrading(ctx, id, 85, "Solid reasoning.",
		[]string{"arithmetic sums"}, []string{"sign error in step 3"})
	s.Require().NoError(err)

	a, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().True(a.Graded())
	s.Assert().Equal(85, *a.Score)
	s.Assert().Equal("Solid reasoning.", a.Feedback)
	s.Assert().Equal([]string{"arithmetic sums"}, a.Concepts)
	s.Assert().Equal([]string{"sign error in step 3"}, a.Mistakes)
	s.Assert().NotNil(a.ScoredAt)
}

func (s *AnswerRepositorySuite) TestGet_MalformedListColumnsDegrade() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Answer{
		UserID: 1, MissionID: s.missionID, ProblemID: s.problemID, AnswerText: "x",
	})
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `UPDATE answers SET concepts = 'not-json' WHERE id = ?`, id)
	s.Require().NoError(err)

	a, err := s.repo.Get(ctx, id)
	s.Require().NoError(err, "a corrupt list column must not sink the read")
	s.Assert().Empty(a.Concepts)
}

func (s *AnswerRepositorySuite) TestRecentProblemIDs() {
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := s.repo.Insert(ctx, models.Answer{
			UserID: 1, MissionID: s.missionID, ProblemID: s.problemID, AnswerText: "x",
		})
		s.Require().NoError(err)
	}

	// Repeat submissions collapse to one id.
	ids, err := s.repo.RecentProblemIDs(ctx, 1, time.Now().UTC().AddDate(0, 0, -1))
	s.Require().NoError(err)
	s.Assert().Equal([]int64{s.problemID}, ids)

	// Other users see nothing.
	ids, err = s.repo.RecentProblemIDs(ctx, 2, time.Now().UTC().AddDate(0, 0, -1))
	s.Require().NoError(err)
	s.Assert().Empty(ids)

	// A cutoff in the future hides everything.
	ids, err = s.repo.RecentProblemIDs(ctx, 1, time.Now().UTC().AddDate(0, 0, 1))
	s.Require().NoError(err)
	s.Assert().Empty(ids)
}

func TestAnswerRepositorySuite(t *testing.T) {
	suite.Run(t, new(AnswerRepositorySuite))
}
