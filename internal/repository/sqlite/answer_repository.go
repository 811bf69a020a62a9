package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
)

type answerRepository struct {
	db *sql.DB
}

// NewAnswerRepository creates a new AnswerRepository implementation
func NewAnswerRepository(db *sql.DB) repository.AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Insert(ctx context.Context, a models.Answer) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")
	log.Debug("inserting answer: mission_id=%d, problem_id=%d", a.MissionID, a.ProblemID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO answers (user_id, mission_id, problem_id, answer_text, time_spent)
VALUES (?, ?, ?, ?, ?)
`, a.UserID, a.MissionID, a.ProblemID, a.AnswerText, nullInt(a.TimeSpent))
	if err != nil {
		log.Error("failed to insert answer: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("answer inserted: id=%d", id)
	return id, nil
}

func (r *answerRepository) Get(ctx context.Context, id int64) (*models.Answer, error) {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")

	var a models.Answer
	var score sql.NullInt64
	var feedback, concepts, mistakes sql.NullString
	var timeSpent sql.NullInt64
	var scoredAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, mission_id, problem_id, answer_text, score, feedback, concepts, mistakes, time_spent, submitted_at, scored_at
FROM answers
WHERE id = ?
`, id).Scan(&a.ID, &a.UserID, &a.MissionID, &a.ProblemID, &a.AnswerText, &score,
		&feedback, &concepts, &mistakes, &timeSpent, &a.SubmittedAt, &scoredAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("answer not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get answer: %v", err)
		return nil, err
	}

	if score.Valid {
		v := int(score.Int64)
		a.Score = &v
	}
	a.Feedback = feedback.String
	a.Concepts = decodeList(ctx, "answers.concepts", concepts.String)
	a.Mistakes = decodeList(ctx, "answers.mistakes", mistakes.String)
	a.TimeSpent = int(timeSpent.Int64)
	if scoredAt.Valid {
		a.ScoredAt = &scoredAt.Time
	}
	return &a, nil
}

func (r *answerRepository) SetGrading(ctx context.Context, id int64, score int, feedback string, concepts, mistakes []string) error {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")
	log.Debug("storing grading result: answer_id=%d, score=%d", id, score)

	_, err := r.db.ExecContext(ctx, `
UPDATE answers
SET score = ?, feedback = ?, concepts = ?, mistakes = ?, scored_at = CURRENT_TIMESTAMP
WHERE id = ?
`, score, feedback, encodeList(concepts), encodeList(mistakes), id)
	if err != nil {
		log.Error("failed to store grading result: %v", err)
	}
	return err
}

func (r *answerRepository) RecentProblemIDs(ctx context.Context, userID int64, since time.Time) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("answer_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT problem_id FROM answers
WHERE user_id = ? AND submitted_at > ?
`, userID, since)
	if err != nil {
		log.Error("failed to query recent problem ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	log.Debug("found %d recently answered problems", len(ids))
	return ids, rows.Err()
}
