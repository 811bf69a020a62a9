package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
)

type problemRepository struct {
	db *sql.DB
}

// NewProblemRepository creates a new ProblemRepository implementation
func NewProblemRepository(db *sql.DB) repository.ProblemRepository {
	return &problemRepository{db: db}
}

const problemColumns = "id, title, content, solution, difficulty, topic, subtopic, estimated_time, keywords, created_at"

func scanProblem(ctx context.Context, scan func(...any) error) (*models.Problem, error) {
	var p models.Problem
	var solution, subtopic, keywords sql.NullString
	var estimated sql.NullInt64
	if err := scan(&p.ID, &p.Title, &p.Content, &solution, &p.Difficulty, &p.Topic, &subtopic, &estimated, &keywords, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Solution = solution.String
	p.Subtopic = subtopic.String
	p.EstimatedTime = int(estimated.Int64)
	p.Keywords = decodeList(ctx, "problems.keywords", keywords.String)
	return &p, nil
}

func (r *problemRepository) Get(ctx context.Context, id int64) (*models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")

	row := r.db.QueryRowContext(ctx, `SELECT `+problemColumns+` FROM problems WHERE id = ?`, id)
	p, err := scanProblem(ctx, row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("problem not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get problem: %v", err)
		return nil, err
	}
	return p, nil
}

// filterQuery assembles the conjunction of optional catalog predicates.
func filterQuery(base squirrel.SelectBuilder, filter models.ProblemFilter) squirrel.SelectBuilder {
	q := base
	if filter.MinDifficulty > 0 {
		q = q.Where(squirrel.GtOrEq{"difficulty": filter.MinDifficulty})
	}
	if filter.MaxDifficulty > 0 {
		q = q.Where(squirrel.LtOrEq{"difficulty": filter.MaxDifficulty})
	}
	if len(filter.Topics) > 0 {
		q = q.Where(squirrel.Eq{"topic": filter.Topics})
	}
	if len(filter.ExcludeIDs) > 0 {
		q = q.Where(squirrel.NotEq{"id": filter.ExcludeIDs})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.Like{"title": like},
			squirrel.Like{"keywords": like},
		})
	}
	return q
}

func (r *problemRepository) Find(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("finding problems: difficulty=%d-%d, topics=%v, excluded=%d, limit=%d",
		filter.MinDifficulty, filter.MaxDifficulty, filter.Topics, len(filter.ExcludeIDs), filter.Limit)

	query := filterQuery(sqlBuilder.Select(
		"id", "title", "content", "solution", "difficulty", "topic",
		"subtopic", "estimated_time", "keywords", "created_at",
	).From("problems"), filter)

	if filter.Randomize {
		query = query.OrderBy("RANDOM()")
	} else {
		query = query.OrderBy("id ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build problem query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query problems: %v", err)
		return nil, err
	}
	defer rows.Close()

	var problems []models.Problem
	for rows.Next() {
		p, err := scanProblem(ctx, rows.Scan)
		if err != nil {
			log.Error("failed to scan problem row: %v", err)
			return nil, err
		}
		problems = append(problems, *p)
	}
	log.Debug("found %d problems", len(problems))
	return problems, rows.Err()
}

func (r *problemRepository) Count(ctx context.Context, filter models.ProblemFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")

	query := filterQuery(sqlBuilder.Select("COUNT(*)").From("problems"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count problems: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *problemRepository) Insert(ctx context.Context, p models.ProblemCreate) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("inserting problem: topic=%s, difficulty=%d", p.Topic, p.Difficulty)

	if p.Difficulty < 1 || p.Difficulty > 10 {
		return 0, fmt.Errorf("difficulty %d out of range 1-10", p.Difficulty)
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO problems (title, content, solution, difficulty, topic, subtopic, estimated_time, keywords)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, p.Title, p.Content, nullString(p.Solution), p.Difficulty, p.Topic, nullString(p.Subtopic), nullInt(p.EstimatedTime), encodeList(p.Keywords))
	if err != nil {
		log.Error("failed to insert problem: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("problem inserted: id=%d", id)
	return id, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: i != 0}
}
