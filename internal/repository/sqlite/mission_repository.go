package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dabin/mathmission/internal/db"
	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
	"github.com/dabin/mathmission/internal/repository"
)

type missionRepository struct {
	db *sql.DB
}

// NewMissionRepository creates a new MissionRepository implementation
func NewMissionRepository(db *sql.DB) repository.MissionRepository {
	return &missionRepository{db: db}
}

const missionColumns = "id, user_id, name, description, status, total_problems, completed_problems, target_score, actual_score, start_time, end_time, created_at"

func scanMission(scan func(...any) error) (*models.Mission, error) {
	var m models.Mission
	var description sql.NullString
	var actualScore sql.NullInt64
	var startTime, endTime sql.NullTime
	if err := scan(&m.ID, &m.UserID, &m.Name, &description, &m.Status, &m.TotalProblems,
		&m.CompletedProblems, &m.TargetScore, &actualScore, &startTime, &endTime, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Description = description.String
	if actualScore.Valid {
		v := int(actualScore.Int64)
		m.ActualScore = &v
	}
	if startTime.Valid {
		m.StartTime = &startTime.Time
	}
	if endTime.Valid {
		m.EndTime = &endTime.Time
	}
	return &m, nil
}

func (r *missionRepository) Get(ctx context.Context, id int64) (*models.Mission, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")

	row := r.db.QueryRowContext(ctx, `SELECT `+missionColumns+` FROM missions WHERE id = ?`, id)
	m, err := scanMission(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("mission not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get mission: %v", err)
		return nil, err
	}
	return m, nil
}

func (r *missionRepository) GetWithProblems(ctx context.Context, id int64) (*models.Mission, error) {
	m, err := r.Get(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	problems, err := r.Problems(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Problems = problems
	return m, nil
}

func (r *missionRepository) Current(ctx context.Context, userID int64) (*models.Mission, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")
	log.Debug("fetching current mission: user_id=%d", userID)

	row := r.db.QueryRowContext(ctx, `
SELECT `+missionColumns+`
FROM missions
WHERE user_id = ? AND status IN ('pending', 'in_progress')
ORDER BY created_at DESC
LIMIT 1
`, userID)
	m, err := scanMission(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no open mission: user_id=%d", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get current mission: %v", err)
		return nil, err
	}

	problems, err := r.Problems(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Problems = problems
	return m, nil
}

func (r *missionRepository) OpenMissionID(ctx context.Context, userID int64, day time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")

	// created_at defaults to CURRENT_TIMESTAMP, which SQLite records in
	// UTC, so the caller's day must be compared in UTC as well.
	var id int64
	err := r.db.QueryRowContext(ctx, `
SELECT id FROM missions
WHERE user_id = ? AND date(created_at) = ? AND status != 'completed'
`, userID, day.UTC().Format("2006-01-02")).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		log.Error("failed to check open mission: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *missionRepository) Create(ctx context.Context, m models.Mission, problemIDs []int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")
	log.Debug("creating mission: user_id=%d, problems=%d", m.UserID, len(problemIDs))

	// The mission row and its ordered problem rows land atomically.
	var missionID int64
	err := db.Tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO missions (user_id, name, description, status, total_problems, target_score)
VALUES (?, ?, ?, 'pending', ?, ?)
`, m.UserID, m.Name, nullString(m.Description), len(problemIDs), m.TargetScore)
		if err != nil {
			log.Error("failed to insert mission: %v", err)
			return err
		}
		if missionID, err = res.LastInsertId(); err != nil {
			return err
		}

		for i, problemID := range problemIDs {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO mission_problems (mission_id, problem_id, sequence_order)
VALUES (?, ?, ?)
`, missionID, problemID, i+1); err != nil {
				log.Error("failed to insert mission problem: %v", err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Debug("mission created: id=%d", missionID)
	return missionID, nil
}

func (r *missionRepository) Start(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")

	res, err := r.db.ExecContext(ctx, `
UPDATE missions
SET status = 'in_progress', start_time = CURRENT_TIMESTAMP
WHERE id = ? AND status = 'pending'
`, id)
	if err != nil {
		log.Error("failed to start mission: %v", err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *missionRepository) MarkProblemCompleted(ctx context.Context, missionID, problemID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")
	log.Debug("marking problem completed: mission_id=%d, problem_id=%d", missionID, problemID)

	if _, err := r.db.ExecContext(ctx, `
UPDATE mission_problems
SET is_completed = TRUE, completed_at = CURRENT_TIMESTAMP
WHERE mission_id = ? AND problem_id = ?
`, missionID, problemID); err != nil {
		log.Error("failed to mark mission problem completed: %v", err)
		return 0, err
	}

	// Recount instead of incrementing so repeated or concurrent calls
	// self-heal rather than corrupt the counter.
	if _, err := r.db.ExecContext(ctx, `
UPDATE missions
SET completed_problems = (
    SELECT COUNT(*) FROM mission_problems
    WHERE mission_id = ? AND is_completed = TRUE
)
WHERE id = ?
`, missionID, missionID); err != nil {
		log.Error("failed to recount completed problems: %v", err)
		return 0, err
	}

	var completed int
	if err := r.db.QueryRowContext(ctx, `SELECT completed_problems FROM missions WHERE id = ?`, missionID).Scan(&completed); err != nil {
		return 0, err
	}
	return completed, nil
}

func (r *missionRepository) Complete(ctx context.Context, id int64, actualScore int) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")

	res, err := r.db.ExecContext(ctx, `
UPDATE missions
SET status = 'completed', end_time = CURRENT_TIMESTAMP, actual_score = ?
WHERE id = ? AND status != 'completed'
`, actualScore, id)
	if err != nil {
		log.Error("failed to complete mission: %v", err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		log.Info("mission completed: id=%d, score=%d", id, actualScore)
	}
	return affected > 0, nil
}

func (r *missionRepository) NextProblem(ctx context.Context, missionID int64) (*models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT p.id, p.title, p.content, p.solution, p.difficulty, p.topic, p.subtopic, p.estimated_time, p.keywords, p.created_at
FROM problems p
JOIN mission_problems mp ON p.id = mp.problem_id
WHERE mp.mission_id = ? AND mp.is_completed = FALSE
ORDER BY mp.sequence_order
LIMIT 1
`, missionID)
	p, err := scanProblem(ctx, row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get next problem: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *missionRepository) Problems(ctx context.Context, missionID int64) ([]models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT p.id, p.title, p.content, p.solution, p.difficulty, p.topic, p.subtopic, p.estimated_time, p.keywords, p.created_at
FROM problems p
JOIN mission_problems mp ON p.id = mp.problem_id
WHERE mp.mission_id = ?
ORDER BY mp.sequence_order
`, missionID)
	if err != nil {
		log.Error("failed to query mission problems: %v", err)
		return nil, err
	}
	defer rows.Close()

	var problems []models.Problem
	for rows.Next() {
		p, err := scanProblem(ctx, rows.Scan)
		if err != nil {
			log.Error("failed to scan mission problem row: %v", err)
			return nil, err
		}
		problems = append(problems, *p)
	}
	return problems, rows.Err()
}

func (r *missionRepository) MissionProblems(ctx context.Context, missionID int64) ([]models.MissionProblem, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, mission_id, problem_id, sequence_order, is_completed, completed_at
FROM mission_problems
WHERE mission_id = ?
ORDER BY sequence_order
`, missionID)
	if err != nil {
		log.Error("failed to query mission problem rows: %v", err)
		return nil, err
	}
	defer rows.Close()

	var links []models.MissionProblem
	for rows.Next() {
		var mp models.MissionProblem
		var completedAt sql.NullTime
		if err := rows.Scan(&mp.ID, &mp.MissionID, &mp.ProblemID, &mp.SequenceOrder, &mp.IsCompleted, &completedAt); err != nil {
			log.Error("failed to scan mission problem link: %v", err)
			return nil, err
		}
		if completedAt.Valid {
			mp.CompletedAt = &completedAt.Time
		}
		links = append(links, mp)
	}
	return links, rows.Err()
}

func (r *missionRepository) AverageAnswerScore(ctx context.Context, missionID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("mission_repo")

	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
SELECT AVG(a.score)
FROM answers a
JOIN mission_problems mp ON a.problem_id = mp.problem_id AND a.mission_id = mp.mission_id
WHERE mp.mission_id = ? AND a.score IS NOT NULL
`, missionID).Scan(&avg)
	if err != nil {
		log.Error("failed to average mission answers: %v", err)
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return int(avg.Float64), nil
}
