package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ynckz/devops-simulator/internal/game"
	"github.com/ynckz/devops-simulator/internal/models"
)

// Store implements game.Store on top of PostgreSQL. All query methods live on
// the embedded queries type so that the pool-backed store and the
// transaction-backed view share one implementation.
type Store struct {
	queries
	db *DB
}

// NewStore wraps a database connection as the engine's persistence layer.
func NewStore(db *DB) *Store {
	return &Store{queries: queries{db.DB}, db: db}
}

// Transact runs fn in a single database transaction, rolling back on any
// error or panic.
func (s *Store) Transact(ctx context.Context, fn func(game.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txStore{queries{tx}}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore is the transaction-scoped view handed to Transact callbacks.
type txStore struct {
	queries
}

// Transact on an open transaction joins it rather than nesting.
func (t *txStore) Transact(ctx context.Context, fn func(game.Store) error) error {
	return fn(t)
}

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	r runner
}

const playerColumns = `id, username, level, experience, money, servers, server_health,
	reputation, successful_fixes, failed_fixes, last_activity, created_at`

func scanPlayer(row *sql.Row) (*models.Player, error) {
	var p models.Player
	err := row.Scan(
		&p.ID, &p.Username, &p.Level, &p.Experience, &p.Money, &p.Servers,
		&p.ServerHealth, &p.Reputation, &p.SuccessfulFixes, &p.FailedFixes,
		&p.LastActivity, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, game.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}

func (q queries) GetPlayer(ctx context.Context, id int64) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return scanPlayer(q.r.QueryRowContext(ctx, query, id))
}

func (q queries) CreatePlayer(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (id, username, level, experience, money, servers, server_health,
			reputation, successful_fixes, failed_fixes, last_activity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := q.r.ExecContext(ctx, query,
		p.ID, p.Username, p.Level, p.Experience, p.Money, p.Servers, p.ServerHealth,
		p.Reputation, p.SuccessfulFixes, p.FailedFixes, p.LastActivity, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (q queries) UpdatePlayer(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players
		SET username = $2, level = $3, experience = $4, money = $5, servers = $6,
			server_health = $7, reputation = $8, successful_fixes = $9,
			failed_fixes = $10, last_activity = $11
		WHERE id = $1
	`
	res, err := q.r.ExecContext(ctx, query,
		p.ID, p.Username, p.Level, p.Experience, p.Money, p.Servers, p.ServerHealth,
		p.Reputation, p.SuccessfulFixes, p.FailedFixes, p.LastActivity,
	)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return game.ErrPlayerNotFound
	}
	return nil
}

func (q queries) ListSkills(ctx context.Context, playerID int64) ([]models.Skill, error) {
	query := `SELECT id, player_id, skill_name, skill_level FROM skills WHERE player_id = $1 ORDER BY id`
	rows, err := q.r.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var skills []models.Skill
	for rows.Next() {
		var sk models.Skill
		if err := rows.Scan(&sk.ID, &sk.PlayerID, &sk.Name, &sk.Level); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

func (q queries) GetSkill(ctx context.Context, playerID int64, name string) (*models.Skill, error) {
	query := `SELECT id, player_id, skill_name, skill_level FROM skills WHERE player_id = $1 AND skill_name = $2`
	var sk models.Skill
	err := q.r.QueryRowContext(ctx, query, playerID, name).Scan(&sk.ID, &sk.PlayerID, &sk.Name, &sk.Level)
	if err == sql.ErrNoRows {
		return nil, game.ErrSkillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan skill: %w", err)
	}
	return &sk, nil
}

func (q queries) CreateSkills(ctx context.Context, skills []models.Skill) error {
	query := `INSERT INTO skills (player_id, skill_name, skill_level) VALUES ($1, $2, $3)`
	for _, sk := range skills {
		if _, err := q.r.ExecContext(ctx, query, sk.PlayerID, sk.Name, sk.Level); err != nil {
			return fmt.Errorf("insert skill %s: %w", sk.Name, err)
		}
	}
	return nil
}

func (q queries) UpdateSkill(ctx context.Context, sk *models.Skill) error {
	query := `UPDATE skills SET skill_level = $3 WHERE player_id = $1 AND skill_name = $2`
	res, err := q.r.ExecContext(ctx, query, sk.PlayerID, sk.Name, sk.Level)
	if err != nil {
		return fmt.Errorf("update skill: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return game.ErrSkillNotFound
	}
	return nil
}

const taskColumns = `id, player_id, task_type, description, target_amount, current_amount,
	reward_money, reward_exp, completed, claimed, date_created`

func scanTasks(rows *sql.Rows) ([]models.DailyTask, error) {
	defer rows.Close()
	var tasks []models.DailyTask
	for rows.Next() {
		var t models.DailyTask
		err := rows.Scan(&t.ID, &t.PlayerID, &t.Type, &t.Description, &t.TargetAmount,
			&t.CurrentAmount, &t.RewardMoney, &t.RewardExp, &t.Completed, &t.Claimed, &t.DateCreated)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (q queries) ListTasksByDate(ctx context.Context, playerID int64, date string) ([]models.DailyTask, error) {
	query := `SELECT ` + taskColumns + ` FROM daily_tasks WHERE player_id = $1 AND date_created = $2 ORDER BY id`
	rows, err := q.r.QueryContext(ctx, query, playerID, date)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return scanTasks(rows)
}

func (q queries) ListOpenTasks(ctx context.Context, playerID int64, taskType string) ([]models.DailyTask, error) {
	query := `SELECT ` + taskColumns + ` FROM daily_tasks
		WHERE player_id = $1 AND task_type = $2 AND completed = FALSE ORDER BY id`
	rows, err := q.r.QueryContext(ctx, query, playerID, taskType)
	if err != nil {
		return nil, fmt.Errorf("list open tasks: %w", err)
	}
	return scanTasks(rows)
}

func (q queries) GetTask(ctx context.Context, playerID, taskID int64) (*models.DailyTask, error) {
	query := `SELECT ` + taskColumns + ` FROM daily_tasks WHERE id = $1 AND player_id = $2`
	var t models.DailyTask
	err := q.r.QueryRowContext(ctx, query, taskID, playerID).Scan(
		&t.ID, &t.PlayerID, &t.Type, &t.Description, &t.TargetAmount,
		&t.CurrentAmount, &t.RewardMoney, &t.RewardExp, &t.Completed, &t.Claimed, &t.DateCreated,
	)
	if err == sql.ErrNoRows {
		return nil, game.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}

func (q queries) CreateTask(ctx context.Context, t *models.DailyTask) error {
	query := `
		INSERT INTO daily_tasks (player_id, task_type, description, target_amount,
			current_amount, reward_money, reward_exp, completed, claimed, date_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := q.r.QueryRowContext(ctx, query,
		t.PlayerID, t.Type, t.Description, t.TargetAmount, t.CurrentAmount,
		t.RewardMoney, t.RewardExp, t.Completed, t.Claimed, t.DateCreated,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (q queries) UpdateTask(ctx context.Context, t *models.DailyTask) error {
	query := `UPDATE daily_tasks SET current_amount = $2, completed = $3, claimed = $4 WHERE id = $1`
	res, err := q.r.ExecContext(ctx, query, t.ID, t.CurrentAmount, t.Completed, t.Claimed)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return game.ErrTaskNotFound
	}
	return nil
}

func (q queries) DeleteTasks(ctx context.Context, playerID int64) error {
	if _, err := q.r.ExecContext(ctx, `DELETE FROM daily_tasks WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}

func (q queries) TopPlayers(ctx context.Context, limit int) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY level DESC, experience DESC LIMIT $1`
	rows, err := q.r.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		err := rows.Scan(&p.ID, &p.Username, &p.Level, &p.Experience, &p.Money, &p.Servers,
			&p.ServerHealth, &p.Reputation, &p.SuccessfulFixes, &p.FailedFixes,
			&p.LastActivity, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
