package game

import (
	"context"

	"github.com/ynckz/devops-simulator/internal/models"
)

// Store is the persistence surface the engine drives. Implementations must
// return ErrPlayerNotFound / ErrSkillNotFound / ErrTaskNotFound for missing
// rows so the engine can surface them as recoverable outcomes.
type Store interface {
	GetPlayer(ctx context.Context, id int64) (*models.Player, error)
	CreatePlayer(ctx context.Context, p *models.Player) error
	UpdatePlayer(ctx context.Context, p *models.Player) error

	ListSkills(ctx context.Context, playerID int64) ([]models.Skill, error)
	GetSkill(ctx context.Context, playerID int64, name string) (*models.Skill, error)
	CreateSkills(ctx context.Context, skills []models.Skill) error
	UpdateSkill(ctx context.Context, sk *models.Skill) error

	ListTasksByDate(ctx context.Context, playerID int64, date string) ([]models.DailyTask, error)
	ListOpenTasks(ctx context.Context, playerID int64, taskType string) ([]models.DailyTask, error)
	GetTask(ctx context.Context, playerID, taskID int64) (*models.DailyTask, error)
	CreateTask(ctx context.Context, t *models.DailyTask) error
	UpdateTask(ctx context.Context, t *models.DailyTask) error
	DeleteTasks(ctx context.Context, playerID int64) error

	TopPlayers(ctx context.Context, limit int) ([]models.Player, error)

	// Transact runs fn against a store view whose writes are applied as one
	// atomic unit: all persisted on nil return, none on error. Nested calls
	// join the enclosing transaction.
	Transact(ctx context.Context, fn func(Store) error) error
}
