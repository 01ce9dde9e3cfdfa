package game

import (
	"context"
	"fmt"
	"math"

	"github.com/ynckz/devops-simulator/internal/models"
)

const dateLayout = "2006-01-02"

// taskArchetype describes one daily-objective template. Target amounts are
// drawn from [MinTarget, MaxTarget]; for the incident archetype the upper
// bound also scales with the player's difficulty multiplier.
type taskArchetype struct {
	Type         string
	Description  string
	MinTarget    int
	MaxTarget    int
	MoneyPerUnit int
	ExpPerUnit   int
	ScaleTarget  bool
}

var taskArchetypes = []taskArchetype{
	{
		Type:         models.TaskSolveIncidents,
		Description:  "Solve incidents",
		MinTarget:    1,
		MaxTarget:    3,
		MoneyPerUnit: 100,
		ExpPerUnit:   20,
		ScaleTarget:  true,
	},
	{
		Type:         models.TaskUpgradeSkill,
		Description:  "Upgrade skills",
		MinTarget:    1,
		MaxTarget:    2,
		MoneyPerUnit: 200,
		ExpPerUnit:   30,
	},
	{
		Type:         models.TaskRepairServers,
		Description:  "Restore server health",
		MinTarget:    10,
		MaxTarget:    30,
		MoneyPerUnit: 10,
		ExpPerUnit:   2,
	},
}

// EnsureTodayTasks returns the player's objectives for the current date,
// generating a fresh set of 2-3 when none exist yet. Stale tasks from earlier
// days are dropped on regeneration.
func (e *Engine) EnsureTodayTasks(ctx context.Context, playerID int64) ([]models.DailyTask, error) {
	var tasks []models.DailyTask
	err := e.store.Transact(ctx, func(s Store) error {
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		today := e.now().Format(dateLayout)
		existing, err := s.ListTasksByDate(ctx, playerID, today)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			tasks = existing
			return nil
		}

		if err := s.DeleteTasks(ctx, playerID); err != nil {
			return err
		}

		multiplier := math.Max(1, float64(player.Level)/2)

		// Sample 2-3 archetypes without replacement.
		pool := make([]taskArchetype, len(taskArchetypes))
		copy(pool, taskArchetypes)
		count := 2 + e.dice.Intn(2)
		if count > len(pool) {
			count = len(pool)
		}

		for i := 0; i < count; i++ {
			j := e.dice.Intn(len(pool))
			a := pool[j]
			pool = append(pool[:j], pool[j+1:]...)

			maxTarget := a.MaxTarget
			if a.ScaleTarget {
				maxTarget += int(multiplier)
			}
			target := a.MinTarget + e.dice.Intn(maxTarget-a.MinTarget+1)

			task := models.DailyTask{
				PlayerID:     playerID,
				Type:         a.Type,
				Description:  fmt.Sprintf("%s (%d)", a.Description, target),
				TargetAmount: target,
				RewardMoney:  target * a.MoneyPerUnit * int(multiplier),
				RewardExp:    target * a.ExpPerUnit * int(multiplier),
				DateCreated:  today,
			}
			if err := s.CreateTask(ctx, &task); err != nil {
				return err
			}
			tasks = append(tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// recordProgress advances every incomplete task of the matching type, marking
// those that reach their target as completed. Returns false when no matching
// incomplete task exists. Runs inside the caller's transaction so task
// progress commits or rolls back together with the action that earned it.
func recordProgress(ctx context.Context, s Store, playerID int64, taskType string, amount int) (bool, error) {
	open, err := s.ListOpenTasks(ctx, playerID, taskType)
	if err != nil {
		return false, err
	}
	if len(open) == 0 {
		return false, nil
	}
	for i := range open {
		t := &open[i]
		t.CurrentAmount += amount
		if t.CurrentAmount >= t.TargetAmount {
			t.Completed = true
		}
		if err := s.UpdateTask(ctx, t); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ClaimOutcome reports a successful task claim.
type ClaimOutcome struct {
	MoneyAwarded int            `json:"money_awarded"`
	ExpAwarded   int            `json:"exp_awarded"`
	LeveledUp    bool           `json:"leveled_up"`
	Player       *models.Player `json:"player"`
}

// ClaimTask pays out a completed task exactly once. Fails with
// ErrTaskNotCompleted or ErrTaskClaimed when preconditions are unmet.
func (e *Engine) ClaimTask(ctx context.Context, playerID, taskID int64) (*ClaimOutcome, error) {
	var out *ClaimOutcome
	err := e.store.Transact(ctx, func(s Store) error {
		task, err := s.GetTask(ctx, playerID, taskID)
		if err != nil {
			return err
		}
		if !task.Completed {
			return ErrTaskNotCompleted
		}
		if task.Claimed {
			return ErrTaskClaimed
		}
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		task.Claimed = true
		if err := s.UpdateTask(ctx, task); err != nil {
			return err
		}

		player.Money += task.RewardMoney
		leveledUp := grantExperience(player, task.RewardExp)
		player.LastActivity = e.now()
		if err := s.UpdatePlayer(ctx, player); err != nil {
			return err
		}
		out = &ClaimOutcome{
			MoneyAwarded: task.RewardMoney,
			ExpAwarded:   task.RewardExp,
			LeveledUp:    leveledUp,
			Player:       player,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
