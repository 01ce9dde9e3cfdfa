package game

import (
	"context"
	"errors"
	"testing"

	"github.com/ynckz/devops-simulator/internal/models"
)

func TestEnsureTodayTasksGenerates(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)

	// All draws land on zero: two tasks, first archetype each round,
	// minimum targets.
	e := newTestEngine(m, &fixedDice{})
	tasks, err := e.EnsureTodayTasks(context.Background(), 1)
	if err != nil {
		t.Fatalf("EnsureTodayTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Type != models.TaskSolveIncidents || tasks[0].TargetAmount != 1 {
		t.Fatalf("first task: %+v", tasks[0])
	}
	if tasks[0].RewardMoney != 100 || tasks[0].RewardExp != 20 {
		t.Fatalf("first task rewards: %+v", tasks[0])
	}
	if tasks[1].Type != models.TaskUpgradeSkill {
		t.Fatalf("second task: %+v", tasks[1])
	}
	if tasks[0].DateCreated != "2025-06-15" {
		t.Fatalf("date = %q", tasks[0].DateCreated)
	}
}

func TestEnsureTodayTasksCanGenerateThree(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)

	e := newTestEngine(m, &fixedDice{ints: []int{1}})
	tasks, err := e.EnsureTodayTasks(context.Background(), 1)
	if err != nil {
		t.Fatalf("EnsureTodayTasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	seen := map[string]bool{}
	for _, task := range tasks {
		if seen[task.Type] {
			t.Fatalf("archetype %q drawn twice", task.Type)
		}
		seen[task.Type] = true
	}
}

func TestEnsureTodayTasksIdempotentForTheDay(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)
	e := newTestEngine(m, &fixedDice{})

	first, err := e.EnsureTodayTasks(context.Background(), 1)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := e.EnsureTodayTasks(context.Background(), 1)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("regenerated: %d then %d tasks", len(first), len(second))
	}
	for i := range first {
		if second[i].ID != first[i].ID {
			t.Fatalf("task %d changed identity: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestEnsureTodayTasksDropsStaleTasks(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)
	m.CreateTask(context.Background(), &models.DailyTask{
		PlayerID:    1,
		Type:        models.TaskSolveIncidents,
		DateCreated: "2025-06-14",
	})

	e := newTestEngine(m, &fixedDice{})
	tasks, err := e.EnsureTodayTasks(context.Background(), 1)
	if err != nil {
		t.Fatalf("EnsureTodayTasks: %v", err)
	}
	for _, task := range tasks {
		if task.DateCreated != "2025-06-15" {
			t.Fatalf("stale task survived: %+v", task)
		}
	}
	all, _ := m.ListTasksByDate(context.Background(), 1, "2025-06-14")
	if len(all) != 0 {
		t.Fatalf("yesterday's tasks still stored: %d", len(all))
	}
}

func TestEnsureTodayTasksScalesRewardsWithLevel(t *testing.T) {
	m := newMemStore()
	p := seedPlayer(t, m, 1)
	p.Level = 8 // multiplier 4
	m.UpdatePlayer(context.Background(), p)

	e := newTestEngine(m, &fixedDice{})
	tasks, err := e.EnsureTodayTasks(context.Background(), 1)
	if err != nil {
		t.Fatalf("EnsureTodayTasks: %v", err)
	}
	first := tasks[0]
	if first.RewardMoney != first.TargetAmount*100*4 {
		t.Fatalf("reward %d not scaled by multiplier: %+v", first.RewardMoney, first)
	}
}

func TestRecordProgressPartial(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)
	m.CreateTask(context.Background(), &models.DailyTask{
		PlayerID:     1,
		Type:         models.TaskSolveIncidents,
		TargetAmount: 3,
		DateCreated:  "2025-06-15",
	})

	matched, err := recordProgress(context.Background(), m, 1, models.TaskSolveIncidents, 1)
	if err != nil {
		t.Fatalf("recordProgress: %v", err)
	}
	if !matched {
		t.Fatal("expected a matching open task")
	}
	task, _ := m.GetTask(context.Background(), 1, 1)
	if task.CurrentAmount != 1 || task.Completed {
		t.Fatalf("partial progress: %+v", task)
	}

	if _, err := recordProgress(context.Background(), m, 1, models.TaskSolveIncidents, 2); err != nil {
		t.Fatalf("recordProgress: %v", err)
	}
	task, _ = m.GetTask(context.Background(), 1, 1)
	if task.CurrentAmount != 3 || !task.Completed {
		t.Fatalf("completion not flagged at target: %+v", task)
	}
}

func TestRecordProgressNoMatchingTask(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)

	matched, err := recordProgress(context.Background(), m, 1, models.TaskBuyServer, 1)
	if err != nil {
		t.Fatalf("recordProgress: %v", err)
	}
	if matched {
		t.Fatal("matched with no tasks stored")
	}
}

func TestClaimTask(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)
	m.CreateTask(context.Background(), &models.DailyTask{
		PlayerID:      1,
		Type:          models.TaskSolveIncidents,
		TargetAmount:  2,
		CurrentAmount: 2,
		Completed:     true,
		RewardMoney:   300,
		RewardExp:     40,
		DateCreated:   "2025-06-15",
	})

	e := newTestEngine(m, &fixedDice{})
	out, err := e.ClaimTask(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("ClaimTask: %v", err)
	}
	if out.MoneyAwarded != 300 || out.ExpAwarded != 40 {
		t.Fatalf("awards: %+v", out)
	}

	after, _ := m.GetPlayer(context.Background(), 1)
	if after.Money != 1300 || after.Experience != 40 {
		t.Fatalf("money=%d exp=%d, want 1300 and 40", after.Money, after.Experience)
	}

	// A second claim must not pay again.
	if _, err := e.ClaimTask(context.Background(), 1, 1); !errors.Is(err, ErrTaskClaimed) {
		t.Fatalf("err = %v, want ErrTaskClaimed", err)
	}
	after, _ = m.GetPlayer(context.Background(), 1)
	if after.Money != 1300 {
		t.Fatalf("double claim paid again: money %d", after.Money)
	}
}

func TestClaimTaskNotCompleted(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)
	m.CreateTask(context.Background(), &models.DailyTask{
		PlayerID:     1,
		Type:         models.TaskRepairServers,
		TargetAmount: 20,
		DateCreated:  "2025-06-15",
	})

	e := newTestEngine(m, &fixedDice{})
	if _, err := e.ClaimTask(context.Background(), 1, 1); !errors.Is(err, ErrTaskNotCompleted) {
		t.Fatalf("err = %v, want ErrTaskNotCompleted", err)
	}
}

func TestClaimTaskUnknownID(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)

	e := newTestEngine(m, &fixedDice{})
	if _, err := e.ClaimTask(context.Background(), 1, 99); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}
