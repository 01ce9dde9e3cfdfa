package game

import (
	"context"
	"errors"
	"testing"

	"github.com/ynckz/devops-simulator/internal/models"
)

// brokenSkillStore simulates an infrastructure failure on skill lookups.
type brokenSkillStore struct {
	*memStore
	skillErr error
}

func (b *brokenSkillStore) GetSkill(ctx context.Context, playerID int64, name string) (*models.Skill, error) {
	return nil, b.skillErr
}

func (b *brokenSkillStore) Transact(ctx context.Context, fn func(Store) error) error {
	return fn(b)
}

func TestMaybeTriggerCrisisSkillLookupFailure(t *testing.T) {
	m := newMemStore()
	p := seedPlayer(t, m, 1)
	p.ServerHealth = 40
	m.UpdatePlayer(context.Background(), p)

	skillErr := errors.New("connection reset")
	broken := &brokenSkillStore{memStore: m, skillErr: skillErr}

	// Trigger draw passes, then the Monitoring lookup blows up. The failure
	// must surface instead of silently pricing prevention without the bonus.
	e := newTestEngine(broken, &fixedDice{floats: []float64{0.0}, ints: []int{0}})
	if _, err := e.MaybeTriggerCrisis(context.Background(), 1); !errors.Is(err, skillErr) {
		t.Fatalf("err = %v, want the lookup failure", err)
	}
}

func TestMaybeTriggerCrisisNeverAtFullHealth(t *testing.T) {
	m := newMemStore()
	seedPlayer(t, m, 1)
	// Even the luckiest draw cannot fire a crisis at 100% health.
	e := newTestEngine(m, &fixedDice{floats: []float64{0.0}})

	out, err := e.MaybeTriggerCrisis(context.Background(), 1)
	if err != nil {
		t.Fatalf("MaybeTriggerCrisis: %v", err)
	}
	if out != nil {
		t.Fatalf("expected no crisis at full health, got %+v", out)
	}
}

func TestMaybeTriggerCrisisAppliesDamage(t *testing.T) {
	m := newMemStore()
	p := seedPlayer(t, m, 1)
	p.ServerHealth = 40 // 18% trigger chance
	m.UpdatePlayer(context.Background(), p)

	// Draws: trigger roll, weighted pool pick, failed prevention roll.
	e := newTestEngine(m, &fixedDice{floats: []float64{0.0, 0.999}, ints: []int{0}})

	out, err := e.MaybeTriggerCrisis(context.Background(), 1)
	if err != nil {
		t.Fatalf("MaybeTriggerCrisis: %v", err)
	}
	if out == nil || out.Prevented {
		t.Fatalf("expected an unprevented crisis, got %+v", out)
	}

	crisis := out.Crisis
	after, _ := m.GetPlayer(context.Background(), 1)
	if after.Money != 1000-crisis.MoneyLoss {
		t.Fatalf("money = %d, want %d", after.Money, 1000-crisis.MoneyLoss)
	}
	if after.Reputation != 50-crisis.ReputationLoss {
		t.Fatalf("reputation = %d, want %d", after.Reputation, 50-crisis.ReputationLoss)
	}
	if after.ServerHealth != 40-float64(crisis.ServerDamage) {
		t.Fatalf("health = %v, want %v", after.ServerHealth, 40-float64(crisis.ServerDamage))
	}
}

func TestMaybeTriggerCrisisPreventedLeavesStateAlone(t *testing.T) {
	m := newMemStore()
	p := seedPlayer(t, m, 1)
	p.ServerHealth = 20
	m.UpdatePlayer(context.Background(), p)

	// Reputation 50 and Monitoring 1 give prevention 0.25 + 0.05 = 0.30.
	e := newTestEngine(m, &fixedDice{floats: []float64{0.0, 0.29}, ints: []int{0}})

	out, err := e.MaybeTriggerCrisis(context.Background(), 1)
	if err != nil {
		t.Fatalf("MaybeTriggerCrisis: %v", err)
	}
	if out == nil || !out.Prevented {
		t.Fatalf("expected a prevented crisis, got %+v", out)
	}

	after, _ := m.GetPlayer(context.Background(), 1)
	if after.Money != 1000 || after.Reputation != 50 || after.ServerHealth != 20 {
		t.Fatalf("prevented crisis mutated state: %+v", after)
	}
}

func TestMaybeTriggerCrisisDamageFloorsAtZero(t *testing.T) {
	m := newMemStore()
	p := seedPlayer(t, m, 1)
	p.ServerHealth = 5
	p.Money = 100
	p.Reputation = 2
	m.UpdatePlayer(context.Background(), p)

	// Every catalog crisis costs more money, reputation and health than this
	// player has left; all three must floor at zero.
	e := newTestEngine(m, &fixedDice{floats: []float64{0.0, 0.999}, ints: []int{0}})

	out, err := e.MaybeTriggerCrisis(context.Background(), 1)
	if err != nil {
		t.Fatalf("MaybeTriggerCrisis: %v", err)
	}
	if out == nil || out.Prevented {
		t.Fatalf("expected damage, got %+v", out)
	}

	after, _ := m.GetPlayer(context.Background(), 1)
	if after.Money != 0 {
		t.Fatalf("money = %d, want 0", after.Money)
	}
	if after.Reputation != 0 {
		t.Fatalf("reputation = %d, want 0", after.Reputation)
	}
	if after.ServerHealth != 0 {
		t.Fatalf("health = %v, want 0", after.ServerHealth)
	}
}

func TestPickCrisisWeighting(t *testing.T) {
	e := newTestEngine(newMemStore(), &fixedDice{ints: []int{0}})

	// At full health every weight is 10; a zero draw lands on the first entry.
	if c := e.pickCrisis(100); c.ID != models.Crises[0].ID {
		t.Fatalf("zero draw picked %d, want first entry", c.ID)
	}

	// At zero health weights are 10*(1 + 2*severity/5): entry weights grow
	// with severity, and the cumulative draw walks them in catalog order.
	weights := make([]int, len(models.Crises))
	total := 0
	for i, c := range models.Crises {
		weights[i] = int((1 + float64(c.Severity)/5*2) * 10)
		total += weights[i]
	}
	for i := range models.Crises {
		// Draw the last unit of each entry's weight band.
		cum := 0
		for j := 0; j <= i; j++ {
			cum += weights[j]
		}
		e.dice = &fixedDice{ints: []int{(cum - 1) % total}}
		if c := e.pickCrisis(0); c.ID != models.Crises[i].ID {
			t.Fatalf("draw %d picked crisis %d, want %d", cum-1, c.ID, models.Crises[i].ID)
		}
	}
}

func TestMaybeTriggerCrisisMonitoringHelps(t *testing.T) {
	m := newMemStore()
	p := seedPlayer(t, m, 1)
	p.ServerHealth = 20
	m.UpdatePlayer(context.Background(), p)
	sk, _ := m.GetSkill(context.Background(), 1, models.SkillMonitoring)
	sk.Level = 5
	m.UpdateSkill(context.Background(), sk)

	// Prevention = 50/200 + 0.05*5 = 0.50; a 0.45 draw is stopped now but
	// would not have been at Monitoring 1.
	e := newTestEngine(m, &fixedDice{floats: []float64{0.0, 0.45}, ints: []int{0}})
	out, err := e.MaybeTriggerCrisis(context.Background(), 1)
	if err != nil {
		t.Fatalf("MaybeTriggerCrisis: %v", err)
	}
	if out == nil || !out.Prevented {
		t.Fatalf("expected monitoring to prevent the crisis, got %+v", out)
	}
}
