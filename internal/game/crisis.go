package game

import (
	"context"
	"errors"

	"github.com/ynckz/devops-simulator/internal/models"
)

// CrisisOutcome reports a triggered crisis. When Prevented is true no state
// was changed.
type CrisisOutcome struct {
	Crisis    *models.Crisis `json:"crisis"`
	Prevented bool           `json:"prevented"`
	Player    *models.Player `json:"player,omitempty"`
}

// MaybeTriggerCrisis rolls a state-dependent adverse event. It is invoked
// once per incident-check cycle, independent of whether an incident resolves.
// The trigger chance grows with server decay, up to 30% at zero health.
// Returns nil when no crisis fires this cycle.
func (e *Engine) MaybeTriggerCrisis(ctx context.Context, playerID int64) (*CrisisOutcome, error) {
	var out *CrisisOutcome
	err := e.store.Transact(ctx, func(s Store) error {
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		chance := (100 - player.ServerHealth) / 100 * 0.3
		if e.dice.Float64() >= chance {
			return nil
		}

		crisis := e.pickCrisis(player.ServerHealth)

		// Reputation and the Monitoring skill both improve prevention odds.
		// The chance is unclamped; near reputation 100 it approaches 0.5
		// plus the skill bonus.
		prevention := float64(player.Reputation) / 200
		if sk, err := s.GetSkill(ctx, playerID, models.SkillMonitoring); err == nil {
			prevention += 0.05 * float64(sk.Level)
		} else if !errors.Is(err, ErrSkillNotFound) {
			return err
		}

		if e.dice.Float64() < prevention {
			out = &CrisisOutcome{Crisis: crisis, Prevented: true}
			return nil
		}

		player.Money = maxInt(0, player.Money-crisis.MoneyLoss)
		player.Reputation = maxInt(0, player.Reputation-crisis.ReputationLoss)
		applyHealthLoss(player, float64(crisis.ServerDamage))
		if err := s.UpdatePlayer(ctx, player); err != nil {
			return err
		}
		out = &CrisisOutcome{Crisis: crisis, Player: player}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// pickCrisis draws one catalog crisis from a severity-weighted pool. Low
// server health skews the draw toward the severe entries. Weights are coarse
// x10 integers summed cumulatively, so no repeated pool entries are built.
func (e *Engine) pickCrisis(serverHealth float64) *models.Crisis {
	healthFactor := (100 - serverHealth) / 100
	weights := make([]int, len(models.Crises))
	total := 0
	for i := range models.Crises {
		w := int((1 + float64(models.Crises[i].Severity)/5*healthFactor*2) * 10)
		weights[i] = w
		total += w
	}
	draw := e.dice.Intn(total)
	for i, w := range weights {
		if draw < w {
			return &models.Crises[i]
		}
		draw -= w
	}
	return &models.Crises[len(models.Crises)-1]
}
