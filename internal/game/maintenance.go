package game

import (
	"context"
	"math"

	"github.com/ynckz/devops-simulator/internal/models"
)

// RepairOutcome reports a repair attempt. When Success is false the player
// could not afford it; Cost carries the required amount for display and no
// state was changed.
type RepairOutcome struct {
	Success   bool           `json:"success"`
	Health    float64        `json:"health"`
	Cost      int            `json:"cost"`
	Repaired  float64        `json:"repaired"`
	ExpGained int            `json:"exp_gained"`
	LeveledUp bool           `json:"leveled_up"`
	Player    *models.Player `json:"player,omitempty"`
}

// Repair restores server health by up to requestedPercent, bounded by the
// current deficit. Negative requests repair nothing. Cost scales with the
// repaired amount and the fleet size.
func (e *Engine) Repair(ctx context.Context, playerID int64, requestedPercent int) (*RepairOutcome, error) {
	requestedPercent = maxInt(0, requestedPercent)

	var out *RepairOutcome
	err := e.store.Transact(ctx, func(s Store) error {
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		actual := math.Min(float64(requestedPercent), 100-player.ServerHealth)
		cost := int(actual * float64(player.Servers) * 5)

		if player.Money < cost {
			out = &RepairOutcome{Health: player.ServerHealth, Cost: cost}
			return nil
		}

		player.ServerHealth = math.Min(100, player.ServerHealth+actual)
		player.Money -= cost

		expGain := int(actual / 2)
		leveledUp := false
		if expGain > 0 {
			leveledUp = grantExperience(player, expGain)
		}
		player.LastActivity = e.now()
		if err := s.UpdatePlayer(ctx, player); err != nil {
			return err
		}
		if repaired := int(actual); repaired > 0 {
			if _, err := recordProgress(ctx, s, playerID, models.TaskRepairServers, repaired); err != nil {
				return err
			}
		}
		out = &RepairOutcome{
			Success:   true,
			Health:    player.ServerHealth,
			Cost:      cost,
			Repaired:  actual,
			ExpGained: expGain,
			LeveledUp: leveledUp,
			Player:    player,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecreaseHealth lowers server health unconditionally, flooring at 0, and
// returns the new value. Incident failures and crises use applyHealthLoss
// inside their own transactions; this entry point serves periodic decay.
func (e *Engine) DecreaseHealth(ctx context.Context, playerID int64, amount float64) (float64, error) {
	var health float64
	err := e.store.Transact(ctx, func(s Store) error {
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		applyHealthLoss(player, amount)
		if err := s.UpdatePlayer(ctx, player); err != nil {
			return err
		}
		health = player.ServerHealth
		return nil
	})
	return health, err
}

func applyHealthLoss(p *models.Player, amount float64) {
	p.ServerHealth = math.Max(0, p.ServerHealth-amount)
}
