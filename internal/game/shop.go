package game

import (
	"context"

	"github.com/ynckz/devops-simulator/internal/models"
)

// PurchaseOutcome reports a server purchase. When Success is false the cost
// field carries the price the player could not afford.
type PurchaseOutcome struct {
	Success bool           `json:"success"`
	Cost    int            `json:"cost"`
	Servers int            `json:"servers"`
	Player  *models.Player `json:"player,omitempty"`
}

// BuyServer adds a server to the fleet. Each server costs servers x 1000, so
// the price climbs with every purchase.
func (e *Engine) BuyServer(ctx context.Context, playerID int64) (*PurchaseOutcome, error) {
	var out *PurchaseOutcome
	err := e.store.Transact(ctx, func(s Store) error {
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		cost := player.Servers * 1000
		if player.Money < cost {
			out = &PurchaseOutcome{Cost: cost, Servers: player.Servers}
			return nil
		}

		player.Servers++
		player.Money -= cost
		player.LastActivity = e.now()
		if err := s.UpdatePlayer(ctx, player); err != nil {
			return err
		}
		if _, err := recordProgress(ctx, s, playerID, models.TaskBuyServer, 1); err != nil {
			return err
		}
		out = &PurchaseOutcome{Success: true, Cost: cost, Servers: player.Servers, Player: player}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpgradeOutcome reports a skill upgrade attempt.
type UpgradeOutcome struct {
	Success    bool           `json:"success"`
	Skill      string         `json:"skill"`
	SkillLevel int            `json:"skill_level"`
	Cost       int            `json:"cost"`
	Player     *models.Player `json:"player,omitempty"`
}

// UpgradeSkill raises a skill by one level for level x 200, deducted before
// the increment.
func (e *Engine) UpgradeSkill(ctx context.Context, playerID int64, skillName string) (*UpgradeOutcome, error) {
	var out *UpgradeOutcome
	err := e.store.Transact(ctx, func(s Store) error {
		skill, err := s.GetSkill(ctx, playerID, skillName)
		if err != nil {
			return err
		}
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		cost := skill.Level * 200
		if player.Money < cost {
			out = &UpgradeOutcome{Skill: skill.Name, SkillLevel: skill.Level, Cost: cost}
			return nil
		}

		player.Money -= cost
		skill.Level++
		if err := s.UpdateSkill(ctx, skill); err != nil {
			return err
		}
		player.LastActivity = e.now()
		if err := s.UpdatePlayer(ctx, player); err != nil {
			return err
		}
		if _, err := recordProgress(ctx, s, playerID, models.TaskUpgradeSkill, 1); err != nil {
			return err
		}
		out = &UpgradeOutcome{Success: true, Skill: skill.Name, SkillLevel: skill.Level, Cost: cost, Player: player}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
