package game

import (
	"context"
	"errors"
	"math"

	"github.com/ynckz/devops-simulator/internal/models"
)

// maxSuccessChance caps incident resolution odds no matter how high the
// governing skill grows.
const maxSuccessChance = 0.95

// GenerateIncident picks, uniformly at random, a catalog incident whose
// difficulty lies within one level of the player's. Returns nil when the
// catalog has nothing in that band; the caller tells the player no incident
// is available.
func (e *Engine) GenerateIncident(ctx context.Context, playerID int64) (*models.Incident, error) {
	player, err := e.store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	minDiff := player.Level - 1
	if minDiff < 1 {
		minDiff = 1
	}
	band := models.IncidentsInBand(minDiff, player.Level+1)
	if len(band) == 0 {
		return nil, nil
	}
	return band[e.dice.Intn(len(band))], nil
}

// IncidentOutcome reports one incident resolution. Reward is negative when a
// penalty was applied.
type IncidentOutcome struct {
	Success   bool           `json:"success"`
	TimedOut  bool           `json:"timed_out"`
	Reward    int            `json:"reward"`
	ExpGained int            `json:"exp_gained"`
	LeveledUp bool           `json:"leveled_up"`
	Player    *models.Player `json:"player"`
}

// successChance is the probability a solution works for a player with the
// given governing-skill level. Monotonically non-decreasing in skill level.
func successChance(base float64, skillLevel int) float64 {
	return math.Min(maxSuccessChance, base+0.05*float64(skillLevel-1))
}

// ResolveIncident resolves a chosen solution against the incident's success
// odds and applies the reward or penalty atomically. elapsed is the number of
// seconds since the incident was issued.
func (e *Engine) ResolveIncident(ctx context.Context, playerID int64, incidentID int, solutionKey string, elapsed float64) (*IncidentOutcome, error) {
	incident := models.IncidentByID(incidentID)
	if incident == nil {
		return nil, ErrIncidentNotFound
	}
	solution, ok := incident.Solutions[solutionKey]
	if !ok {
		return nil, ErrInvalidSolution
	}

	var out *IncidentOutcome
	err := e.store.Transact(ctx, func(s Store) error {
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		// Past the deadline the incident is lost outright: half the base
		// reward forfeited, no experience.
		if incident.TimeLimit > 0 && elapsed > float64(incident.TimeLimit) {
			penalty := incident.Reward / 2
			player.Money = maxInt(0, player.Money-penalty)
			player.LastActivity = e.now()
			if err := s.UpdatePlayer(ctx, player); err != nil {
				return err
			}
			out = &IncidentOutcome{TimedOut: true, Reward: -penalty, Player: player}
			return nil
		}

		skillLevel := 1
		if sk, err := s.GetSkill(ctx, playerID, solution.Skill); err == nil {
			skillLevel = sk.Level
		} else if !errors.Is(err, ErrSkillNotFound) {
			return err
		}

		if e.dice.Float64() < successChance(solution.SuccessRate, skillLevel) {
			serverBonus := 1 + 0.1*float64(player.Servers-1)
			timeModifier := 1.0
			if incident.TimeLimit > 0 {
				timeModifier = math.Max(0.5, 1.5-elapsed/float64(incident.TimeLimit))
			}
			reward := int(float64(incident.Reward) * timeModifier * serverBonus)
			expGain := int(float64(incident.Difficulty) * 20 * timeModifier)

			player.Money += reward
			leveledUp := grantExperience(player, expGain)
			player.SuccessfulFixes++
			player.Reputation = minInt(100, player.Reputation+2)
			player.LastActivity = e.now()
			if err := s.UpdatePlayer(ctx, player); err != nil {
				return err
			}
			if _, err := recordProgress(ctx, s, playerID, models.TaskSolveIncidents, 1); err != nil {
				return err
			}
			out = &IncidentOutcome{Success: true, Reward: reward, ExpGained: expGain, LeveledUp: leveledUp, Player: player}
			return nil
		}

		// Failed fix: partial penalty, consolation experience, and the
		// botched attempt wears the servers down.
		penalty := incident.Reward / 4
		expGain := incident.Difficulty * 5
		player.Money = maxInt(0, player.Money-penalty)
		leveledUp := grantExperience(player, expGain)
		player.FailedFixes++
		player.Reputation = maxInt(0, player.Reputation-5)
		applyHealthLoss(player, 5.0)
		player.LastActivity = e.now()
		if err := s.UpdatePlayer(ctx, player); err != nil {
			return err
		}
		out = &IncidentOutcome{Reward: -penalty, ExpGained: expGain, LeveledUp: leveledUp, Player: player}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
