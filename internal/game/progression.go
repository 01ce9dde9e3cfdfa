package game

import "github.com/ynckz/devops-simulator/internal/models"

// Experience needed to leave the current level.
func nextLevelExp(level int) int {
	return 100 * level
}

// grantExperience adds exp to the player and applies at most one level-up per
// grant: a single large grant that overshoots several thresholds still raises
// the level only once, and the surplus carries toward the next grant.
// Returns whether the player leveled up.
func grantExperience(p *models.Player, amount int) bool {
	p.Experience += amount
	if p.Experience >= nextLevelExp(p.Level) {
		p.Level++
		return true
	}
	return false
}
