package models

import "time"

// Player is a DevOps engineer's persistent game state.
type Player struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Level           int       `json:"level"`
	Experience      int       `json:"experience"`
	Money           int       `json:"money"`
	Servers         int       `json:"servers"`
	ServerHealth    float64   `json:"server_health"`
	Reputation      int       `json:"reputation"`
	SuccessfulFixes int       `json:"successful_fixes"`
	FailedFixes     int       `json:"failed_fixes"`
	LastActivity    time.Time `json:"last_activity"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewPlayer returns a player in the starting state: one server in perfect
// shape, enough money for a first purchase, neutral reputation.
func NewPlayer(id int64, username string, now time.Time) *Player {
	return &Player{
		ID:           id,
		Username:     username,
		Level:        1,
		Experience:   0,
		Money:        1000,
		Servers:      1,
		ServerHealth: 100,
		Reputation:   50,
		LastActivity: now,
		CreatedAt:    now,
	}
}

// Skill is one (player, skill) pair. Level starts at 1 and only ever grows.
type Skill struct {
	ID       int64  `json:"id"`
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
}

// Skill names seeded at player creation.
const (
	SkillLinux      = "Linux"
	SkillNetworking = "Networking"
	SkillDocker     = "Docker"
	SkillCICD       = "CI/CD"
	SkillMonitoring = "Monitoring"
)

// SkillNames lists every skill a player owns, in display order.
var SkillNames = []string{SkillLinux, SkillNetworking, SkillDocker, SkillCICD, SkillMonitoring}

// StarterSkills builds the level-1 skill rows for a new player.
func StarterSkills(playerID int64) []Skill {
	skills := make([]Skill, 0, len(SkillNames))
	for _, name := range SkillNames {
		skills = append(skills, Skill{PlayerID: playerID, Name: name, Level: 1})
	}
	return skills
}

// Daily task types. The generator only hands out the first three; buy_server
// progress is still recorded so purchases can count toward future archetypes.
const (
	TaskSolveIncidents = "solve_incidents"
	TaskUpgradeSkill   = "upgrade_skill"
	TaskBuyServer      = "buy_server"
	TaskRepairServers  = "repair_servers"
)

// DailyTask is a per-day objective for one player.
type DailyTask struct {
	ID            int64  `json:"id"`
	PlayerID      int64  `json:"player_id"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	TargetAmount  int    `json:"target_amount"`
	CurrentAmount int    `json:"current_amount"`
	RewardMoney   int    `json:"reward_money"`
	RewardExp     int    `json:"reward_exp"`
	Completed     bool   `json:"completed"`
	Claimed       bool   `json:"claimed"`
	DateCreated   string `json:"date_created"`
}
