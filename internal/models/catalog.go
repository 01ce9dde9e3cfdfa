package models

// Solution is one way to tackle an incident. The governing skill raises the
// base success rate by 5% per level above 1.
type Solution struct {
	Name        string  `json:"name"`
	SuccessRate float64 `json:"success_rate"`
	Skill       string  `json:"skill"`
}

// Incident is an immutable catalog template, never mutated per player.
type Incident struct {
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Difficulty  int                 `json:"difficulty"`
	Reward      int                 `json:"reward"`
	Solutions   map[string]Solution `json:"solutions"`
	TimeLimit   int                 `json:"time_limit"` // seconds, 0 = unlimited
}

// Crisis is an immutable catalog template for a random adverse event.
type Crisis struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Severity       int    `json:"severity"`
	ServerDamage   int    `json:"server_damage"`
	MoneyLoss      int    `json:"money_loss"`
	ReputationLoss int    `json:"reputation_loss"`
}

// Incidents is the full incident catalog, loaded once at startup.
var Incidents = []Incident{
	{
		ID:          1,
		Name:        "Server Down",
		Description: "A production server suddenly stopped responding to requests.",
		Difficulty:  1,
		Reward:      100,
		TimeLimit:   60,
		Solutions: map[string]Solution{
			"restart": {Name: "Restart the service", SuccessRate: 0.9, Skill: SkillLinux},
			"logs":    {Name: "Dig through the logs first", SuccessRate: 0.7, Skill: SkillMonitoring},
		},
	},
	{
		ID:          2,
		Name:        "Memory Leak",
		Description: "An application is slowly eating all available memory.",
		Difficulty:  2,
		Reward:      200,
		TimeLimit:   120,
		Solutions: map[string]Solution{
			"profile":   {Name: "Profile the process", SuccessRate: 0.75, Skill: SkillMonitoring},
			"container": {Name: "Rebuild the container with limits", SuccessRate: 0.7, Skill: SkillDocker},
			"rolling":   {Name: "Schedule rolling restarts", SuccessRate: 0.6, Skill: SkillCICD},
		},
	},
	{
		ID:          3,
		Name:        "DDoS Attack",
		Description: "Your servers are being flooded with junk traffic.",
		Difficulty:  3,
		Reward:      400,
		TimeLimit:   90,
		Solutions: map[string]Solution{
			"ratelimit": {Name: "Enable rate limiting", SuccessRate: 0.7, Skill: SkillNetworking},
			"nullroute": {Name: "Null-route the attacking ranges", SuccessRate: 0.6, Skill: SkillNetworking},
			"scaleout":  {Name: "Scale out behind the load balancer", SuccessRate: 0.65, Skill: SkillDocker},
		},
	},
	{
		ID:          4,
		Name:        "Corrupted Database",
		Description: "The primary database is corrupted and needs recovery.",
		Difficulty:  4,
		Reward:      600,
		TimeLimit:   180,
		Solutions: map[string]Solution{
			"restore":  {Name: "Restore from last backup", SuccessRate: 0.7, Skill: SkillLinux},
			"repair":   {Name: "Repair tables in place", SuccessRate: 0.55, Skill: SkillLinux},
			"failover": {Name: "Fail over to the replica", SuccessRate: 0.65, Skill: SkillCICD},
		},
	},
	{
		ID:          5,
		Name:        "Security Breach",
		Description: "Someone got inside. Nobody knows how deep it goes yet.",
		Difficulty:  5,
		Reward:      1000,
		TimeLimit:   0,
		Solutions: map[string]Solution{
			"rotate":  {Name: "Rotate every credential", SuccessRate: 0.6, Skill: SkillCICD},
			"isolate": {Name: "Isolate the affected hosts", SuccessRate: 0.55, Skill: SkillNetworking},
			"audit":   {Name: "Audit the access logs", SuccessRate: 0.5, Skill: SkillMonitoring},
		},
	},
}

// Crises is the full crisis catalog, loaded once at startup.
var Crises = []Crisis{
	{
		ID:             1,
		Name:           "Power Outage",
		Description:    "A sudden power outage took down part of the datacenter.",
		Severity:       3,
		ServerDamage:   15,
		MoneyLoss:      300,
		ReputationLoss: 5,
	},
	{
		ID:             2,
		Name:           "Massive Hacker Attack",
		Description:    "Your systems are under a large-scale coordinated attack.",
		Severity:       4,
		ServerDamage:   25,
		MoneyLoss:      600,
		ReputationLoss: 10,
	},
	{
		ID:             3,
		Name:           "Cooling System Failure",
		Description:    "The server room cooling failed and hardware is overheating.",
		Severity:       3,
		ServerDamage:   20,
		MoneyLoss:      400,
		ReputationLoss: 7,
	},
	{
		ID:             4,
		Name:           "Botched Update",
		Description:    "The latest automatic update shipped with a critical bug.",
		Severity:       2,
		ServerDamage:   10,
		MoneyLoss:      200,
		ReputationLoss: 3,
	},
	{
		ID:             5,
		Name:           "Natural Disaster",
		Description:    "A natural disaster disrupted operations at one of your sites.",
		Severity:       5,
		ServerDamage:   35,
		MoneyLoss:      800,
		ReputationLoss: 15,
	},
}

// IncidentByID looks up a catalog incident. Returns nil if absent.
func IncidentByID(id int) *Incident {
	for i := range Incidents {
		if Incidents[i].ID == id {
			return &Incidents[i]
		}
	}
	return nil
}

// IncidentsInBand returns catalog incidents with difficulty in [min, max].
func IncidentsInBand(min, max int) []*Incident {
	var out []*Incident
	for i := range Incidents {
		if d := Incidents[i].Difficulty; d >= min && d <= max {
			out = append(out, &Incidents[i])
		}
	}
	return out
}
