package game

import "errors"

// Recoverable outcome errors. Handlers map these to HTTP statuses; none of
// them aborts a session and every failure path leaves prior state unchanged.
var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrSkillNotFound    = errors.New("skill not found")
	ErrIncidentNotFound = errors.New("incident not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidSolution  = errors.New("unknown solution for this incident")
	ErrTaskNotCompleted = errors.New("task is not completed yet")
	ErrTaskClaimed      = errors.New("task reward already claimed")
)
