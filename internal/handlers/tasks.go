package handlers

import (
	"net/http"
	"strconv"

	"github.com/ynckz/devops-simulator/internal/game"
	"github.com/ynckz/devops-simulator/internal/models"
	"github.com/ynckz/devops-simulator/internal/redis"
)

type TaskHandler struct {
	engine *game.Engine
	cache  *redis.Client
}

func NewTaskHandler(engine *game.Engine, cache *redis.Client) *TaskHandler {
	return &TaskHandler{engine: engine, cache: cache}
}

// TasksResponse represents the daily task list
type TasksResponse struct {
	Tasks []models.DailyTask `json:"tasks"`
}

// List returns today's objectives, generating a fresh set when none exist.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	tasks, err := h.engine.EnsureTodayTasks(r.Context(), playerID)
	if err != nil {
		writeGameError(w, "Tasks", err)
		return
	}

	writeJSON(w, http.StatusOK, TasksResponse{Tasks: tasks})
}

// Claim pays out a completed task exactly once.
func (h *TaskHandler) Claim(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid player id")
		return
	}
	taskID, err := strconv.ParseInt(r.PathValue("task_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	outcome, err := h.engine.ClaimTask(r.Context(), playerID, taskID)
	if err != nil {
		writeGameError(w, "Tasks", err)
		return
	}

	syncRating(r.Context(), h.cache, outcome.Player, "Tasks")
	writeJSON(w, http.StatusOK, outcome)
}
