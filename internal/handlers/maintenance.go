package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ynckz/devops-simulator/internal/game"
	"github.com/ynckz/devops-simulator/internal/redis"
)

type MaintenanceHandler struct {
	engine *game.Engine
	cache  *redis.Client
}

func NewMaintenanceHandler(engine *game.Engine, cache *redis.Client) *MaintenanceHandler {
	return &MaintenanceHandler{engine: engine, cache: cache}
}

// RepairRequest represents the repair request body
type RepairRequest struct {
	Percent int `json:"percent"`
}

// Repair restores server health. An unaffordable repair is a normal game
// outcome (success false plus the required cost), not an HTTP error, so the
// bot can re-prompt with the price.
func (h *MaintenanceHandler) Repair(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	var req RepairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Percent < 1 || req.Percent > 100 {
		writeError(w, http.StatusBadRequest, "percent must be between 1 and 100")
		return
	}

	outcome, err := h.engine.Repair(r.Context(), playerID, req.Percent)
	if err != nil {
		writeGameError(w, "Maintenance", err)
		return
	}

	if outcome.Success {
		syncRating(r.Context(), h.cache, outcome.Player, "Maintenance")
	}
	writeJSON(w, http.StatusOK, outcome)
}
