package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ynckz/devops-simulator/internal/game"
	"github.com/ynckz/devops-simulator/internal/redis"
)

type ShopHandler struct {
	engine *game.Engine
	cache  *redis.Client
}

func NewShopHandler(engine *game.Engine, cache *redis.Client) *ShopHandler {
	return &ShopHandler{engine: engine, cache: cache}
}

// BuyServer purchases the next server. Insufficient funds comes back as a
// game outcome carrying the required cost.
func (h *ShopHandler) BuyServer(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	outcome, err := h.engine.BuyServer(r.Context(), playerID)
	if err != nil {
		writeGameError(w, "Shop", err)
		return
	}

	if outcome.Success {
		syncRating(r.Context(), h.cache, outcome.Player, "Shop")
	}
	writeJSON(w, http.StatusOK, outcome)
}

// UpgradeSkillRequest represents the skill upgrade request body
type UpgradeSkillRequest struct {
	Skill string `json:"skill"`
}

// UpgradeSkill raises one skill by a level.
func (h *ShopHandler) UpgradeSkill(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	var req UpgradeSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Skill == "" {
		writeError(w, http.StatusBadRequest, "skill is required")
		return
	}

	outcome, err := h.engine.UpgradeSkill(r.Context(), playerID, req.Skill)
	if err != nil {
		writeGameError(w, "Shop", err)
		return
	}

	if outcome.Success {
		syncRating(r.Context(), h.cache, outcome.Player, "Shop")
	}
	writeJSON(w, http.StatusOK, outcome)
}
