package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/ynckz/devops-simulator/internal/game"
	"github.com/ynckz/devops-simulator/internal/middleware"
	"github.com/ynckz/devops-simulator/internal/models"
	"github.com/ynckz/devops-simulator/internal/redis"
)

type PlayerHandler struct {
	engine *game.Engine
	cache  *redis.Client
}

func NewPlayerHandler(engine *game.Engine, cache *redis.Client) *PlayerHandler {
	return &PlayerHandler{engine: engine, cache: cache}
}

// CreatePlayerRequest represents the get-or-create request body
type CreatePlayerRequest struct {
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
}

// ProfileResponse bundles a player with their skills and rating position
type ProfileResponse struct {
	Player *models.Player `json:"player"`
	Skills []models.Skill `json:"skills"`
	Rank   int64          `json:"rank,omitempty"`
}

// CreateOrGet returns the player's state, creating the default state and
// starter skills on first contact.
func (h *PlayerHandler) CreateOrGet(w http.ResponseWriter, r *http.Request) {
	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlayerID <= 0 || strings.TrimSpace(req.Username) == "" {
		writeError(w, http.StatusBadRequest, "player_id and username are required")
		return
	}

	player, err := h.engine.GetOrCreatePlayer(r.Context(), req.PlayerID, strings.TrimSpace(req.Username))
	if err != nil {
		writeGameError(w, "Player", err)
		return
	}

	if claims, ok := middleware.GetGatewayClaims(r); ok {
		log.Printf("[Player] Gateway %s onboarded player %d", claims.GatewayID, player.ID)
	}

	syncRating(r.Context(), h.cache, player, "Player")
	writeJSON(w, http.StatusOK, player)
}

// Profile returns the player together with all skills and their rank.
func (h *PlayerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	player, skills, err := h.engine.GetProfile(r.Context(), playerID)
	if err != nil {
		writeGameError(w, "Player", err)
		return
	}

	resp := ProfileResponse{Player: player, Skills: skills}
	if rank, err := h.cache.Rank(r.Context(), playerID); err == nil {
		resp.Rank = rank
	}
	writeJSON(w, http.StatusOK, resp)
}
