package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/ynckz/devops-simulator/internal/game"
	"github.com/ynckz/devops-simulator/internal/redis"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

type LeaderboardHandler struct {
	engine *game.Engine
	cache  *redis.Client
}

func NewLeaderboardHandler(engine *game.Engine, cache *redis.Client) *LeaderboardHandler {
	return &LeaderboardHandler{engine: engine, cache: cache}
}

// LeaderboardResponse represents the rating listing
type LeaderboardResponse struct {
	Entries []game.LeaderboardEntry `json:"entries"`
}

// Top returns the best engineers ordered by level, then experience. The
// Redis rating index supplies the ordering when available; Postgres serves
// the same ordering when the index is empty or unreachable.
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n > maxLeaderboardSize {
			n = maxLeaderboardSize
		}
		limit = n
	}

	if ids, err := h.cache.TopPlayerIDs(r.Context(), limit); err == nil && len(ids) > 0 {
		entries, err := h.engine.LeaderboardForIDs(r.Context(), ids)
		if err == nil {
			writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
			return
		}
		log.Printf("[Leaderboard] Failed to hydrate rating index entries: %v", err)
	} else if err != nil {
		log.Printf("[Leaderboard] Rating index unavailable, using database: %v", err)
	}

	entries, err := h.engine.Leaderboard(r.Context(), limit)
	if err != nil {
		writeGameError(w, "Leaderboard", err)
		return
	}

	writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
}
