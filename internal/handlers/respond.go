package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/ynckz/devops-simulator/internal/game"
	"github.com/ynckz/devops-simulator/internal/models"
	"github.com/ynckz/devops-simulator/internal/redis"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeGameError maps the engine's recoverable errors to HTTP statuses.
// Anything unrecognized is an infrastructure failure.
func writeGameError(w http.ResponseWriter, tag string, err error) {
	switch {
	case errors.Is(err, game.ErrPlayerNotFound),
		errors.Is(err, game.ErrSkillNotFound),
		errors.Is(err, game.ErrIncidentNotFound),
		errors.Is(err, game.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidSolution):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrTaskNotCompleted),
		errors.Is(err, game.ErrTaskClaimed):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("[%s] Internal error: %v", tag, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathPlayerID parses the {id} path segment.
func pathPlayerID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// syncRating refreshes the Redis rating index after a stat change.
// Best-effort: the database stays authoritative, so failures only log.
func syncRating(ctx context.Context, cache *redis.Client, p *models.Player, tag string) {
	if p == nil {
		return
	}
	if err := cache.SyncPlayer(ctx, p); err != nil {
		log.Printf("[%s] Failed to sync rating for player %d: %v", tag, p.ID, err)
	}
}
