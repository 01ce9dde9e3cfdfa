package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/ynckz/devops-simulator/internal/game"
	"github.com/ynckz/devops-simulator/internal/models"
	"github.com/ynckz/devops-simulator/internal/redis"
)

// How long an issued incident stays resolvable. Long enough that a player
// who blows the time limit still gets the timeout penalty applied instead of
// the incident silently vanishing.
const activeIncidentTTL = time.Hour

type IncidentHandler struct {
	engine *game.Engine
	cache  *redis.Client
}

func NewIncidentHandler(engine *game.Engine, cache *redis.Client) *IncidentHandler {
	return &IncidentHandler{engine: engine, cache: cache}
}

// IssueResponse carries a freshly issued incident and any crisis that fired
// during this check cycle. Incident is null when the catalog has nothing for
// the player's level.
type IssueResponse struct {
	Incident *models.Incident    `json:"incident"`
	IssuedAt time.Time           `json:"issued_at,omitempty"`
	Crisis   *game.CrisisOutcome `json:"crisis,omitempty"`
	Message  string              `json:"message,omitempty"`
}

// Issue rolls the crisis check for this cycle, then generates an incident for
// the player's level and opens its resolution window.
func (h *IncidentHandler) Issue(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	// The crisis roll happens on every incident request, whether or not an
	// incident is available or gets resolved.
	crisis, err := h.engine.MaybeTriggerCrisis(r.Context(), playerID)
	if err != nil {
		writeGameError(w, "Incident", err)
		return
	}
	if crisis != nil && !crisis.Prevented {
		syncRating(r.Context(), h.cache, crisis.Player, "Incident")
	}

	incident, err := h.engine.GenerateIncident(r.Context(), playerID)
	if err != nil {
		writeGameError(w, "Incident", err)
		return
	}

	resp := IssueResponse{Incident: incident, Crisis: crisis}
	if incident == nil {
		resp.Message = "No incidents available right now. Try again later."
		writeJSON(w, http.StatusOK, resp)
		return
	}

	issuedAt := time.Now()
	session := &redis.ActiveIncident{IncidentID: incident.ID, IssuedAt: issuedAt}
	if err := h.cache.SetActiveIncident(r.Context(), playerID, session, activeIncidentTTL); err != nil {
		log.Printf("[Incident] Failed to open incident session: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to issue incident")
		return
	}

	resp.IssuedAt = issuedAt
	writeJSON(w, http.StatusOK, resp)
}

// ResolveRequest represents the resolution request body
type ResolveRequest struct {
	IncidentID int    `json:"incident_id"`
	Solution   string `json:"solution"`
}

// Resolve applies the chosen solution to the player's in-flight incident.
// Elapsed time is measured from the issue timestamp recorded server-side.
func (h *IncidentHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathPlayerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.cache.GetActiveIncident(r.Context(), playerID)
	if errors.Is(err, redis.ErrNoActiveIncident) {
		writeError(w, http.StatusNotFound, "No active incident. Request a new one first.")
		return
	}
	if err != nil {
		log.Printf("[Incident] Failed to load incident session: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to resolve incident")
		return
	}
	if session.IncidentID != req.IncidentID {
		writeError(w, http.StatusConflict, "This incident is no longer active")
		return
	}

	elapsed := time.Since(session.IssuedAt).Seconds()
	outcome, err := h.engine.ResolveIncident(r.Context(), playerID, req.IncidentID, req.Solution, elapsed)
	if err != nil {
		writeGameError(w, "Incident", err)
		return
	}

	if err := h.cache.ClearActiveIncident(r.Context(), playerID); err != nil {
		log.Printf("[Incident] Failed to clear incident session: %v", err)
	}
	syncRating(r.Context(), h.cache, outcome.Player, "Incident")
	writeJSON(w, http.StatusOK, outcome)
}
