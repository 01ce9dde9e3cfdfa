package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoActiveIncident is returned when a player has no incident in flight.
var ErrNoActiveIncident = errors.New("no active incident for player")

// ActiveIncident records the incident currently issued to a player and when
// it was issued, so elapsed time is computed server-side at resolution. This
// replaces per-process in-memory tracking: any API instance can resolve the
// incident, and the record expires on its own if the player walks away.
type ActiveIncident struct {
	IncidentID int       `json:"incident_id"`
	IssuedAt   time.Time `json:"issued_at"`
}

func activeIncidentKey(playerID int64) string {
	return fmt.Sprintf("incident:active:%d", playerID)
}

// SetActiveIncident stores the player's in-flight incident with a TTL.
// Issuing a new incident overwrites any previous one.
func (c *Client) SetActiveIncident(ctx context.Context, playerID int64, session *ActiveIncident, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal active incident: %w", err)
	}
	if err := c.Set(ctx, activeIncidentKey(playerID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set active incident: %w", err)
	}
	return nil
}

// GetActiveIncident retrieves the player's in-flight incident.
func (c *Client) GetActiveIncident(ctx context.Context, playerID int64) (*ActiveIncident, error) {
	data, err := c.Get(ctx, activeIncidentKey(playerID)).Result()
	if err == redis.Nil {
		return nil, ErrNoActiveIncident
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active incident: %w", err)
	}
	var session ActiveIncident
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active incident: %w", err)
	}
	return &session, nil
}

// ClearActiveIncident removes the player's in-flight incident after
// resolution.
func (c *Client) ClearActiveIncident(ctx context.Context, playerID int64) error {
	if err := c.Del(ctx, activeIncidentKey(playerID)).Err(); err != nil {
		return fmt.Errorf("failed to clear active incident: %w", err)
	}
	return nil
}
