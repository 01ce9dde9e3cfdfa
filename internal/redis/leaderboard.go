package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ynckz/devops-simulator/internal/models"
)

// The rating index keeps a composite score per player so a single sorted set
// orders by level first and experience second. Experience stays far below the
// level stride in practice (a level-up triggers at 100 x level).
const (
	leaderboardKey = "leaderboard:engineers"
	levelStride    = 1_000_000
)

// CompositeScore folds level and experience into one sortable value.
func CompositeScore(level, experience int) float64 {
	return float64(level*levelStride + experience)
}

// SyncPlayer refreshes the player's position in the rating index. Called
// best-effort after every stat-changing action; Postgres stays authoritative.
func (c *Client) SyncPlayer(ctx context.Context, p *models.Player) error {
	err := c.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  CompositeScore(p.Level, p.Experience),
		Member: fmt.Sprintf("%d", p.ID),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to sync player rating: %w", err)
	}
	return nil
}

// Rank returns the player's 1-based position in the rating index.
func (c *Client) Rank(ctx context.Context, playerID int64) (int64, error) {
	rank, err := c.ZRevRank(ctx, leaderboardKey, fmt.Sprintf("%d", playerID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get player rank: %w", err)
	}
	return rank + 1, nil
}

// TopPlayerIDs returns the best-rated player ids, best first. An empty
// result means the index has not been populated yet.
func (c *Client) TopPlayerIDs(ctx context.Context, limit int) ([]int64, error) {
	members, err := c.ZRevRange(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read rating index: %w", err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt rating member %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
