// Package game implements the simulation core: incident and crisis
// resolution, progression, maintenance, daily tasks and the shop. All state
// mutations for one operation run inside a single store transaction.
package game

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/ynckz/devops-simulator/internal/models"
)

// Dice is the randomness the engine consumes. *rand.Rand satisfies it; tests
// substitute fixed draws.
type Dice interface {
	Float64() float64
	Intn(n int) int
}

// Engine resolves game actions against persistent player state.
type Engine struct {
	store Store
	dice  Dice
	now   func() time.Time
}

// New returns an engine backed by store, seeded with wall-clock randomness.
func New(store Store) *Engine {
	return &Engine{
		store: store,
		dice:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// GetOrCreatePlayer loads a player, creating the default state and starter
// skills on first contact.
func (e *Engine) GetOrCreatePlayer(ctx context.Context, id int64, username string) (*models.Player, error) {
	var player *models.Player
	err := e.store.Transact(ctx, func(s Store) error {
		p, err := s.GetPlayer(ctx, id)
		if err == nil {
			player = p
			return nil
		}
		if !errors.Is(err, ErrPlayerNotFound) {
			return err
		}
		p = models.NewPlayer(id, username, e.now())
		if err := s.CreatePlayer(ctx, p); err != nil {
			return err
		}
		if err := s.CreateSkills(ctx, models.StarterSkills(id)); err != nil {
			return err
		}
		player = p
		return nil
	})
	return player, err
}

// GetProfile returns a player together with all their skills.
func (e *Engine) GetProfile(ctx context.Context, id int64) (*models.Player, []models.Skill, error) {
	player, err := e.store.GetPlayer(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	skills, err := e.store.ListSkills(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return player, skills, nil
}

// LeaderboardEntry is one row of the rating, ordered best first.
type LeaderboardEntry struct {
	Rank            int     `json:"rank"`
	PlayerID        int64   `json:"player_id"`
	Username        string  `json:"username"`
	Level           int     `json:"level"`
	Experience      int     `json:"experience"`
	SuccessfulFixes int     `json:"successful_fixes"`
	ServerHealth    float64 `json:"server_health"`
}

// Leaderboard returns the top players sorted by level desc, experience desc.
func (e *Engine) Leaderboard(ctx context.Context, topN int) ([]LeaderboardEntry, error) {
	players, err := e.store.TopPlayers(ctx, topN)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, newLeaderboardEntry(len(entries)+1, &p))
	}
	return entries, nil
}

// LeaderboardForIDs builds rating entries for an already-ordered id list,
// as produced by the Redis rating index. Ids with no stored player are
// skipped; the index may briefly lag the database.
func (e *Engine) LeaderboardForIDs(ctx context.Context, ids []int64) ([]LeaderboardEntry, error) {
	entries := make([]LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		p, err := e.store.GetPlayer(ctx, id)
		if errors.Is(err, ErrPlayerNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, newLeaderboardEntry(len(entries)+1, p))
	}
	return entries, nil
}

func newLeaderboardEntry(rank int, p *models.Player) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:            rank,
		PlayerID:        p.ID,
		Username:        p.Username,
		Level:           p.Level,
		Experience:      p.Experience,
		SuccessfulFixes: p.SuccessfulFixes,
		ServerHealth:    p.ServerHealth,
	}
}
