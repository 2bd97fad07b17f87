// internal/cache/leaderboard.go
package cache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Nil when no REDIS_ADDR is configured; the
// leaderboard is then simply absent.
var Rdb *redis.Client

// leaderboardKey is the sorted set holding cumulative XP per player id.
const leaderboardKey = "fuseball:leaderboard:xp"

// Enabled reports whether a leaderboard backend is configured.
func Enabled() bool { return Rdb != nil }

// Connect initializes the client from REDIS_ADDR/REDIS_DB. Returns
// (false, nil) when REDIS_ADDR is unset.
func Connect(ctx context.Context) (bool, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return false, nil
	}
	dbIdx := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			dbIdx = v
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return false, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	Rdb = client
	return true, nil
}

// AddXP bumps a player's leaderboard score. Also stores the display name so
// the top query needs no profile lookup.
func AddXP(ctx context.Context, playerID int64, name string, xp int) error {
	member := strconv.FormatInt(playerID, 10)
	if err := Rdb.ZIncrBy(ctx, leaderboardKey, float64(xp), member).Err(); err != nil {
		return fmt.Errorf("failed to bump leaderboard: %w", err)
	}
	if err := Rdb.HSet(ctx, leaderboardKey+":names", member, name).Err(); err != nil {
		return fmt.Errorf("failed to store leaderboard name: %w", err)
	}
	return nil
}

// Entry is one leaderboard row.
type Entry struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	XP       int    `json:"xp"`
}

// Top returns the n highest-XP players, best first.
func Top(ctx context.Context, n int) ([]Entry, error) {
	zs, err := Rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	out := make([]Entry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		id, _ := strconv.ParseInt(member, 10, 64)
		name, _ := Rdb.HGet(ctx, leaderboardKey+":names", member).Result()
		out = append(out, Entry{PlayerID: id, Name: name, XP: int(z.Score)})
	}
	return out, nil
}
