package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

const leaderboardKey = "leaderboard:wins"

// LeaderboardRepository tallies wins per seat name ("Player 1", ...). Seats are shared by
// every table, so an entry counts the games won from that seat, not by one person.
type LeaderboardRepository interface {
	RecordWin(ctx context.Context, names ...string) error
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type dbLeaderboard struct {
	client *redis.Client
}

func NewLeaderboardRepository(client *redis.Client) LeaderboardRepository {
	return &dbLeaderboard{
		client: client,
	}
}

func (that *dbLeaderboard) RecordWin(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}

	_, err := that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, name := range names {
			pipe.ZIncrBy(ctx, leaderboardKey, 1, name)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}

	return nil
}

func (that *dbLeaderboard) Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 {
		return []entity.LeaderboardEntry{}, nil
	}

	members, err := that.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]entity.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		name, _ := member.Member.(string)
		entries = append(entries, entity.LeaderboardEntry{
			Name: name,
			Wins: int(member.Score),
		})
	}

	return entries, nil
}
