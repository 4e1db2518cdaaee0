package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/sukalov/lyricplayer/internal/utils"
)

const (
	playsKey      = "lyricplayer:plays"
	lastPlayedKey = "lyricplayer:last_played"
)

// PlayStats is how often a song was played and when last.
type PlayStats struct {
	SongID     string
	Count      int
	LastPlayed time.Time
}

// DBManager records play statistics in Redis hashes keyed by song ID.
type DBManager struct {
	client *redisClient.Client
}

// NewDBManager connects using REDIS_URL and REDIS_PASSWORD.
func NewDBManager() (*DBManager, error) {
	env, err := utils.LoadEnv([]string{"REDIS_URL", "REDIS_PASSWORD"})
	if err != nil {
		return nil, fmt.Errorf("failed to load redis env: %w", err)
	}
	opt, err := redisClient.ParseURL(fmt.Sprintf("rediss://default:%s@%s", env["REDIS_PASSWORD"], env["REDIS_URL"]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return NewWithClient(redisClient.NewClient(opt)), nil
}

func NewWithClient(client *redisClient.Client) *DBManager {
	return &DBManager{client: client}
}

// RecordPlay bumps the play counter for songID and stamps the play time.
func (redis *DBManager) RecordPlay(ctx context.Context, songID string, at time.Time) error {
	pipe := redis.client.TxPipeline()
	pipe.HIncrBy(ctx, playsKey, songID, 1)
	pipe.HSet(ctx, lastPlayedKey, songID, at.UTC().Format(time.RFC3339))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record play of song %s: %w", songID, err)
	}
	return nil
}

// GetPlayStats returns statistics for every song that was played at least
// once.
func (redis *DBManager) GetPlayStats(ctx context.Context) (map[string]PlayStats, error) {
	result := make(map[string]PlayStats)

	counts, err := redis.client.HGetAll(ctx, playsKey).Result()
	if err != nil {
		if err == redisClient.Nil {
			return result, nil
		}
		return nil, err
	}
	lastPlayed, err := redis.client.HGetAll(ctx, lastPlayedKey).Result()
	if err != nil && err != redisClient.Nil {
		return nil, err
	}

	return mergeStats(counts, lastPlayed), nil
}

func (redis *DBManager) Close() error {
	return redis.client.Close()
}

func mergeStats(counts, lastPlayed map[string]string) map[string]PlayStats {
	result := make(map[string]PlayStats, len(counts))
	for songID, count := range counts {
		countInt, err := strconv.Atoi(count)
		if err != nil {
			continue // skip invalid counts
		}
		stats := PlayStats{SongID: songID, Count: countInt}
		if ts, ok := lastPlayed[songID]; ok {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				stats.LastPlayed = t
			}
		}
		result[songID] = stats
	}
	return result
}
