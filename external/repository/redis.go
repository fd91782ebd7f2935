package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/foxseedlab/quizwadidaw/internal/repository"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "quiz:scores:"
	redisScanCount = 100
)

// RedisRepository keeps one hash per group, field = user ID.
type RedisRepository struct {
	client redis.UniversalClient
}

func NewRedisRepository(client redis.UniversalClient) repository.ScoreRepository {
	return &RedisRepository{client: client}
}

// Shutdown closes the client when the injector shuts down.
func (r *RedisRepository) Shutdown() error {
	return r.client.Close()
}

func (r *RedisRepository) Load(ctx context.Context) (repository.Scores, error) {
	keys, err := r.groupKeys(ctx)
	if err != nil {
		return nil, err
	}
	scores := make(repository.Scores, len(keys))
	for _, key := range keys {
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("hgetall %s: %w", key, err)
		}
		users := make(map[string]int, len(fields))
		for userID, raw := range fields {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("score for %s in %s: %w", userID, key, err)
			}
			users[userID] = n
		}
		scores[strings.TrimPrefix(key, redisKeyPrefix)] = users
	}
	return scores, nil
}

// Save rewrites every group hash in one MULTI/EXEC block.
func (r *RedisRepository) Save(ctx context.Context, scores repository.Scores) error {
	existing, err := r.groupKeys(ctx)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(existing) > 0 {
			pipe.Del(ctx, existing...)
		}
		for groupID, users := range scores {
			if len(users) == 0 {
				continue
			}
			values := make(map[string]any, len(users))
			for userID, score := range users {
				values[userID] = score
			}
			pipe.HSet(ctx, redisKeyPrefix+groupID, values)
		}
		return nil
	})
	return err
}

func (r *RedisRepository) groupKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan score keys: %w", err)
	}
	return keys, nil
}
