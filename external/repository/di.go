package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/foxseedlab/quizwadidaw/internal/config"
	"github.com/foxseedlab/quizwadidaw/internal/leaderboard"
	"github.com/foxseedlab/quizwadidaw/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
)

const databaseInitTimeout = 15 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (repository.ScoreRepository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		switch cfg.ScoreBackend {
		case config.ScoreBackendPostgres:
			return newPostgres(cfg.DatabaseURL)
		case config.ScoreBackendRedis:
			return newRedis(cfg.RedisURL)
		default:
			return NewFileRepository(cfg.ScoreFilePath), nil
		}
	})
	do.Provide(injector, func(i do.Injector) (*leaderboard.Board, error) {
		repo := do.MustInvoke[repository.ScoreRepository](i)
		board := leaderboard.NewBoard(repo)

		ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
		defer cancel()
		board.Load(ctx)
		return board, nil
	})
}

func newPostgres(databaseURL string) (repository.ScoreRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
	defer cancel()

	p, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := RunMigration(ctx, p); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to run migration: %w", err)
	}
	return NewPostgresRepository(p), nil
}

func newRedis(redisURL string) (repository.ScoreRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRedisRepository(client), nil
}
