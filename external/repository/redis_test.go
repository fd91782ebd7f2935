package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/foxseedlab/quizwadidaw/internal/repository"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, repository.ScoreRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisRepository(client)
}

func TestRedisRepository_SaveThenLoad(t *testing.T) {
	mr, repo := newTestRedis(t)
	ctx := context.Background()

	if err := repo.Save(ctx, repository.Scores{
		"g1": {"a": 31, "b": 19},
		"g2": {"a": 2},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mr.HGet("quiz:scores:g1", "a"); got != "31" {
		t.Fatalf("expected hash field 31, got %q", got)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got["g1"]["b"] != 19 || got["g2"]["a"] != 2 {
		t.Fatalf("unexpected scores: %v", got)
	}
}

func TestRedisRepository_SaveReplacesRemovedGroups(t *testing.T) {
	mr, repo := newTestRedis(t)
	ctx := context.Background()

	_ = repo.Save(ctx, repository.Scores{"g1": {"a": 1}, "g2": {"b": 2}})
	if err := repo.Save(ctx, repository.Scores{"g2": {"b": 5}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.Exists("quiz:scores:g1") {
		t.Fatal("expected stale group hash to be deleted")
	}
	got, _ := repo.Load(ctx)
	if len(got) != 1 || got["g2"]["b"] != 5 {
		t.Fatalf("unexpected scores: %v", got)
	}
}

func TestRedisRepository_RejectsNonNumericScore(t *testing.T) {
	mr, repo := newTestRedis(t)
	mr.HSet("quiz:scores:g1", "a", "lots")
	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRedisRepository_ShutdownClosesClient(t *testing.T) {
	_, repo := newTestRedis(t)
	redisRepo := repo.(*RedisRepository)

	if err := redisRepo.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := redisRepo.client.Ping(context.Background()).Err(); err == nil {
		t.Fatal("expected a closed client to reject commands")
	}
}
