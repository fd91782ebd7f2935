package repository

import "context"

// ScoreRepository persists the cross-session leaderboard. Save rewrites the
// whole mapping; the last writer wins.
type ScoreRepository interface {
	Load(ctx context.Context) (Scores, error)
	Save(ctx context.Context, scores Scores) error
}
