package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/foxseedlab/quizwadidaw/internal/repository"
)

type Entry struct {
	UserID string
	Score  int
}

// Board keeps the persisted leaderboard in memory and writes it back through
// the repository after every fold.
type Board struct {
	repo repository.ScoreRepository

	// saveMu serializes snapshot-and-save so writes reach the store in fold order.
	saveMu sync.Mutex

	mu     sync.Mutex
	scores repository.Scores
}

func NewBoard(repo repository.ScoreRepository) *Board {
	return &Board{
		repo:   repo,
		scores: make(repository.Scores),
	}
}

// Load replaces the in-memory copy with the stored scores. An unreadable
// store is treated as having no prior scores.
func (b *Board) Load(ctx context.Context) {
	scores, err := b.repo.Load(ctx)
	if err != nil {
		slog.Warn("failed to load scores; starting with an empty leaderboard", "error", err)
		scores = make(repository.Scores)
	}
	if scores == nil {
		scores = make(repository.Scores)
	}
	b.mu.Lock()
	b.scores = scores
	b.mu.Unlock()
	slog.Info("leaderboard loaded", "groups", len(scores))
}

// Fold adds one finished session's totals to the group and persists the
// result. A failed save is retried once, then reported; the in-memory
// totals are kept either way.
func (b *Board) Fold(ctx context.Context, groupID string, deltas map[string]int) error {
	b.saveMu.Lock()
	defer b.saveMu.Unlock()

	b.mu.Lock()
	b.scores.Add(groupID, deltas)
	snapshot := b.scores.Clone()
	b.mu.Unlock()

	err := b.repo.Save(ctx, snapshot)
	if err == nil {
		return nil
	}
	slog.Warn("failed to save scores; retrying once", "error", err, "group_id", groupID)
	if err := b.repo.Save(ctx, snapshot); err != nil {
		slog.Error("failed to save scores; dropping write", "error", err, "group_id", groupID)
		return fmt.Errorf("save scores: %w", err)
	}
	return nil
}

func (b *Board) UserScore(groupID, userID string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	score, ok := b.scores[groupID][userID]
	return score, ok
}

// Ranking lists a group's members by score, highest first. Equal scores are
// ordered by user ID.
func (b *Board) Ranking(groupID string) []Entry {
	b.mu.Lock()
	users := b.scores[groupID]
	entries := make([]Entry, 0, len(users))
	for user, score := range users {
		entries = append(entries, Entry{UserID: user, Score: score})
	}
	b.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}
