package leaderboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/foxseedlab/quizwadidaw/internal/repository"
	"golang.org/x/sync/errgroup"
)

type mockRepository struct {
	loaded    repository.Scores
	loadErr   error
	saveErrs  []error
	saveCalls []repository.Scores
}

func (m *mockRepository) Load(_ context.Context) (repository.Scores, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loaded, nil
}

func (m *mockRepository) Save(_ context.Context, scores repository.Scores) error {
	m.saveCalls = append(m.saveCalls, scores)
	if len(m.saveErrs) == 0 {
		return nil
	}
	err := m.saveErrs[0]
	m.saveErrs = m.saveErrs[1:]
	return err
}

func TestLoad_UnreadableStoreStartsEmpty(t *testing.T) {
	repo := &mockRepository{loadErr: errors.New("corrupt file")}
	board := NewBoard(repo)
	board.Load(context.Background())

	if _, ok := board.UserScore("g1", "u1"); ok {
		t.Fatal("expected no score after failed load")
	}
	if err := board.Fold(context.Background(), "g1", map[string]int{"u1": 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := board.UserScore("g1", "u1"); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestFold_AddsToPriorScoresAndSaves(t *testing.T) {
	repo := &mockRepository{loaded: repository.Scores{"g1": {"u1": 10, "u3": 2}}}
	board := NewBoard(repo)
	board.Load(context.Background())

	if err := board.Fold(context.Background(), "g1", map[string]int{"u1": 8, "u2": 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.saveCalls) != 1 {
		t.Fatalf("expected one save, got %d", len(repo.saveCalls))
	}
	saved := repo.saveCalls[0]["g1"]
	if saved["u1"] != 18 || saved["u2"] != 3 || saved["u3"] != 2 {
		t.Fatalf("unexpected saved scores: %v", saved)
	}
}

func TestFold_RetriesSaveOnce(t *testing.T) {
	repo := &mockRepository{saveErrs: []error{errors.New("disk full")}}
	board := NewBoard(repo)

	if err := board.Fold(context.Background(), "g1", map[string]int{"u1": 1}); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if len(repo.saveCalls) != 2 {
		t.Fatalf("expected two save attempts, got %d", len(repo.saveCalls))
	}
}

func TestFold_GivesUpAfterSecondFailure(t *testing.T) {
	repo := &mockRepository{saveErrs: []error{errors.New("disk full"), errors.New("disk full")}}
	board := NewBoard(repo)

	if err := board.Fold(context.Background(), "g1", map[string]int{"u1": 1}); err == nil {
		t.Fatal("expected error after two failed saves")
	}
	if len(repo.saveCalls) != 2 {
		t.Fatalf("expected two save attempts, got %d", len(repo.saveCalls))
	}
	if got, _ := board.UserScore("g1", "u1"); got != 1 {
		t.Fatalf("expected in-memory score to survive failed save, got %d", got)
	}
}

func TestRanking_SortsDescendingWithUserIDTieBreak(t *testing.T) {
	repo := &mockRepository{loaded: repository.Scores{"g1": {"u3": 5, "u1": 5, "u2": 9}}}
	board := NewBoard(repo)
	board.Load(context.Background())

	got := board.Ranking("g1")
	want := []Entry{{"u2", 9}, {"u1", 5}, {"u3", 5}}
	if len(got) != len(want) {
		t.Fatalf("unexpected ranking: %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if len(board.Ranking("unknown")) != 0 {
		t.Fatal("expected empty ranking for unknown group")
	}
}

type gatedRepository struct {
	mu      sync.Mutex
	stored  repository.Scores
	saves   int
	entered chan struct{}
	release chan struct{}
}

func (g *gatedRepository) Load(_ context.Context) (repository.Scores, error) {
	return make(repository.Scores), nil
}

// Save holds the first call until release is closed.
func (g *gatedRepository) Save(_ context.Context, scores repository.Scores) error {
	g.mu.Lock()
	g.saves++
	first := g.saves == 1
	g.mu.Unlock()

	g.entered <- struct{}{}
	if first {
		<-g.release
	}
	g.mu.Lock()
	g.stored = scores
	g.mu.Unlock()
	return nil
}

func TestFold_ConcurrentFoldsPersistInOrder(t *testing.T) {
	repo := &gatedRepository{entered: make(chan struct{}, 2), release: make(chan struct{})}
	board := NewBoard(repo)

	var eg errgroup.Group
	eg.Go(func() error { return board.Fold(context.Background(), "g1", map[string]int{"a": 5}) })
	<-repo.entered
	eg.Go(func() error { return board.Fold(context.Background(), "g2", map[string]int{"b": 3}) })

	select {
	case <-repo.entered:
		close(repo.release)
		t.Fatal("second save started while the first was still writing")
	case <-time.After(50 * time.Millisecond):
	}
	close(repo.release)
	if err := eg.Wait(); err != nil {
		t.Fatalf("unexpected fold error: %v", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.stored["g1"]["a"] != 5 || repo.stored["g2"]["b"] != 3 {
		t.Fatalf("expected both groups persisted, got %v", repo.stored)
	}
}
