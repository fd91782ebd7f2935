package quiz

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/foxseedlab/quizwadidaw/internal/question"
)

const (
	DefaultQuestionTimeout = 15 * time.Second
	finalizeTimeout        = 10 * time.Second
)

var DefaultLimits = []int{5, 10, 15, 20}

type Bank interface {
	Size() int
	Sample(n int) ([]question.Question, error)
}

// Folder persists a finished session's totals into the group leaderboard.
type Folder interface {
	Fold(ctx context.Context, groupID string, deltas map[string]int) error
}

// Notifier receives outputs produced off the command path, i.e. by an
// expired countdown.
type Notifier func(groupID string, outputs []Output)

type RegistryConfig struct {
	Bank            Bank
	Scores          Folder
	Notify          Notifier
	QuestionTimeout time.Duration
	Limits          []int
	AfterFunc       AfterFunc
	Shuffle         func(n int, swap func(i, j int))
}

type sessionEnv struct {
	bank      Bank
	limits    []int
	timeout   time.Duration
	afterFunc AfterFunc
	shuffle   func(n int, swap func(i, j int))
	notify    Notifier
	finalize  func(s *Session, totals map[string]int)
}

// Registry holds at most one live session per group.
type Registry struct {
	env    *sessionEnv
	scores Folder

	mu       sync.Mutex
	sessions map[string]*Session
	pending  sync.WaitGroup
}

func NewRegistry(cfg RegistryConfig) *Registry {
	r := &Registry{
		scores:   cfg.Scores,
		sessions: make(map[string]*Session),
	}
	env := &sessionEnv{
		bank:      cfg.Bank,
		limits:    cfg.Limits,
		timeout:   cfg.QuestionTimeout,
		afterFunc: cfg.AfterFunc,
		shuffle:   cfg.Shuffle,
		notify:    cfg.Notify,
		finalize:  r.finalize,
	}
	if len(env.limits) == 0 {
		env.limits = DefaultLimits
	}
	if env.timeout <= 0 {
		env.timeout = DefaultQuestionTimeout
	}
	if env.afterFunc == nil {
		env.afterFunc = timeAfterFunc
	}
	if env.shuffle == nil {
		env.shuffle = rand.Shuffle
	}
	if env.notify == nil {
		env.notify = func(string, []Output) {}
	}
	r.env = env
	return r
}

func (r *Registry) Limits() []int {
	return r.env.limits
}

// GetOrCreate returns the group's live session, creating a fresh one in the
// forming phase if there is none. A finished session whose scores are still
// being folded counts as gone.
func (r *Registry) GetOrCreate(groupID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[groupID]; ok && !s.closed.Load() {
		return s, false
	}
	s := newSession(groupID, r.env)
	r.sessions[groupID] = s
	slog.Info("session created", "group_id", groupID)
	return s, true
}

func (r *Registry) Get(groupID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[groupID]
	if !ok || s.closed.Load() {
		return nil, false
	}
	return s, true
}

// Remove discards the group's session, cancelling any running countdown,
// without touching the leaderboard.
func (r *Registry) Remove(groupID string) bool {
	s, ok := r.Get(groupID)
	if !ok {
		return false
	}
	s.Discard()
	r.removeSession(s)
	slog.Info("session removed", "group_id", groupID)
	return true
}

func (r *Registry) removeSession(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.sessions[s.groupID]; ok && cur == s {
		delete(r.sessions, s.groupID)
	}
}

// finalize folds and persists a finished session's totals, then drops the
// session. It runs in the background so a slow store never holds up the
// caller that produced the last answer.
func (r *Registry) finalize(s *Session, totals map[string]int) {
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		if r.scores != nil {
			ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
			if err := r.scores.Fold(ctx, s.groupID, totals); err != nil {
				slog.Error("failed to persist session scores", "error", err, "group_id", s.groupID)
			}
			cancel()
		}
		r.removeSession(s)
	}()
}

// Wait blocks until every finished session has been folded and removed.
func (r *Registry) Wait() {
	r.pending.Wait()
}
