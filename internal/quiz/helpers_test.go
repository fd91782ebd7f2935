package quiz

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/foxseedlab/quizwadidaw/internal/question"
)

const correctOption = "right"

type fakeTimer struct {
	clock    *fakeClock
	duration time.Duration
	f        func()
	stopped  bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// fire runs the callback regardless of Stop, like a timer that had already
// elapsed when it was cancelled.
func (t *fakeTimer) fire() {
	t.f()
}

func (t *fakeTimer) isStopped() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	return t.stopped
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, duration: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) last(t *testing.T) *fakeTimer {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.timers) == 0 {
		t.Fatal("no countdown was started")
	}
	return c.timers[len(c.timers)-1]
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

type foldCall struct {
	groupID string
	deltas  map[string]int
}

type recordingFolder struct {
	mu    sync.Mutex
	calls []foldCall
}

func (f *recordingFolder) Fold(_ context.Context, groupID string, deltas map[string]int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, foldCall{groupID: groupID, deltas: deltas})
	return nil
}

func (f *recordingFolder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type notifyLog struct {
	mu      sync.Mutex
	outputs []Output
}

func (n *notifyLog) notify(_ string, outputs []Output) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outputs = append(n.outputs, outputs...)
}

func (n *notifyLog) all() []Output {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Output(nil), n.outputs...)
}

type harness struct {
	registry *Registry
	clock    *fakeClock
	folder   *recordingFolder
	notified *notifyLog
}

func noShuffle(int, func(i, j int)) {}

func newHarness(t *testing.T, poolSize int, folder Folder) *harness {
	t.Helper()
	pool := make([]question.Question, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		pool = append(pool, question.Question{
			Prompt:  fmt.Sprintf("question %d", i),
			Options: []string{correctOption, "wrong-1", "wrong-2", "wrong-3"},
			Answer:  correctOption,
		})
	}
	bank, err := question.NewBank(pool)
	if err != nil {
		t.Fatalf("failed to build bank: %v", err)
	}
	h := &harness{
		clock:    &fakeClock{},
		folder:   &recordingFolder{},
		notified: &notifyLog{},
	}
	if folder == nil {
		folder = h.folder
	}
	h.registry = NewRegistry(RegistryConfig{
		Bank:      bank,
		Scores:    folder,
		Notify:    h.notified.notify,
		AfterFunc: h.clock.AfterFunc,
		Shuffle:   noShuffle,
	})
	return h
}

// startQuiz joins users in order, picks the limit and begins.
func (h *harness) startQuiz(t *testing.T, groupID string, limit int, users ...string) (*Session, QuestionPosted) {
	t.Helper()
	s, _ := h.registry.GetOrCreate(groupID)
	for _, u := range users {
		if err := s.Join(u, "name-"+u); err != nil {
			t.Fatalf("join %s: %v", u, err)
		}
	}
	if err := s.RequestStart(); err != nil {
		t.Fatalf("request start: %v", err)
	}
	if err := s.ChooseLimit(limit); err != nil {
		t.Fatalf("choose limit: %v", err)
	}
	outputs, err := s.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	return s, onlyPosted(t, outputs)
}

func onlyPosted(t *testing.T, outputs []Output) QuestionPosted {
	t.Helper()
	if len(outputs) != 1 {
		t.Fatalf("expected one output, got %d: %+v", len(outputs), outputs)
	}
	posted, ok := outputs[0].(QuestionPosted)
	if !ok {
		t.Fatalf("expected QuestionPosted, got %T", outputs[0])
	}
	return posted
}

func mustSubmit(t *testing.T, s *Session, userID, option, token string) []Output {
	t.Helper()
	outputs, err := s.SubmitAnswer(userID, option, token)
	if err != nil {
		t.Fatalf("submit %s: %v", userID, err)
	}
	return outputs
}

func resolvedAndNext(t *testing.T, outputs []Output) (QuestionResolved, Output) {
	t.Helper()
	if len(outputs) != 2 {
		t.Fatalf("expected resolution plus follow-up, got %d: %+v", len(outputs), outputs)
	}
	resolved, ok := outputs[0].(QuestionResolved)
	if !ok {
		t.Fatalf("expected QuestionResolved, got %T", outputs[0])
	}
	return resolved, outputs[1]
}
