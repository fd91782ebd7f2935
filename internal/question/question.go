package question

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const OptionCount = 4

var (
	ErrEmptyPool          = errors.New("question pool is empty")
	ErrNotEnoughQuestions = errors.New("not enough questions in pool")
)

type Question struct {
	Prompt  string
	Options []string
	Answer  string
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("prompt is empty")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("expected %d options, got %d", OptionCount, len(q.Options))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("option %q is duplicated", opt)
		}
		seen[opt] = struct{}{}
	}
	if _, ok := seen[q.Answer]; !ok {
		return fmt.Errorf("answer %q is not one of the options", q.Answer)
	}
	return nil
}

// Source loads the full question pool from wherever it is published.
type Source interface {
	Load(ctx context.Context) ([]Question, error)
}

// Bank is an immutable question pool. Sample is safe for concurrent use.
type Bank struct {
	pool []Question
}

func NewBank(pool []Question) (*Bank, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	for i, q := range pool {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	cp := make([]Question, len(pool))
	for i, q := range pool {
		cp[i] = q.clone()
	}
	return &Bank{pool: cp}, nil
}

func (b *Bank) Size() int {
	return len(b.pool)
}

// Sample draws n distinct questions in random order. Each returned question
// owns its Options slice, so callers may shuffle it freely.
func (b *Bank) Sample(n int) ([]Question, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", n)
	}
	if n > len(b.pool) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughQuestions, n, len(b.pool))
	}
	perm := rand.Perm(len(b.pool))
	out := make([]Question, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, b.pool[idx].clone())
	}
	return out, nil
}

func (q Question) clone() Question {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	q.Options = opts
	return q
}
