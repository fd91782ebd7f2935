package question

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/quizwadidaw/internal/config"
	"github.com/foxseedlab/quizwadidaw/internal/question"
	"github.com/samber/do/v2"
)

const poolLoadTimeout = 30 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (question.Source, error) {
		c := do.MustInvoke[*config.Config](i)
		if c.QuestionSheetID != "" {
			return NewSheetsSource(SheetsConfig{
				SpreadsheetID:   c.QuestionSheetID,
				Range:           c.QuestionSheetRange,
				CredentialsJSON: c.GoogleCloudCredentialsJSON,
				APIKey:          c.GoogleAPIKey,
			}), nil
		}
		return NewCSVSource(c.QuestionCSVURL), nil
	})
	do.Provide(injector, func(i do.Injector) (*question.Bank, error) {
		src := do.MustInvoke[question.Source](i)
		ctx, cancel := context.WithTimeout(context.Background(), poolLoadTimeout)
		defer cancel()
		return LoadBank(ctx, src)
	})
}

// LoadBank reads the pool once; the bot cannot run without it.
func LoadBank(ctx context.Context, src question.Source) (*question.Bank, error) {
	pool, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	bank, err := question.NewBank(pool)
	if err != nil {
		return nil, fmt.Errorf("invalid question pool: %w", err)
	}
	slog.Info("question pool loaded", "questions", bank.Size())
	return bank, nil
}
