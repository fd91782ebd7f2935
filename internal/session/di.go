package session

import (
	"github.com/foxseedlab/quizwadidaw/internal/config"
	"github.com/foxseedlab/quizwadidaw/internal/discord"
	"github.com/foxseedlab/quizwadidaw/internal/leaderboard"
	"github.com/foxseedlab/quizwadidaw/internal/question"
	"github.com/foxseedlab/quizwadidaw/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		dc := do.MustInvoke[discord.Client](i)
		bank := do.MustInvoke[*question.Bank](i)
		board := do.MustInvoke[*leaderboard.Board](i)
		wh := do.MustInvoke[webhook.Sender](i)
		return NewManager(cfg, dc, bank, board, wh), nil
	})
}
