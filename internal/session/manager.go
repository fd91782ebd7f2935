package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/foxseedlab/quizwadidaw/internal/config"
	"github.com/foxseedlab/quizwadidaw/internal/discord"
	"github.com/foxseedlab/quizwadidaw/internal/leaderboard"
	"github.com/foxseedlab/quizwadidaw/internal/question"
	"github.com/foxseedlab/quizwadidaw/internal/quiz"
	"github.com/foxseedlab/quizwadidaw/internal/webhook"
)

const webhookSendTimeout = 10 * time.Second

// Manager routes chat commands and button presses to the group's quiz
// session and renders what the session reports back. A group is a channel.
type Manager struct {
	cfg      *config.Config
	discord  discord.Client
	board    *leaderboard.Board
	webhook  webhook.Sender
	registry *quiz.Registry
	now      func() time.Time

	mu         sync.Mutex
	delivering map[string]*sync.Mutex
}

func NewManager(cfg *config.Config, dc discord.Client, bank quiz.Bank, board *leaderboard.Board, wh webhook.Sender) *Manager {
	return newManager(cfg, dc, bank, board, wh, nil)
}

func newManager(cfg *config.Config, dc discord.Client, bank quiz.Bank, board *leaderboard.Board, wh webhook.Sender, afterFunc quiz.AfterFunc) *Manager {
	m := &Manager{
		cfg:        cfg,
		discord:    dc,
		board:      board,
		webhook:    wh,
		now:        time.Now,
		delivering: make(map[string]*sync.Mutex),
	}
	m.registry = quiz.NewRegistry(quiz.RegistryConfig{
		Bank:            bank,
		Scores:          board,
		Notify:          m.deliver,
		QuestionTimeout: cfg.QuestionTimeout,
		Limits:          cfg.QuestionLimits,
		AfterFunc:       afterFunc,
	})
	return m
}

func SlashCommandDefinitions() []discord.SlashCommandDefinition {
	return []discord.SlashCommandDefinition{
		{Name: commandQuiz, Description: slashCommandQuizDescription},
		{Name: commandJoin, Description: slashCommandJoinDescription},
		{Name: commandStart, Description: slashCommandStartDescription},
		{Name: commandSetLimit, Description: slashCommandSetLimitDescription},
		{Name: commandQuestionStatus, Description: slashCommandQuestionStatusDescription},
		{Name: commandMyScore, Description: slashCommandMyScoreDescription},
		{Name: commandLeaderboard, Description: slashCommandLeaderboardDescription},
		{Name: commandRestart, Description: slashCommandRestartDescription},
		{Name: commandPlayers, Description: slashCommandPlayersDescription},
	}
}

// deliver posts outputs to the group in order. It is also the registry's
// notifier, so it runs on countdown goroutines as well as command handlers.
func (m *Manager) deliver(groupID string, outputs []quiz.Output) {
	if len(outputs) == 0 {
		return
	}
	lock := m.deliveryLock(groupID)
	lock.Lock()
	defer lock.Unlock()

	for _, out := range outputs {
		switch o := out.(type) {
		case quiz.QuestionPosted:
			m.send(groupID, renderQuestion(o))
		case quiz.QuestionResolved:
			name := m.nameResolver(o.Names)
			m.send(groupID, discord.Message{Content: renderResolution(o, name)})
			m.send(groupID, discord.Message{Content: messageHint})
		case quiz.QuizFinished:
			name := m.nameResolver(o.Names)
			m.send(groupID, discord.Message{Content: renderFinal(o, name)})
			m.sendResultWebhook(o, name)
			m.dropDeliveryLock(groupID)
		default:
			slog.Warn("unknown quiz output", "group_id", groupID, "output", fmt.Sprintf("%T", out))
		}
	}
}

func (m *Manager) deliveryLock(groupID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.delivering[groupID]
	if !ok {
		lock = &sync.Mutex{}
		m.delivering[groupID] = lock
	}
	return lock
}

// dropDeliveryLock forgets a group's delivery lock once its run is over.
func (m *Manager) dropDeliveryLock(groupID string) {
	m.mu.Lock()
	delete(m.delivering, groupID)
	m.mu.Unlock()
}

// Shutdown waits for finished runs to be folded into the leaderboard. The
// injector calls it before the score repository is closed.
func (m *Manager) Shutdown() {
	m.registry.Wait()
}

func (m *Manager) send(channelID string, msg discord.Message) {
	if _, err := m.discord.SendMessage(channelID, msg); err != nil {
		slog.Error("failed to send channel message", "error", err, "channel_id", channelID)
	}
}

func (m *Manager) sendResultWebhook(f quiz.QuizFinished, name nameFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), webhookSendTimeout)
	defer cancel()
	payload := buildResultWebhookPayload(f, m.cfg.DiscordGuildID, m.now(), name)
	if err := m.webhook.SendResult(ctx, payload); err != nil {
		slog.Error("failed to send result webhook", "error", err, "group_id", f.GroupID)
	}
}

// nameResolver prefers the name cached at join time, then asks Discord, then
// falls back to the raw ID. Lookups are memoized for one rendering.
func (m *Manager) nameResolver(cached map[string]string) nameFunc {
	looked := make(map[string]string)
	return func(userID string) string {
		if name := cached[userID]; name != "" {
			return name
		}
		if name, ok := looked[userID]; ok {
			return name
		}
		name, ok := m.discord.ResolveDisplayName(m.cfg.DiscordGuildID, userID)
		if !ok || name == "" {
			name = fmt.Sprintf(messageUnknownUserFormat, userID)
		}
		looked[userID] = name
		return name
	}
}

func respond(fn func(discord.Reply) error, reply discord.Reply) {
	if fn == nil {
		return
	}
	if err := fn(reply); err != nil {
		slog.Error("failed to respond to interaction", "error", err)
	}
}

func respondEphemeral(fn func(discord.Reply) error, content string) {
	respond(fn, discord.Reply{Content: content, Ephemeral: true})
}

// rejectionMessage turns a sequencing error from the quiz into the notice
// shown to the user.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, quiz.ErrSessionClosed):
		return messageEphemeralSessionClosed
	case errors.Is(err, quiz.ErrAlreadyStarted):
		return messageEphemeralAlreadyRunning
	case errors.Is(err, quiz.ErrAlreadyJoined):
		return messageEphemeralAlreadyJoined
	case errors.Is(err, quiz.ErrNoParticipants):
		return messageEphemeralNoParticipants
	case errors.Is(err, quiz.ErrNotSelectingLimit):
		return messageEphemeralNotSelecting
	case errors.Is(err, quiz.ErrInvalidLimit):
		return messageEphemeralInvalidLimit
	case errors.Is(err, question.ErrNotEnoughQuestions):
		return messageEphemeralNotEnough
	case errors.Is(err, quiz.ErrLimitAlreadyChosen):
		return messageEphemeralLimitChosen
	case errors.Is(err, quiz.ErrLimitNotChosen):
		return messageEphemeralLimitNotChosen
	case errors.Is(err, quiz.ErrNotStarted):
		return messageEphemeralNotStarted
	case errors.Is(err, quiz.ErrNoActiveQuestion):
		return messageEphemeralNoQuestion
	case errors.Is(err, quiz.ErrExpiredQuestion):
		return messageEphemeralExpiredQuestion
	case errors.Is(err, quiz.ErrNotParticipant):
		return messageEphemeralNotParticipant
	case errors.Is(err, quiz.ErrAlreadyAnswered):
		return messageEphemeralAlreadyAnswered
	case errors.Is(err, quiz.ErrUnknownOption):
		return messageEphemeralUnknownOption
	default:
		slog.Error("unexpected quiz error", "error", err)
		return messageEphemeralInternalError
	}
}
