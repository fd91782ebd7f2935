package session

import (
	"log/slog"
	"strings"

	"github.com/foxseedlab/quizwadidaw/internal/discord"
)

func (m *Manager) HandleComponent(event discord.ComponentEvent) {
	if event.GuildID != m.cfg.DiscordGuildID {
		respondEphemeral(event.Respond, messageEphemeralWrongGuild)
		return
	}
	switch {
	case event.CustomID == customIDBegin:
		m.handleBegin(event)
	case strings.HasPrefix(event.CustomID, customIDLimitPrefix):
		m.handleLimit(event)
	case strings.HasPrefix(event.CustomID, customIDAnswerPrefix):
		m.handleAnswer(event)
	default:
		slog.Warn("unknown component custom id", "custom_id", event.CustomID, "channel_id", event.ChannelID)
		respondEphemeral(event.Respond, messageEphemeralUnknownButton)
	}
}

func (m *Manager) handleLimit(event discord.ComponentEvent) {
	n, ok := parseLimitCustomID(event.CustomID)
	if !ok {
		respondEphemeral(event.Respond, messageEphemeralUnknownButton)
		return
	}
	s, ok := m.registry.Get(event.ChannelID)
	if !ok {
		respondEphemeral(event.Respond, messageEphemeralNoSession)
		return
	}
	if err := s.ChooseLimit(n); err != nil {
		respondEphemeral(event.Respond, rejectionMessage(err))
		return
	}
	respond(event.Update, beginPrompt(n))
}

func (m *Manager) handleBegin(event discord.ComponentEvent) {
	s, ok := m.registry.Get(event.ChannelID)
	if !ok {
		respondEphemeral(event.Respond, messageEphemeralNoSession)
		return
	}
	outputs, err := s.Begin()
	if err != nil {
		respondEphemeral(event.Respond, rejectionMessage(err))
		return
	}
	respond(event.Update, discord.Reply{Content: messageBegin})
	m.deliver(event.ChannelID, outputs)
}

func (m *Manager) handleAnswer(event discord.ComponentEvent) {
	token, index, ok := parseAnswerCustomID(event.CustomID)
	if !ok {
		respondEphemeral(event.Respond, messageEphemeralUnknownButton)
		return
	}
	s, ok := m.registry.Get(event.ChannelID)
	if !ok {
		respondEphemeral(event.Respond, messageEphemeralNoQuestion)
		return
	}
	outputs, err := s.SubmitChoice(event.UserID, token, index)
	if err != nil {
		respondEphemeral(event.Respond, rejectionMessage(err))
		return
	}
	respondEphemeral(event.Respond, messageEphemeralAnswerRecorded)
	m.deliver(event.ChannelID, outputs)
}
