package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/foxseedlab/quizwadidaw/internal/discord"
	"github.com/foxseedlab/quizwadidaw/internal/quiz"
)

func (m *Manager) HandleSlashCommand(event discord.SlashCommandEvent) {
	if event.GuildID != m.cfg.DiscordGuildID {
		slog.Info("ignoring slash command for different guild", "event_guild_id", event.GuildID, "configured_guild_id", m.cfg.DiscordGuildID)
		respondEphemeral(event.Respond, messageEphemeralWrongGuild)
		return
	}
	switch event.CommandName {
	case commandQuiz:
		respond(event.Respond, discord.Reply{Content: messageWelcome})
	case commandJoin:
		m.handleJoin(event)
	case commandStart, commandSetLimit:
		m.handleStart(event)
	case commandQuestionStatus:
		m.handleQuestionStatus(event)
	case commandMyScore:
		m.handleMyScore(event)
	case commandLeaderboard:
		m.handleLeaderboard(event)
	case commandRestart:
		m.handleRestart(event)
	case commandPlayers:
		m.handlePlayers(event)
	default:
		respondEphemeral(event.Respond, messageEphemeralUnknownCommand)
	}
}

func (m *Manager) handleJoin(event discord.SlashCommandEvent) {
	s, _ := m.registry.GetOrCreate(event.ChannelID)
	err := s.Join(event.UserID, event.UserDisplayName)
	if errors.Is(err, quiz.ErrSessionClosed) {
		// The previous run finished between lookup and join.
		s, _ = m.registry.GetOrCreate(event.ChannelID)
		err = s.Join(event.UserID, event.UserDisplayName)
	}
	switch {
	case err == nil:
		respond(event.Respond, discord.Reply{Content: joinedMessage(event.UserDisplayName)})
	case errors.Is(err, quiz.ErrAlreadyStarted):
		respondEphemeral(event.Respond, messageEphemeralAlreadyStarted)
	default:
		respondEphemeral(event.Respond, rejectionMessage(err))
	}
}

func (m *Manager) handleStart(event discord.SlashCommandEvent) {
	s, ok := m.registry.Get(event.ChannelID)
	if !ok {
		respondEphemeral(event.Respond, messageEphemeralNoParticipants)
		return
	}
	if err := s.RequestStart(); err != nil {
		respondEphemeral(event.Respond, rejectionMessage(err))
		return
	}
	respond(event.Respond, limitPicker(m.registry.Limits()))
}

func (m *Manager) handleQuestionStatus(event discord.SlashCommandEvent) {
	s, ok := m.registry.Get(event.ChannelID)
	if !ok {
		respondEphemeral(event.Respond, messageEphemeralNoSession)
		return
	}
	st, err := s.Status()
	if err != nil {
		respondEphemeral(event.Respond, rejectionMessage(err))
		return
	}
	respond(event.Respond, discord.Reply{Content: renderStatus(st, m.nameResolver(st.Names))})
}

// handleMyScore reports the running score while a quiz is in progress and
// the group's cumulative score otherwise.
func (m *Manager) handleMyScore(event discord.SlashCommandEvent) {
	if s, ok := m.registry.Get(event.ChannelID); ok {
		if score, ok := s.Score(event.UserID); ok {
			respondEphemeral(event.Respond, fmt.Sprintf(messageSessionScoreFormat, score))
			return
		}
	}
	score, ok := m.board.UserScore(event.ChannelID, event.UserID)
	if !ok {
		respondEphemeral(event.Respond, messageNoPersonalScore)
		return
	}
	respondEphemeral(event.Respond, fmt.Sprintf(messageOverallScoreFormat, score))
}

func (m *Manager) handleLeaderboard(event discord.SlashCommandEvent) {
	entries := m.board.Ranking(event.ChannelID)
	if len(entries) == 0 {
		respondEphemeral(event.Respond, messageNoLeaderboard)
		return
	}
	respond(event.Respond, discord.Reply{Content: renderLeaderboard(entries, m.nameResolver(nil))})
}

func (m *Manager) handleRestart(event discord.SlashCommandEvent) {
	if !m.registry.Remove(event.ChannelID) {
		respondEphemeral(event.Respond, messageEphemeralNoSession)
		return
	}
	m.dropDeliveryLock(event.ChannelID)
	slog.Info("quiz session reset", "channel_id", event.ChannelID, "user_id", event.UserID)
	respond(event.Respond, discord.Reply{Content: messageRestart})
}

func (m *Manager) handlePlayers(event discord.SlashCommandEvent) {
	s, ok := m.registry.Get(event.ChannelID)
	if !ok {
		respondEphemeral(event.Respond, messageNoPlayers)
		return
	}
	players := s.Participants()
	if len(players) == 0 {
		respondEphemeral(event.Respond, messageNoPlayers)
		return
	}
	cached := make(map[string]string, len(players))
	for _, p := range players {
		cached[p.UserID] = p.DisplayName
	}
	respond(event.Respond, discord.Reply{Content: renderPlayers(players, m.nameResolver(cached))})
}
