package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/quizwadidaw/internal/discord"
)

const buttonsPerRow = 5

type Client struct {
	session   *discordgo.Session
	token     string
	botUserID string
}

func NewClient(token string) discordpkg.Client {
	return &Client{
		token: token,
	}
}

func (c *Client) Connect(ctx context.Context) error {
	_ = ctx
	s, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return err
	}
	c.session = s
	s.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsGuilds)
	if err := s.Open(); err != nil {
		return err
	}
	userID, err := c.GetBotUserID()
	if err != nil {
		return err
	}
	c.botUserID = userID
	return nil
}

func (c *Client) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func (c *Client) SendMessage(channelID string, msg discordpkg.Message) (string, error) {
	sent, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    msg.Content,
		Components: buildComponents(msg.Buttons),
	})
	if err != nil {
		return "", err
	}
	return sent.ID, nil
}

func (c *Client) RegisterSlashCommandHandler(handler func(discordpkg.SlashCommandEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic == nil || ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		data := ic.ApplicationCommandData()
		if data.Name == "" {
			return
		}
		userID, displayName := interactionUser(ic)
		if userID == "" {
			return
		}
		slog.Info("slash command interaction received", "guild_id", ic.GuildID, "channel_id", ic.ChannelID, "command", data.Name, "user_id", userID)
		handler(discordpkg.SlashCommandEvent{
			GuildID:         ic.GuildID,
			ChannelID:       ic.ChannelID,
			CommandName:     data.Name,
			UserID:          userID,
			UserDisplayName: displayName,
			Respond: func(reply discordpkg.Reply) error {
				return respond(s, ic, discordgo.InteractionResponseChannelMessageWithSource, reply)
			},
		})
	})
}

func (c *Client) RegisterComponentHandler(handler func(discordpkg.ComponentEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic == nil || ic.Type != discordgo.InteractionMessageComponent {
			return
		}
		data := ic.MessageComponentData()
		if data.CustomID == "" {
			return
		}
		userID, displayName := interactionUser(ic)
		if userID == "" {
			return
		}
		slog.Debug("component interaction received", "guild_id", ic.GuildID, "channel_id", ic.ChannelID, "custom_id", data.CustomID, "user_id", userID)
		handler(discordpkg.ComponentEvent{
			GuildID:         ic.GuildID,
			ChannelID:       ic.ChannelID,
			CustomID:        data.CustomID,
			UserID:          userID,
			UserDisplayName: displayName,
			Respond: func(reply discordpkg.Reply) error {
				return respond(s, ic, discordgo.InteractionResponseChannelMessageWithSource, reply)
			},
			Update: func(reply discordpkg.Reply) error {
				return respond(s, ic, discordgo.InteractionResponseUpdateMessage, reply)
			},
		})
	})
}

func respond(s *discordgo.Session, ic *discordgo.InteractionCreate, kind discordgo.InteractionResponseType, reply discordpkg.Reply) error {
	data := &discordgo.InteractionResponseData{
		Content:    reply.Content,
		Components: buildComponents(reply.Buttons),
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: kind,
		Data: data,
	})
}

// buildComponents lays buttons out in action rows. An empty slice (rather
// than nil) clears the buttons when a message is updated.
func buildComponents(buttons []discordpkg.Button) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, (len(buttons)+buttonsPerRow-1)/buttonsPerRow)
	for start := 0; start < len(buttons); start += buttonsPerRow {
		end := min(start+buttonsPerRow, len(buttons))
		row := discordgo.ActionsRow{}
		for _, b := range buttons[start:end] {
			row.Components = append(row.Components, discordgo.Button{
				Label:    b.Label,
				Style:    buttonStyle(b.Style),
				CustomID: b.CustomID,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func buttonStyle(style discordpkg.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case discordpkg.ButtonSecondary:
		return discordgo.SecondaryButton
	case discordpkg.ButtonSuccess:
		return discordgo.SuccessButton
	default:
		return discordgo.PrimaryButton
	}
}

func interactionUser(ic *discordgo.InteractionCreate) (string, string) {
	if ic.Member != nil && ic.Member.User != nil {
		name := ic.Member.Nick
		if name == "" {
			name = preferredDiscordName(ic.Member.User.GlobalName, ic.Member.User.Username, ic.Member.User.ID)
		}
		return ic.Member.User.ID, name
	}
	if ic.User != nil {
		return ic.User.ID, preferredDiscordName(ic.User.GlobalName, ic.User.Username, ic.User.ID)
	}
	return "", ""
}

func (c *Client) UpsertGuildSlashCommands(guildID string, defs []discordpkg.SlashCommandDefinition) error {
	appID := c.applicationID()
	if appID == "" {
		return fmt.Errorf("discord application id is not available")
	}
	existing, err := c.session.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}
	existingByName := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		if cmd == nil || cmd.Name == "" {
			continue
		}
		existingByName[cmd.Name] = cmd
	}
	for _, def := range defs {
		if err := c.upsertGuildSlashCommand(appID, guildID, def, existingByName); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) upsertGuildSlashCommand(appID, guildID string, def discordpkg.SlashCommandDefinition, existingByName map[string]*discordgo.ApplicationCommand) error {
	if def.Name == "" {
		return nil
	}
	payload := &discordgo.ApplicationCommand{
		Name:        def.Name,
		Description: def.Description,
	}
	cmd, ok := existingByName[def.Name]
	if !ok {
		_, err := c.session.ApplicationCommandCreate(appID, guildID, payload)
		return err
	}
	if cmd.Description == def.Description {
		return nil
	}
	_, err := c.session.ApplicationCommandEdit(appID, guildID, cmd.ID, payload)
	return err
}

func (c *Client) GetBotUserID() (string, error) {
	if c.botUserID != "" {
		return c.botUserID, nil
	}
	if c.session == nil {
		return "", fmt.Errorf("discord session is not initialized")
	}
	if c.session.State != nil && c.session.State.User != nil && c.session.State.User.ID != "" {
		c.botUserID = c.session.State.User.ID
		return c.botUserID, nil
	}
	u, err := c.session.User("@me")
	if err != nil {
		return "", err
	}
	c.botUserID = u.ID
	return c.botUserID, nil
}

func (c *Client) ResolveDisplayName(guildID, userID string) (string, bool) {
	userID = strings.TrimSpace(userID)
	if c.session == nil || userID == "" {
		return "", false
	}
	if member := c.resolveGuildMember(guildID, userID); member != nil {
		if member.Nick != "" {
			return member.Nick, true
		}
		if member.User != nil {
			return preferredDiscordName(member.User.GlobalName, member.User.Username, userID), true
		}
	}
	u, err := c.session.User(userID)
	if err != nil || u == nil {
		if err != nil && !isRESTNotFound(err) {
			slog.Warn("discord user lookup failed", "error", err, "user_id", userID)
		}
		return "", false
	}
	return preferredDiscordName(u.GlobalName, u.Username, userID), true
}

func (c *Client) resolveGuildMember(guildID, userID string) *discordgo.Member {
	if c.session == nil || guildID == "" {
		return nil
	}
	if c.session.State != nil {
		member, err := c.session.State.Member(guildID, userID)
		if err == nil && member != nil {
			return member
		}
	}
	// Cache may be cold right after bot startup; ask Discord API directly as fallback.
	member, err := c.session.GuildMember(guildID, userID)
	if err != nil {
		return nil
	}
	return member
}

func isRESTNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Response == nil {
		return false
	}
	return restErr.Response.StatusCode == http.StatusNotFound
}

func preferredDiscordName(globalName, username, fallback string) string {
	if globalName != "" {
		return globalName
	}
	if username != "" {
		return username
	}
	return fallback
}

func (c *Client) applicationID() string {
	if c.session == nil || c.session.State == nil {
		return ""
	}
	if c.session.State.Application != nil && c.session.State.Application.ID != "" {
		return c.session.State.Application.ID
	}
	if c.session.State.User != nil {
		return c.session.State.User.ID
	}
	return ""
}

func (c *Client) Run() error {
	select {}
}
