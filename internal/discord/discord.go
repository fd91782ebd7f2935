package discord

import "context"

type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSecondary
	ButtonSuccess
)

type Button struct {
	Label    string
	CustomID string
	Style    ButtonStyle
}

type Message struct {
	Content string
	Buttons []Button
}

// Reply answers an interaction. Ephemeral replies are only shown to the
// user who triggered it.
type Reply struct {
	Content   string
	Buttons   []Button
	Ephemeral bool
}

type SlashCommandDefinition struct {
	Name        string
	Description string
}

type SlashCommandEvent struct {
	GuildID         string
	ChannelID       string
	CommandName     string
	UserID          string
	UserDisplayName string
	Respond         func(reply Reply) error
}

type ComponentEvent struct {
	GuildID         string
	ChannelID       string
	CustomID        string
	UserID          string
	UserDisplayName string
	Respond         func(reply Reply) error
	// Update replaces the content and buttons of the message the button was on.
	Update func(reply Reply) error
}

type Client interface {
	Connect(ctx context.Context) error
	Close() error
	SendMessage(channelID string, msg Message) (string, error)
	RegisterSlashCommandHandler(handler func(SlashCommandEvent))
	RegisterComponentHandler(handler func(ComponentEvent))
	UpsertGuildSlashCommands(guildID string, defs []SlashCommandDefinition) error
	GetBotUserID() (string, error)
	// ResolveDisplayName reports ok=false when the user cannot be looked up.
	ResolveDisplayName(guildID, userID string) (string, bool)
	Run() error
}
