package webhook

import "context"

const ResultWebhookSchemaVersion = 1

type ResultWebhookStanding struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

type ResultWebhookPayload struct {
	SchemaVersion int                     `json:"schema_version"`
	GroupID       string                  `json:"group_id"`
	GuildID       string                  `json:"guild_id"`
	FinishedAt    string                  `json:"finished_at"`
	Standings     []ResultWebhookStanding `json:"standings"`
}

type Sender interface {
	SendResult(ctx context.Context, payload ResultWebhookPayload) error
}
